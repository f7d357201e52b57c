package usecase

import (
	"time"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/utils"
)

// Clock supplies the current time and the zone "today" is computed in.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// Today is midnight of the current date in the clock's zone, expressed as a UTC date.
func (c Clock) Today() time.Time {
	y, m, d := c.Now().In(c.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs)
	}
	return nil
}

func toOrdering(terms []request.OrderTerm) []repository.OrderBy {
	if len(terms) == 0 {
		return nil
	}
	out := make([]repository.OrderBy, len(terms))
	for i, t := range terms {
		out[i] = repository.OrderBy{Field: t.Field, Desc: t.Desc}
	}
	return out
}

func toPage(p request.PaginatedRequest) repository.Page {
	return repository.Page{Limit: p.Limit(), Offset: p.Offset()}
}

func pageNumber(p request.PaginatedRequest) int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(request.DateLayout, value)
	if err != nil {
		return time.Time{}, fieldError(field, "Must be a date in "+request.DateLayout+" format")
	}
	return d, nil
}
