package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travel-booking/pkg/utils"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// OrderTerm is one validated entry of the ordering parameter.
type OrderTerm struct {
	Field string
	Desc  bool
}

// ListingQuery is the set of query parameters accepted by listing collections.
type ListingQuery struct {
	ListingType *string
	IsAvailable *bool
	Location    *string
	MaxGuests   *int
	Bedrooms    *int
	Search      string
	Ordering    []OrderTerm
	PaginatedRequest
}

type BookingQuery struct {
	ListingID    *uuid.UUID
	Status       *string
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	UserID       *uuid.UUID
	Ordering     []OrderTerm
	PaginatedRequest
}

// ReviewQuery also carries listing_id, which narrows the set the same way as listing.
type ReviewQuery struct {
	ListingID *uuid.UUID
	UserID    *uuid.UUID
	Rating    *int
	Ordering  []OrderTerm
	PaginatedRequest
}

var (
	ListingOrderFields = []string{"price_per_night", "created_at", "bedrooms", "max_guests"}
	BookingOrderFields = []string{"created_at", "check_in_date", "total_price"}
	ReviewOrderFields  = []string{"created_at", "rating"}

	ListingTypes    = []string{"apartment", "house", "villa", "cabin", "room", "hotel"}
	BookingStatuses = []string{"pending", "confirmed", "cancelled", "completed"}
)

// ParseListingQuery validates values against the listing whitelist. The returned map is
// non-nil only when some parameter is malformed.
func ParseListingQuery(values url.Values) (*ListingQuery, map[string]string) {
	p := newQueryParser(values)
	q := &ListingQuery{
		ListingType:      p.choice("listing_type", ListingTypes...),
		IsAvailable:      p.boolean("is_available"),
		Location:         p.str("location"),
		MaxGuests:        p.integer("max_guests"),
		Bedrooms:         p.integer("bedrooms"),
		Search:           strings.TrimSpace(values.Get("search")),
		Ordering:         p.ordering(ListingOrderFields...),
		PaginatedRequest: p.page(),
	}
	return q, p.result()
}

func ParseBookingQuery(values url.Values) (*BookingQuery, map[string]string) {
	p := newQueryParser(values)
	q := &BookingQuery{
		ListingID:        p.uuid("listing"),
		Status:           p.choice("status", BookingStatuses...),
		CheckInDate:      p.date("check_in_date"),
		CheckOutDate:     p.date("check_out_date"),
		UserID:           p.uuid("user"),
		Ordering:         p.ordering(BookingOrderFields...),
		PaginatedRequest: p.page(),
	}
	return q, p.result()
}

func ParseReviewQuery(values url.Values) (*ReviewQuery, map[string]string) {
	p := newQueryParser(values)
	q := &ReviewQuery{
		ListingID:        p.uuid("listing"),
		UserID:           p.uuid("user"),
		Rating:           p.integer("rating"),
		Ordering:         p.ordering(ReviewOrderFields...),
		PaginatedRequest: p.page(),
	}

	if listingID := p.uuid("listing_id"); listingID != nil {
		if q.ListingID != nil && *q.ListingID != *listingID {
			p.errs["listing_id"] = "Conflicts with listing"
		}
		q.ListingID = listingID
	}

	return q, p.result()
}

// ParseOwnBookingQuery reads only ordering; the caller's own list takes no filters.
func ParseOwnBookingQuery(values url.Values) (*BookingQuery, map[string]string) {
	p := newQueryParser(values)
	q := &BookingQuery{Ordering: p.ordering(BookingOrderFields...)}
	return q, p.result()
}

func ParseOwnReviewQuery(values url.Values) (*ReviewQuery, map[string]string) {
	p := newQueryParser(values)
	q := &ReviewQuery{Ordering: p.ordering(ReviewOrderFields...)}
	return q, p.result()
}

type queryParser struct {
	values url.Values
	errs   map[string]string
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values, errs: make(map[string]string)}
}

func (p *queryParser) result() map[string]string {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}

// raw returns the trimmed value; empty parameters are treated as absent.
func (p *queryParser) raw(key string) (string, bool) {
	v := strings.TrimSpace(p.values.Get(key))
	return v, v != ""
}

func (p *queryParser) str(key string) *string {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	return &v
}

func (p *queryParser) choice(key string, allowed ...string) *string {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	for _, a := range allowed {
		if v == a {
			return &v
		}
	}
	p.errs[key] = fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", "))
	return nil
}

func (p *queryParser) boolean(key string) *bool {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	switch strings.ToLower(v) {
	case "true", "1":
		b := true
		return &b
	case "false", "0":
		b := false
		return &b
	}
	p.errs[key] = "Must be true or false"
	return nil
}

func (p *queryParser) integer(key string) *int {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs[key] = "Must be an integer"
		return nil
	}
	return &n
}

func (p *queryParser) date(key string) *time.Time {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	d, err := time.Parse(DateLayout, v)
	if err != nil {
		p.errs[key] = fmt.Sprintf("Must be a date in %s format", DateLayout)
		return nil
	}
	return &d
}

func (p *queryParser) uuid(key string) *uuid.UUID {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		p.errs[key] = "Must be a valid UUID"
		return nil
	}
	return &id
}

// ordering parses a comma separated list such as "-price_per_night,created_at".
func (p *queryParser) ordering(allowed ...string) []OrderTerm {
	v, ok := p.raw("ordering")
	if !ok {
		return nil
	}

	var terms []OrderTerm
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		term := OrderTerm{Field: strings.TrimPrefix(part, "-"), Desc: strings.HasPrefix(part, "-")}
		if !contains(allowed, term.Field) {
			p.errs["ordering"] = fmt.Sprintf("Unknown field %q, allowed: %s", term.Field, strings.Join(allowed, ", "))
			return nil
		}
		terms = append(terms, term)
	}
	return terms
}

// page is lenient like the rest of the API: bad values fall back to defaults.
func (p *queryParser) page() PaginatedRequest {
	return PaginatedRequest{
		Page:    utils.ParseInt(p.values.Get("page"), 1),
		PerPage: min(utils.ParseInt(p.values.Get("per_page"), DefaultPerPage), MaxPerPage),
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
