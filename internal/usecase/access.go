package usecase

import (
	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"
)

// Row-level rules. A record outside the caller's scope is reported as not found.

func bookingVisible(b *entity.Booking, actor utils.Actor) bool {
	return actor.IsStaff || actor.Owns(b.UserID)
}

func bookingMutable(b *entity.Booking, actor utils.Actor) bool {
	return bookingVisible(b, actor)
}

// Reviews are public to read.
func reviewVisible(_ *entity.Review, _ utils.Actor) bool {
	return true
}

func reviewMutable(r *entity.Review, actor utils.Actor) bool {
	return actor.IsStaff || actor.Owns(r.UserID)
}

func requireActor(actor utils.Actor) error {
	if !actor.Authenticated() {
		return ErrUnauthorized
	}
	return nil
}
