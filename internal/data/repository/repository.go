package repository

import (
	"errors"

	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

// ErrNoRows is returned by mutations that matched no record.
var ErrNoRows = errors.New("record not found")

type Repository struct {
	User           UserRepository
	Session        SessionRepository
	Listing        ListingRepository
	Amenity        AmenityRepository
	ListingAmenity ListingAmenityRepository
	Booking        BookingRepository
	Review         ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Session:        NewSessionRepository(db, log),
		Listing:        NewListingRepository(db, log),
		Amenity:        NewAmenityRepository(db, log),
		ListingAmenity: NewListingAmenityRepository(db, log),
		Booking:        NewBookingRepository(db, log),
		Review:         NewReviewRepository(db, log),
	}
}
