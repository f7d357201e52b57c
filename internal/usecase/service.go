package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Listing ListingService
	Amenity AmenityService
	Booking BookingService
	Review  ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	clock := SystemClock(config.App.Location())

	return &Service{
		Auth:    NewAuthService(repo, config, clock, log),
		User:    NewUserService(repo.User, log),
		Listing: NewListingService(repo, clock, log),
		Amenity: NewAmenityService(repo.Amenity, log),
		Booking: NewBookingService(repo, clock, log),
		Review:  NewReviewService(repo, clock, log),
	}
}
