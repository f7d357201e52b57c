package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/database"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	List(ctx context.Context, actor utils.Actor, q *request.BookingQuery) (*response.PaginatedResponse[response.BookingResponse], error)
	Get(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.BookingResponse, error)
	Create(ctx context.Context, actor utils.Actor, req *request.BookingRequest) (*response.BookingResponse, error)
	Update(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.BookingUpdateRequest) (*response.BookingResponse, error)
	Delete(ctx context.Context, actor utils.Actor, id uuid.UUID) error

	MyBookings(ctx context.Context, actor utils.Actor, q *request.BookingQuery) ([]response.BookingResponse, error)
	Upcoming(ctx context.Context, actor utils.Actor) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, clock Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) List(ctx context.Context, actor utils.Actor, q *request.BookingQuery) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	filter := bookingFilter(q)
	if !actor.IsStaff {
		// non-staff callers only ever see their own bookings
		filter.UserID = &actor.UserID
		if q.UserID != nil && *q.UserID != actor.UserID {
			return response.NewPaginatedResponse([]response.BookingResponse{}, pageNumber(q.PaginatedRequest), q.Limit(), 0), nil
		}
	}
	filter.Page = toPage(q.PaginatedRequest)

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), pageNumber(q.PaginatedRequest), filter.Limit, total), nil
}

func (s *bookingService) Get(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.BookingResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	booking, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Create(ctx context.Context, actor utils.Actor, req *request.BookingRequest) (*response.BookingResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	status := entity.BookingStatusPending
	if req.Status != nil {
		status = entity.BookingStatus(*req.Status)
	}

	now := s.clock.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		// the owner is always the caller
		UserID: actor.UserID,
		Status: status,
	}

	if err := s.apply(ctx, booking, &request.BookingUpdateRequest{
		ListingID:    &req.ListingID,
		CheckInDate:  &req.CheckInDate,
		CheckOutDate: &req.CheckOutDate,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// the listing can disappear between the lookup and the insert
		if database.IsForeignKeyViolation(err) {
			return nil, fieldError("listing", "Listing does not exist")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", booking.UserID.String()),
		zap.String("listing_id", booking.ListingID.String()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Update(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.BookingUpdateRequest) (*response.BookingResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update booking validation failed", zap.Error(err))
		return nil, err
	}

	booking, err := s.findMutable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, booking, req); err != nil {
		return nil, err
	}
	if req.Status != nil {
		booking.Status = entity.BookingStatus(*req.Status)
	}
	booking.UpdatedAt = s.clock.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("updated_by", actor.UserID.String()),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Delete(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	if _, err := s.findMutable(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", id.String()),
		zap.String("deleted_by", actor.UserID.String()),
	)
	return nil
}

// MyBookings is always self-scoped, staff included.
func (s *bookingService) MyBookings(ctx context.Context, actor utils.Actor, q *request.BookingQuery) ([]response.BookingResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{
		UserID:   &actor.UserID,
		Ordering: toOrdering(q.Ordering),
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list my bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

// Upcoming returns the caller's pending or confirmed bookings from today onwards.
func (s *bookingService) Upcoming(ctx context.Context, actor utils.Actor) ([]response.BookingResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	today := s.clock.Today()
	statuses := make([]string, len(entity.UpcomingStatuses))
	for i, st := range entity.UpcomingStatuses {
		statuses[i] = string(st)
	}

	filter := repository.BookingFilter{
		UserID:      &actor.UserID,
		CheckInFrom: &today,
		Statuses:    statuses,
		Ordering:    []repository.OrderBy{{Field: "check_in_date"}},
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}

	s.log.Debug("Upcoming bookings",
		zap.String("user_id", actor.UserID.String()),
		zap.Time("from", today),
		zap.Int("count", len(bookings)),
	)

	return response.BookingsToResponse(bookings), nil
}

// ==================== HELPER METHODS ====================

func bookingFilter(q *request.BookingQuery) repository.BookingFilter {
	return repository.BookingFilter{
		UserID:       q.UserID,
		ListingID:    q.ListingID,
		Status:       q.Status,
		CheckInDate:  q.CheckInDate,
		CheckOutDate: q.CheckOutDate,
		Ordering:     toOrdering(q.Ordering),
	}
}

func (s *bookingService) findVisible(ctx context.Context, actor utils.Actor, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil || !bookingVisible(booking, actor) {
		return nil, ErrNotFound
	}
	return booking, nil
}

func (s *bookingService) findMutable(ctx context.Context, actor utils.Actor, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !bookingMutable(booking, actor) {
		return nil, ErrNotFound
	}
	return booking, nil
}

// apply sets listing and dates from req and reprices the booking when either changed.
func (s *bookingService) apply(ctx context.Context, booking *entity.Booking, req *request.BookingUpdateRequest) error {
	listingID := booking.ListingID
	if req.ListingID != nil {
		id, err := uuid.Parse(*req.ListingID)
		if err != nil {
			return fieldError("listing", "Must be a valid UUID")
		}
		listingID = id
	}

	checkIn, checkOut := booking.CheckInDate, booking.CheckOutDate
	var err error
	if req.CheckInDate != nil {
		if checkIn, err = parseDate("check_in_date", *req.CheckInDate); err != nil {
			return err
		}
	}
	if req.CheckOutDate != nil {
		if checkOut, err = parseDate("check_out_date", *req.CheckOutDate); err != nil {
			return err
		}
	}
	// the stored price stands unless the stay itself changes
	if listingID == booking.ListingID && checkIn.Equal(booking.CheckInDate) && checkOut.Equal(booking.CheckOutDate) {
		return nil
	}
	if !checkOut.After(checkIn) {
		return fieldError("check_out_date", "Must be after check_in_date")
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return fieldError("listing", "Listing does not exist")
	}
	if listingID != booking.ListingID && !listing.IsAvailable {
		return fieldError("listing", "Listing is not available")
	}

	booking.ListingID = listingID
	booking.CheckInDate = checkIn
	booking.CheckOutDate = checkOut
	booking.TotalPrice = totalPrice(listing.PricePerNight, booking.Nights())
	return nil
}

func totalPrice(pricePerNight float64, nights int) float64 {
	return math.Round(pricePerNight*float64(nights)*100) / 100
}
