package usecase

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/database"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const (
	FeaturedLimit   = 5
	maxSlugAttempts = 50
)

type ListingService interface {
	List(ctx context.Context, q *request.ListingQuery) (*response.PaginatedResponse[response.ListingResponse], error)
	Featured(ctx context.Context, q *request.ListingQuery) ([]response.ListingResponse, error)
	Get(ctx context.Context, slug string) (*response.ListingResponse, error)
	Create(ctx context.Context, actor utils.Actor, req *request.ListingRequest) (*response.ListingResponse, error)
	Update(ctx context.Context, actor utils.Actor, slug string, req *request.ListingUpdateRequest) (*response.ListingResponse, error)
	Delete(ctx context.Context, actor utils.Actor, slug string) error
}

type listingService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewListingService(repo *repository.Repository, clock Clock, log *zap.Logger) ListingService {
	return &listingService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) List(ctx context.Context, q *request.ListingQuery) (*response.PaginatedResponse[response.ListingResponse], error) {
	filter := listingFilter(q)
	filter.Page = toPage(q.PaginatedRequest)

	listings, err := s.repo.Listing.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	total, err := s.repo.Listing.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	data, err := s.withAmenities(ctx, listings)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(data, pageNumber(q.PaginatedRequest), filter.Limit, total), nil
}

// Featured honors the list filters but only ever returns available listings.
func (s *listingService) Featured(ctx context.Context, q *request.ListingQuery) ([]response.ListingResponse, error) {
	filter := listingFilter(q)
	available := true
	filter.IsAvailable = &available
	filter.Page = repository.Page{Limit: FeaturedLimit}

	listings, err := s.repo.Listing.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list featured listings: %w", err)
	}

	return s.withAmenities(ctx, listings)
}

func (s *listingService) Get(ctx context.Context, slug string) (*response.ListingResponse, error) {
	listing, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, listing)
}

func (s *listingService) Create(ctx context.Context, actor utils.Actor, req *request.ListingRequest) (*response.ListingResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create listing validation failed", zap.Error(err))
		return nil, err
	}

	amenityIDs, err := s.resolveAmenities(ctx, req.AmenityIDs)
	if err != nil {
		return nil, err
	}

	listingSlug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	now := s.clock.Now()
	listing := &entity.Listing{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Slug:          listingSlug,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Address:       req.Address,
		ListingType:   entity.ListingType(req.ListingType),
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		IsAvailable:   available,
	}

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("listing %s: %w", listingSlug, ErrConflict)
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}

	if len(amenityIDs) > 0 {
		if err := s.repo.ListingAmenity.Replace(ctx, listing.ID, amenityIDs); err != nil {
			// a listing without its requested amenities must not stay behind
			if delErr := s.repo.Listing.Delete(ctx, listing.ID); delErr != nil {
				s.log.Error("Failed to remove listing after amenity error",
					zap.Error(delErr),
					zap.String("listing_id", listing.ID.String()),
				)
			}
			return nil, fmt.Errorf("attach amenities: %w", err)
		}
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("slug", listing.Slug),
		zap.String("created_by", actor.UserID.String()),
	)

	return s.buildResponse(ctx, listing)
}

func (s *listingService) Update(ctx context.Context, actor utils.Actor, slug string, req *request.ListingUpdateRequest) (*response.ListingResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update listing validation failed", zap.Error(err))
		return nil, err
	}

	listing, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var amenityIDs []uuid.UUID
	if req.AmenityIDs != nil {
		if amenityIDs, err = s.resolveAmenities(ctx, req.AmenityIDs); err != nil {
			return nil, err
		}
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.Address != nil {
		listing.Address = *req.Address
	}
	if req.ListingType != nil {
		listing.ListingType = entity.ListingType(*req.ListingType)
	}
	if req.PricePerNight != nil {
		listing.PricePerNight = *req.PricePerNight
	}
	if req.MaxGuests != nil {
		listing.MaxGuests = *req.MaxGuests
	}
	if req.Bedrooms != nil {
		listing.Bedrooms = *req.Bedrooms
	}
	if req.IsAvailable != nil {
		listing.IsAvailable = *req.IsAvailable
	}
	listing.UpdatedAt = s.clock.Now()

	if err := s.repo.Listing.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}

	if req.AmenityIDs != nil {
		if err := s.repo.ListingAmenity.Replace(ctx, listing.ID, amenityIDs); err != nil {
			return nil, fmt.Errorf("replace amenities: %w", err)
		}
	}

	s.log.Info("Listing updated",
		zap.String("listing_id", listing.ID.String()),
		zap.String("updated_by", actor.UserID.String()),
	)

	return s.buildResponse(ctx, listing)
}

func (s *listingService) Delete(ctx context.Context, actor utils.Actor, slug string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	listing, err := s.findBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.repo.Listing.Delete(ctx, listing.ID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete listing: %w", err)
	}

	s.log.Info("Listing deleted",
		zap.String("slug", slug),
		zap.String("deleted_by", actor.UserID.String()),
	)
	return nil
}

// ==================== HELPER METHODS ====================

func listingFilter(q *request.ListingQuery) repository.ListingFilter {
	return repository.ListingFilter{
		ListingType: q.ListingType,
		IsAvailable: q.IsAvailable,
		Location:    q.Location,
		MaxGuests:   q.MaxGuests,
		Bedrooms:    q.Bedrooms,
		Search:      q.Search,
		Ordering:    toOrdering(q.Ordering),
	}
}

func (s *listingService) findBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	listing, err := s.repo.Listing.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}

// uniqueSlug derives a slug from title, appending -2, -3, ... on collision.
func (s *listingService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "listing"
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := s.repo.Listing.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	// give up on counters, a short random suffix is unique enough
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

// resolveAmenities dedupes ids and checks every one of them exists.
func (s *listingService) resolveAmenities(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fieldError("amenity_ids", "Must contain valid UUIDs")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ids, nil
	}

	found, err := s.repo.Amenity.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find amenities: %w", err)
	}
	if len(found) != len(ids) {
		return nil, fieldError("amenity_ids", "Unknown amenity")
	}
	return ids, nil
}

func (s *listingService) withAmenities(ctx context.Context, listings []*entity.Listing) ([]response.ListingResponse, error) {
	ids := make([]uuid.UUID, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}

	amenities, err := s.repo.Amenity.FindByListingIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load listing amenities: %w", err)
	}

	result := make([]response.ListingResponse, 0, len(listings))
	for _, l := range listings {
		result = append(result, response.ListingToResponse(l, amenities[l.ID]))
	}
	return result, nil
}

func (s *listingService) buildResponse(ctx context.Context, listing *entity.Listing) (*response.ListingResponse, error) {
	data, err := s.withAmenities(ctx, []*entity.Listing{listing})
	if err != nil {
		return nil, err
	}
	return &data[0], nil
}
