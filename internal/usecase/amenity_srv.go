package usecase

import (
	"context"
	"fmt"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AmenityService is read-only; amenities are seeded with the schema.
type AmenityService interface {
	List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.AmenityResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.AmenityResponse, error)
}

type amenityService struct {
	amenityRepo repository.AmenityRepository
	log         *zap.Logger
}

func NewAmenityService(amenityRepo repository.AmenityRepository, log *zap.Logger) AmenityService {
	return &amenityService{
		amenityRepo: amenityRepo,
		log:         log.With(zap.String("service", "amenity")),
	}
}

func (s *amenityService) List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.AmenityResponse], error) {
	page := toPage(req)

	amenities, err := s.amenityRepo.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list amenities: %w", err)
	}

	total, err := s.amenityRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count amenities: %w", err)
	}

	return response.NewPaginatedResponse(response.AmenitiesToResponse(amenities), pageNumber(req), page.Limit, total), nil
}

func (s *amenityService) Get(ctx context.Context, id uuid.UUID) (*response.AmenityResponse, error) {
	amenity, err := s.amenityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get amenity: %w", err)
	}
	if amenity == nil {
		return nil, ErrNotFound
	}

	resp := response.AmenityToResponse(amenity)
	return &resp, nil
}
