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
	"go.uber.org/zap"
)

const TopRatedLimit = 10

type ReviewService interface {
	// Public endpoints
	List(ctx context.Context, q *request.ReviewQuery) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.ReviewResponse, error)
	TopRated(ctx context.Context) ([]response.ReviewResponse, error)

	Create(ctx context.Context, actor utils.Actor, req *request.ReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, actor utils.Actor, id uuid.UUID) error
	MyReviews(ctx context.Context, actor utils.Actor, q *request.ReviewQuery) ([]response.ReviewResponse, error)
}

type reviewService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewReviewService(repo *repository.Repository, clock Clock, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) List(ctx context.Context, q *request.ReviewQuery) (*response.PaginatedResponse[response.ReviewResponse], error) {
	filter := repository.ReviewFilter{
		UserID:    q.UserID,
		ListingID: q.ListingID,
		Rating:    q.Rating,
		Ordering:  toOrdering(q.Ordering),
		Page:      toPage(q.PaginatedRequest),
	}

	reviews, err := s.repo.Review.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), pageNumber(q.PaginatedRequest), filter.Limit, total), nil
}

func (s *reviewService) Get(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || !reviewVisible(review, actor) {
		return nil, ErrNotFound
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

// TopRated returns the newest reviews carrying the maximum rating.
func (s *reviewService) TopRated(ctx context.Context) ([]response.ReviewResponse, error) {
	rating := entity.MaxRating
	reviews, err := s.repo.Review.FindAll(ctx, repository.ReviewFilter{
		Rating: &rating,
		Page:   repository.Page{Limit: TopRatedLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("list top rated reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) Create(ctx context.Context, actor utils.Actor, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	listingID, err := s.resolveListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ListingID: listingID,
		// the author is always the caller
		UserID:  actor.UserID,
		Rating:  req.Rating,
		Comment: normalizeComment(req.Comment),
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, fieldError("listing", "Listing does not exist")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", review.UserID.String()),
		zap.String("listing_id", review.ListingID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update review validation failed", zap.Error(err))
		return nil, err
	}

	review, err := s.findMutable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.ListingID != nil {
		if review.ListingID, err = s.resolveListing(ctx, *req.ListingID); err != nil {
			return nil, err
		}
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = normalizeComment(req.Comment)
	}
	review.UpdatedAt = s.clock.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", review.ID.String()),
		zap.String("updated_by", actor.UserID.String()),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	if _, err := s.findMutable(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", id.String()),
		zap.String("deleted_by", actor.UserID.String()),
	)
	return nil
}

func (s *reviewService) MyReviews(ctx context.Context, actor utils.Actor, q *request.ReviewQuery) ([]response.ReviewResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindAll(ctx, repository.ReviewFilter{
		UserID:   &actor.UserID,
		Ordering: toOrdering(q.Ordering),
	})
	if err != nil {
		return nil, fmt.Errorf("list my reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

// ==================== HELPER METHODS ====================

// findMutable hides reviews the caller may not change behind ErrNotFound.
func (s *reviewService) findMutable(ctx context.Context, actor utils.Actor, id uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || !reviewMutable(review, actor) {
		return nil, ErrNotFound
	}
	return review, nil
}

func (s *reviewService) resolveListing(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fieldError("listing", "Must be a valid UUID")
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return uuid.Nil, fieldError("listing", "Listing does not exist")
	}
	return id, nil
}

// normalizeComment stores an empty comment as NULL.
func normalizeComment(comment *string) *string {
	if comment == nil || *comment == "" {
		return nil
	}
	c := *comment
	return &c
}
