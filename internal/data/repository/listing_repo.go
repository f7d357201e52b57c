package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ListingFilter is the whitelisted set of listing predicates.
type ListingFilter struct {
	ListingType *string
	IsAvailable *bool
	Location    *string
	MaxGuests   *int
	Bedrooms    *int
	Search      string
	Ordering    []OrderBy
	Page
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Listing, error)
	FindAll(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)
	Count(ctx context.Context, filter ListingFilter) (int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const listingColumns = `id, slug, title, description, location, address, listing_type,
		       price_per_night, max_guests, bedrooms, is_available, created_at, updated_at`

var listingOrderColumns = map[string]string{
	"price_per_night": "price_per_night",
	"created_at":      "created_at",
	"bedrooms":        "bedrooms",
	"max_guests":      "max_guests",
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (id, slug, title, description, location, address, listing_type,
		                      price_per_night, max_guests, bedrooms, is_available,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.Slug,
		listing.Title,
		listing.Description,
		listing.Location,
		listing.Address,
		listing.ListingType,
		listing.PricePerNight,
		listing.MaxGuests,
		listing.Bedrooms,
		listing.IsAvailable,
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("slug", listing.Slug),
		)
		return fmt.Errorf("create listing %s: %w", listing.Slug, err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id.String(), err)
	}

	return listing, nil
}

func (r *listingRepository) FindBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE slug = $1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find listing by slug %s: %w", slug, err)
	}

	return listing, nil
}

func (r *listingRepository) FindAll(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error) {
	query, args := listingSelectQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find listings",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	r.log.Debug("Listings found", zap.Int("count", len(listings)))

	return listings, nil
}

func (r *listingRepository) Count(ctx context.Context, filter ListingFilter) (int64, error) {
	query, args := listingCountQuery(filter)

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count listings", zap.Error(err))
		return 0, fmt.Errorf("count listings: %w", err)
	}

	return total, nil
}

func (r *listingRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM listings WHERE slug = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		r.log.Error("Failed to check listing slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}

	return exists, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, description = $3, location = $4, address = $5, listing_type = $6,
		    price_per_night = $7, max_guests = $8, bedrooms = $9, is_available = $10,
		    updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Location,
		listing.Address,
		listing.ListingType,
		listing.PricePerNight,
		listing.MaxGuests,
		listing.Bedrooms,
		listing.IsAvailable,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update listing",
			zap.Error(err),
			zap.String("listing_id", listing.ID.String()),
		)
		return fmt.Errorf("update listing %s: %w", listing.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM listings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete listing",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return fmt.Errorf("delete listing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRows
	}

	r.log.Info("Listing deleted", zap.String("listing_id", id.String()))
	return nil
}

func listingWhere(f ListingFilter) *whereClause {
	w := &whereClause{}

	if f.ListingType != nil {
		w.add("listing_type = $%d", *f.ListingType)
	}
	if f.IsAvailable != nil {
		w.add("is_available = $%d", *f.IsAvailable)
	}
	if f.Location != nil {
		w.add("location = $%d", *f.Location)
	}
	if f.MaxGuests != nil {
		w.add("max_guests = $%d", *f.MaxGuests)
	}
	if f.Bedrooms != nil {
		w.add("bedrooms = $%d", *f.Bedrooms)
	}
	if f.Search != "" {
		w.add(`(title ILIKE $%[1]d OR description ILIKE $%[1]d OR location ILIKE $%[1]d OR address ILIKE $%[1]d)`,
			likePattern(f.Search))
	}

	return w
}

func listingSelectQuery(f ListingFilter) (string, []any) {
	w := listingWhere(f)
	query := `SELECT ` + listingColumns + ` FROM listings` + w.String() +
		orderClause(f.Ordering, listingOrderColumns, "created_at DESC")
	query += w.limit(f.Page)
	return query, w.args
}

func listingCountQuery(f ListingFilter) (string, []any) {
	w := listingWhere(f)
	return `SELECT COUNT(*) FROM listings` + w.String(), w.args
}

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var listing entity.Listing
	err := row.Scan(
		&listing.ID,
		&listing.Slug,
		&listing.Title,
		&listing.Description,
		&listing.Location,
		&listing.Address,
		&listing.ListingType,
		&listing.PricePerNight,
		&listing.MaxGuests,
		&listing.Bedrooms,
		&listing.IsAvailable,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
