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

type AmenityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Amenity, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Amenity, error)
	FindAll(ctx context.Context, page Page) ([]*entity.Amenity, error)
	CountAll(ctx context.Context) (int64, error)
	FindByListingIDs(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID][]*entity.Amenity, error)
}

type amenityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAmenityRepository(db database.PgxIface, log *zap.Logger) AmenityRepository {
	return &amenityRepository{
		db:  db,
		log: log.With(zap.String("repository", "amenity")),
	}
}

func (r *amenityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Amenity, error) {
	query := `SELECT id, name, description, created_at FROM amenities WHERE id = $1`

	var amenity entity.Amenity
	err := r.db.QueryRow(ctx, query, id).Scan(
		&amenity.ID,
		&amenity.Name,
		&amenity.Description,
		&amenity.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find amenity by ID",
			zap.Error(err),
			zap.String("amenity_id", id.String()),
		)
		return nil, fmt.Errorf("find amenity by id: %w", err)
	}

	return &amenity, nil
}

func (r *amenityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Amenity, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, description, created_at
		FROM amenities
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find amenities by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find amenities by ids: %w", err)
	}
	defer rows.Close()

	return collectAmenities(rows)
}

func (r *amenityRepository) FindAll(ctx context.Context, page Page) ([]*entity.Amenity, error) {
	w := &whereClause{}
	query := `SELECT id, name, description, created_at FROM amenities ORDER BY name ASC, id ASC` + w.limit(page)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to find amenities",
			zap.Error(err),
			zap.Int("limit", page.Limit),
			zap.Int("offset", page.Offset),
		)
		return nil, fmt.Errorf("find amenities: %w", err)
	}
	defer rows.Close()

	return collectAmenities(rows)
}

func (r *amenityRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM amenities`).Scan(&total); err != nil {
		r.log.Error("Failed to count amenities", zap.Error(err))
		return 0, fmt.Errorf("count amenities: %w", err)
	}
	return total, nil
}

// FindByListingIDs loads the amenities of several listings in one round trip.
func (r *amenityRepository) FindByListingIDs(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID][]*entity.Amenity, error) {
	result := make(map[uuid.UUID][]*entity.Amenity, len(listingIDs))
	if len(listingIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT la.listing_id, a.id, a.name, a.description, a.created_at
		FROM amenities a
		INNER JOIN listing_amenities la ON a.id = la.amenity_id
		WHERE la.listing_id = ANY($1)
		ORDER BY a.name
	`

	rows, err := r.db.Query(ctx, query, listingIDs)
	if err != nil {
		r.log.Error("Failed to find amenities by listing IDs", zap.Error(err))
		return nil, fmt.Errorf("find amenities by listing ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var listingID uuid.UUID
		var amenity entity.Amenity
		if err := rows.Scan(
			&listingID,
			&amenity.ID,
			&amenity.Name,
			&amenity.Description,
			&amenity.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan listing amenity row", zap.Error(err))
			return nil, fmt.Errorf("scan listing amenity row: %w", err)
		}
		result[listingID] = append(result[listingID], &amenity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listing amenity rows: %w", err)
	}

	return result, nil
}

func collectAmenities(rows pgx.Rows) ([]*entity.Amenity, error) {
	var amenities []*entity.Amenity
	for rows.Next() {
		var amenity entity.Amenity
		if err := rows.Scan(
			&amenity.ID,
			&amenity.Name,
			&amenity.Description,
			&amenity.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan amenity row: %w", err)
		}
		amenities = append(amenities, &amenity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate amenity rows: %w", err)
	}

	return amenities, nil
}
