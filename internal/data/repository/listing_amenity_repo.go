package repository

import (
	"context"
	"fmt"
	"time"

	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ListingAmenityRepository interface {
	// Replace swaps the amenity set of a listing atomically.
	Replace(ctx context.Context, listingID uuid.UUID, amenityIDs []uuid.UUID) error
}

type listingAmenityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingAmenityRepository(db database.PgxIface, log *zap.Logger) ListingAmenityRepository {
	return &listingAmenityRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing_amenity")),
	}
}

func (r *listingAmenityRepository) Replace(ctx context.Context, listingID uuid.UUID, amenityIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin listing amenities tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM listing_amenities WHERE listing_id = $1`, listingID); err != nil {
		r.log.Error("Failed to clear listing amenities",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return fmt.Errorf("clear listing amenities: %w", err)
	}

	if len(amenityIDs) > 0 {
		now := time.Now()
		rows := make([][]any, len(amenityIDs))
		for i, amenityID := range amenityIDs {
			rows[i] = []any{listingID, amenityID, now}
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"listing_amenities"},
			[]string{"listing_id", "amenity_id", "created_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			r.log.Error("Failed to insert listing amenities",
				zap.Error(err),
				zap.String("listing_id", listingID.String()),
				zap.Int("count", len(amenityIDs)),
			)
			return fmt.Errorf("insert listing amenities: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit listing amenities: %w", err)
	}

	return nil
}
