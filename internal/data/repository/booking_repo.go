package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows a booking query. UserID carries the visibility scope for non-staff callers.
type BookingFilter struct {
	UserID       *uuid.UUID
	ListingID    *uuid.UUID
	Status       *string
	CheckInDate  *time.Time
	CheckOutDate *time.Time

	// CheckInFrom and Statuses back the upcoming query.
	CheckInFrom *time.Time
	Statuses    []string

	Ordering []OrderBy
	Page
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const bookingColumns = `id, listing_id, user_id, check_in_date, check_out_date, status,
		       total_price, created_at, updated_at`

var bookingOrderColumns = map[string]string{
	"created_at":    "created_at",
	"check_in_date": "check_in_date",
	"total_price":   "total_price",
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, listing_id, user_id, check_in_date, check_out_date,
		                      status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ListingID,
		booking.UserID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Status,
		booking.TotalPrice,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("listing_id", booking.ListingID.String()),
		)
		return fmt.Errorf("create booking for listing %s by user %s: %w",
			booking.ListingID.String(), booking.UserID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	query, args := bookingSelectQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	query, args := bookingCountQuery(filter)

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET listing_id = $2, check_in_date = $3, check_out_date = $4, status = $5,
		    total_price = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ListingID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Status,
		booking.TotalPrice,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRows
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func bookingWhere(f BookingFilter) *whereClause {
	w := &whereClause{}

	if f.UserID != nil {
		w.add("user_id = $%d", *f.UserID)
	}
	if f.ListingID != nil {
		w.add("listing_id = $%d", *f.ListingID)
	}
	if f.Status != nil {
		w.add("status = $%d", *f.Status)
	}
	if f.CheckInDate != nil {
		w.add("check_in_date = $%d", *f.CheckInDate)
	}
	if f.CheckOutDate != nil {
		w.add("check_out_date = $%d", *f.CheckOutDate)
	}
	if f.CheckInFrom != nil {
		w.add("check_in_date >= $%d", *f.CheckInFrom)
	}
	if len(f.Statuses) > 0 {
		w.add("status = ANY($%d)", f.Statuses)
	}

	return w
}

func bookingSelectQuery(f BookingFilter) (string, []any) {
	w := bookingWhere(f)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + w.String() +
		orderClause(f.Ordering, bookingOrderColumns, "created_at DESC")
	query += w.limit(f.Page)
	return query, w.args
}

func bookingCountQuery(f BookingFilter) (string, []any) {
	w := bookingWhere(f)
	return `SELECT COUNT(*) FROM bookings` + w.String(), w.args
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.UserID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.Status,
		&booking.TotalPrice,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
