package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// UpcomingStatuses are the statuses a booking can have and still count as upcoming.
var UpcomingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

type Booking struct {
	Base
	ListingID    uuid.UUID     `db:"listing_id"`
	UserID       uuid.UUID     `db:"user_id"`
	CheckInDate  time.Time     `db:"check_in_date"`
	CheckOutDate time.Time     `db:"check_out_date"`
	Status       BookingStatus `db:"status"`
	TotalPrice   float64       `db:"total_price"`
}

// Nights is the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(math.Round(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24))
}
