package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID           string               `json:"id"`
	ListingID    string               `json:"listing"`
	UserID       string               `json:"user"`
	CheckInDate  string               `json:"check_in_date"`
	CheckOutDate string               `json:"check_out_date"`
	Nights       int                  `json:"nights"`
	Status       entity.BookingStatus `json:"status"`
	TotalPrice   float64              `json:"total_price"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           booking.ID.String(),
		ListingID:    booking.ListingID.String(),
		UserID:       booking.UserID.String(),
		CheckInDate:  booking.CheckInDate.Format(dateLayout),
		CheckOutDate: booking.CheckOutDate.Format(dateLayout),
		Nights:       booking.Nights(),
		Status:       booking.Status,
		TotalPrice:   booking.TotalPrice,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, BookingToResponse(b))
	}
	return result
}
