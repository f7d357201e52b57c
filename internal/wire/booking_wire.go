package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(requireAuth(repo, log))

		r.Get("/", bookingHandler.List)
		r.Post("/", bookingHandler.Create)

		// static paths are matched before {id}
		r.Get("/my_bookings", bookingHandler.MyBookings)
		r.Get("/upcoming", bookingHandler.Upcoming)

		r.Get("/{id}", bookingHandler.Get)
		r.Put("/{id}", bookingHandler.Replace)
		r.Patch("/{id}", bookingHandler.Patch)
		r.Delete("/{id}", bookingHandler.Delete)
	})
}
