package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAmenity exposes the read-only amenity catalogue
func wireAmenity(r chi.Router, amenityHandler *adaptor.AmenityHandler) {
	r.Get("/api/amenities", amenityHandler.List)
	r.Get("/api/amenities/{id}", amenityHandler.Get)
}
