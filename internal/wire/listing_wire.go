package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireListing(
	r chi.Router,
	listingHandler *adaptor.ListingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/listings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", listingHandler.List)
		r.Get("/featured", listingHandler.Featured)
		r.Get("/{slug}", listingHandler.Get)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(requireAuth(repo, log))

			r.Post("/", listingHandler.Create)
			r.Put("/{slug}", listingHandler.Replace)
			r.Patch("/{slug}", listingHandler.Patch)
			r.Delete("/{slug}", listingHandler.Delete)
		})
	})
}
