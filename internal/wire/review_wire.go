package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/reviews", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// Optional auth: a presented token still has to be valid
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth(repo, log))

			r.Get("/", reviewHandler.List)
			r.Get("/top_rated", reviewHandler.TopRated)
			r.Get("/{id}", reviewHandler.Get)
		})

		// ==================== PROTECTED ROUTES (require auth) ====================
		r.Group(func(r chi.Router) {
			r.Use(requireAuth(repo, log))

			r.Post("/", reviewHandler.Create)
			r.Get("/my_reviews", reviewHandler.MyReviews)
			r.Put("/{id}", reviewHandler.Replace)
			r.Patch("/{id}", reviewHandler.Patch)
			r.Delete("/{id}", reviewHandler.Delete)
		})
	})
}
