package wire

import (
	"context"
	"net/http"
	"time"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Options carries the infrastructure the router is built on.
type Options struct {
	DB             Pinger
	RateLimitStore limiter.Store
}

// Wiring builds services, handlers and the router
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, opts Options) (*App, error) {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router, err := setupRouter(handler, repo, config, logger, opts)
	if err != nil {
		return nil, err
	}

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	opts Options,
) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.AllowedOrigins))

	if opts.RateLimitStore != nil {
		rate, err := middleware.ParseRate(config.HTTP.RateLimit)
		if err != nil {
			return nil, err
		}
		r.Use(middleware.RateLimit(opts.RateLimitStore, rate, logger))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	// Apply routes
	wireAuth(r, handler.Auth, handler.User, repo, logger)
	wireListing(r, handler.Listing, repo, logger)
	wireAmenity(r, handler.Amenity)
	wireBooking(r, handler.Booking, repo, logger)
	wireReview(r, handler.Review, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if opts.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.DB.Ping(ctx); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unavailable", nil, nil)
				return
			}
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r, nil
}

func requireAuth(repo *repository.Repository, logger *zap.Logger) func(http.Handler) http.Handler {
	return middleware.Authenticate(repo.Session, repo.User, logger, true)
}

func optionalAuth(repo *repository.Repository, logger *zap.Logger) func(http.Handler) http.Handler {
	return middleware.Authenticate(repo.Session, repo.User, logger, false)
}
