package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

const rateLimitPrefix = "travel_booking:rate_limit"

// ParseRate accepts "<limit>-<n><unit>" with unit s, m or h, e.g. "100-1m".
func ParseRate(rateStr string) (limiter.Rate, error) {
	limitStr, periodStr, ok := strings.Cut(strings.TrimSpace(rateStr), "-")
	if !ok {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", limitStr)
	}

	if len(periodStr) < 2 {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", periodStr)
	}

	var unit time.Duration
	switch periodStr[len(periodStr)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", periodStr)
	}

	n, err := strconv.Atoi(periodStr[:len(periodStr)-1])
	if err != nil || n <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", periodStr)
	}

	return limiter.Rate{
		Period: time.Duration(n) * unit,
		Limit:  limit,
	}, nil
}

// NewRateLimitStore returns a redis store when redisURL is set, otherwise an in-memory one.
func NewRateLimitStore(redisURL string, period time.Duration) (limiter.Store, error) {
	if redisURL == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: period,
		}), nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	store, err := redisstore.NewStoreWithOptions(redis.NewClient(opt), limiter.StoreOptions{
		Prefix:   rateLimitPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis rate limit store: %w", err)
	}
	return store, nil
}

// RateLimit limits requests per client IP. Mount after chi's RealIP.
func RateLimit(store limiter.Store, rate limiter.Rate, logger *zap.Logger) func(http.Handler) http.Handler {
	instance := limiter.New(store, rate)

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(clientIP),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("Rate limit reached",
				zap.String("ip", clientIP(r)),
				zap.String("path", r.URL.Path))
			utils.ResponseTooManyRequests(w, "Too many requests")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("Rate limiter failed", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
		}),
	)

	return mw.Handler
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
