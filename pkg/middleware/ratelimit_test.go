package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("100-1m")
	require.NoError(t, err)
	assert.Equal(t, limiter.Rate{Period: time.Minute, Limit: 100}, rate)

	rate, err = ParseRate("5-30s")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, rate.Period)

	for _, bad := range []string{"", "100", "x-1m", "100-m", "100-1d", "0-1h", "10-0s"} {
		_, err := ParseRate(bad)
		assert.Error(t, err, bad)
	}
}

func TestRateLimit(t *testing.T) {
	store, err := NewRateLimitStore("", time.Minute)
	require.NoError(t, err)

	handler := RateLimit(store, limiter.Rate{Period: time.Minute, Limit: 2}, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
	)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// other clients have their own budget
	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRateLimitStore_BadRedisURL(t *testing.T) {
	_, err := NewRateLimitStore("not a url", time.Minute)
	assert.Error(t, err)
}
