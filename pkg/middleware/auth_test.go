package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSessions struct {
	sessions map[string]*entity.Session
}

func (s *stubSessions) Create(context.Context, *entity.Session) error { return nil }

func (s *stubSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	return s.sessions[token], nil
}

func (s *stubSessions) Revoke(context.Context, string) error { return nil }
func (s *stubSessions) CleanExpiredSessions(context.Context) error { return nil }

type stubUsers struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUsers) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) FindByUsername(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) Update(context.Context, *entity.User) error { return nil }

func TestAuthenticate(t *testing.T) {
	active := &entity.User{Base: entity.Base{ID: uuid.New()}, IsStaff: true, IsActive: true}
	inactive := &entity.User{Base: entity.Base{ID: uuid.New()}}
	activeToken, inactiveToken := uuid.NewString(), uuid.NewString()

	sessions := &stubSessions{sessions: map[string]*entity.Session{
		activeToken:   {UserID: active.ID, ExpiresAt: time.Now().Add(time.Hour)},
		inactiveToken: {UserID: inactive.ID, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	users := &stubUsers{users: map[uuid.UUID]*entity.User{active.ID: active, inactive.ID: inactive}}

	var seen utils.Actor
	var seenToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.ActorFromContext(r.Context())
		seenToken, _ = utils.GetTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	run := func(required bool, header string) int {
		seen, seenToken = utils.Actor{}, ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		Authenticate(sessions, users, zap.NewNop(), required)(next).ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("required without token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(true, ""))
	})

	t.Run("optional without token is anonymous", func(t *testing.T) {
		require.Equal(t, http.StatusOK, run(false, ""))
		assert.False(t, seen.Authenticated())
	})

	t.Run("valid token sets the actor", func(t *testing.T) {
		require.Equal(t, http.StatusOK, run(true, "Bearer "+activeToken))
		assert.Equal(t, utils.Actor{UserID: active.ID, IsStaff: true}, seen)
		assert.Equal(t, activeToken, seenToken)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, run(true, "bearer "+activeToken))
	})

	t.Run("presented but invalid token is rejected even when optional", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(false, "Bearer "+uuid.NewString()))
		assert.Equal(t, http.StatusUnauthorized, run(false, "Token "+activeToken))
	})

	t.Run("inactive user", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(true, "Bearer "+inactiveToken))
	})
}
