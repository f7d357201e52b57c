package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
	TokenKey contextKey = "token"
)

// Actor is the caller identity resolved for one request. The zero value is an anonymous caller.
type Actor struct {
	UserID  uuid.UUID
	IsStaff bool
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

// Owns reports whether the actor is the given user.
func (a Actor) Owns(userID uuid.UUID) bool {
	return a.Authenticated() && a.UserID == userID
}

func SetActorContext(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFromContext returns the caller, or an anonymous Actor when none was set.
func ActorFromContext(ctx context.Context) Actor {
	actor, ok := ctx.Value(ActorKey).(Actor)
	if !ok {
		return Actor{}
	}
	return actor
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
