package ctxkeys

import (
	"context"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	ActorIDKey contextKey = "actor_id"
)

// ActorID is the user id taken from a verified bearer token, or "".
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(ActorIDKey).(string)
	return id
}

func WithActorID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ActorIDKey, userID)
}
