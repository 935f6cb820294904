package middleware

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ports"
)

type contextKey string

const authContextKey contextKey = "auth"

// WithAuth injects the verified identity into the context.
func WithAuth(ctx context.Context, id *ports.Identity) context.Context {
	return context.WithValue(ctx, authContextKey, id)
}

// AuthFromContext returns the identity set by AuthValidator, or nil.
func AuthFromContext(ctx context.Context) *ports.Identity {
	v := ctx.Value(authContextKey)
	if v == nil {
		return nil
	}
	id, _ := v.(*ports.Identity)
	return id
}
