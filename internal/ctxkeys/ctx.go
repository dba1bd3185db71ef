package ctxkeys

import (
	"context"

	"github.com/stylecast/wardrobe/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	ClaimsKey    contextKey = "claims"
	RequestIDKey contextKey = "request_id"
)

// Claims returns the verified session claims, or nil on unauthenticated requests.
func Claims(ctx context.Context) *model.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*model.Claims)
	return claims
}

func WithClaims(ctx context.Context, claims *model.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// UserID is the "sub" of the verified session, the canonical user id.
func UserID(ctx context.Context) string {
	if claims := Claims(ctx); claims != nil {
		return claims.Subject
	}
	return ""
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
