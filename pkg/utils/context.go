package utils

import (
	"context"

	"business-cards/pkg/token"

	"github.com/google/uuid"
)

type contextKey string

const IdentityKey contextKey = "identity"

// SetIdentityContext stores the verified caller identity on ctx.
func SetIdentityContext(ctx context.Context, identity token.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(token.Identity)
	if !ok || identity.UserID == uuid.Nil {
		return token.Identity{}, false
	}
	return identity, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return identity.UserID, true
}
