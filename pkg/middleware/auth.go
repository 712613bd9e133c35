package middleware

import (
	"net/http"
	"strings"

	"business-cards/internal/data/repository"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

const (
	TokenHeader  = "x-auth-token"
	bearerPrefix = "Bearer "
)

// TokenVerifier resolves a raw token to the caller identity.
type TokenVerifier interface {
	Verify(raw string) (token.Identity, error)
}

// AuthToken verifies the x-auth-token header and stores the caller identity
// on the request context.
func AuthToken(tokens TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(TokenHeader))
			if rest, ok := strings.CutPrefix(raw, bearerPrefix); ok {
				raw = strings.TrimSpace(rest)
			} else if raw == strings.TrimSpace(bearerPrefix) {
				raw = ""
			}
			if raw == "" {
				utils.ResponseUnauthorized(w, "Access denied token is required")
				return
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				logger.Warn("Token rejected",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireBusiness checks the stored business flag rather than the token
// claim, which goes stale after a status change.
func RequireBusiness(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get user ID from context (set by AuthToken)
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Access denied token is required")
				return
			}

			// 2. Load user
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Business check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// 3. Check flag
			if user == nil || !user.IsBusiness {
				logger.Warn("Business check: non-business access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Business account required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
