package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "grantflow/pkg/domain"
	"grantflow/pkg/requestcontext"
)

// Claims represents the claims we expect from the token validator.
type Claims struct {
	ActorID id.UserID
	Roles   []id.Role
}

// TokenValidator validates a bearer token and extracts its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// writeJSONError writes a JSON error response with the given status code and
// error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"error_description":%q}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid bearer token and injects the
// authenticated actor into the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithActorID(ctx, claims.ActorID)
			if len(claims.Roles) > 0 {
				ctx = requestcontext.WithActorRoles(ctx, id.NewRoleSet(claims.Roles...))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
