// Package requestid assigns every request a correlation id, honoring one
// supplied by an upstream proxy.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"grantflow/pkg/requestcontext"
)

// Header is the inbound/outbound correlation header.
const Header = "X-Request-ID"

// Middleware reuses the caller's X-Request-ID when present, mints one
// otherwise, and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(Header, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
