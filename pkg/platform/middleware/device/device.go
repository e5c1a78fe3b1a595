// Package device derives a coarse human-readable device label from the
// User-Agent so lifecycle events can record which client an actor decided
// from without storing the raw UA string.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"grantflow/pkg/requestcontext"
)

// Label parses a User-Agent into "Browser/OS" form. Non-browser callers
// (scripts, SDKs) come back as the raw product token.
func Label(rawUA string) string {
	rawUA = strings.TrimSpace(rawUA)
	if rawUA == "" {
		return "unknown"
	}

	ua := useragent.New(rawUA)
	name, _ := ua.Browser()
	os := ua.OS()
	if name == "" {
		return rawUA
	}
	if os == "" {
		return name
	}
	return name + "/" + os
}

// Middleware stores the device label in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithDeviceLabel(r.Context(), Label(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
