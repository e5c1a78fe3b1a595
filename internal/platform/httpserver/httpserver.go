package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Decision and checklist calls are short
// single-row writes, so the write timeout stays tight and slow clients
// are cut off at the header read.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
