package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Handlers answer from an in-memory report, so the
// write timeout can stay short.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
