package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Finalize requests fan out to the archive and
// case-task systems synchronously, so the write timeout leaves room for the
// full upstream chain including retries.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
