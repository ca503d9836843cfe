package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"dokdig/pkg/requestcontext"
)

// CorrelationHeader is accepted from callers and echoed back.
const CorrelationHeader = "X-Correlation-ID"

// Correlation injects a correlation id into the context, generating one when
// the caller did not supply it. Gateway clients forward it to upstreams.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(CorrelationHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		w.Header().Set(CorrelationHeader, correlationID)
		ctx := requestcontext.WithCorrelationID(r.Context(), correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime pins one timestamp per request so every step of an operation
// observes the same "now".
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
