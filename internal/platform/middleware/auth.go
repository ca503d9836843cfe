// Package middleware holds the HTTP middleware chain: actor authentication
// and request-scoped metadata (correlation id, request time).
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"dokdig/pkg/domainerr"
	"dokdig/pkg/httputil"
	"dokdig/pkg/requestcontext"
)

type actorClaims struct {
	NavIdent string `json:"NAVident"`
	jwt.RegisteredClaims
}

// RequireActor validates the bearer token and injects the acting caseworker
// ident into the request context. The orchestrator receives the actor as an
// explicit value; nothing downstream reads ambient security state.
func RequireActor(signingKey []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, domainerr.New(domainerr.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims := &actorClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return signingKey, nil
			})
			if err != nil || !parsed.Valid {
				logger.InfoContext(r.Context(), "rejected invalid token", "error", err)
				httputil.WriteError(w, domainerr.New(domainerr.CodeUnauthorized, "invalid token"))
				return
			}
			if claims.NavIdent == "" {
				httputil.WriteError(w, domainerr.New(domainerr.CodeUnauthorized, "token carries no actor ident"))
				return
			}

			ctx := requestcontext.WithActor(r.Context(), claims.NavIdent)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
