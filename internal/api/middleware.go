package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gaayatricouture/couture/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// AuthMiddleware resolves the bearer token through the session provider and
// adds the session to the context. Revoked and expired tokens are rejected.
func AuthMiddleware(provider session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				jsonError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			sess, err := provider.Current(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				jsonError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if sess == nil {
				jsonError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the admin session from the context.
func GetSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}
