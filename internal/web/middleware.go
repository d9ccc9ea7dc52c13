package web

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gaayatricouture/couture/internal/session"
)

type webContextKey string

const webSessionKey webContextKey = "websession"

// tokenCookie holds the admin session token.
const tokenCookie = "token"

// SessionMiddleware resolves the token cookie once per request and stores the
// session, if any, in the request context. It never blocks a request; a stale
// cookie is cleared and the visitor continues as a guest.
func (s *Server) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromCookie(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := s.Sessions.Current(r.Context(), token)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to resolve session")
			next.ServeHTTP(w, r)
			return
		}
		if sess == nil {
			s.clearAuthCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), webSessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin redirects guests to the login page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentSession(r.Context()) == nil {
			target := "/login"
			if r.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentSession returns the admin session resolved for this request.
func CurrentSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(webSessionKey).(*session.Session)
	return sess
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(ctx context.Context) bool {
	return CurrentSession(ctx) != nil
}

func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(tokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) setAuthCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
