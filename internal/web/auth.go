package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gaayatricouture/couture/internal/session"
)

type loginData struct {
	PageData
	Email string
	Next  string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeReturn(r.FormValue("next"), "/admin")
	if IsAdmin(r.Context()) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, "login.html", &loginData{PageData: s.page(w, r, "Admin Login"), Next: next})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := safeReturn(r.FormValue("next"), "/admin")

	fail := func(status int, message string) {
		s.Templates.RenderStatus(w, status, "login.html", &loginData{
			PageData: s.page(w, r, "Admin Login").withError(message),
			Email:    email,
			Next:     next,
		})
	}

	if email == "" || password == "" {
		fail(http.StatusUnprocessableEntity, "Please enter your email and password.")
		return
	}

	sess, err := s.Sessions.SignInWithPassword(r.Context(), email, password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		fail(http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("sign in failed")
		fail(http.StatusOK, err.Error())
		return
	}

	s.setAuthCookie(w, sess)
	s.Notifier.Success(w, r, "Welcome back!")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if token := tokenFromCookie(r); token != "" {
		if err := s.Sessions.SignOut(r.Context(), token); err != nil {
			s.logger.Error().Err(err).Msg("sign out failed")
		}
	}
	s.clearAuthCookie(w)
	s.Notifier.Success(w, r, "You have been signed out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
