// Package notify keeps per-visitor state in a signed cookie session: one-shot
// toast messages shown after a redirect, and the visitor's favorite products.
package notify

import (
	"net/http"
	"slices"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

// SessionName is the cookie holding visitor state.
const SessionName = "couture-session"

const favoritesKey = "favorites"

// Kind classifies a toast.
type Kind string

// Toast kinds.
const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Toast is a short message shown once on the next page render.
type Toast struct {
	Kind    Kind
	Message string
}

// NewCookieStore returns a cookie store signed with key.
func NewCookieStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Notifier reads and writes visitor state.
type Notifier struct {
	store  sessions.Store
	logger zerolog.Logger
}

// New creates a Notifier backed by store.
func New(store sessions.Store, logger zerolog.Logger) *Notifier {
	return &Notifier{
		store:  store,
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// Add queues a toast for the next page render.
func (n *Notifier) Add(w http.ResponseWriter, r *http.Request, kind Kind, message string) {
	session := n.session(r)
	session.AddFlash(message, string(kind))
	n.save(w, r, session)
}

// Success queues a success toast.
func (n *Notifier) Success(w http.ResponseWriter, r *http.Request, message string) {
	n.Add(w, r, Success, message)
}

// Error queues an error toast.
func (n *Notifier) Error(w http.ResponseWriter, r *http.Request, message string) {
	n.Add(w, r, Error, message)
}

// Pop returns and clears the queued toasts, successes first.
func (n *Notifier) Pop(w http.ResponseWriter, r *http.Request) []Toast {
	session := n.session(r)

	var toasts []Toast
	for _, kind := range []Kind{Success, Error} {
		for _, f := range session.Flashes(string(kind)) {
			if msg, ok := f.(string); ok {
				toasts = append(toasts, Toast{Kind: kind, Message: msg})
			}
		}
	}

	if len(toasts) > 0 {
		n.save(w, r, session)
	}
	return toasts
}

// Favorites returns the product IDs the visitor marked as favorite.
func (n *Notifier) Favorites(r *http.Request) []string {
	favs, _ := n.session(r).Values[favoritesKey].([]string)
	return favs
}

// ToggleFavorite adds id to the visitor's favorites, or removes it if already
// present. It reports whether id is a favorite afterwards.
func (n *Notifier) ToggleFavorite(w http.ResponseWriter, r *http.Request, id string) (bool, error) {
	session := n.session(r)
	favs, _ := session.Values[favoritesKey].([]string)

	var on bool
	if i := slices.Index(favs, id); i >= 0 {
		favs = slices.Delete(favs, i, i+1)
	} else {
		favs = append(favs, id)
		on = true
	}
	session.Values[favoritesKey] = favs

	if err := session.Save(r, w); err != nil {
		return false, err
	}
	return on, nil
}

// session returns the visitor session. A cookie that no longer verifies
// yields a fresh session rather than an error.
func (n *Notifier) session(r *http.Request) *sessions.Session {
	session, err := n.store.Get(r, SessionName)
	if err != nil {
		n.logger.Debug().Err(err).Msg("discarding unreadable visitor session")
	}
	return session
}

func (n *Notifier) save(w http.ResponseWriter, r *http.Request, session *sessions.Session) {
	if err := session.Save(r, w); err != nil {
		n.logger.Error().Err(err).Msg("failed to save visitor session")
	}
}
