// Package gate tracks whether the viewer of a page holds an admin session
// for as long as the page stays open.
package gate

import (
	"context"
	"sync"

	"github.com/gaayatricouture/couture/internal/session"
)

// changesBuffer bounds undelivered flag changes; older ones are dropped first.
const changesBuffer = 4

// Gate is an observable admin flag bound to one session token.
type Gate struct {
	mu        sync.Mutex
	admin     bool
	sessionID string
	changes   chan bool
	released  bool

	// Events seen before the session was resolved, replayed once it is.
	resolved bool
	pending  []session.Event

	unsubscribe func()
	stop        func() bool
}

// Watch resolves token once and then follows session changes until ctx is
// cancelled or Release is called. A lookup error leaves the flag false.
// The subscription starts before the lookup, so a sign-out published while
// the session is being resolved still applies.
func Watch(ctx context.Context, provider session.Provider, token string) *Gate {
	g := &Gate{changes: make(chan bool, changesBuffer)}
	g.unsubscribe = provider.Subscribe(g.handle)

	sess, err := provider.Current(ctx, token)

	g.mu.Lock()
	if err == nil && sess != nil {
		g.admin = true
		g.sessionID = sess.ID
	}
	g.resolved = true
	pending := g.pending
	g.pending = nil
	for _, e := range pending {
		g.apply(e)
	}
	g.stop = context.AfterFunc(ctx, g.Release)
	g.mu.Unlock()

	return g
}

// IsAdmin reports whether the watched session is currently signed in.
func (g *Gate) IsAdmin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.admin
}

// Changes delivers each new value of the admin flag. It is closed on release.
func (g *Gate) Changes() <-chan bool {
	return g.changes
}

// Release stops following session changes. It is safe to call more than once.
func (g *Gate) Release() {
	g.mu.Lock()
	if g.released {
		g.mu.Unlock()
		return
	}
	g.released = true
	stop := g.stop
	g.mu.Unlock()

	g.unsubscribe()
	if stop != nil {
		stop()
	}

	g.mu.Lock()
	close(g.changes)
	g.mu.Unlock()
}

func (g *Gate) handle(e session.Event) {
	if e.Session == nil || e.Session.ID == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.released {
		return
	}
	if !g.resolved {
		g.pending = append(g.pending, e)
		return
	}
	g.apply(e)
}

// apply must be called with g.mu held.
func (g *Gate) apply(e session.Event) {
	if g.sessionID == "" || e.Session.ID != g.sessionID {
		return
	}

	switch e.Type {
	case session.SignedOut:
		g.set(false)
	case session.SignedIn:
		g.set(true)
	}
}

// set must be called with g.mu held.
func (g *Gate) set(admin bool) {
	if g.admin == admin {
		return
	}
	g.admin = admin

	for {
		select {
		case g.changes <- admin:
			return
		default:
		}
		select {
		case <-g.changes:
		default:
		}
	}
}
