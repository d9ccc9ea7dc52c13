package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gaayatricouture/couture/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeProvider serves a fixed session and publishes events on demand.
type fakeProvider struct {
	sess   *session.Session
	err    error
	events *session.Broadcaster
	calls  int

	// during runs inside Current, before it returns.
	during func()
}

func newFakeProvider(sess *session.Session, err error) *fakeProvider {
	return &fakeProvider{sess: sess, err: err, events: session.NewBroadcaster()}
}

func (f *fakeProvider) Current(context.Context, string) (*session.Session, error) {
	f.calls++
	if f.during != nil {
		f.during()
	}
	return f.sess, f.err
}

func (f *fakeProvider) SignInWithPassword(context.Context, string, string) (*session.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) SignOut(context.Context, string) error { return nil }

func (f *fakeProvider) Subscribe(fn func(session.Event)) func() {
	return f.events.Subscribe(fn)
}

func TestWatchWithoutSession(t *testing.T) {
	p := newFakeProvider(nil, nil)
	g := Watch(context.Background(), p, "")
	defer g.Release()

	assert.False(t, g.IsAdmin())
	assert.Equal(t, 1, p.calls, "session is queried once on mount")
}

func TestWatchLookupErrorIsNotAdmin(t *testing.T) {
	p := newFakeProvider(&session.Session{ID: "s1"}, errors.New("network down"))
	g := Watch(context.Background(), p, "tok")
	defer g.Release()

	assert.False(t, g.IsAdmin())
	assert.Equal(t, 1, p.calls, "no retry after a failed lookup")
}

func TestSignOutFlipsFlag(t *testing.T) {
	p := newFakeProvider(&session.Session{ID: "s1"}, nil)
	g := Watch(context.Background(), p, "tok")
	defer g.Release()

	require.True(t, g.IsAdmin())

	// Another session signing out does not affect this viewer.
	p.events.Publish(session.Event{Type: session.SignedOut, Session: &session.Session{ID: "other"}})
	assert.True(t, g.IsAdmin())

	p.events.Publish(session.Event{Type: session.SignedOut, Session: &session.Session{ID: "s1"}})
	assert.False(t, g.IsAdmin())

	select {
	case v := <-g.Changes():
		assert.False(t, v)
	default:
		t.Fatal("expected a change notification")
	}
}

func TestSignOutDuringLookupApplies(t *testing.T) {
	p := newFakeProvider(&session.Session{ID: "s1"}, nil)
	p.during = func() {
		p.events.Publish(session.Event{Type: session.SignedOut, Session: &session.Session{ID: "s1"}})
	}
	g := Watch(context.Background(), p, "tok")
	defer g.Release()

	assert.False(t, g.IsAdmin())
}

func TestCancelledContextReleases(t *testing.T) {
	p := newFakeProvider(&session.Session{ID: "s1"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := Watch(ctx, p, "tok")
	for range g.Changes() {
	}
	assert.Equal(t, 0, p.events.Len())
}

func TestCancelReleasesSubscription(t *testing.T) {
	p := newFakeProvider(&session.Session{ID: "s1"}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	g := Watch(ctx, p, "tok")
	assert.Equal(t, 1, p.events.Len())

	cancel()

	// Changes is closed once the release has run.
	for range g.Changes() {
	}
	assert.Equal(t, 0, p.events.Len())

	// Events after unmount are ignored.
	p.events.Publish(session.Event{Type: session.SignedOut, Session: &session.Session{ID: "s1"}})
	assert.True(t, g.IsAdmin())

	g.Release()
}

func TestChangesKeepsLatest(t *testing.T) {
	p := newFakeProvider(&session.Session{ID: "s1"}, nil)
	g := Watch(context.Background(), p, "tok")
	defer g.Release()

	for i := 0; i < changesBuffer*2; i++ {
		typ := session.SignedOut
		if i%2 == 1 {
			typ = session.SignedIn
		}
		p.events.Publish(session.Event{Type: typ, Session: &session.Session{ID: "s1"}})
	}

	var last bool
	for len(g.Changes()) > 0 {
		last = <-g.Changes()
	}
	assert.Equal(t, g.IsAdmin(), last)
	assert.True(t, last)
}
