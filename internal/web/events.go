package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gaayatricouture/couture/internal/gate"
)

// heartbeatInterval keeps idle event streams open through proxies.
const heartbeatInterval = 25 * time.Second

// SessionEvents handles GET /session/events. It streams the admin flag of
// the visitor's session as server-sent events until the page goes away.
func (s *Server) SessionEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	ctx := r.Context()

	g := gate.Watch(ctx, s.Sessions, tokenFromCookie(r))
	defer g.Release()

	// The stream outlives the server's write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.logger.Debug().Err(err).Msg("clearing write deadline")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	send := func(admin bool) error {
		if _, err := fmt.Fprintf(w, "event: admin\ndata: %t\n\n", admin); err != nil {
			return err
		}
		return rc.Flush()
	}

	if err := send(g.IsAdmin()); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case admin, ok := <-g.Changes():
			if !ok || ctx.Err() != nil {
				return
			}
			if err := send(admin); err != nil {
				s.logger.Debug().Err(err).Msg("session event stream closed")
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
