// Package reaper expires abandoned draft import sessions.
package reaper

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bankfeed-dev/bankfeed/internal/store"
)

// Reaper deletes never-committed sessions past their retention window.
type Reaper struct {
	store *store.Store
	log   zerolog.Logger
}

// New creates a Reaper.
func New(st *store.Store, log zerolog.Logger) *Reaper {
	return &Reaper{store: st, log: log}
}

// Sweep removes every draft session created before now minus retention,
// together with its staging rows, and returns the number of sessions
// removed. Expiry is based on creation time only: a draft being actively
// edited past the window is still removed. Idempotent, and safe to run
// concurrently with edits to other sessions.
func (r *Reaper) Sweep(retention time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-retention)

	stale, err := r.store.StaleDraftSessions(cutoff)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]string, len(stale))
	for i, sess := range stale {
		ids[i] = sess.ID
	}
	if err := r.store.DeleteSessions(ids); err != nil {
		return 0, err
	}

	r.log.Info().Int("sessions", len(ids)).Time("cutoff", cutoff).Msg("reaped stale drafts")
	return len(ids), nil
}
