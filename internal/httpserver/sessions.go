// internal/httpserver/sessions.go
//
// Bounded table of per-player sessions.
//   - Sessions idle longer than ttl are swept periodically (see Server.Run).
//   - When the table is full, expired sessions are dropped first, then the
//     least recently used one.
//
// An evicted player simply gets a fresh round on the next action; the best
// score lives in the store and is reloaded.

package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numguess/internal/session"
)

const (
	defaultMaxSessions = 10000
	defaultSessionTTL  = 30 * time.Minute
)

type sessionEntry struct {
	sess     *session.Session
	lastSeen time.Time
}

type sessionTable struct {
	mu      sync.Mutex               // guards entries
	entries map[string]*sessionEntry // keyed by player ID
	max     int
	ttl     time.Duration
	now     func() time.Time
}

func newSessionTable(max int, ttl time.Duration) *sessionTable {
	if max <= 0 {
		max = defaultMaxSessions
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionTable{
		entries: make(map[string]*sessionEntry),
		max:     max,
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the player's session and marks it used, or nil.
func (t *sessionTable) get(id string) *session.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		return nil
	}
	e.lastSeen = t.now()
	return e.sess
}

// add registers sess for id unless one already exists, which is returned
// instead. created reports whether sess was inserted.
func (t *sessionTable) add(id string, sess *session.Session) (_ *session.Session, created bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if e, ok := t.entries[id]; ok {
		e.lastSeen = now
		return e.sess, false
	}
	if len(t.entries) >= t.max {
		t.sweepLocked(now)
	}
	for len(t.entries) >= t.max {
		t.evictOldestLocked()
	}
	t.entries[id] = &sessionEntry{sess: sess, lastSeen: now}
	return sess, true
}

func (t *sessionTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// sweep drops every session idle longer than ttl.
func (t *sessionTable) sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sweepLocked(t.now())
}

// sweepEvery runs sweep on a ticker until ctx is done.
func (t *sessionTable) sweepEvery(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.sweep(); n > 0 {
				log.Debug().Int("evicted", n).Msg("idle sessions swept")
			}
		}
	}
}

func (t *sessionTable) sweepLocked(now time.Time) int {
	n := 0
	for id, e := range t.entries {
		if now.Sub(e.lastSeen) > t.ttl {
			delete(t.entries, id)
			n++
		}
	}
	return n
}

func (t *sessionTable) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range t.entries {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(t.entries, oldestID)
}
