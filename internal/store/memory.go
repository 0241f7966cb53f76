// internal/store/memory.go
//
// In-memory implementation of Store and History.
// Used by tests and by `numguess play --memory`, where nothing should
// outlive the process.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// Memory is a map-based Store + History.
type Memory struct {
	mu     sync.RWMutex       // guards scores and rounds
	scores map[string]int     // keyed by best-score key
	rounds map[string][]Round // keyed by best-score key, oldest first
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *Memory {
	return &Memory{
		scores: make(map[string]int),
		rounds: make(map[string][]Round),
	}
}

// Get looks up the best score for key.
func (m *Memory) Get(ctx context.Context, key string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scores[key]
	return s, ok, nil
}

// Set stores score unless the current value is already lower or equal.
func (m *Memory) Set(ctx context.Context, key string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if score <= 0 {
		return errInvalidScore(score)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.scores[key]; ok && cur <= score {
		return nil
	}
	m.scores[key] = score
	return nil
}

// RecordRound appends r to the history of r.Key.
func (m *Memory) RecordRound(ctx context.Context, r Round) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.Key] = append(m.rounds[r.Key], r)
	return nil
}

// Rounds returns the most recent rounds for key.
func (m *Memory) Rounds(ctx context.Context, key string, limit int) ([]Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.rounds[key]
	out := make([]Round, 0, min(limit, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
