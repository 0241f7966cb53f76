// internal/store/store.go
//
// Persistence interfaces for the number-guessing game.
//
//   - Store:   key → best score, surviving process restarts (SQLite) or not (memory).
//   - History: optional log of won rounds, listed most recent first.
//
// Both implementations in this package satisfy both interfaces.

package store

import (
	"context"
	"time"
)

// DefaultKey is the best-score key used by the single-user terminal client.
const DefaultKey = "bestScore"

// PlayerKey returns the best-score key for a web player.
func PlayerKey(playerID string) string { return DefaultKey + ":" + playerID }

// Store persists best scores.
type Store interface {
	// Get returns the stored best score for key; ok is false when none exists.
	Get(ctx context.Context, key string) (score int, ok bool, err error)

	// Set records score for key. A stored score is never raised: a Set with a
	// value that is not lower than the current one leaves it unchanged.
	Set(ctx context.Context, key string, score int) error
}

// Round is a single won round.
type Round struct {
	Key        string    `json:"-"`
	Target     int       `json:"target"`
	Attempts   int       `json:"attempts"`
	NewBest    bool      `json:"newBest"`
	FinishedAt time.Time `json:"finishedAt"`
}

// History records won rounds.
type History interface {
	RecordRound(ctx context.Context, r Round) error

	// Rounds returns up to limit rounds for key, most recent first.
	// A limit <= 0 means DefaultHistoryLimit.
	Rounds(ctx context.Context, key string, limit int) ([]Round, error)
}

// DefaultHistoryLimit bounds Rounds when no limit is given.
const DefaultHistoryLimit = 50
