package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLite_TimestampsAreMillis(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "numguess.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	before := toMillis(time.Now())
	if err := db.Set(ctx, DefaultKey, 9); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.RecordRound(ctx, Round{Key: DefaultKey, Target: 50, Attempts: 9, NewBest: true, FinishedAt: time.Now()}); err != nil {
		t.Fatalf("record: %v", err)
	}

	var (
		updatedType, finishedType string
		updated                   int64
	)
	if err := db.db.QueryRowContext(ctx,
		`SELECT typeof(updated_at), updated_at FROM best_scores WHERE key = ?`, DefaultKey,
	).Scan(&updatedType, &updated); err != nil {
		t.Fatalf("query best_scores: %v", err)
	}
	if err := db.db.QueryRowContext(ctx,
		`SELECT typeof(finished_at) FROM rounds WHERE key = ?`, DefaultKey,
	).Scan(&finishedType); err != nil {
		t.Fatalf("query rounds: %v", err)
	}
	if updatedType != "integer" || finishedType != "integer" {
		t.Fatalf("column types = %q, %q; want integer", updatedType, finishedType)
	}
	if updated < before {
		t.Fatalf("updated_at = %d, want >= %d", updated, before)
	}
}
