// internal/store/sqlite.go
//
// SQLite-backed Store + History.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations from assets/sql (idempotent, recorded in _migrations).
//   - Best-score reads and guarded writes; won-round history.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numguess/assets"
)

// SQLite persists best scores and rounds in a single database file.
type SQLite struct {
	db *sql.DB
}

/**
 * OpenSQLite opens (and creates if missing) the database at path and
 * applies pending migrations.
 *
 * - Ensures the parent directory exists (e.g. ~/.numguess/numguess.db).
 * - Configures busy timeout and WAL journaling.
 * - Enforces foreign keys.
 */
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: database path is required")
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Close closes the database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

/**
 * migrate applies the embedded migrations.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each script in lexical order inside its own transaction.
 * - Skips scripts already applied.
 */
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Get returns the best score stored under key.
func (s *SQLite) Get(ctx context.Context, key string) (int, bool, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM best_scores WHERE key=?`, key).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get best score %q: %w", key, err)
	}
	return score, true, nil
}

// Set upserts score for key. The WHERE clause on the conflict branch makes the
// write a compare-and-swap: concurrent claims can only lower the stored value.
func (s *SQLite) Set(ctx context.Context, key string, score int) error {
	if score <= 0 {
		return errInvalidScore(score)
	}
	now := toMillis(time.Now())
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO best_scores (key, score, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET score=excluded.score, updated_at=excluded.updated_at
        WHERE excluded.score < best_scores.score`,
		key, score, now,
	)
	if err != nil {
		return fmt.Errorf("set best score %q: %w", key, err)
	}
	return nil
}

// RecordRound inserts a won round.
func (s *SQLite) RecordRound(ctx context.Context, r Round) error {
	finished := r.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO rounds (key, target, attempts, new_best, finished_at)
        VALUES (?, ?, ?, ?, ?)`,
		r.Key, r.Target, r.Attempts, r.NewBest, toMillis(finished),
	)
	if err != nil {
		return fmt.Errorf("record round: %w", err)
	}
	return nil
}

// Rounds lists won rounds for key, most recent first.
func (s *SQLite) Rounds(ctx context.Context, key string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT target, attempts, new_best, finished_at
        FROM rounds
        WHERE key=?
        ORDER BY finished_at DESC, id DESC
        LIMIT ?`, key, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	out := make([]Round, 0, limit)
	for rows.Next() {
		r := Round{Key: key}
		var finished int64
		if err := rows.Scan(&r.Target, &r.Attempts, &r.NewBest, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt = fromMillis(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
