// cmd/numguess/commands/root.go
//
// Package commands implements the numguess CLI.
package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numguess/internal/config"
	"github.com/robalobadob/numguess/internal/store"
)

var (
	cfg      config.Config
	dbPath   string
	memory   bool
	logLevel string
)

// Execute builds the command tree and runs it.
func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "numguess",
		Short:        "Guess the number between 1 and 100",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				c.DBPath = dbPath
			}
			if logLevel != "" {
				c.LogLevel = logLevel
			}
			cfg = c

			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				With().Timestamp().Logger()
			cfg.ApplyLogLevel()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default $DB_PATH or ~/.numguess/numguess.db)")
	root.PersistentFlags().BoolVar(&memory, "memory", false, "keep scores in memory only")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")

	root.AddCommand(playCmd(), serveCmd(), bestCmd(), historyCmd())
	return root
}

// gameStore is what every command needs from persistence.
type gameStore interface {
	store.Store
	store.History
}

// openStore opens the configured store; the returned func releases it.
func openStore() (gameStore, func(), error) {
	if memory {
		return store.NewMemoryStore(), func() {}, nil
	}
	path, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("path", path).Msg("opened database")
	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}, nil
}
