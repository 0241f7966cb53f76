// internal/config/config.go
//
// Package config loads runtime settings from the environment.
//
// A `.env` file in the working directory is loaded first (if present) so
// local development works without exporting variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every setting the CLI and server read.
type Config struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	Port         string `env:"PORT" envDefault:"5175"`
	DBPath       string `env:"DB_PATH"` // empty → ~/.numguess/numguess.db
	JWTSecret    string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	CookieName   string `env:"COOKIE_NAME" envDefault:"numguess_player"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment  string `env:"NODE_ENV" envDefault:"development"`

	// Server session table bounds.
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions int           `env:"MAX_SESSIONS" envDefault:"10000"`
}

// Load reads .env (optional) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without touching .env.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Production reports whether cookies must be Secure.
func (c Config) Production() bool { return c.Environment == "production" }

// ResolveDBPath returns DBPath, defaulting to ~/.numguess/numguess.db.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".numguess", "numguess.db"), nil
}

// ApplyLogLevel sets the global zerolog level; unknown levels are ignored.
func (c Config) ApplyLogLevel() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}
