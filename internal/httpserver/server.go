// internal/httpserver/server.go
//
// HTTP server wiring for the number-guessing game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints under /game (see routes_game.go), one Session per player.
//   - Toast push channel: GET /game/events (see events.go).
//
// Notes:
//   - Players are anonymous; identity is a signed cookie (see player.go).
//   - Every player gets its own Session and best-score key, so rounds never
//     share state across players.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numguess/internal/config"
	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/notify"
	"github.com/robalobadob/numguess/internal/session"
	"github.com/robalobadob/numguess/internal/store"
)

// Options configures a Server.
type Options struct {
	Config config.Config
	Store  store.Store
	Source game.Source // nil → crypto/rand; wrapped so sessions can share it
}

// Server bundles router, per-player sessions and the toast hub.
type Server struct {
	r      *chi.Mux
	cfg    config.Config
	store  store.Store
	engine *game.Engine
	hub    *hub

	sessions *sessionTable
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	src := opts.Source
	if src != nil {
		src = game.NewLockedSource(src)
	}
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      opts.Config,
		store:    opts.Store,
		engine:   game.NewEngine(src),
		hub:      newHub(),
		sessions: newSessionTable(opts.Config.MaxSessions, opts.Config.SessionTTL),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(s.cors)                      // credentials-friendly CORS

	// Toast stream: long-lived, so it stays outside the timeout group.
	s.r.With(s.withPlayer).Get("/game/events", s.handleEvents)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses
		r.Use(accessLog)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"numguess","endpoints":["/health","GET /game","POST /game/new","POST /game/guess","GET /game/history","GET /game/events"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountGame(r.With(s.withPlayer))
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.sweepEvery(sweepCtx, s.sessions.ttl/2)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		s.hub.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// sessionFor returns the player's session, creating it on first use.
// The best score is loaded outside the table lock; if two requests race,
// the first inserted session wins.
func (s *Server) sessionFor(ctx context.Context, playerID string) *session.Session {
	if sess := s.sessions.get(playerID); sess != nil {
		return sess
	}
	sess, created := s.sessions.add(playerID, s.newSession(ctx, playerID))
	if created {
		log.Debug().Str("player", playerID).Msg("session created")
	}
	return sess
}

// newSession builds a session for playerID without registering it.
func (s *Server) newSession(ctx context.Context, playerID string) *session.Session {
	n := notify.Multi{notify.Log{}, s.hub.notifier(playerID)}
	return session.New(ctx, s.engine, s.store, n, store.PlayerKey(playerID))
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request through the request-scoped logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes the {"error":"..."} body used by every handler.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
