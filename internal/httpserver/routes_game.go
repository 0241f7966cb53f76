// internal/httpserver/routes_game.go
//
// HTTP routes for the game, all scoped to the calling player. Only the POST
// routes register a session; the GET routes read without one.
//   - GET  /game          → current view
//   - POST /game/new      → start a new round
//   - POST /game/guess    → submit a guess ({"guess":"42"} or {"guess":42})
//   - GET  /game/history  → won rounds, most recent first (?limit=N)
//
// Invalid guesses are not HTTP errors: they come back as 200 with
// feedback.type = "invalid". Guesses on a won round return the unchanged view.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numguess/internal/notify"
	"github.com/robalobadob/numguess/internal/session"
	"github.com/robalobadob/numguess/internal/store"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Post("/new", s.handleNew)
		r.Post("/guess", s.handleGuess)
		r.Get("/history", s.handleHistory)
	})
}

// guessReq is the request payload for /game/guess. Guess is kept raw so both
// JSON strings and numbers reach the engine's validation unchanged.
type guessReq struct {
	Guess json.RawMessage `json:"guess"`
}

// guessRes is the response payload for /game/guess.
type guessRes struct {
	session.View
	Toasts []notify.Toast `json:"toasts"`
}

// historyRes is the response payload for /game/history.
type historyRes struct {
	BestScore int           `json:"bestScore,omitempty"`
	Rounds    []store.Round `json:"rounds"`
}

// peekSession returns the player's live session or, when there is none, an
// unregistered one so read-only routes never grow the session table.
func (s *Server) peekSession(r *http.Request) *session.Session {
	id := playerID(r.Context())
	if sess := s.sessions.get(id); sess != nil {
		return sess
	}
	return s.newSession(r.Context(), id)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.peekSession(r).View())
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(r.Context(), playerID(r.Context()))
	_ = json.NewEncoder(w).Encode(sess.Start(r.Context()))
}

// handleGuess forwards the raw guess to the player's session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := s.sessionFor(r.Context(), playerID(r.Context()))
	view, toasts := sess.Guess(r.Context(), rawGuess(req.Guess))
	if toasts == nil {
		toasts = []notify.Toast{}
	}
	hlog.FromRequest(r).Debug().
		Str("player", playerID(r.Context())).
		Str("feedback", string(view.Feedback.Type)).
		Int("attempts", view.Attempts).
		Msg("guess")
	_ = json.NewEncoder(w).Encode(guessRes{View: view, Toasts: toasts})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	sess := s.peekSession(r)
	rounds, err := sess.History(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list rounds")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if rounds == nil {
		rounds = []store.Round{}
	}
	_ = json.NewEncoder(w).Encode(historyRes{BestScore: sess.View().BestScore, Rounds: rounds})
}

// rawGuess turns the JSON value into the text the player typed: strings are
// unquoted, anything else (numbers) is passed through verbatim.
func rawGuess(m json.RawMessage) string {
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(m))
}
