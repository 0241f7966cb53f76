// internal/session/session.go
//
// A Session is one player's game: it owns the current round, applies the
// engine's effects and is the collaborator boundary for persistence.
//
// Responsibilities:
//   - Load the best score once on creation (a failed read means "no best score").
//   - Serialise actions: each Start/Guess completes before the next begins.
//   - Persist improved best scores and record won rounds (failures are logged, never fatal).
//   - Forward toasts to the Notifier.
//   - Keep the feedback and the pending input text the surface should display.
//
// Input policy: the input text is cleared only after a syntactically valid
// guess, so an invalid entry stays in place for correction.

package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/notify"
	"github.com/robalobadob/numguess/internal/store"
)

// View is a read-only snapshot for rendering.
type View struct {
	Status      string        `json:"status"` // not_started | in_progress | won
	Attempts    int           `json:"attempts"`
	GameStarted bool          `json:"gameStarted"`
	IsGameWon   bool          `json:"isGameWon"`
	BestScore   int           `json:"bestScore,omitempty"`
	Target      int           `json:"target,omitempty"` // revealed once the round is won
	Feedback    game.Feedback `json:"feedback"`
	Input       string        `json:"input"`
}

// Session holds one player's game.
type Session struct {
	mu       sync.Mutex // guards everything below
	engine   *game.Engine
	store    store.Store
	history  store.History // nil when the store keeps no history
	notifier notify.Notifier
	key      string
	now      func() time.Time

	state    game.State
	feedback game.Feedback
	input    string
}

// New creates a session for key and loads its best score from st.
// A nil notifier discards toasts.
func New(ctx context.Context, eng *game.Engine, st store.Store, n notify.Notifier, key string) *Session {
	if n == nil {
		n = notify.Multi(nil)
	}
	if key == "" {
		key = store.DefaultKey
	}
	s := &Session{
		engine:   eng,
		store:    st,
		notifier: n,
		key:      key,
		now:      time.Now,
		feedback: game.WelcomeFeedback(),
	}
	if h, ok := st.(store.History); ok {
		s.history = h
	}

	best, _, err := st.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("load best score; continuing without one")
		best = 0
	}
	s.state = eng.Initialize(best)
	return s
}

// Key returns the best-score key this session reads and writes.
func (s *Session) Key() string { return s.key }

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Start begins a new round. Always available, whatever the current state.
func (s *Session) Start(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state, s.feedback = s.engine.StartNewGame(s.state)
	s.input = ""
	log.Debug().Str("key", s.key).Msg("new round")
	return s.viewLocked()
}

// Guess submits raw input and returns the new view plus the toasts this
// guess produced (they are also sent to the Notifier). Once the round is won
// further guesses are ignored and the returned view is unchanged.
func (s *Session) Guess(ctx context.Context, raw string) (View, []notify.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.engine.SubmitGuess(s.state, raw)
	if out.Ignored {
		log.Debug().Str("key", s.key).Msg("guess after win ignored")
		return s.viewLocked(), nil
	}

	s.state = out.State
	s.feedback = out.Feedback
	s.input = raw
	if out.ClearInput {
		s.input = ""
	}
	log.Debug().Str("key", s.key).Int("guess", out.Guess).Str("feedback", string(out.Feedback.Type)).Int("attempts", out.State.Attempts).Msg("guess")

	var toasts []notify.Toast
	newBest := false
	for _, eff := range out.Effects {
		switch eff.Kind {
		case game.EffectPersistBestScore:
			newBest = true
			if err := s.store.Set(ctx, s.key, eff.BestScore); err != nil {
				log.Warn().Err(err).Str("key", s.key).Int("score", eff.BestScore).Msg("persist best score")
			}
		case game.EffectNotify:
			toasts = append(toasts, notify.Toast{Title: eff.Title, Description: eff.Description})
			s.notifier.Notify(eff.Title, eff.Description)
		}
	}

	if s.state.IsGameWon {
		log.Info().Str("key", s.key).Int("attempts", s.state.Attempts).Bool("newBest", newBest).Msg("round won")
		if s.history != nil {
			r := store.Round{
				Key:        s.key,
				Target:     s.state.TargetNumber,
				Attempts:   s.state.Attempts,
				NewBest:    newBest,
				FinishedAt: s.now(),
			}
			if err := s.history.RecordRound(ctx, r); err != nil {
				log.Warn().Err(err).Str("key", s.key).Msg("record round")
			}
		}
	}
	return s.viewLocked(), toasts
}

// History lists won rounds for this session's key, most recent first.
// It returns nil when the store keeps no history.
func (s *Session) History(ctx context.Context, limit int) ([]store.Round, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Rounds(ctx, s.key, limit)
}

func (s *Session) viewLocked() View {
	v := View{
		Status:      s.state.Status(),
		Attempts:    s.state.Attempts,
		GameStarted: s.state.GameStarted,
		IsGameWon:   s.state.IsGameWon,
		BestScore:   s.state.BestScore,
		Feedback:    s.feedback,
		Input:       s.input,
	}
	if s.state.IsGameWon {
		v.Target = s.state.TargetNumber
	}
	return v
}
