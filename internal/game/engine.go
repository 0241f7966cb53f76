// internal/game/engine.go
//
// Core engine for the number-guessing game.
// Responsibilities:
//   - Draw secret numbers from an injected Source.
//   - Validate raw guesses (strict integer, inside [MinNumber, MaxNumber]).
//   - Compare guesses and produce feedback.
//   - Decide when the best score improves and emit the matching effects.
//
// Notes:
//   - The engine performs no IO. Persistence and notifications are returned as
//     Effect values and applied by the caller (see internal/session).
//   - All methods take a State by value and return a new one.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidGuess is returned by ParseGuess for empty, non-numeric or
// out-of-range input. It is a normal outcome, not a fault.
var ErrInvalidGuess = errors.New("invalid guess")

// Feedback messages.
const (
	msgWelcome  = "Enter a number between 1 and 100 to start!"
	msgNewGame  = "New game started! Guess the number between 1 and 100."
	msgInvalid  = "Please enter a valid number between 1 and 100!"
	msgCorrect  = "🎉 Correct! The number was %d!"
	msgTooLow   = "%d is too low! Try a higher number."
	msgTooHigh  = "%d is too high! Try a lower number."
	titleRecord = "🎉 New Best Score!"
	descRecord  = "You found the number in %d attempts - that's a new personal record!"
	titleWin    = "🎯 Congratulations!"
	descWin     = "You found the number %d in %d attempts!"
)

// Engine holds the random source used for every draw.
type Engine struct {
	src Source
}

// NewEngine constructs an engine. A nil src falls back to NewCryptoSource.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = NewCryptoSource()
	}
	return &Engine{src: src}
}

// WelcomeFeedback is the feedback shown before anything happened.
func WelcomeFeedback() Feedback {
	return Feedback{Message: msgWelcome, Type: FeedbackIdle}
}

// Initialize creates the first round of a session. bestScore is whatever the
// caller loaded from persistence (0 when absent).
func (e *Engine) Initialize(bestScore int) State {
	if bestScore < 0 {
		bestScore = 0
	}
	return State{
		TargetNumber: e.draw(),
		BestScore:    bestScore,
	}
}

// StartNewGame begins a new round. The previous target is not excluded from
// the draw; the best score is carried over untouched.
func (e *Engine) StartNewGame(s State) (State, Feedback) {
	s.TargetNumber = e.draw()
	s.Attempts = 0
	s.IsGameWon = false
	s.GameStarted = true
	return s, Feedback{Message: msgNewGame, Type: FeedbackIdle}
}

// SubmitGuess validates and evaluates a raw guess.
//
// Invalid input never consumes an attempt and leaves the state untouched.
// A guess on a won round is ignored; callers gate input once IsGameWon is set.
func (e *Engine) SubmitGuess(s State, raw string) Outcome {
	if s.IsGameWon {
		return Outcome{State: s, Ignored: true}
	}
	guess, err := ParseGuess(raw)
	if err != nil {
		return Outcome{
			State:    s,
			Feedback: Feedback{Message: msgInvalid, Type: FeedbackInvalid},
		}
	}

	s.Attempts++
	s.GameStarted = true
	out := Outcome{Guess: guess, ClearInput: true}

	switch {
	case guess == s.TargetNumber:
		s.IsGameWon = true
		if !s.HasBestScore() || s.Attempts < s.BestScore {
			s.BestScore = s.Attempts
			out.Effects = append(out.Effects,
				Effect{Kind: EffectPersistBestScore, BestScore: s.Attempts},
				Effect{
					Kind:        EffectNotify,
					Title:       titleRecord,
					Description: fmt.Sprintf(descRecord, s.Attempts),
				},
			)
		} else {
			out.Effects = append(out.Effects, Effect{
				Kind:        EffectNotify,
				Title:       titleWin,
				Description: fmt.Sprintf(descWin, s.TargetNumber, s.Attempts),
			})
		}
		out.Feedback = Feedback{Message: fmt.Sprintf(msgCorrect, s.TargetNumber), Type: FeedbackCorrect}
	case guess < s.TargetNumber:
		out.Feedback = Feedback{Message: fmt.Sprintf(msgTooLow, guess), Type: FeedbackTooLow}
	default:
		out.Feedback = Feedback{Message: fmt.Sprintf(msgTooHigh, guess), Type: FeedbackTooHigh}
	}

	out.State = s
	return out
}

// ParseGuess parses a raw guess. Surrounding whitespace is ignored; anything
// that is not a base-10 integer in [MinNumber, MaxNumber] (including "3.7")
// yields ErrInvalidGuess.
func ParseGuess(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidGuess, raw)
	}
	if n < MinNumber || n > MaxNumber {
		return 0, fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidGuess, n, MinNumber, MaxNumber)
	}
	return n, nil
}

// draw returns a uniformly distributed number in [MinNumber, MaxNumber].
func (e *Engine) draw() int {
	return MinNumber + e.src.IntN(MaxNumber-MinNumber+1)
}
