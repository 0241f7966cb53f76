// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - State:        the current round (secret target, attempts, won/started flags, best score).
//   - Feedback:     message + type derived from the latest evaluation.
//   - Effect:       side-effect intents (persist best score, notify) returned by the engine.
//   - Outcome:      everything SubmitGuess produces for a single submission.

package game

// Range of the secret number (inclusive on both ends).
const (
	MinNumber = 1
	MaxNumber = 100
)

// FeedbackType classifies the most recent evaluation.
// Possible values:
//   - "idle":     nothing evaluated yet (fresh session or new round).
//   - "too-high": guess is above the target.
//   - "too-low":  guess is below the target.
//   - "correct":  guess equals the target.
//   - "invalid":  input was rejected before any comparison.
type FeedbackType string

const (
	FeedbackIdle    FeedbackType = "idle"
	FeedbackTooHigh FeedbackType = "too-high"
	FeedbackTooLow  FeedbackType = "too-low"
	FeedbackCorrect FeedbackType = "correct"
	FeedbackInvalid FeedbackType = "invalid"
)

// Feedback is what the input surface shows after each action.
type Feedback struct {
	Message string       `json:"message"`
	Type    FeedbackType `json:"type"`
}

// State holds a single round plus the best score carried across rounds.
type State struct {
	TargetNumber int  // Secret number in [MinNumber, MaxNumber]; fixed for the round.
	Attempts     int  // Valid guesses submitted this round.
	IsGameWon    bool // True once the target was guessed; only StartNewGame clears it.
	GameStarted  bool // True after an explicit start or the first valid guess.
	BestScore    int  // Fewest attempts ever used to win; 0 when no round was won yet.
}

// HasBestScore reports whether a best score has been recorded.
func (s State) HasBestScore() bool { return s.BestScore > 0 }

// Status is a coarse string representation of the round:
// "not_started" | "in_progress" | "won".
func (s State) Status() string {
	switch {
	case s.IsGameWon:
		return "won"
	case s.GameStarted:
		return "in_progress"
	default:
		return "not_started"
	}
}

// EffectKind names a side effect the caller must perform.
type EffectKind string

const (
	EffectPersistBestScore EffectKind = "persist_best_score"
	EffectNotify           EffectKind = "notify"
)

// Effect is a side-effect intent. Only the fields relevant to Kind are set.
type Effect struct {
	Kind        EffectKind
	BestScore   int    // EffectPersistBestScore
	Title       string // EffectNotify
	Description string // EffectNotify
}

// Outcome is the result of one SubmitGuess call.
type Outcome struct {
	State      State
	Feedback   Feedback
	Effects    []Effect
	Guess      int  // Parsed guess; 0 when the input was rejected or ignored.
	ClearInput bool // True when a syntactically valid guess was processed.
	Ignored    bool // True when the round was already won; nothing changed.
}
