package game

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// fixedSource always draws the same target.
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) - MinNumber }

// seqSource draws targets from a list, repeating the last one.
type seqSource struct {
	targets []int
	i       int
}

func (s *seqSource) IntN(n int) int {
	t := s.targets[min(s.i, len(s.targets)-1)]
	s.i++
	return t - MinNumber
}

func TestInitialize(t *testing.T) {
	e := NewEngine(fixedSource(42))
	s := e.Initialize(0)
	if s.TargetNumber != 42 || s.Attempts != 0 || s.IsGameWon || s.GameStarted {
		t.Fatalf("unexpected initial state: %+v", s)
	}
	if s.HasBestScore() {
		t.Fatalf("expected no best score, got %d", s.BestScore)
	}
	if s.Status() != "not_started" {
		t.Fatalf("status = %q", s.Status())
	}
	if got := e.Initialize(7).BestScore; got != 7 {
		t.Fatalf("best score = %d, want 7", got)
	}
	if got := e.Initialize(-3).BestScore; got != 0 {
		t.Fatalf("negative best score should be treated as absent, got %d", got)
	}
}

func TestSubmitGuess_Grid(t *testing.T) {
	for target := MinNumber; target <= MaxNumber; target++ {
		e := NewEngine(fixedSource(target))
		base := e.Initialize(0)
		for g := MinNumber; g <= MaxNumber; g++ {
			out := e.SubmitGuess(base, strconv.Itoa(g))
			var want FeedbackType
			switch {
			case g == target:
				want = FeedbackCorrect
			case g < target:
				want = FeedbackTooLow
			default:
				want = FeedbackTooHigh
			}
			if out.Feedback.Type != want {
				t.Fatalf("target=%d guess=%d: type=%q want %q", target, g, out.Feedback.Type, want)
			}
			if out.State.Attempts != 1 || !out.ClearInput || out.Guess != g {
				t.Fatalf("target=%d guess=%d: bad outcome %+v", target, g, out)
			}
			if out.State.IsGameWon != (g == target) {
				t.Fatalf("target=%d guess=%d: won=%v", target, g, out.State.IsGameWon)
			}
		}
	}
}

func TestSubmitGuess_InvalidDoesNotCountAttempt(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := e.Initialize(0)
	s = e.SubmitGuess(s, "10").State

	for _, raw := range []string{"", "   ", "abc", "0", "101", "-5", "3.7", "12abc", "1e2"} {
		out := e.SubmitGuess(s, raw)
		if out.Feedback.Type != FeedbackInvalid {
			t.Errorf("%q: type = %q, want invalid", raw, out.Feedback.Type)
		}
		if out.Feedback.Message != "Please enter a valid number between 1 and 100!" {
			t.Errorf("%q: message = %q", raw, out.Feedback.Message)
		}
		if out.State != s {
			t.Errorf("%q: state changed: %+v -> %+v", raw, s, out.State)
		}
		if out.ClearInput || len(out.Effects) != 0 {
			t.Errorf("%q: expected no clear and no effects, got %+v", raw, out)
		}
	}
}

func TestSubmitGuess_WhitespaceTolerated(t *testing.T) {
	e := NewEngine(fixedSource(50))
	out := e.SubmitGuess(e.Initialize(0), "  50\n")
	if out.Feedback.Type != FeedbackCorrect {
		t.Fatalf("type = %q", out.Feedback.Type)
	}
}

func TestScenario_Target50(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := e.Initialize(0)

	guesses := []string{"25", "75", "60", "55", "50"}
	want := []FeedbackType{FeedbackTooLow, FeedbackTooHigh, FeedbackTooHigh, FeedbackTooHigh, FeedbackCorrect}
	for i, g := range guesses {
		out := e.SubmitGuess(s, g)
		if out.Feedback.Type != want[i] {
			t.Fatalf("guess %s: type=%q want %q", g, out.Feedback.Type, want[i])
		}
		s = out.State
	}
	if s.Attempts != 5 || !s.IsGameWon || s.Status() != "won" {
		t.Fatalf("final state: %+v", s)
	}
}

func TestSubmitGuess_Messages(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := e.Initialize(0)
	if got := e.SubmitGuess(s, "25").Feedback.Message; got != "25 is too low! Try a higher number." {
		t.Errorf("low message = %q", got)
	}
	if got := e.SubmitGuess(s, "75").Feedback.Message; got != "75 is too high! Try a lower number." {
		t.Errorf("high message = %q", got)
	}
	if got := e.SubmitGuess(s, "50").Feedback.Message; !strings.Contains(got, "The number was 50") {
		t.Errorf("correct message = %q", got)
	}
}

func TestFirstWin_SetsBestScore(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := e.Initialize(0)
	s = play(t, e, s, 6)

	out := e.SubmitGuess(s, "50")
	if out.State.Attempts != 7 || out.State.BestScore != 7 {
		t.Fatalf("state = %+v", out.State)
	}
	if len(out.Effects) != 2 {
		t.Fatalf("effects = %+v", out.Effects)
	}
	if p := out.Effects[0]; p.Kind != EffectPersistBestScore || p.BestScore != 7 {
		t.Fatalf("persist effect = %+v", p)
	}
	n := out.Effects[1]
	if n.Kind != EffectNotify || !strings.Contains(n.Title, "New Best Score") || !strings.Contains(n.Description, "7 attempts") {
		t.Fatalf("notify effect = %+v", n)
	}
}

func TestWorseWin_KeepsBestScore(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := e.Initialize(7)
	s = play(t, e, s, 9)

	out := e.SubmitGuess(s, "50")
	if out.State.BestScore != 7 {
		t.Fatalf("best score = %d, want 7", out.State.BestScore)
	}
	if len(out.Effects) != 1 || out.Effects[0].Kind != EffectNotify {
		t.Fatalf("effects = %+v", out.Effects)
	}
	n := out.Effects[0]
	if !strings.Contains(n.Title, "Congratulations") || n.Description != "You found the number 50 in 10 attempts!" {
		t.Fatalf("notify effect = %+v", n)
	}
}

func TestEqualWin_IsNotARecord(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := play(t, e, e.Initialize(3), 2)
	out := e.SubmitGuess(s, "50")
	if out.State.BestScore != 3 || len(out.Effects) != 1 {
		t.Fatalf("tie should not be a record: %+v", out)
	}
}

func TestBestScore_Monotonic(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := e.Initialize(0)
	for _, misses := range []int{5, 2, 8, 0, 3} {
		prev := s.BestScore
		s, _ = e.StartNewGame(s)
		s = play(t, e, s, misses)
		s = e.SubmitGuess(s, "50").State

		want := misses + 1
		if prev > 0 && prev < want {
			want = prev
		}
		if s.BestScore != want {
			t.Fatalf("after win in %d: best = %d, want %d", misses+1, s.BestScore, want)
		}
	}
}

func TestStartNewGame_Resets(t *testing.T) {
	src := &seqSource{targets: []int{50, 50, 12}}
	e := NewEngine(src)
	s := e.Initialize(4)
	s = e.SubmitGuess(s, "50").State
	if !s.IsGameWon {
		t.Fatal("expected a win")
	}

	s, fb := e.StartNewGame(s)
	if s.Attempts != 0 || s.IsGameWon || !s.GameStarted || s.BestScore != 1 {
		t.Fatalf("state after new game: %+v", s)
	}
	if s.TargetNumber != 50 {
		t.Fatalf("repeat target should be allowed, got %d", s.TargetNumber)
	}
	if fb.Type != FeedbackIdle || !strings.HasPrefix(fb.Message, "New game started") {
		t.Fatalf("feedback = %+v", fb)
	}

	s, _ = e.StartNewGame(s)
	if s.TargetNumber != 12 || s.Status() != "in_progress" {
		t.Fatalf("second new game: %+v", s)
	}
}

func TestSubmitGuess_IgnoredWhenWon(t *testing.T) {
	e := NewEngine(fixedSource(50))
	s := e.SubmitGuess(e.Initialize(0), "50").State
	out := e.SubmitGuess(s, "20")
	if !out.Ignored || out.State != s || len(out.Effects) != 0 {
		t.Fatalf("expected ignored outcome, got %+v", out)
	}
}

func TestParseGuess(t *testing.T) {
	if n, err := ParseGuess(" 100 "); err != nil || n != 100 {
		t.Fatalf("ParseGuess(100) = %d, %v", n, err)
	}
	if _, err := ParseGuess("3.7"); !errors.Is(err, ErrInvalidGuess) {
		t.Fatalf("expected ErrInvalidGuess, got %v", err)
	}
	if _, err := ParseGuess("0"); !errors.Is(err, ErrInvalidGuess) {
		t.Fatalf("expected ErrInvalidGuess, got %v", err)
	}
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := NewEngine(NewSeededSource(99))
	b := NewEngine(NewSeededSource(99))
	for i := 0; i < 50; i++ {
		x, y := a.Initialize(0).TargetNumber, b.Initialize(0).TargetNumber
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x < MinNumber || x > MaxNumber {
			t.Fatalf("draw out of range: %d", x)
		}
	}
}

func TestCryptoSource_Range(t *testing.T) {
	e := NewEngine(nil)
	for i := 0; i < 500; i++ {
		if n := e.Initialize(0).TargetNumber; n < MinNumber || n > MaxNumber {
			t.Fatalf("draw out of range: %d", n)
		}
	}
}

// play submits n wrong guesses (always 1 or 100, never the target 50).
func play(t *testing.T, e *Engine, s State, n int) State {
	t.Helper()
	for i := 0; i < n; i++ {
		g := "1"
		if i%2 == 1 {
			g = "100"
		}
		s = e.SubmitGuess(s, g).State
	}
	return s
}

func TestLockedSource_Concurrent(t *testing.T) {
	e := NewEngine(NewLockedSource(NewSeededSource(1)))
	done := make(chan int)
	for i := 0; i < 8; i++ {
		go func() {
			n := 0
			for j := 0; j < 100; j++ {
				n = e.Initialize(0).TargetNumber
			}
			done <- n
		}()
	}
	for i := 0; i < 8; i++ {
		if n := <-done; n < MinNumber || n > MaxNumber {
			t.Fatalf("draw out of range: %d", n)
		}
	}
}
