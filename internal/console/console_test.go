package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/notify"
	"github.com/robalobadob/numguess/internal/session"
	"github.com/robalobadob/numguess/internal/store"
)

type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) - game.MinNumber }

func run(t *testing.T, input string) (string, *notify.Recorder, *store.Memory) {
	t.Helper()
	st := store.NewMemoryStore()
	rec := &notify.Recorder{}
	sess := session.New(context.Background(), game.NewEngine(fixedSource(50)), st, rec, "")

	var out bytes.Buffer
	if err := Run(context.Background(), strings.NewReader(input), &out, sess); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), rec, st
}

func TestRun_PlaysARound(t *testing.T) {
	out, rec, st := run(t, "25\n75\nabc\n\n50\n")

	for _, want := range []string{
		"25 is too low! Try a higher number.",
		"75 is too high! Try a lower number.",
		"Please enter a valid number between 1 and 100!",
		"Correct! The number was 50!",
		"Attempts: 3",
		"Best: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if len(rec.Toasts()) != 1 {
		t.Fatalf("toasts = %+v", rec.Toasts())
	}
	if got, _, _ := st.Get(context.Background(), store.DefaultKey); got != 3 {
		t.Fatalf("stored best = %d", got)
	}
}

func TestRun_GatesGuessesAfterWin(t *testing.T) {
	out, _, _ := run(t, "50\n20\nnew\n20\nquit\n10\n")

	if !strings.Contains(out, "Round over") {
		t.Errorf("expected gating message:\n%s", out)
	}
	if !strings.Contains(out, "New game started!") || !strings.Contains(out, "20 is too low!") {
		t.Errorf("expected a new round:\n%s", out)
	}
	if !strings.Contains(out, "Bye!") || strings.Contains(out, "10 is too low") {
		t.Errorf("quit should stop reading:\n%s", out)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess := session.New(ctx, game.NewEngine(fixedSource(50)), store.NewMemoryStore(), nil, "")
	err := Run(ctx, strings.NewReader("10\n"), &bytes.Buffer{}, sess)
	if err == nil {
		t.Fatal("expected context error")
	}
}
