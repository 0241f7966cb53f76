// internal/console/console.go
//
// Package console is the terminal surface for a game session: it reads lines,
// forwards guesses and commands to the session and renders the result.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/session"
)

const banner = `Number Guessing Game
I'm thinking of a number between 1 and 100. Can you guess it?

  🎯 Guess the number between 1 and 100
  📊 Try to win in the fewest attempts possible
  🏆 Beat your personal best score

Commands: "new" starts a new game, "quit" exits.
`

// Run drives sess from in until EOF, "quit", or ctx is cancelled.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session) error {
	fmt.Fprint(out, banner)
	render(out, sess.View())

	sc := bufio.NewScanner(in)
	for {
		prompt(out, sess.View())
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(out, "Bye!")
			return nil
		case "n", "new", "start":
			render(out, sess.Start(ctx))
			continue
		}

		if sess.View().IsGameWon {
			fmt.Fprintln(out, `Round over. Type "new" to play again.`)
			continue
		}
		v, _ := sess.Guess(ctx, line)
		render(out, v)
	}
}

func prompt(out io.Writer, v session.View) {
	switch {
	case v.IsGameWon:
		fmt.Fprint(out, "new/quit> ")
	case v.GameStarted:
		fmt.Fprint(out, "guess> ")
	default:
		fmt.Fprint(out, "start> ")
	}
}

func render(out io.Writer, v session.View) {
	fmt.Fprintf(out, "%s %s\n", marker(v.Feedback.Type), v.Feedback.Message)

	stats := fmt.Sprintf("Attempts: %d", v.Attempts)
	if v.BestScore > 0 {
		stats += fmt.Sprintf("   Best: %d", v.BestScore)
	}
	fmt.Fprintln(out, "  "+stats)

	if v.IsGameWon {
		fmt.Fprintf(out, "  Congratulations! 🎉 You found the number in %d attempts!\n", v.Attempts)
	}
}

func marker(t game.FeedbackType) string {
	switch t {
	case game.FeedbackTooHigh:
		return "▼"
	case game.FeedbackTooLow:
		return "▲"
	case game.FeedbackCorrect:
		return "★"
	case game.FeedbackInvalid:
		return "!"
	default:
		return "·"
	}
}
