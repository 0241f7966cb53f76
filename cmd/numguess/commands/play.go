// cmd/numguess/commands/play.go
//
// `numguess play`: interactive terminal round.

package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/robalobadob/numguess/internal/console"
	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/notify"
	"github.com/robalobadob/numguess/internal/session"
	"github.com/robalobadob/numguess/internal/store"
)

func playCmd() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			st, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			var src game.Source
			if cmd.Flags().Changed("seed") {
				src = game.NewSeededSource(seed)
			}
			out := cmd.OutOrStdout()
			sess := session.New(ctx, game.NewEngine(src), st, notify.Writer{W: out}, store.DefaultKey)

			err = console.Run(ctx, cmd.InOrStdin(), out, sess)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "fix the random draw (same seed, same targets)")
	return cmd
}
