// cmd/numguess/commands/scores.go
//
// `numguess best` and `numguess history`: read stored scores and won rounds.

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/numguess/internal/store"
)

func bestCmd() *cobra.Command {
	var player string
	cmd := &cobra.Command{
		Use:   "best",
		Short: "Print the best score",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			score, ok, err := st.Get(cmd.Context(), keyFor(player))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No best score yet.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Best: %d attempts\n", score)
			return nil
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "web player ID (default: terminal scores)")
	return cmd
}

func historyCmd() *cobra.Command {
	var (
		player string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List won rounds, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			rounds, err := st.Rounds(cmd.Context(), keyFor(player), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rounds) == 0 {
				fmt.Fprintln(out, "No rounds won yet.")
				return nil
			}
			for _, r := range rounds {
				mark := ""
				if r.NewBest {
					mark = "  🏆"
				}
				fmt.Fprintf(out, "%s  number %3d  in %3d attempts%s\n",
					r.FinishedAt.Local().Format(time.DateTime), r.Target, r.Attempts, mark)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "web player ID (default: terminal scores)")
	cmd.Flags().IntVar(&limit, "limit", store.DefaultHistoryLimit, "maximum rounds to list")
	return cmd
}

func keyFor(player string) string {
	if player == "" {
		return store.DefaultKey
	}
	return store.PlayerKey(player)
}
