// cmd/numguess/commands/serve.go
//
// `numguess serve`: HTTP JSON API and websocket toast stream.

package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numguess/internal/httpserver"
)

func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON/WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if port != "" {
				cfg.Port = port
			}
			srv := httpserver.New(httpserver.Options{Config: cfg, Store: st})
			log.Info().Str("port", cfg.Port).Msg("starting numguess server")
			return srv.Run(ctx, ":"+cfg.Port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 5175)")
	return cmd
}
