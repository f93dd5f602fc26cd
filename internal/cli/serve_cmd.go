package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/studyplan/internal/api"
	"github.com/alexanderramin/studyplan/internal/logger"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plan API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := app.Logger
			if log == nil {
				log = logger.NewNop()
			}
			srv := api.NewServer(app.Config, app.Plans, app.Exports, log)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.HTTPAddr, "listen address")
	return cmd
}
