package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodwaste/internal/api"
	"github.com/chrisdamba/foodwaste/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis, leaderboard and metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metrics := telemetry.NewMetrics()
		p, cleanup, err := newPipeline(ctx, cfg, false, metrics)
		if err != nil {
			return err
		}
		defer cleanup()

		handler := api.NewAPIHandler(p, cfg.Path(cfg.LeaderboardFile), cfg.Server.RequestTimeout)
		return api.Serve(ctx, cfg.Server.Port, api.NewRouter(handler, metrics))
	},
}

func init() {
	serveCmd.Flags().Int("port", 5000, "HTTP port")
	serveCmd.Flags().Duration("request-timeout", 0, "Per-request analysis timeout")
	bindFlags(serveCmd, map[string]string{
		"server.port":            "port",
		"server.request_timeout": "request-timeout",
	})
	rootCmd.AddCommand(serveCmd)
}
