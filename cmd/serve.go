package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/adapters/httpapi"
)

var serveAddr string

// serveCmd runs the JSON API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Long: `Serve tasks, sessions, the store and the daily report over HTTP.
The listen address defaults to http.addr from the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = app.config.HTTP.Addr
		}

		ctx, cancel := setupSignalHandler(cmd.Context())
		defer cancel()

		fmt.Fprintf(cmd.ErrOrStderr(), "🚀 Serving the API on %s (Ctrl+C to stop)\n", addr)
		server := httpapi.NewServer(app.svc, addr, Version, app.logger)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("API server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: config http.addr)")
}
