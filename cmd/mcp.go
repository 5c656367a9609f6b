package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes tools to manage tasks, run sessions, shop and read the daily report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so the banner goes to stderr.
		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server on stdio (Ctrl+C to stop)")

		ctx, cancel := setupSignalHandler(cmd.Context())
		defer cancel()

		server := mcp.NewServer(app.svc, Version, app.logger)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
