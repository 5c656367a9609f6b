package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/ports"
	"github.com/xvierd/prodvana-cli/internal/services"
)

// statusPayload is the JSON shape of "prodvana status".
type statusPayload struct {
	ports.Snapshot
	Tasks services.TaskSummary `json:"tasks"`
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Display who is signed in, the wallet, today's task progress and any live session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		snap := app.svc.Snapshot(ctx)
		summary, err := app.tasks.Summary(ctx)
		if err != nil {
			return fmt.Errorf("failed to get task summary: %w", err)
		}

		if jsonOutput {
			return printJSON(out, statusPayload{Snapshot: snap, Tasks: summary})
		}

		if snap.App.User == nil {
			fmt.Fprintln(out, "Not signed in. Use --profile you@example.com or run prodvana.")
		} else {
			fmt.Fprintf(out, "👤 %s\n", snap.App.User.Name)
			fmt.Fprintf(out, "   %s\n", walletLine(snap.App.Wallet))
		}
		fmt.Fprintf(out, "%s %s\n", app.config.Theme.IconTask, taskSummary(summary))

		if s := snap.Session; s != nil {
			fmt.Fprintf(out, "🎮 %s session %s", s.Game.Label(), s.State)
			if s.TaskLabel != "" {
				fmt.Fprintf(out, " for %q", s.TaskLabel)
			}
			fmt.Fprintf(out, " (%s remaining)\n", formatClock(s.RemainingTime()))
		}
		return nil
	},
}
