package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

var reportCopy bool

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"stats"},
	Short:   "Show today's productivity report",
	Long:    `Display today's work hours, productivity, focus and health scores, streak and insights.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSignedIn(cmd); err != nil {
			return err
		}

		report, err := app.svc.Report(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		if reportCopy {
			if err := clipboard.WriteAll(reportText(report)); err != nil {
				app.logger.Warn("failed to copy report", "err", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Could not copy the report to the clipboard.")
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "Report copied to the clipboard.")
			}
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), report)
		}

		fmt.Fprintln(cmd.OutOrStdout())
		renderReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVarP(&reportCopy, "copy", "c", false, "Copy a plain text summary to the clipboard")
}

func renderReport(out io.Writer, r *domain.Report) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C6FE0"))

	fmt.Fprintf(out, "  %s\n", titleStyle.Render("Today's report"))
	fmt.Fprintf(out, "  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	fmt.Fprintf(out, "  Worked %s · %s focus · %s break\n\n",
		valueStyle.Render(formatHours(r.WorkHours)),
		valueStyle.Render(fmt.Sprintf("%dm", r.FocusTime)),
		valueStyle.Render(fmt.Sprintf("%dm", r.BreakTime)),
	)

	scores := []struct {
		label string
		value int
	}{
		{"Productivity", r.Productivity},
		{"Focus", r.FocusScore},
		{"Health", r.HealthScore},
	}
	const maxBarWidth = 30
	for _, s := range scores {
		width := int(math.Round(float64(s.value) / 100 * maxBarWidth))
		fmt.Fprintf(out, "  %s %s %d%%\n",
			dimStyle.Render(fmt.Sprintf("%-12s", s.label)),
			barColor.Render(buildBar(width)),
			s.value,
		)
	}
	fmt.Fprintln(out)

	st := r.Stats
	fmt.Fprintf(out, "  %s  %s\n", dimStyle.Render("Tasks:"), valueStyle.Render(fmt.Sprintf("%d/%d", st.TasksCompleted, st.TasksTotal)))
	fmt.Fprintf(out, "  %s  %s\n", dimStyle.Render("Sessions:"),
		valueStyle.Render(fmt.Sprintf("%d finished, %d unclaimed, %d abandoned", st.SessionsFinished, st.SessionsUnclaimed, st.SessionsAbandoned)))
	fmt.Fprintf(out, "  %s  %s\n", dimStyle.Render("Coins earned:"), valueStyle.Render(fmt.Sprintf("%d", st.CoinsEarned)))
	fmt.Fprintf(out, "  %s  %s\n", dimStyle.Render("Streak:"), valueStyle.Render(fmt.Sprintf("%d", r.Streak)))
	fmt.Fprintf(out, "  %s  %s\n\n", dimStyle.Render("Level:"), valueStyle.Render(fmt.Sprintf("%d (%d coins)", st.Level, st.Coins)))

	if len(r.Insights) > 0 {
		fmt.Fprintf(out, "  %s\n", dimStyle.Render("Insights"))
		for _, in := range r.Insights {
			fmt.Fprintf(out, "  • %s\n", in)
		}
		fmt.Fprintln(out)
	}
}

// reportText is the unstyled summary used for the clipboard.
func reportText(r *domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prodvana report\n")
	fmt.Fprintf(&b, "Worked %s, productivity %d%%, focus %d%%, health %d%%\n", formatHours(r.WorkHours), r.Productivity, r.FocusScore, r.HealthScore)
	fmt.Fprintf(&b, "Tasks %d/%d, coins earned %d, streak %d\n", r.Stats.TasksCompleted, r.Stats.TasksTotal, r.Stats.CoinsEarned, r.Streak)
	for _, in := range r.Insights {
		fmt.Fprintf(&b, "- %s\n", in)
	}
	return b.String()
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}

// formatHours formats a float hours value as "Xh Ym".
func formatHours(h float64) string {
	if h < 0.01 {
		return "0m"
	}
	hours := int(h)
	minutes := int(math.Round((h - float64(hours)) * 60))
	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
