// Package cmd provides the CLI commands for the Prodvana application.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	configPath string
	logLevel   string
	profile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prodvana",
	Short: "Prodvana - gamified focus sessions and daily tasks",
	Long: `Prodvana turns focus time into a game. Plan the day as a task list,
run timed farm or fishing sessions to earn coins, spend them in the store
and check your daily report.

Run "prodvana" with no arguments to open the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runDashboard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: config storage.path, in-memory when empty)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.prodvana/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Sign in as this email before running the command")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Prodvana CLI\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// ensureSignedIn signs in the --profile user, or starts a trial when none was given.
// Commands that touch the wallet call it first.
func ensureSignedIn(cmd *cobra.Command) error {
	if _, err := app.svc.Owner(); err == nil {
		return nil
	}
	if err := app.svc.StartTrial(cmd.Context()); err != nil {
		return fmt.Errorf("failed to start trial: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "No --profile given, using a trial account.")
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// taskSummary is the one-line completion count shown by several commands.
func taskSummary(s services.TaskSummary) string {
	return fmt.Sprintf("%d/%d tasks done", s.Completed, s.Total)
}

// walletLine renders the coin balance and level.
func walletLine(w *domain.Wallet) string {
	if w == nil {
		return "no wallet"
	}
	return fmt.Sprintf("🪙 %d coins · level %d (%d%% to next)", w.Coins, w.Level, w.LevelProgress())
}

// formatMinutes formats a duration as a human-friendly string like "25m" or "1h30m".
func formatMinutes(d time.Duration) string {
	if d >= time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}

// formatClock formats a duration as MM:SS.
func formatClock(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
