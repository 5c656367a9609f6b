package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/game"
)

var (
	sessionTask    string
	sessionMinutes int
	sessionNoTUI   bool
)

// sessionCmd runs one focus session in the foreground.
var sessionCmd = &cobra.Command{
	Use:       "session [farm|fishing]",
	Aliases:   []string{"play"},
	Short:     "Run a focus session",
	ValidArgs: []string{string(domain.GameFarm), string(domain.GameFishing)},
	Args:      cobra.MaximumNArgs(1),
	Long: `Run a timed farm or fishing session. Finish it to earn coins.

Without --no-tui the full-screen session screen opens at the setup form.
With --no-tui the session starts right away using --task and --minutes and
the reward is claimed when the countdown ends. Ctrl+C abandons it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSignedIn(cmd); err != nil {
			return err
		}

		g := app.config.Game()
		if len(args) == 1 {
			parsed, err := domain.ParseGame(args[0])
			if err != nil {
				return err
			}
			g = parsed
		}

		ctx, cancel := setupSignalHandler(cmd.Context())
		defer cancel()

		if !sessionNoTUI {
			return runGameSession(ctx, cmd.OutOrStdout(), g)
		}

		minutes := sessionMinutes
		if minutes == 0 {
			minutes = game.ForGame(g, app.config).DefaultDuration()
		}
		return runHeadlessSession(ctx, cmd.OutOrStdout(), g, minutes)
	},
}

func init() {
	sessionCmd.Flags().StringVar(&sessionTask, "task", "", "What you are working on (required with --no-tui)")
	sessionCmd.Flags().IntVarP(&sessionMinutes, "minutes", "m", 0, "Session length in minutes, one of the configured presets")
	sessionCmd.Flags().BoolVar(&sessionNoTUI, "no-tui", false, "Print progress instead of opening the session screen")
}

// runHeadlessSession starts a session and blocks until it completes and is
// claimed, or ctx ends and it is abandoned.
func runHeadlessSession(ctx context.Context, out io.Writer, g domain.GameType, minutes int) error {
	s, err := app.svc.StartSession(ctx, string(g), sessionTask, minutes)
	if err != nil {
		return err
	}

	mode := game.ForGame(g, app.config)
	fmt.Fprintf(out, "%s %s: %s for %s\n", mode.Character(), mode.Title(), s.TaskLabel, formatMinutes(time.Duration(s.Duration)*time.Minute))
	fmt.Fprintf(out, "   %s\n", mode.Activity())

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastMinute := -1
	for {
		select {
		case <-ctx.Done():
			if err := app.svc.CancelSession(context.WithoutCancel(ctx)); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nSession abandoned. No coins this time.")
			return nil
		case <-ticker.C:
		}

		cur, ok := app.sessions.Current()
		if !ok {
			return domain.ErrNoActiveSession
		}
		if cur.State == domain.StateCompleted {
			break
		}
		if m := cur.Remaining / 60; m != lastMinute {
			lastMinute = m
			fmt.Fprintf(out, "   %s remaining\n", formatClock(cur.RemainingTime()))
		}
	}

	outcome, err := app.svc.FinishSession(ctx)
	if err != nil {
		return err
	}
	printOutcome(out, outcome.Result, outcome.LevelsGained, outcome.Wallet)
	return nil
}

// printOutcome announces a claimed reward.
func printOutcome(out io.Writer, r domain.SessionResult, levelsGained int, w domain.Wallet) {
	mode := game.ForGame(r.Game, app.config)
	fmt.Fprintf(out, "\n%s %s +%d coins for %s on %q\n",
		mode.RewardIcon(), mode.CompletionTitle(), r.Coins, formatMinutes(time.Duration(r.Duration)*time.Minute), r.TaskLabel)
	if levelsGained > 0 {
		fmt.Fprintf(out, "⭐ Level up! You are now level %d\n", w.Level)
	}
	fmt.Fprintf(out, "   %s\n", walletLine(&w))
}
