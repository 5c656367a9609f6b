package cmd

import (
	"strings"
	"testing"

	"github.com/xvierd/prodvana-cli/internal/domain"
)

func TestSessionCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown game", []string{"session", "chess", "--no-tui"}, "game must be one of"},
		{"not a preset", []string{"session", "fishing", "--no-tui", "--task", "Write docs", "--minutes", "7"}, domain.ErrInvalidDuration.Error()},
		{"no task", []string{"play", "farm", "--no-tui", "--minutes", "15"}, domain.ErrEmptySessionLabel.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)
			_, _, err := c.run(append([]string{"--profile", "hank@example.com"}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want an error containing %q", err, tt.want)
			}
		})
	}
}

func TestSessionCmd_TooManyArgs(t *testing.T) {
	if err := sessionCmd.Args(sessionCmd, []string{"farm", "fishing"}); err == nil {
		t.Error("expected an error for two games")
	}
}

func TestPrintOutcome(t *testing.T) {
	var b strings.Builder
	result := domain.SessionResult{Game: domain.GameFishing, Duration: 15, Coins: 30, TaskLabel: "Docs"}
	printOutcome(&b, result, 1, domain.Wallet{Coins: 130, Level: 2, Earned: 130})

	out := b.String()
	if !strings.Contains(out, "+30 coins") {
		t.Errorf("outcome output = %q", out)
	}
	if !strings.Contains(strings.ToLower(out), "level") {
		t.Errorf("outcome should mention the level up: %q", out)
	}
}
