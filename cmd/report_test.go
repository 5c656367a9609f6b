package cmd

import (
	"strings"
	"testing"

	"github.com/xvierd/prodvana-cli/internal/domain"
)

func TestReportCmd(t *testing.T) {
	c := newCLI(t)

	var task taskJSON
	decodeJSON(t, c.mustRun("--json", "task", "add", "Inbox zero"), &task)
	c.mustRun("task", "add", "Plan week")
	c.mustRun("task", "toggle", task.ID)

	var report struct {
		Productivity int `json:"productivity"`
		Stats        struct {
			TasksCompleted int `json:"tasks_completed"`
			TasksTotal     int `json:"tasks_total"`
			Coins          int `json:"coins"`
		} `json:"stats"`
	}
	decodeJSON(t, c.mustRun("--profile", "dana@example.com", "--json", "report"), &report)
	if report.Productivity != 50 {
		t.Errorf("productivity = %d, want 50", report.Productivity)
	}
	if report.Stats.TasksCompleted != 1 || report.Stats.TasksTotal != 2 {
		t.Errorf("tasks = %d/%d, want 1/2", report.Stats.TasksCompleted, report.Stats.TasksTotal)
	}

	out := c.mustRun("--profile", "dana@example.com", "stats")
	if !strings.Contains(out, "Productivity") {
		t.Errorf("report output = %q", out)
	}
}

func TestReportText(t *testing.T) {
	r := &domain.Report{
		Stats:        domain.DailyStats{TasksCompleted: 3, TasksTotal: 4, CoinsEarned: 80},
		WorkHours:    1.5,
		Productivity: 75,
		FocusScore:   100,
		HealthScore:  60,
		Streak:       2,
		Insights:     []string{"Keep it up"},
	}

	got := reportText(r)
	for _, want := range []string{
		"Worked 1h 30m, productivity 75%, focus 100%, health 60%",
		"Tasks 3/4, coins earned 80, streak 2",
		"- Keep it up",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("reportText() missing %q:\n%s", want, got)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0m"},
		{0.5, "30m"},
		{1, "1h"},
		{2.25, "2h 15m"},
	}
	for _, tt := range tests {
		if got := formatHours(tt.hours); got != tt.want {
			t.Errorf("formatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}
