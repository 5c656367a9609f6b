package domain

import "math"

// DailyStats aggregates the raw numbers behind a daily report.
type DailyStats struct {
	SessionsFinished  int `json:"sessions_finished"`
	SessionsUnclaimed int `json:"sessions_unclaimed"`
	SessionsAbandoned int `json:"sessions_abandoned"`
	FocusMinutes      int `json:"focus_minutes"`
	CoinsEarned       int `json:"coins_earned"`
	TasksCompleted    int `json:"tasks_completed"`
	TasksTotal        int `json:"tasks_total"`
	Level             int `json:"level"`
	Coins             int `json:"coins"`
}

// SessionsCompleted counts sessions whose timer ran out, claimed or not.
func (s DailyStats) SessionsCompleted() int {
	return s.SessionsFinished + s.SessionsUnclaimed
}

// SessionsTotal counts every recorded session.
func (s DailyStats) SessionsTotal() int {
	return s.SessionsCompleted() + s.SessionsAbandoned
}

// Report is the derived view of a day.
type Report struct {
	Stats        DailyStats `json:"stats"`
	WorkHours    float64    `json:"work_hours"`
	FocusTime    int        `json:"focus_minutes"`
	BreakTime    int        `json:"break_minutes"`
	Productivity int        `json:"productivity"`
	FocusScore   int        `json:"focus_score"`
	HealthScore  int        `json:"health_score"`
	Streak       int        `json:"streak"`
	Insights     []string   `json:"insights"`
}

// BuildReport derives the report numbers from stats.
func BuildReport(stats DailyStats) Report {
	hours := math.Round(float64(stats.FocusMinutes)/60*10) / 10

	r := Report{
		Stats:       stats,
		WorkHours:   hours,
		FocusTime:   int(math.Floor(float64(stats.FocusMinutes) * 0.8)),
		BreakTime:   int(math.Floor(float64(stats.FocusMinutes) * 0.2)),
		HealthScore: int(math.Min(100, hours*10)),
		Streak:      stats.TasksCompleted / 3,
	}
	if stats.TasksTotal > 0 {
		r.Productivity = stats.TasksCompleted * 100 / stats.TasksTotal
	}
	if total := stats.SessionsTotal(); total > 0 {
		r.FocusScore = stats.SessionsCompleted() * 100 / total
	}
	r.Insights = insights(r)
	return r
}

func insights(r Report) []string {
	var out []string
	switch {
	case r.Stats.TasksTotal == 0:
		out = append(out, "Add a few tasks to plan your day.")
	case r.Productivity >= 80:
		out = append(out, "Excellent task completion today. Keep it up!")
	case r.Productivity >= 50:
		out = append(out, "Good progress. A couple more tasks and you're there.")
	default:
		out = append(out, "Try breaking big tasks into smaller steps.")
	}

	switch {
	case r.Stats.SessionsTotal() == 0:
		out = append(out, "Start a focus session to earn coins.")
	case r.FocusScore >= 80:
		out = append(out, "Your focus sessions are consistently completed.")
	default:
		out = append(out, "Shorter sessions may help you finish more of them.")
	}

	if r.WorkHours >= 6 {
		out = append(out, "Long day. Remember to take breaks.")
	}
	return out
}
