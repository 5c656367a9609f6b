package domain

import "testing"

func TestBuildReport(t *testing.T) {
	r := BuildReport(DailyStats{
		SessionsFinished:  2,
		SessionsUnclaimed: 1,
		SessionsAbandoned: 1,
		FocusMinutes:      95,
		TasksCompleted:    7,
		TasksTotal:        10,
	})

	if r.WorkHours != 1.6 {
		t.Errorf("WorkHours = %v, want 1.6", r.WorkHours)
	}
	if r.FocusTime != 76 {
		t.Errorf("FocusTime = %d, want 76", r.FocusTime)
	}
	if r.BreakTime != 19 {
		t.Errorf("BreakTime = %d, want 19", r.BreakTime)
	}
	if r.Productivity != 70 {
		t.Errorf("Productivity = %d, want 70", r.Productivity)
	}
	if r.FocusScore != 75 {
		t.Errorf("FocusScore = %d, want 75", r.FocusScore)
	}
	if r.HealthScore != 16 {
		t.Errorf("HealthScore = %d, want 16", r.HealthScore)
	}
	if r.Streak != 2 {
		t.Errorf("Streak = %d, want 2", r.Streak)
	}
	if len(r.Insights) == 0 {
		t.Error("Insights is empty")
	}
}

func TestBuildReport_Empty(t *testing.T) {
	r := BuildReport(DailyStats{})
	if r.Productivity != 0 || r.FocusScore != 0 || r.HealthScore != 0 || r.WorkHours != 0 {
		t.Errorf("empty report = %+v", r)
	}
}

func TestBuildReport_HealthCapped(t *testing.T) {
	r := BuildReport(DailyStats{FocusMinutes: 15 * 60})
	if r.HealthScore != 100 {
		t.Errorf("HealthScore = %d, want 100", r.HealthScore)
	}
}
