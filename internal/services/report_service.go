package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// ReportService builds the daily report.
type ReportService struct {
	storage ports.Storage
	tasks   *TaskService
	clock   ports.Clock
}

// NewReportService creates a new report service.
func NewReportService(storage ports.Storage, tasks *TaskService, clock ports.Clock) *ReportService {
	return &ReportService{storage: storage, tasks: tasks, clock: clock}
}

// Today returns the report for the owner's current day.
func (s *ReportService) Today(ctx context.Context, owner string) (*domain.Report, error) {
	stats, err := s.storage.Sessions().GetDailyStats(ctx, owner, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	summary, err := s.tasks.Summary(ctx)
	if err != nil {
		return nil, err
	}
	stats.TasksCompleted = summary.Completed
	stats.TasksTotal = summary.Total

	w, err := s.storage.Wallets().Get(ctx, owner)
	switch {
	case err == nil:
		stats.Level = w.Level
		stats.Coins = w.Coins
	case errors.Is(err, domain.ErrWalletNotFound):
		stats.Level = 1
	default:
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	report := domain.BuildReport(*stats)
	return &report, nil
}
