package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session history repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists a session record.
func (r *sessionRepository) Save(ctx context.Context, rec *domain.SessionRecord) error {
	query := `
		INSERT INTO session_records
			(id, owner, game, duration_minutes, task_label, notes, outcome, coins, focus_seconds, git_branch, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Owner,
		string(rec.Game),
		rec.Duration,
		rec.TaskLabel,
		rec.Notes,
		string(rec.Outcome),
		rec.Coins,
		rec.FocusSeconds,
		rec.GitBranch,
		rec.EndedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}

// FindRecent retrieves an owner's records that ended at or after since.
func (r *sessionRepository) FindRecent(ctx context.Context, owner string, since time.Time) ([]*domain.SessionRecord, error) {
	query := `
		SELECT id, owner, game, duration_minutes, task_label, notes, outcome, coins, focus_seconds, git_branch, ended_at
		FROM session_records
		WHERE owner = ? AND ended_at >= ?
		ORDER BY ended_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, owner, since.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to query session records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.SessionRecord
	for rows.Next() {
		var (
			rec     domain.SessionRecord
			game    string
			outcome string
			endedAt int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Owner,
			&game,
			&rec.Duration,
			&rec.TaskLabel,
			&rec.Notes,
			&outcome,
			&rec.Coins,
			&rec.FocusSeconds,
			&rec.GitBranch,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session record: %w", err)
		}
		rec.Game = domain.GameType(game)
		rec.Outcome = domain.SessionOutcome(outcome)
		rec.EndedAt = time.Unix(0, endedAt)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session records: %w", err)
	}
	return records, nil
}

// GetDailyStats returns aggregated session statistics for the day containing date.
func (r *sessionRepository) GetDailyStats(ctx context.Context, owner string, date time.Time) (*domain.DailyStats, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT
			COUNT(CASE WHEN outcome = 'finished' THEN 1 END),
			COUNT(CASE WHEN outcome = 'unclaimed' THEN 1 END),
			COUNT(CASE WHEN outcome = 'abandoned' THEN 1 END),
			COALESCE(SUM(focus_seconds), 0),
			COALESCE(SUM(coins), 0)
		FROM session_records
		WHERE owner = ? AND ended_at >= ? AND ended_at < ?
	`

	var (
		stats        domain.DailyStats
		focusSeconds int
	)
	err := r.db.QueryRowContext(ctx, query, owner, startOfDay.UnixNano(), endOfDay.UnixNano()).Scan(
		&stats.SessionsFinished,
		&stats.SessionsUnclaimed,
		&stats.SessionsAbandoned,
		&focusSeconds,
		&stats.CoinsEarned,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats.FocusMinutes = focusSeconds / 60
	return &stats, nil
}
