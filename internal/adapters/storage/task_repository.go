package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

const taskColumns = `id, seq, title, time_of_day, completed, priority, created_at, updated_at`

// taskRepository implements ports.TaskRepository using SQLite.
type taskRepository struct {
	db *sql.DB
}

// newTaskRepository creates a new task repository.
func newTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{db: db}
}

// Save persists a task to storage.
func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Seq,
		task.Title,
		int(task.Time),
		task.Completed,
		string(task.Priority),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("failed to save task: duplicate id or sequence: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	return nil
}

// FindByID retrieves a task by its unique identifier.
func (r *taskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// FindAll retrieves every task in insertion order.
func (r *taskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// FindByTitle does a fuzzy search for tasks by title.
func (r *taskRepository) FindByTitle(ctx context.Context, query string) ([]*domain.Task, error) {
	tasks, err := r.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for fuzzy search: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return tasks, nil
	}

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}

	var result []*domain.Task
	for _, match := range fuzzy.Find(query, titles) {
		result = append(result, tasks[match.Index])
	}
	return result, nil
}

// NextSeq returns one past the highest sequence number in use.
func (r *taskRepository) NextSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to get next sequence: %w", err)
	}
	return seq, nil
}

// Update modifies an existing task.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, time_of_day = ?, completed = ?, priority = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Title,
		int(task.Time),
		task.Completed,
		string(task.Priority),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task from storage.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task     domain.Task
		tod      int
		priority string
	)
	err := row.Scan(
		&task.ID,
		&task.Seq,
		&task.Title,
		&tod,
		&task.Completed,
		&priority,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Time = domain.TimeOfDay(tod)
	task.Priority = domain.Priority(priority)
	return &task, nil
}
