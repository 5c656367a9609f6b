// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// TaskService handles task-related use cases.
type TaskService struct {
	addMu   sync.Mutex
	storage ports.Storage
	logger  *log.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(storage ports.Storage, logger *log.Logger) *TaskService {
	return &TaskService{storage: storage, logger: logger}
}

// AddTaskRequest contains the data needed to create a new task.
type AddTaskRequest struct {
	Title    string
	Time     string
	Priority string
}

// AddTask creates a new task at the end of the insertion order.
func (s *TaskService) AddTask(ctx context.Context, req AddTaskRequest) (*domain.Task, error) {
	task, err := domain.NewTask(req.Title, req.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}
	task.Priority = priority

	// NextSeq and Save must not interleave with another add.
	s.addMu.Lock()
	defer s.addMu.Unlock()

	seq, err := s.storage.Tasks().NextSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate task sequence: %w", err)
	}
	task.Seq = seq

	if err := s.storage.Tasks().Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logger.Debug("task added", "id", task.ID, "title", task.Title, "time", task.Time)
	return task, nil
}

// EditTaskRequest rewrites a task. Empty fields keep their current value.
type EditTaskRequest struct {
	Title    string
	Time     string
	Priority string
}

// EditTask applies req to the task with the given id.
func (s *TaskService) EditTask(ctx context.Context, id string, req EditTaskRequest) (*domain.Task, error) {
	task, err := s.storage.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	title, at := req.Title, req.Time
	if title == "" {
		title = task.Title
	}
	if at == "" {
		at = task.Time.String()
	}
	if err := task.Edit(title, at); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}
	if req.Priority != "" {
		p, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return nil, fmt.Errorf("invalid task: %w", err)
		}
		if err := task.SetPriority(p); err != nil {
			return nil, fmt.Errorf("invalid task: %w", err)
		}
	}

	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// ListTasks returns every task ordered by time of day.
func (s *TaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.storage.Tasks().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	domain.SortTasks(tasks)
	return tasks, nil
}

// SearchTasks fuzzy-matches task titles, best match first.
func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	tasks, err := s.storage.Tasks().FindByTitle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a single task by ID.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.storage.Tasks().FindByID(ctx, id)
}

// ToggleTask flips a task between pending and completed.
func (s *TaskService) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.storage.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Toggle()
	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task. There is no undo.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.storage.Tasks().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Debug("task deleted", "id", id)
	return nil
}

// TaskSummary counts completed tasks against the total.
type TaskSummary struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Summary returns the completion counts across all tasks.
func (s *TaskService) Summary(ctx context.Context) (TaskSummary, error) {
	tasks, err := s.storage.Tasks().FindAll(ctx)
	if err != nil {
		return TaskSummary{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	return TaskSummary{Completed: domain.CountCompleted(tasks), Total: len(tasks)}, nil
}
