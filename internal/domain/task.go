// Package domain contains the core business entities for Prodvana.
// These entities represent the fundamental concepts of the productivity game
// and are independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskTitle       = errors.New("task title cannot be empty")
	ErrInvalidTime          = errors.New("time must be in HH:MM format")
	ErrInvalidPriority      = errors.New("priority must be one of high, medium, low")
	ErrTaskNotFound         = errors.New("task not found")
	ErrEmptySessionLabel    = errors.New("please set the session task first")
	ErrInvalidDuration      = errors.New("invalid session duration")
	ErrInvalidGame          = errors.New("game must be one of farm, fishing")
	ErrInvalidTransition    = errors.New("invalid session transition")
	ErrSessionAlreadyActive = errors.New("session already active")
	ErrNoActiveSession      = errors.New("no active session")
	ErrInsufficientFunds    = errors.New("not enough coins")
	ErrItemNotFound         = errors.New("store item not found")
	ErrNotAuthenticated     = errors.New("not signed in")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrWalletNotFound       = errors.New("wallet not found")
)

// Priority ranks a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority validates a priority string. An empty string yields medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string (24h clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Task is a scheduled item on the daily task list.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Time      TimeOfDay `json:"time"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a new medium priority task scheduled at hhmm.
func NewTask(title, hhmm string) (*Task, error) {
	title, at, err := validateTask(title, hhmm)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Task{
		ID:        generateID(),
		Title:     title,
		Time:      at,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func validateTask(title, hhmm string) (string, TimeOfDay, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", 0, ErrEmptyTaskTitle
	}
	at, err := ParseTimeOfDay(hhmm)
	if err != nil {
		return "", 0, err
	}
	return title, at, nil
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now()
}

// Edit rewrites the title and scheduled time in place.
func (t *Task) Edit(title, hhmm string) error {
	title, at, err := validateTask(title, hhmm)
	if err != nil {
		return err
	}
	t.Title = title
	t.Time = at
	t.UpdatedAt = time.Now()
	return nil
}

// SetPriority changes the task priority.
func (t *Task) SetPriority(p Priority) error {
	parsed, err := ParsePriority(string(p))
	if err != nil || strings.TrimSpace(string(p)) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}
	t.Priority = parsed
	t.UpdatedAt = time.Now()
	return nil
}

// SortTasks orders tasks by time of day, oldest insertion first on ties.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Time != tasks[j].Time {
			return tasks[i].Time < tasks[j].Time
		}
		return tasks[i].Seq < tasks[j].Seq
	})
}

// CountCompleted returns how many of the tasks are done.
func CountCompleted(tasks []*Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
