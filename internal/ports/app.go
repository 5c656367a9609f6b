package ports

import (
	"context"

	"github.com/xvierd/prodvana-cli/internal/domain"
)

// Snapshot is the application state as seen by outer surfaces.
type Snapshot struct {
	App     domain.AppState     `json:"app"`
	Session *domain.GameSession `json:"session,omitempty"`
}

// SessionOutcome is what finishing a session hands back.
type SessionOutcome struct {
	Result       domain.SessionResult `json:"result"`
	LevelsGained int                  `json:"levels_gained"`
	Wallet       domain.Wallet        `json:"wallet"`
}

// AppProvider exposes the application to the HTTP and MCP adapters.
// This is a driving port (implemented by the services layer).
type AppProvider interface {
	// Snapshot returns the current view, user, wallet and live session.
	Snapshot(ctx context.Context) Snapshot

	// Login signs in a registered user. The password is checked for presence only.
	Login(ctx context.Context, name, email, password string) error

	// StartTrial signs in an anonymous user that is logged out after the trial.
	StartTrial(ctx context.Context) error

	// Logout ends any live session and clears the user.
	Logout(ctx context.Context) error

	// ListTasks returns tasks ordered by time of day.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// AddTask creates a task.
	AddTask(ctx context.Context, title, hhmm, priority string) (*domain.Task, error)

	// ToggleTask flips a task's completion.
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)

	// EditTask rewrites a task. Empty fields keep their value.
	EditTask(ctx context.Context, id, title, hhmm, priority string) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// SearchTasks fuzzy-matches task titles.
	SearchTasks(ctx context.Context, query string) ([]*domain.Task, error)

	// Catalog lists store items.
	Catalog() domain.Catalog

	// Purchase buys an item with the signed in user's coins.
	Purchase(ctx context.Context, itemID string) (*domain.Wallet, error)

	// Report returns today's report for the signed in user.
	Report(ctx context.Context) (*domain.Report, error)

	// StartSession sets up, starts and begins a session in one step.
	StartSession(ctx context.Context, game, label string, minutes int) (*domain.GameSession, error)

	// FinishSession claims the reward of a completed session.
	FinishSession(ctx context.Context) (*SessionOutcome, error)

	// RestartSession discards a completed session without claiming it.
	RestartSession(ctx context.Context) error

	// CancelSession abandons a session in preparation or active.
	CancelSession(ctx context.Context) error
}
