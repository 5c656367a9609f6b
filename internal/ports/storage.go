// Package ports defines the interfaces (driven and driving ports)
// for the Prodvana application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/prodvana-cli/internal/domain"
)

// TaskRepository defines the interface for task persistence.
// This is a driven port (implemented by adapters).
type TaskRepository interface {
	// Save persists a new task.
	Save(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindAll retrieves every task in insertion order.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByTitle fuzzy-matches task titles against query, best match first.
	FindByTitle(ctx context.Context, query string) ([]*domain.Task, error)

	// NextSeq returns the next insertion sequence number.
	NextSeq(ctx context.Context) (int64, error)

	// Update modifies an existing task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from storage.
	Delete(ctx context.Context, id string) error
}

// SessionRepository stores the history of finished, unclaimed and abandoned
// session runs.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save persists a session record.
	Save(ctx context.Context, record *domain.SessionRecord) error

	// FindRecent retrieves an owner's records that ended at or after since,
	// newest first.
	FindRecent(ctx context.Context, owner string, since time.Time) ([]*domain.SessionRecord, error)

	// GetDailyStats aggregates an owner's records for the day containing date.
	// Task and wallet fields are left zero.
	GetDailyStats(ctx context.Context, owner string, date time.Time) (*domain.DailyStats, error)
}

// WalletRepository persists one wallet per owner.
// This is a driven port (implemented by adapters).
type WalletRepository interface {
	// Get returns the owner's wallet or domain.ErrWalletNotFound.
	Get(ctx context.Context, owner string) (*domain.Wallet, error)

	// Save inserts or replaces the owner's wallet.
	Save(ctx context.Context, owner string, wallet *domain.Wallet) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Tasks provides access to task operations.
	Tasks() TaskRepository

	// Sessions provides access to session history.
	Sessions() SessionRepository

	// Wallets provides access to wallets.
	Wallets() WalletRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
