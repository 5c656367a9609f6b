// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/xvierd/prodvana-cli/internal/ports"
	"modernc.org/sqlite"
)

// MemoryPath is the DSN of a private in-memory database.
const MemoryPath = ":memory:"

// busyTimeoutMillis is how long a connection waits on a locked file
// database before failing with SQLITE_BUSY.
const busyTimeoutMillis = 5000

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db          *sql.DB
	taskRepo    ports.TaskRepository
	sessionRepo ports.SessionRepository
	walletRepo  ports.WalletRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance. An empty path or MemoryPath
// keeps everything in memory for the life of the process.
func New(dbPath string) (ports.Storage, error) {
	if dbPath == "" {
		dbPath = MemoryPath
	}

	dsn := dbPath
	if dbPath != MemoryPath {
		dsn = fileDSN(dbPath)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == MemoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:          db,
		taskRepo:    newTaskRepository(db),
		sessionRepo: newSessionRepository(db),
		walletRepo:  newWalletRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// fileDSN sets the busy timeout on every pooled connection, which a one-off
// PRAGMA would not.
func fileDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", path, sep, busyTimeoutMillis)
}

// NewMemory creates a new in-memory SQLite storage instance.
func NewMemory() (ports.Storage, error) {
	return New(MemoryPath)
}

// Tasks returns the task repository.
func (s *sqliteStorage) Tasks() ports.TaskRepository {
	return s.taskRepo
}

// Sessions returns the session history repository.
func (s *sqliteStorage) Sessions() ports.SessionRepository {
	return s.sessionRepo
}

// Wallets returns the wallet repository.
func (s *sqliteStorage) Wallets() ports.WalletRepository {
	return s.walletRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		title TEXT NOT NULL,
		time_of_day INTEGER NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'medium',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_seq ON tasks(seq);
	CREATE INDEX IF NOT EXISTS idx_tasks_time ON tasks(time_of_day, seq);

	CREATE TABLE IF NOT EXISTS session_records (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		game TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		task_label TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		coins INTEGER NOT NULL DEFAULT 0,
		focus_seconds INTEGER NOT NULL DEFAULT 0,
		git_branch TEXT NOT NULL DEFAULT '',
		ended_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_session_records_owner ON session_records(owner, ended_at);

	CREATE TABLE IF NOT EXISTS wallets (
		owner TEXT PRIMARY KEY,
		coins INTEGER NOT NULL CHECK (coins >= 0),
		level INTEGER NOT NULL CHECK (level >= 1),
		earned INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == 2067 // SQLITE_CONSTRAINT_UNIQUE
}
