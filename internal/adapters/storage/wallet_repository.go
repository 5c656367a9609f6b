package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// walletRepository implements ports.WalletRepository using SQLite.
type walletRepository struct {
	db *sql.DB
}

// newWalletRepository creates a new wallet repository.
func newWalletRepository(db *sql.DB) ports.WalletRepository {
	return &walletRepository{db: db}
}

// Get returns the owner's wallet.
func (r *walletRepository) Get(ctx context.Context, owner string) (*domain.Wallet, error) {
	var w domain.Wallet
	err := r.db.QueryRowContext(ctx,
		`SELECT coins, level, earned FROM wallets WHERE owner = ?`, owner,
	).Scan(&w.Coins, &w.Level, &w.Earned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	return &w, nil
}

// Save inserts or replaces the owner's wallet.
func (r *walletRepository) Save(ctx context.Context, owner string, w *domain.Wallet) error {
	query := `
		INSERT INTO wallets (owner, coins, level, earned, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET
			coins = excluded.coins,
			level = excluded.level,
			earned = excluded.earned,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, owner, w.Coins, w.Level, w.Earned, time.Now()); err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}
