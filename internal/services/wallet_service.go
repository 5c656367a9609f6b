package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// WalletService handles coin balances, levels and store purchases.
// Wallet updates are serialized so a balance is never read and written by
// two callers at once.
type WalletService struct {
	mu      sync.Mutex
	storage ports.Storage
	catalog domain.Catalog
	logger  *log.Logger
}

// NewWalletService creates a wallet service selling from catalog.
func NewWalletService(storage ports.Storage, catalog domain.Catalog, logger *log.Logger) *WalletService {
	return &WalletService{storage: storage, catalog: catalog, logger: logger}
}

// Catalog returns the items on sale.
func (s *WalletService) Catalog() domain.Catalog {
	return s.catalog
}

// Load returns the owner's wallet, creating one with starting coins on first use.
func (s *WalletService) Load(ctx context.Context, owner string, starting int) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.storage.Wallets().Get(ctx, owner)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	fresh := domain.NewWallet(starting)
	if err := s.storage.Wallets().Save(ctx, owner, &fresh); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	s.logger.Debug("wallet created", "owner", owner, "coins", fresh.Coins)
	return &fresh, nil
}

// Balance returns the owner's stored wallet.
func (s *WalletService) Balance(ctx context.Context, owner string) (*domain.Wallet, error) {
	w, err := s.storage.Wallets().Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return w, nil
}

// Earn credits coins to the owner and returns the updated wallet and the
// number of levels gained.
func (s *WalletService) Earn(ctx context.Context, owner string, coins int) (*domain.Wallet, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.Balance(ctx, owner)
	if err != nil {
		return nil, 0, err
	}

	gained := w.Earn(coins)
	if err := s.storage.Wallets().Save(ctx, owner, w); err != nil {
		return nil, 0, fmt.Errorf("failed to save wallet: %w", err)
	}

	if gained > 0 {
		s.logger.Info("level up", "owner", owner, "level", w.Level)
	}
	return w, gained, nil
}

// Purchase buys itemID for the owner. A rejected purchase leaves the stored
// balance untouched.
func (s *WalletService) Purchase(ctx context.Context, owner, itemID string) (*domain.Wallet, domain.StoreItem, error) {
	item, err := s.catalog.Find(itemID)
	if err != nil {
		return nil, domain.StoreItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.Balance(ctx, owner)
	if err != nil {
		return nil, domain.StoreItem{}, err
	}
	if err := w.Spend(item.Cost); err != nil {
		return nil, item, err
	}
	if err := s.storage.Wallets().Save(ctx, owner, w); err != nil {
		return nil, item, fmt.Errorf("failed to save wallet: %w", err)
	}

	s.logger.Info("purchase", "owner", owner, "item", item.ID, "cost", item.Cost, "coins", w.Coins)
	return w, item, nil
}
