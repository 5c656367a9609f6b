package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/xvierd/prodvana-cli/internal/domain"
)

// Mock implementations for testing interfaces.

type mockWalletRepository struct {
	wallets map[string]domain.Wallet
}

var _ WalletRepository = (*mockWalletRepository)(nil)

func (m *mockWalletRepository) Get(ctx context.Context, owner string) (*domain.Wallet, error) {
	w, ok := m.wallets[owner]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return &w, nil
}

func (m *mockWalletRepository) Save(ctx context.Context, owner string, wallet *domain.Wallet) error {
	m.wallets[owner] = *wallet
	return nil
}

func TestMockWalletRepository(t *testing.T) {
	repo := &mockWalletRepository{wallets: make(map[string]domain.Wallet)}
	ctx := context.Background()

	if _, err := repo.Get(ctx, "ana@example.com"); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("Get() error = %v, want %v", err, domain.ErrWalletNotFound)
	}

	w := domain.NewWallet(50)
	if err := repo.Save(ctx, "ana@example.com", &w); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the caller's copy must not leak into storage.
	w.Coins = 0
	got, err := repo.Get(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Coins != 50 {
		t.Errorf("Coins = %d, want 50", got.Coins)
	}
}

func TestSnapshotZeroValue(t *testing.T) {
	var s Snapshot
	if s.Session != nil || s.App.SignedIn() {
		t.Errorf("zero Snapshot = %+v", s)
	}
}
