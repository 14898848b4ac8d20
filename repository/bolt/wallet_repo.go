package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type walletRepository struct {
	store *keystore.Store
}

// NewWalletRepository returns a keystore-backed implementation of WalletRepository.
func NewWalletRepository(store *keystore.Store) repository.WalletRepository {
	return &walletRepository{store: store}
}

func (r *walletRepository) Apply(ctx context.Context, stats *domain.PlayerStats, entry domain.LedgerEntry) error {
	var entries []domain.LedgerEntry
	r.store.Get(keystore.KeyLedger, &entries)
	entries = append(entries, entry)
	return r.store.SetAll(map[string]any{
		keystore.KeyPlayerStats: stats,
		keystore.KeyLedger:      entries,
	})
}
