package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type ledgerRepository struct {
	store *keystore.Store
}

// NewLedgerRepository returns a keystore-backed implementation of LedgerRepository.
func NewLedgerRepository(store *keystore.Store) repository.LedgerRepository {
	return &ledgerRepository{store: store}
}

func (r *ledgerRepository) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	r.store.Get(keystore.KeyLedger, &entries)
	return entries, nil
}

func (r *ledgerRepository) Append(ctx context.Context, entry domain.LedgerEntry) error {
	entries, _ := r.List(ctx)
	entries = append(entries, entry)
	return r.store.Set(keystore.KeyLedger, entries)
}
