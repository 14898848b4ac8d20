package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

// WalletRepository persists a balance mutation together with its ledger
// entry as one durable write, so the live balance and the ledger fold
// cannot drift apart when a write fails.
type WalletRepository interface {
	Apply(ctx context.Context, stats *domain.PlayerStats, entry domain.LedgerEntry) error
}
