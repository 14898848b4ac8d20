package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

type LedgerRepository interface {
	List(ctx context.Context) ([]domain.LedgerEntry, error)
	// Append adds an immutable entry to the log. Existing entries are never
	// mutated or removed.
	Append(ctx context.Context, entry domain.LedgerEntry) error
}
