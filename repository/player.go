package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

type PlayerRepository interface {
	// Get returns the singleton stats record, normalized, creating the
	// default record when none is stored.
	Get(ctx context.Context) (*domain.PlayerStats, error)
	Save(ctx context.Context, stats *domain.PlayerStats) error
}
