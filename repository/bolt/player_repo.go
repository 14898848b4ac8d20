package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type playerRepository struct {
	store *keystore.Store
}

// NewPlayerRepository returns a keystore-backed implementation of PlayerRepository.
func NewPlayerRepository(store *keystore.Store) repository.PlayerRepository {
	return &playerRepository{store: store}
}

func (r *playerRepository) Get(ctx context.Context) (*domain.PlayerStats, error) {
	stats := domain.DefaultPlayerStats()
	r.store.Get(keystore.KeyPlayerStats, stats)
	stats.Normalize()
	return stats, nil
}

func (r *playerRepository) Save(ctx context.Context, stats *domain.PlayerStats) error {
	return r.store.Set(keystore.KeyPlayerStats, stats)
}
