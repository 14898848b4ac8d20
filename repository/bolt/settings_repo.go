package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type settingsRepository struct {
	store *keystore.Store
}

// NewSettingsRepository returns a keystore-backed implementation of SettingsRepository.
func NewSettingsRepository(store *keystore.Store) repository.SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	settings := &domain.Settings{}
	r.store.Get(keystore.KeySettings, settings)
	// Normalizing here is the single defaulting step; callers assume
	// fully-populated reward tables.
	settings.Normalize()
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	settings.Normalize()
	return r.store.Set(keystore.KeySettings, settings)
}
