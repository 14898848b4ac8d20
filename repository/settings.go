package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

type SettingsRepository interface {
	// Get returns the settings record normalized so every reward slot is
	// populated.
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}
