package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

type CalorieRepository interface {
	Get(ctx context.Context) (*domain.CalorieState, error)
	Save(ctx context.Context, state *domain.CalorieState) error
}
