package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

type QuestRepository interface {
	List(ctx context.Context) ([]domain.Quest, error)
	GetByID(ctx context.Context, id string) (*domain.Quest, error)
	// Upsert inserts or replaces a quest by ID, preserving list order for
	// existing entries.
	Upsert(ctx context.Context, quest *domain.Quest) error
	Delete(ctx context.Context, id string) error
}
