package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

type ProtocolRepository interface {
	List(ctx context.Context) ([]domain.Protocol, error)
	GetByID(ctx context.Context, id string) (*domain.Protocol, error)
	Upsert(ctx context.Context, protocol *domain.Protocol) error
	Delete(ctx context.Context, id string) error
}
