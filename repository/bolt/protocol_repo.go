package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type protocolRepository struct {
	store *keystore.Store
}

// NewProtocolRepository returns a keystore-backed implementation of ProtocolRepository.
func NewProtocolRepository(store *keystore.Store) repository.ProtocolRepository {
	return &protocolRepository{store: store}
}

func (r *protocolRepository) List(ctx context.Context) ([]domain.Protocol, error) {
	var protocols []domain.Protocol
	r.store.Get(keystore.KeyProtocols, &protocols)
	return protocols, nil
}

func (r *protocolRepository) GetByID(ctx context.Context, id string) (*domain.Protocol, error) {
	protocols, _ := r.List(ctx)
	for i := range protocols {
		if protocols[i].ID == id {
			p := protocols[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProtocolNotFound
}

func (r *protocolRepository) Upsert(ctx context.Context, protocol *domain.Protocol) error {
	protocols, _ := r.List(ctx)
	replaced := false
	for i := range protocols {
		if protocols[i].ID == protocol.ID {
			protocols[i] = *protocol
			replaced = true
			break
		}
	}
	if !replaced {
		protocols = append(protocols, *protocol)
	}
	return r.store.Set(keystore.KeyProtocols, protocols)
}

func (r *protocolRepository) Delete(ctx context.Context, id string) error {
	protocols, _ := r.List(ctx)
	kept := protocols[:0]
	found := false
	for _, p := range protocols {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return domain.ErrProtocolNotFound
	}
	return r.store.Set(keystore.KeyProtocols, kept)
}
