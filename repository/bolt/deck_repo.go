package bolt

import (
	"context"

	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type deckRepository struct {
	store *keystore.Store
}

// NewDeckRepository returns a keystore-backed implementation of DeckRepository.
func NewDeckRepository(store *keystore.Store) repository.DeckRepository {
	return &deckRepository{store: store}
}

func (r *deckRepository) Get(ctx context.Context) (*repository.DeckState, error) {
	state := &repository.DeckState{}
	r.store.Get(keystore.KeyDeckOffsets, &state.Offsets)
	r.store.Get(keystore.KeyDeckDismissed, &state.Dismissed)
	if state.Offsets == nil {
		state.Offsets = make(map[string]int64)
	}
	if state.Dismissed == nil {
		state.Dismissed = make(map[string]bool)
	}
	return state, nil
}

func (r *deckRepository) Save(ctx context.Context, state *repository.DeckState) error {
	if err := r.store.Set(keystore.KeyDeckOffsets, state.Offsets); err != nil {
		return err
	}
	return r.store.Set(keystore.KeyDeckDismissed, state.Dismissed)
}
