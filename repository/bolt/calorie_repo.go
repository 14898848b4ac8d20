package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type calorieRepository struct {
	store *keystore.Store
}

// NewCalorieRepository returns a keystore-backed implementation of CalorieRepository.
func NewCalorieRepository(store *keystore.Store) repository.CalorieRepository {
	return &calorieRepository{store: store}
}

func (r *calorieRepository) Get(ctx context.Context) (*domain.CalorieState, error) {
	state := &domain.CalorieState{}
	r.store.Get(keystore.KeyCalories, state)
	if state.History == nil {
		state.History = make(map[string]int)
	}
	return state, nil
}

func (r *calorieRepository) Save(ctx context.Context, state *domain.CalorieState) error {
	return r.store.Set(keystore.KeyCalories, state)
}
