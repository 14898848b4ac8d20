package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type questRepository struct {
	store *keystore.Store
}

// NewQuestRepository returns a keystore-backed implementation of QuestRepository.
func NewQuestRepository(store *keystore.Store) repository.QuestRepository {
	return &questRepository{store: store}
}

func (r *questRepository) List(ctx context.Context) ([]domain.Quest, error) {
	var quests []domain.Quest
	r.store.Get(keystore.KeyQuests, &quests)
	return quests, nil
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*domain.Quest, error) {
	quests, _ := r.List(ctx)
	for i := range quests {
		if quests[i].ID == id {
			q := quests[i]
			return &q, nil
		}
	}
	return nil, domain.ErrQuestNotFound
}

func (r *questRepository) Upsert(ctx context.Context, quest *domain.Quest) error {
	quests, _ := r.List(ctx)
	replaced := false
	for i := range quests {
		if quests[i].ID == quest.ID {
			quests[i] = *quest
			replaced = true
			break
		}
	}
	if !replaced {
		quests = append(quests, *quest)
	}
	return r.store.Set(keystore.KeyQuests, quests)
}

func (r *questRepository) Delete(ctx context.Context, id string) error {
	quests, _ := r.List(ctx)
	kept := quests[:0]
	found := false
	for _, q := range quests {
		if q.ID == id {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return domain.ErrQuestNotFound
	}
	return r.store.Set(keystore.KeyQuests, kept)
}
