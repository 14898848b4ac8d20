package deck

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/repository"
)

// Item kinds presented in the deck.
const (
	KindQuest    = "quest"
	KindProtocol = "protocol"
)

// Item is one card in the presentation queue.
type Item struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title"`
	IsToday      bool      `json:"is_today"`
	Offset       int64     `json:"offset"`
	CreatedAt    time.Time `json:"created_at"`
	DaysUntilDue *int      `json:"days_until_due,omitempty"`
}

// UseCase maintains a deterministic presentation order over pending quests
// and protocols. Items are repositioned by assigning offsets, never by
// deleting and recreating them, so identity is never lost.
type UseCase struct {
	quests    repository.QuestRepository
	protocols repository.ProtocolRepository
	deck      repository.DeckRepository
	logger    *zap.Logger

	// lookaheadDays is how many days before its due date a protocol may
	// enter the deck.
	lookaheadDays int

	now func() time.Time
}

func New(quests repository.QuestRepository, protocols repository.ProtocolRepository, deck repository.DeckRepository, lookaheadDays int, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lookaheadDays < 0 {
		lookaheadDays = 0
	}
	return &UseCase{
		quests:        quests,
		protocols:     protocols,
		deck:          deck,
		logger:        logger,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
}

// Items returns the current deck: eligible items sorted ascending by
// offset, ties broken by creation time then ID. Given the same prior
// skip/recall calls and the same day, the order is fully reproducible.
func (uc *UseCase) Items(ctx context.Context) ([]Item, error) {
	state, err := uc.deck.Get(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.eligible(ctx, state)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Offset != items[j].Offset {
			return items[i].Offset < items[j].Offset
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// Skip moves the item to the back of the queue by assigning it an offset
// strictly greater than every offset seen so far.
func (uc *UseCase) Skip(ctx context.Context, id string) error {
	state, err := uc.deck.Get(ctx)
	if err != nil {
		return err
	}

	offset := uc.now().UnixMilli()
	for _, existing := range state.Offsets {
		if offset <= existing {
			offset = existing + 1
		}
	}
	state.Offsets[id] = offset
	return uc.deck.Save(ctx, state)
}

// RecallLast moves the most recently skipped eligible item to the front by
// assigning it an offset strictly below the current minimum. No-op when
// the eligible set is empty.
func (uc *UseCase) RecallLast(ctx context.Context) error {
	state, err := uc.deck.Get(ctx)
	if err != nil {
		return err
	}
	items, err := uc.eligible(ctx, state)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	last := items[0]
	var minOffset int64
	for _, item := range items {
		if item.Offset > last.Offset {
			last = item
		}
		if item.Offset < minOffset {
			minOffset = item.Offset
		}
	}

	state.Offsets[last.ID] = minOffset - 1
	return uc.deck.Save(ctx, state)
}

// Dismiss hides an item for the session without touching its offset, so it
// re-enters the deck in its old relative position.
func (uc *UseCase) Dismiss(ctx context.Context, id string) error {
	state, err := uc.deck.Get(ctx)
	if err != nil {
		return err
	}
	state.Dismissed[id] = true
	return uc.deck.Save(ctx, state)
}

// Undismiss returns a dismissed item to the deck.
func (uc *UseCase) Undismiss(ctx context.Context, id string) error {
	state, err := uc.deck.Get(ctx)
	if err != nil {
		return err
	}
	delete(state.Dismissed, id)
	return uc.deck.Save(ctx, state)
}

// eligible recomputes the deck membership: quests that are neither
// completed nor discarded; active protocols not yet checked in today and
// due within the lookahead window. Dismissed items are excluded either way.
func (uc *UseCase) eligible(ctx context.Context, state *repository.DeckState) ([]Item, error) {
	quests, err := uc.quests.List(ctx)
	if err != nil {
		return nil, err
	}
	protocols, err := uc.protocols.List(ctx)
	if err != nil {
		return nil, err
	}

	today := uc.now()
	todayKey := domain.DayKey(today)

	var items []Item
	for i := range quests {
		q := quests[i]
		if !q.IsActive() || state.Dismissed[q.ID] {
			continue
		}
		items = append(items, Item{
			ID:        q.ID,
			Kind:      KindQuest,
			Title:     q.Title,
			IsToday:   q.IsToday,
			Offset:    state.Offsets[q.ID],
			CreatedAt: q.CreatedAt,
		})
	}
	for i := range protocols {
		p := protocols[i]
		if !p.IsActive || state.Dismissed[p.ID] || p.CheckedInOn(todayKey) {
			continue
		}
		days := domain.DaysUntilDue(&p, today)
		if days > uc.lookaheadDays {
			continue
		}
		items = append(items, Item{
			ID:           p.ID,
			Kind:         KindProtocol,
			Title:        p.Title,
			IsToday:      p.IsToday,
			Offset:       state.Offsets[p.ID],
			CreatedAt:    p.CreatedAt,
			DaysUntilDue: &days,
		})
	}
	return items, nil
}
