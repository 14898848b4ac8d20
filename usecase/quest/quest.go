package quest

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/repository"
	"github.com/questdeck/backend/usecase/reward"
)

// UseCase drives the quest lifecycle: active -> completed (terminal,
// rewarded once) or active -> discarded (reversible via restore).
type UseCase struct {
	quests   repository.QuestRepository
	settings repository.SettingsRepository
	rewards  *reward.UseCase
	logger   *zap.Logger

	now func() time.Time
}

func New(quests repository.QuestRepository, settings repository.SettingsRepository, rewards *reward.UseCase, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		quests:   quests,
		settings: settings,
		rewards:  rewards,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateParams carries user input for a new quest.
type CreateParams struct {
	Title        string
	Difficulty   domain.Difficulty
	DueDate      *time.Time
	MissionBrief string
	IsToday      bool
}

// Create registers a new active quest with its reward frozen from the
// settings table at creation time.
func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*domain.Quest, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if !params.Difficulty.IsValid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid difficulty")
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	q := &domain.Quest{
		ID:           uuid.NewString(),
		Title:        title,
		Difficulty:   params.Difficulty,
		DueDate:      params.DueDate,
		MissionBrief: params.MissionBrief,
		Reward:       settings.RewardFor(params.Difficulty),
		CreatedAt:    uc.now(),
		IsToday:      params.IsToday,
	}
	if err := uc.quests.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Quest, error) {
	return uc.quests.List(ctx)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Quest, error) {
	return uc.quests.GetByID(ctx, id)
}

// UpdateParams carries the mutable quest fields; nil means "leave as is".
type UpdateParams struct {
	Title        *string
	Difficulty   *domain.Difficulty
	DueDate      *time.Time
	ClearDueDate bool
	MissionBrief *string
	IsToday      *bool
}

func (uc *UseCase) Update(ctx context.Context, id string, params UpdateParams) (*domain.Quest, error) {
	q, err := uc.quests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
		}
		q.Title = title
	}
	if params.Difficulty != nil {
		if !params.Difficulty.IsValid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid difficulty")
		}
		q.Difficulty = *params.Difficulty
		if !q.Completed {
			settings, err := uc.settings.Get(ctx)
			if err != nil {
				return nil, err
			}
			q.Reward = settings.RewardFor(q.Difficulty)
		}
	}
	if params.ClearDueDate {
		q.DueDate = nil
	} else if params.DueDate != nil {
		q.DueDate = params.DueDate
	}
	if params.MissionBrief != nil {
		q.MissionBrief = *params.MissionBrief
	}
	if params.IsToday != nil {
		q.IsToday = *params.IsToday
	}

	if err := uc.quests.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Complete marks the quest done and grants its reward. The flag and the
// reward are applied together; completing an already-completed quest is a
// no-op so the reward can never be granted twice.
func (uc *UseCase) Complete(ctx context.Context, id string) (*domain.Quest, error) {
	q, err := uc.quests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Completed {
		return q, nil
	}
	if q.Discarded {
		return nil, domain.ErrQuestDiscarded
	}

	completedAt := uc.now()
	q.Completed = true
	q.CompletedAt = &completedAt
	if err := uc.quests.Upsert(ctx, q); err != nil {
		return nil, err
	}

	if _, err := uc.rewards.GrantXP(ctx, q.Reward.XP); err != nil {
		return nil, err
	}
	if err := uc.rewards.GrantCurrency(ctx, q.Reward.Currency, "Quest: "+q.Title); err != nil {
		return nil, err
	}

	uc.logger.Info("quest completed",
		zap.String("id", q.ID),
		zap.String("title", q.Title),
		zap.Int("xp", q.Reward.XP),
		zap.Int("currency", q.Reward.Currency))
	return q, nil
}

// UndoComplete returns a completed quest to the active state and reverses
// its reward: XP is revoked through the leveling curve and a compensating
// spent entry offsets the earned currency. Undoing an active quest is a
// no-op, so a completion can only ever be reversed once.
func (uc *UseCase) UndoComplete(ctx context.Context, id string) (*domain.Quest, error) {
	q, err := uc.quests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.Completed {
		return q, nil
	}

	q.Completed = false
	q.CompletedAt = nil
	if err := uc.quests.Upsert(ctx, q); err != nil {
		return nil, err
	}

	if _, err := uc.rewards.RevokeXP(ctx, q.Reward.XP); err != nil {
		return nil, err
	}
	if err := uc.rewards.RevokeCurrency(ctx, q.Reward.Currency, "Reverted: "+q.Title); err != nil {
		return nil, err
	}

	uc.logger.Info("quest completion undone", zap.String("id", q.ID), zap.String("title", q.Title))
	return q, nil
}

// Discard soft-removes an active quest. Completed quests cannot be discarded.
func (uc *UseCase) Discard(ctx context.Context, id string) (*domain.Quest, error) {
	q, err := uc.quests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Completed {
		return nil, domain.ErrQuestCompleted
	}
	if q.Discarded {
		return q, nil
	}

	discardedAt := uc.now()
	q.Discarded = true
	q.DiscardedAt = &discardedAt
	if err := uc.quests.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Restore clears the discarded state. It never resurrects a completed quest
// because completed and discarded are mutually exclusive.
func (uc *UseCase) Restore(ctx context.Context, id string) (*domain.Quest, error) {
	q, err := uc.quests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.Discarded {
		return q, nil
	}

	q.Discarded = false
	q.DiscardedAt = nil
	if err := uc.quests.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete permanently removes a quest.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.quests.Delete(ctx, id)
}
