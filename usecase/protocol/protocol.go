package protocol

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/repository"
	"github.com/questdeck/backend/usecase/reward"
)

// UseCase manages recurring protocols: creation, check-ins with streak
// maintenance, and due-date queries built on the pure recurrence function.
type UseCase struct {
	protocols repository.ProtocolRepository
	settings  repository.SettingsRepository
	rewards   *reward.UseCase
	logger    *zap.Logger

	now func() time.Time
}

func New(protocols repository.ProtocolRepository, settings repository.SettingsRepository, rewards *reward.UseCase, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		protocols: protocols,
		settings:  settings,
		rewards:   rewards,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateParams carries user input for a new protocol.
type CreateParams struct {
	Title          string
	Frequency      domain.Frequency
	FrequencyParam int
	IsToday        bool
}

func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*domain.Protocol, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if !params.Frequency.IsValid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid frequency")
	}
	if params.Frequency == domain.FrequencyInterval && params.FrequencyParam <= 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "interval frequency requires a positive day count")
	}

	p := &domain.Protocol{
		ID:             uuid.NewString(),
		Title:          title,
		Frequency:      params.Frequency,
		FrequencyParam: params.FrequencyParam,
		History:        make(map[string]int),
		IsActive:       true,
		CreatedAt:      uc.now(),
		IsToday:        params.IsToday,
	}
	if err := uc.protocols.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Protocol, error) {
	return uc.protocols.List(ctx)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Protocol, error) {
	return uc.protocols.GetByID(ctx, id)
}

// UpdateParams carries the mutable protocol fields; nil means "leave as is".
type UpdateParams struct {
	Title          *string
	Frequency      *domain.Frequency
	FrequencyParam *int
	IsActive       *bool
	IsToday        *bool
}

func (uc *UseCase) Update(ctx context.Context, id string, params UpdateParams) (*domain.Protocol, error) {
	p, err := uc.protocols.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
		}
		p.Title = title
	}
	if params.Frequency != nil {
		if !params.Frequency.IsValid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid frequency")
		}
		p.Frequency = *params.Frequency
	}
	if params.FrequencyParam != nil {
		p.FrequencyParam = *params.FrequencyParam
	}
	if params.IsActive != nil {
		p.IsActive = *params.IsActive
	}
	if params.IsToday != nil {
		p.IsToday = *params.IsToday
	}

	if err := uc.protocols.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckIn records a signed check-in for today. The first positive check-in
// of a day extends the streak and grants the per-check-in reward; a
// negative check-in that drops the day back to zero retracts both. The day
// count itself may go below zero.
func (uc *UseCase) CheckIn(ctx context.Context, id string, delta int) (*domain.Protocol, error) {
	if delta == 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "check-in delta must be non-zero")
	}
	p, err := uc.protocols.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.History == nil {
		p.History = make(map[string]int)
	}
	day := domain.DayKey(uc.now())
	before := p.History[day]
	p.History[day] = before + delta
	after := p.History[day]

	crossedUp := before <= 0 && after > 0
	crossedDown := before > 0 && after <= 0

	if crossedUp {
		p.Streak++
	}
	if crossedDown && p.Streak > 0 {
		p.Streak--
	}

	if err := uc.protocols.Upsert(ctx, p); err != nil {
		return nil, err
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if crossedUp {
		if _, err := uc.rewards.GrantXP(ctx, settings.ProtocolReward.XP); err != nil {
			return nil, err
		}
		if err := uc.rewards.GrantCurrency(ctx, settings.ProtocolReward.Currency, "Protocol: "+p.Title); err != nil {
			return nil, err
		}
	}
	if crossedDown {
		if _, err := uc.rewards.RevokeXP(ctx, settings.ProtocolReward.XP); err != nil {
			return nil, err
		}
		if err := uc.rewards.RevokeCurrency(ctx, settings.ProtocolReward.Currency, "Reverted: "+p.Title); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("protocol check-in",
		zap.String("id", p.ID),
		zap.String("day", day),
		zap.Int("delta", delta),
		zap.Int("streak", p.Streak))
	return p, nil
}

// DueStatus pairs a protocol with its due computation for the given day.
type DueStatus struct {
	Protocol     domain.Protocol `json:"protocol"`
	DaysUntilDue int             `json:"days_until_due"`
}

// Due returns every active protocol with its days-until-due relative to
// today, most overdue first.
func (uc *UseCase) Due(ctx context.Context, today time.Time) ([]DueStatus, error) {
	protocols, err := uc.protocols.List(ctx)
	if err != nil {
		return nil, err
	}

	var due []DueStatus
	for i := range protocols {
		p := protocols[i]
		if !p.IsActive {
			continue
		}
		due = append(due, DueStatus{
			Protocol:     p,
			DaysUntilDue: domain.DaysUntilDue(&p, today),
		})
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DaysUntilDue < due[j].DaysUntilDue
	})
	return due, nil
}

// Delete permanently removes a protocol.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.protocols.Delete(ctx, id)
}
