package protocol

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	boltRepo "github.com/questdeck/backend/repository/bolt"
	rewardUC "github.com/questdeck/backend/usecase/reward"
)

func newTestUseCase(t *testing.T) (*UseCase, *rewardUC.UseCase) {
	t.Helper()
	store, err := keystore.Open(filepath.Join(t.TempDir(), "state.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	rewards := rewardUC.New(boltRepo.NewPlayerRepository(store), boltRepo.NewLedgerRepository(store), boltRepo.NewWalletRepository(store), zap.NewNop())
	protocols := New(boltRepo.NewProtocolRepository(store), boltRepo.NewSettingsRepository(store), rewards, zap.NewNop())
	protocols.now = func() time.Time { return time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC) }
	return protocols, rewards
}

func TestFirstCheckInOfDayExtendsStreakAndRewards(t *testing.T) {
	uc, rewards := newTestUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, CreateParams{Title: "morning run", Frequency: domain.FrequencyDaily})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err = uc.CheckIn(ctx, p.ID, 1)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if p.Streak != 1 {
		t.Fatalf("streak=%d, want 1", p.Streak)
	}

	stats, err := rewards.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.XP != 15 || stats.Currency != 10 {
		t.Fatalf("stats xp=%d currency=%d, want 15/10", stats.XP, stats.Currency)
	}

	// A second check-in the same day stacks the count but not the reward.
	p, err = uc.CheckIn(ctx, p.ID, 1)
	if err != nil {
		t.Fatalf("second check in: %v", err)
	}
	if p.Streak != 1 {
		t.Fatalf("streak=%d after second check-in, want 1", p.Streak)
	}
	if got := p.History[domain.DayKey(uc.now())]; got != 2 {
		t.Fatalf("day count=%d, want 2", got)
	}

	entries, err := rewards.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries=%d, want 1", len(entries))
	}
}

func TestNegativeCheckInRetractsStreakAndReward(t *testing.T) {
	uc, rewards := newTestUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, CreateParams{Title: "stretch", Frequency: domain.FrequencyDaily})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.CheckIn(ctx, p.ID, 1); err != nil {
		t.Fatalf("check in: %v", err)
	}
	p, err = uc.CheckIn(ctx, p.ID, -1)
	if err != nil {
		t.Fatalf("negative check in: %v", err)
	}

	if p.Streak != 0 {
		t.Fatalf("streak=%d, want 0", p.Streak)
	}
	stats, err := rewards.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.XP != 0 || stats.Currency != 0 {
		t.Fatalf("stats xp=%d currency=%d, want 0/0", stats.XP, stats.Currency)
	}
	if balance, _ := rewards.Balance(ctx); balance != 0 {
		t.Fatalf("ledger fold=%d, want 0", balance)
	}
}

func TestNegativeCheckInWithoutPriorIsNotRewarded(t *testing.T) {
	uc, rewards := newTestUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, CreateParams{Title: "journal", Frequency: domain.FrequencyDaily})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p, err = uc.CheckIn(ctx, p.ID, -1)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}

	// Day count goes negative; streak stays floored at zero and no reward
	// movement happens since no up-crossing ever occurred.
	if got := p.History[domain.DayKey(uc.now())]; got != -1 {
		t.Fatalf("day count=%d, want -1", got)
	}
	if p.Streak != 0 {
		t.Fatalf("streak=%d, want 0", p.Streak)
	}
	entries, err := rewards.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries=%d, want 0", len(entries))
	}
}

func TestCheckInZeroDeltaRejected(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, CreateParams{Title: "meditate", Frequency: domain.FrequencyDaily})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.CheckIn(ctx, p.ID, 0); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("zero delta: err=%v, want invalid", err)
	}
}

func TestDueSortsMostOverdueFirst(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()
	today := uc.now()

	overdue, err := uc.Create(ctx, CreateParams{Title: "overdue", Frequency: domain.FrequencyDaily})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	upcoming, err := uc.Create(ctx, CreateParams{Title: "upcoming", Frequency: domain.FrequencyWeekly})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	seed := func(id, day string) {
		t.Helper()
		p, err := uc.Get(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if p.History == nil {
			p.History = make(map[string]int)
		}
		p.History[day] = 1
		if err := uc.protocols.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	seed(overdue.ID, domain.DayKey(today.AddDate(0, 0, -3)))
	seed(upcoming.ID, domain.DayKey(today.AddDate(0, 0, -2)))

	due, err := uc.Due(ctx, today)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due=%d entries, want 2", len(due))
	}
	if due[0].Protocol.ID != overdue.ID || due[0].DaysUntilDue != -2 {
		t.Fatalf("due[0]=%s days=%d, want %s days=-2", due[0].Protocol.ID, due[0].DaysUntilDue, overdue.ID)
	}
	if due[1].Protocol.ID != upcoming.ID || due[1].DaysUntilDue != 5 {
		t.Fatalf("due[1]=%s days=%d, want %s days=5", due[1].Protocol.ID, due[1].DaysUntilDue, upcoming.ID)
	}
}

func TestCreateIntervalRequiresPositiveParam(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Create(ctx, CreateParams{Title: "water filter", Frequency: domain.FrequencyInterval}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("interval without param: err=%v, want invalid", err)
	}
	p, err := uc.Create(ctx, CreateParams{Title: "water filter", Frequency: domain.FrequencyInterval, FrequencyParam: 14})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Interval() != 14 {
		t.Fatalf("interval=%d, want 14", p.Interval())
	}
}
