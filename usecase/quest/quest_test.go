package quest

import (
	"context"
	"path/filepath"
	"testing"

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
	quests := New(boltRepo.NewQuestRepository(store), boltRepo.NewSettingsRepository(store), rewards, zap.NewNop())
	return quests, rewards
}

func TestCompleteHardQuestGrantsDefaultReward(t *testing.T) {
	uc, rewards := newTestUseCase(t)
	ctx := context.Background()

	q, err := uc.Create(ctx, CreateParams{Title: "slay the inbox", Difficulty: domain.DifficultyHard})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.Reward.XP != 60 || q.Reward.Currency != 40 {
		t.Fatalf("hard reward = %+v, want {60 40}", q.Reward)
	}

	done, err := uc.Complete(ctx, q.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("quest not marked completed: %+v", done)
	}

	stats, err := rewards.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.XP != 60 {
		t.Fatalf("xp=%d, want 60", stats.XP)
	}
	if stats.Currency != 40 {
		t.Fatalf("currency=%d, want 40", stats.Currency)
	}

	entries, err := rewards.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != domain.EntryEarned || entries[0].Amount != 40 {
		t.Fatalf("ledger = %+v, want one earned entry of 40", entries)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	uc, rewards := newTestUseCase(t)
	ctx := context.Background()

	q, err := uc.Create(ctx, CreateParams{Title: "water plants", Difficulty: domain.DifficultyEasy})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := uc.Complete(ctx, q.ID)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	second, err := uc.Complete(ctx, q.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Fatal("completedAt changed on repeat completion")
	}

	entries, err := rewards.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries=%d, want 1 (reward granted once)", len(entries))
	}
}

func TestUndoCompleteReversesRewardOnce(t *testing.T) {
	uc, rewards := newTestUseCase(t)
	ctx := context.Background()

	q, err := uc.Create(ctx, CreateParams{Title: "deep work block", Difficulty: domain.DifficultyMedium})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Complete(ctx, q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	undone, err := uc.UndoComplete(ctx, q.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.Completed || undone.CompletedAt != nil {
		t.Fatalf("quest still completed after undo: %+v", undone)
	}

	// Undoing an active quest is a no-op, so the reversal can't double up.
	if _, err := uc.UndoComplete(ctx, q.ID); err != nil {
		t.Fatalf("second undo: %v", err)
	}

	stats, err := rewards.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.XP != 0 || stats.Level != 1 {
		t.Fatalf("xp/level not restored: %+v", stats)
	}
	if stats.Currency != 0 {
		t.Fatalf("currency=%d, want 0", stats.Currency)
	}

	entries, err := rewards.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries=%d, want 2 (earned + compensating spent)", len(entries))
	}
	if entries[1].Type != domain.EntrySpent || entries[1].Amount != entries[0].Amount {
		t.Fatalf("compensating entry mismatch: %+v", entries)
	}
	if balance, _ := rewards.Balance(ctx); balance != 0 {
		t.Fatalf("ledger fold=%d, want 0", balance)
	}
}

func TestDiscardAndRestore(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	q, err := uc.Create(ctx, CreateParams{Title: "call the dentist", Difficulty: domain.DifficultyEasy})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	discarded, err := uc.Discard(ctx, q.ID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if !discarded.Discarded || discarded.DiscardedAt == nil {
		t.Fatalf("quest not discarded: %+v", discarded)
	}

	if _, err := uc.Complete(ctx, q.ID); err == nil {
		t.Fatal("completing a discarded quest should fail")
	}

	restored, err := uc.Restore(ctx, q.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Discarded || restored.DiscardedAt != nil {
		t.Fatalf("restore left discard state: %+v", restored)
	}
	if restored.Completed {
		t.Fatal("restore resurrected a completion")
	}
}

func TestDiscardCompletedQuestRefused(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	q, err := uc.Create(ctx, CreateParams{Title: "ship release", Difficulty: domain.DifficultyLegendary})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Complete(ctx, q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := uc.Discard(ctx, q.ID); !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("discard of completed quest: err=%v, want conflict", err)
	}
}

func TestCreateValidation(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Create(ctx, CreateParams{Title: "   ", Difficulty: domain.DifficultyEasy}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("blank title: err=%v, want invalid", err)
	}
	if _, err := uc.Create(ctx, CreateParams{Title: "x", Difficulty: "brutal"}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("bad difficulty: err=%v, want invalid", err)
	}
}
