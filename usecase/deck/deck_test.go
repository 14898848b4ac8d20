package deck

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
	boltRepo "github.com/questdeck/backend/repository/bolt"
)

type testDeck struct {
	uc        *UseCase
	quests    repository.QuestRepository
	protocols repository.ProtocolRepository
}

func newTestDeck(t *testing.T, lookaheadDays int) *testDeck {
	t.Helper()
	store, err := keystore.Open(filepath.Join(t.TempDir(), "state.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	quests := boltRepo.NewQuestRepository(store)
	protocols := boltRepo.NewProtocolRepository(store)
	uc := New(quests, protocols, boltRepo.NewDeckRepository(store), lookaheadDays, zap.NewNop())
	uc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return &testDeck{uc: uc, quests: quests, protocols: protocols}
}

func (d *testDeck) addQuest(t *testing.T, id string, createdAt time.Time) {
	t.Helper()
	err := d.quests.Upsert(context.Background(), &domain.Quest{
		ID:        id,
		Title:     "quest " + id,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("upsert quest %s: %v", id, err)
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func assertOrder(t *testing.T, items []Item, want ...string) {
	t.Helper()
	got := ids(items)
	if len(got) != len(want) {
		t.Fatalf("deck = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("deck = %v, want %v", got, want)
		}
	}
}

func TestItemsOrderedByCreationWhenUnskipped(t *testing.T) {
	d := newTestDeck(t, 1)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d.addQuest(t, "a", base)
	d.addQuest(t, "b", base.Add(time.Hour))
	d.addQuest(t, "c", base.Add(2*time.Hour))

	items, err := d.uc.Items(context.Background())
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "a", "b", "c")
}

func TestSkipThenRecallRestoresFront(t *testing.T) {
	d := newTestDeck(t, 1)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d.addQuest(t, "a", base)
	d.addQuest(t, "b", base.Add(time.Hour))
	d.addQuest(t, "c", base.Add(2*time.Hour))

	if err := d.uc.Skip(ctx, "a"); err != nil {
		t.Fatalf("skip: %v", err)
	}
	items, err := d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "b", "c", "a")

	if err := d.uc.RecallLast(ctx); err != nil {
		t.Fatalf("recall: %v", err)
	}
	items, err = d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "a", "b", "c")
}

func TestRepeatedSkipsStayOrdered(t *testing.T) {
	d := newTestDeck(t, 1)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d.addQuest(t, "a", base)
	d.addQuest(t, "b", base.Add(time.Hour))

	// The clock is frozen, so monotonicity has to come from the offset
	// bump, not the timestamp.
	if err := d.uc.Skip(ctx, "a"); err != nil {
		t.Fatalf("skip a: %v", err)
	}
	if err := d.uc.Skip(ctx, "b"); err != nil {
		t.Fatalf("skip b: %v", err)
	}

	items, err := d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "a", "b")
	if items[0].Offset >= items[1].Offset {
		t.Fatalf("offsets not strictly increasing: %d >= %d", items[0].Offset, items[1].Offset)
	}
}

func TestRecallLastOnEmptyDeckIsNoOp(t *testing.T) {
	d := newTestDeck(t, 1)
	if err := d.uc.RecallLast(context.Background()); err != nil {
		t.Fatalf("recall on empty deck: %v", err)
	}
}

func TestDismissHidesWithoutReordering(t *testing.T) {
	d := newTestDeck(t, 1)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d.addQuest(t, "a", base)
	d.addQuest(t, "b", base.Add(time.Hour))
	d.addQuest(t, "c", base.Add(2*time.Hour))

	if err := d.uc.Dismiss(ctx, "b"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	items, err := d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "a", "c")

	if err := d.uc.Undismiss(ctx, "b"); err != nil {
		t.Fatalf("undismiss: %v", err)
	}
	items, err = d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "a", "b", "c")
}

func TestCompletedAndDiscardedQuestsExcluded(t *testing.T) {
	d := newTestDeck(t, 1)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d.addQuest(t, "active", base)

	completedAt := base.Add(time.Hour)
	if err := d.quests.Upsert(ctx, &domain.Quest{ID: "done", Title: "done", CreatedAt: base, Completed: true, CompletedAt: &completedAt}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := d.quests.Upsert(ctx, &domain.Quest{ID: "gone", Title: "gone", CreatedAt: base, Discarded: true, DiscardedAt: &completedAt}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	items, err := d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "active")
}

func TestProtocolEligibility(t *testing.T) {
	d := newTestDeck(t, 1)
	ctx := context.Background()
	today := d.uc.now()
	base := today.AddDate(0, 0, -10)

	upsert := func(p *domain.Protocol) {
		t.Helper()
		if err := d.protocols.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert protocol %s: %v", p.ID, err)
		}
	}

	// Never checked in: due immediately.
	upsert(&domain.Protocol{ID: "fresh", Title: "fresh", Frequency: domain.FrequencyDaily, History: map[string]int{}, IsActive: true, CreatedAt: base})
	// Checked in today: out until tomorrow.
	upsert(&domain.Protocol{ID: "done-today", Title: "done today", Frequency: domain.FrequencyDaily, History: map[string]int{domain.DayKey(today): 1}, IsActive: true, CreatedAt: base})
	// Weekly, checked in two days ago: due in 5 days, beyond the 1-day lookahead.
	upsert(&domain.Protocol{ID: "far", Title: "far", Frequency: domain.FrequencyWeekly, History: map[string]int{domain.DayKey(today.AddDate(0, 0, -2)): 1}, IsActive: true, CreatedAt: base})
	// Daily, checked in yesterday: due today.
	upsert(&domain.Protocol{ID: "due", Title: "due", Frequency: domain.FrequencyDaily, History: map[string]int{domain.DayKey(today.AddDate(0, 0, -1)): 1}, IsActive: true, CreatedAt: base.Add(time.Hour)})
	// Paused protocols never surface.
	upsert(&domain.Protocol{ID: "paused", Title: "paused", Frequency: domain.FrequencyDaily, History: map[string]int{}, IsActive: false, CreatedAt: base})

	items, err := d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "fresh", "due")

	for _, item := range items {
		if item.Kind != KindProtocol {
			t.Fatalf("item %s kind=%s, want %s", item.ID, item.Kind, KindProtocol)
		}
		if item.DaysUntilDue == nil {
			t.Fatalf("item %s missing days_until_due", item.ID)
		}
	}
	if *items[0].DaysUntilDue != 0 || *items[1].DaysUntilDue != 0 {
		t.Fatalf("days_until_due = %d, %d, want 0, 0", *items[0].DaysUntilDue, *items[1].DaysUntilDue)
	}
}

func TestQuestsAndProtocolsShareOneQueue(t *testing.T) {
	d := newTestDeck(t, 1)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d.addQuest(t, "q1", base.Add(time.Hour))

	if err := d.protocols.Upsert(ctx, &domain.Protocol{ID: "p1", Title: "p1", Frequency: domain.FrequencyDaily, History: map[string]int{}, IsActive: true, CreatedAt: base}); err != nil {
		t.Fatalf("upsert protocol: %v", err)
	}

	items, err := d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "p1", "q1")

	if err := d.uc.Skip(ctx, "p1"); err != nil {
		t.Fatalf("skip: %v", err)
	}
	items, err = d.uc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	assertOrder(t, items, "q1", "p1")
}
