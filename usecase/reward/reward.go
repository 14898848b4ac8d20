package reward

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/repository"
)

// UseCase is the experience/leveling state machine plus the append-only
// currency ledger. The live Currency field on PlayerStats is kept exactly
// consistent with the fold over the ledger.
type UseCase struct {
	players repository.PlayerRepository
	ledger  repository.LedgerRepository
	wallet  repository.WalletRepository
	logger  *zap.Logger

	now func() time.Time
}

func New(players repository.PlayerRepository, ledger repository.LedgerRepository, wallet repository.WalletRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		players: players,
		ledger:  ledger,
		wallet:  wallet,
		logger:  logger,
		now:     time.Now,
	}
}

// Stats returns the current player record.
func (uc *UseCase) Stats(ctx context.Context) (*domain.PlayerStats, error) {
	return uc.players.Get(ctx)
}

// Entries returns the full ledger log, oldest first.
func (uc *UseCase) Entries(ctx context.Context) ([]domain.LedgerEntry, error) {
	return uc.ledger.List(ctx)
}

// GrantXP adds experience and resolves any resulting level-ups, including
// multi-level jumps from a single large grant. Each level-up moves to the
// next threshold on the growth curve and fully heals the player.
func (uc *UseCase) GrantXP(ctx context.Context, amount int) (*domain.PlayerStats, error) {
	if amount <= 0 {
		return uc.players.Get(ctx)
	}
	stats, err := uc.players.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats.XP += amount
	levels := 0
	for stats.XP >= stats.XPToNext {
		stats.XP -= stats.XPToNext
		stats.Level++
		levels++
		stats.XPToNext = domain.XPThreshold(stats.Level)
		stats.HP = stats.MaxHP
	}

	if err := uc.players.Save(ctx, stats); err != nil {
		return nil, err
	}
	if levels > 0 {
		uc.logger.Info("level up", zap.Int("level", stats.Level), zap.Int("levels_gained", levels))
	}
	return stats, nil
}

// RevokeXP reverses a prior grant of the same amount, leveling down through
// the same thresholds the grant climbed. Level never drops below 1 and XP
// never below 0.
func (uc *UseCase) RevokeXP(ctx context.Context, amount int) (*domain.PlayerStats, error) {
	if amount <= 0 {
		return uc.players.Get(ctx)
	}
	stats, err := uc.players.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats.XP -= amount
	for stats.XP < 0 && stats.Level > 1 {
		stats.Level--
		stats.XPToNext = domain.XPThreshold(stats.Level)
		stats.XP += stats.XPToNext
	}
	if stats.XP < 0 {
		stats.XP = 0
	}
	if stats.HP > stats.MaxHP {
		stats.HP = stats.MaxHP
	}

	if err := uc.players.Save(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GrantCurrency increases the balance and records an earned entry. The
// stats and the entry are written as one durable step, so a failed write
// leaves the balance and the ledger fold in agreement. Calls with a
// non-positive amount are complete no-ops.
func (uc *UseCase) GrantCurrency(ctx context.Context, amount int, source string) error {
	if amount <= 0 {
		return nil
	}
	stats, err := uc.players.Get(ctx)
	if err != nil {
		return err
	}

	stats.Currency += amount
	return uc.wallet.Apply(ctx, stats, domain.LedgerEntry{
		ID:          uuid.NewString(),
		Date:        uc.now(),
		Amount:      amount,
		Description: source,
		Type:        domain.EntryEarned,
	})
}

// SpendCurrency decrements the balance and records a spent entry. A spend
// exceeding the current balance is refused with no mutation.
func (uc *UseCase) SpendCurrency(ctx context.Context, amount int, description string) (bool, error) {
	if amount <= 0 {
		return false, domain.ErrInvalidPayload
	}
	stats, err := uc.players.Get(ctx)
	if err != nil {
		return false, err
	}
	if amount > stats.Currency {
		return false, nil
	}

	stats.Currency -= amount
	if err := uc.wallet.Apply(ctx, stats, domain.LedgerEntry{
		ID:          uuid.NewString(),
		Date:        uc.now(),
		Amount:      amount,
		Description: description,
		Type:        domain.EntrySpent,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// RevokeCurrency reverses an earlier earned amount with a compensating
// spent entry. Unlike SpendCurrency it is not guarded by the balance: a
// reversal must always apply exactly once, even if the player has already
// spent the earnings being revoked.
func (uc *UseCase) RevokeCurrency(ctx context.Context, amount int, description string) error {
	if amount <= 0 {
		return nil
	}
	stats, err := uc.players.Get(ctx)
	if err != nil {
		return err
	}

	stats.Currency -= amount
	return uc.wallet.Apply(ctx, stats, domain.LedgerEntry{
		ID:          uuid.NewString(),
		Date:        uc.now(),
		Amount:      amount,
		Description: description,
		Type:        domain.EntrySpent,
	})
}

// ApplyDamage decrements HP, floored at zero.
func (uc *UseCase) ApplyDamage(ctx context.Context, amount int) (*domain.PlayerStats, error) {
	if amount <= 0 {
		return uc.players.Get(ctx)
	}
	stats, err := uc.players.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats.HP -= amount
	if stats.HP < 0 {
		stats.HP = 0
	}
	if err := uc.players.Save(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Balance returns the ledger fold. It must always equal stats.Currency.
func (uc *UseCase) Balance(ctx context.Context) (int, error) {
	entries, err := uc.ledger.List(ctx)
	if err != nil {
		return 0, err
	}
	return domain.LedgerBalance(entries), nil
}
