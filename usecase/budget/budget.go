package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/repository"
)

// UseCase manages the monthly budget, grocery provisioning, price catalog
// and calorie slots, plus the display-unit exchange conversion. Stored
// amounts are never rounded; rounding happens only when formatting for
// display.
type UseCase struct {
	budget   repository.BudgetRepository
	calories repository.CalorieRepository
	logger   *zap.Logger

	now func() time.Time
}

func New(budget repository.BudgetRepository, calories repository.CalorieRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		budget:   budget,
		calories: calories,
		logger:   logger,
		now:      time.Now,
	}
}

// Overview is the assembled view over the per-slot budget state.
type Overview struct {
	Total             float64 `json:"total"`
	GroceryAllocation float64 `json:"grocery_allocation"`
	EarnedRewards     float64 `json:"earned_rewards"`
	GroceryPeriod     string  `json:"grocery_period"`
	ExchangeRate      float64 `json:"exchange_rate"`
}

func (uc *UseCase) Overview(ctx context.Context) (*Overview, error) {
	total, err := uc.budget.BudgetTotal(ctx)
	if err != nil {
		return nil, err
	}
	allocation, err := uc.budget.GroceryAllocation(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := uc.budget.EarnedRewards(ctx)
	if err != nil {
		return nil, err
	}
	period, err := uc.budget.GroceryPeriod(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := uc.budget.ExchangeRate(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Total:             total,
		GroceryAllocation: allocation,
		EarnedRewards:     earned,
		GroceryPeriod:     period,
		ExchangeRate:      rate,
	}, nil
}

func (uc *UseCase) SetBudgetTotal(ctx context.Context, amount float64) error {
	if amount < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "budget cannot be negative")
	}
	return uc.budget.SetBudgetTotal(ctx, amount)
}

func (uc *UseCase) SetGroceryAllocation(ctx context.Context, amount float64) error {
	if amount < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "allocation cannot be negative")
	}
	return uc.budget.SetGroceryAllocation(ctx, amount)
}

// AddEarnedRewards accumulates real-unit rewards earned through play.
func (uc *UseCase) AddEarnedRewards(ctx context.Context, amount float64) error {
	earned, err := uc.budget.EarnedRewards(ctx)
	if err != nil {
		return err
	}
	return uc.budget.SetEarnedRewards(ctx, earned+amount)
}

// RolloverPeriod resets the grocery period to the current month when it
// has lapsed, returning whether a rollover happened.
func (uc *UseCase) RolloverPeriod(ctx context.Context) (bool, error) {
	current := domain.CurrentPeriod(uc.now())
	stored, err := uc.budget.GroceryPeriod(ctx)
	if err != nil {
		return false, err
	}
	if stored == current {
		return false, nil
	}
	if err := uc.budget.SetGroceryPeriod(ctx, current); err != nil {
		return false, err
	}
	uc.logger.Info("grocery period rolled over", zap.String("from", stored), zap.String("to", current))
	return true, nil
}

// SetExchangeRate configures how many display units one stored unit is
// worth. The rate must be positive.
func (uc *UseCase) SetExchangeRate(ctx context.Context, rate float64) error {
	if rate <= 0 {
		return domain.NewError(domain.ErrCodeInvalid, "exchange rate must be positive")
	}
	return uc.budget.SetExchangeRate(ctx, rate)
}

// ToDisplay converts a stored amount into display units.
func (uc *UseCase) ToDisplay(ctx context.Context, stored float64) (float64, error) {
	rate, err := uc.budget.ExchangeRate(ctx)
	if err != nil {
		return 0, err
	}
	return stored * rate, nil
}

// ToStored converts a display amount back into stored units.
func (uc *UseCase) ToStored(ctx context.Context, display float64) (float64, error) {
	rate, err := uc.budget.ExchangeRate(ctx)
	if err != nil {
		return 0, err
	}
	return display / rate, nil
}

// GroceryList returns the provisioning list.
func (uc *UseCase) GroceryList(ctx context.Context) ([]domain.GroceryItem, error) {
	return uc.budget.GroceryList(ctx)
}

// AddGroceryItem appends an item, defaulting its price from the catalog
// when none is supplied.
func (uc *UseCase) AddGroceryItem(ctx context.Context, name string, quantity int, price float64) (*domain.GroceryItem, error) {
	if name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "item name is required")
	}
	if quantity <= 0 {
		quantity = 1
	}
	if price <= 0 {
		catalog, err := uc.budget.PriceCatalog(ctx)
		if err != nil {
			return nil, err
		}
		price = catalog[name]
	}

	item := domain.GroceryItem{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
	items, err := uc.budget.GroceryList(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := uc.budget.SaveGroceryList(ctx, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleGroceryItem flips an item's completed flag.
func (uc *UseCase) ToggleGroceryItem(ctx context.Context, id string) error {
	items, err := uc.budget.GroceryList(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Completed = !items[i].Completed
			return uc.budget.SaveGroceryList(ctx, items)
		}
	}
	return domain.NewError(domain.ErrCodeNotFound, "grocery item not found")
}

// RemoveGroceryItem deletes an item from the list.
func (uc *UseCase) RemoveGroceryItem(ctx context.Context, id string) error {
	items, err := uc.budget.GroceryList(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return domain.NewError(domain.ErrCodeNotFound, "grocery item not found")
	}
	return uc.budget.SaveGroceryList(ctx, kept)
}

// SetPrice records an item's unit price in the catalog.
func (uc *UseCase) SetPrice(ctx context.Context, name string, price float64) error {
	if name == "" || price < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "invalid catalog entry")
	}
	catalog, err := uc.budget.PriceCatalog(ctx)
	if err != nil {
		return err
	}
	catalog[name] = price
	return uc.budget.SavePriceCatalog(ctx, catalog)
}

// PriceCatalog returns the full name-to-price mapping.
func (uc *UseCase) PriceCatalog(ctx context.Context) (domain.PriceCatalog, error) {
	return uc.budget.PriceCatalog(ctx)
}

// Calories returns the calorie state.
func (uc *UseCase) Calories(ctx context.Context) (*domain.CalorieState, error) {
	return uc.calories.Get(ctx)
}

// AddCalories records calories against today, keeping the running current
// value and the per-day history in step.
func (uc *UseCase) AddCalories(ctx context.Context, amount int) (*domain.CalorieState, error) {
	state, err := uc.calories.Get(ctx)
	if err != nil {
		return nil, err
	}
	state.Current += amount
	state.History[domain.DayKey(uc.now())] += amount
	if err := uc.calories.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetCalorieTarget sets the daily calorie budget.
func (uc *UseCase) SetCalorieTarget(ctx context.Context, target int) error {
	if target < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "target cannot be negative")
	}
	state, err := uc.calories.Get(ctx)
	if err != nil {
		return err
	}
	state.Target = target
	return uc.calories.Save(ctx, state)
}

// ResetCalorieDay zeroes the running counter for a fresh day. History is
// kept.
func (uc *UseCase) ResetCalorieDay(ctx context.Context) error {
	state, err := uc.calories.Get(ctx)
	if err != nil {
		return err
	}
	state.Current = 0
	return uc.calories.Save(ctx, state)
}
