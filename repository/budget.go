package repository

import (
	"context"

	"github.com/questdeck/backend/domain"
)

// BudgetRepository exposes the per-slot budget state. Each value lives
// under its own storage key so one corrupted slot never takes down the rest.
type BudgetRepository interface {
	BudgetTotal(ctx context.Context) (float64, error)
	SetBudgetTotal(ctx context.Context, amount float64) error

	GroceryAllocation(ctx context.Context) (float64, error)
	SetGroceryAllocation(ctx context.Context, amount float64) error

	EarnedRewards(ctx context.Context) (float64, error)
	SetEarnedRewards(ctx context.Context, amount float64) error

	GroceryPeriod(ctx context.Context) (string, error)
	SetGroceryPeriod(ctx context.Context, period string) error

	GroceryList(ctx context.Context) ([]domain.GroceryItem, error)
	SaveGroceryList(ctx context.Context, items []domain.GroceryItem) error

	PriceCatalog(ctx context.Context) (domain.PriceCatalog, error)
	SavePriceCatalog(ctx context.Context, catalog domain.PriceCatalog) error

	ExchangeRate(ctx context.Context) (float64, error)
	SetExchangeRate(ctx context.Context, rate float64) error
}
