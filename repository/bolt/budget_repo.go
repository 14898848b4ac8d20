package bolt

import (
	"context"

	"github.com/questdeck/backend/domain"
	"github.com/questdeck/backend/internal/infrastructure/keystore"
	"github.com/questdeck/backend/repository"
)

type budgetRepository struct {
	store *keystore.Store
}

// NewBudgetRepository returns a keystore-backed implementation of BudgetRepository.
func NewBudgetRepository(store *keystore.Store) repository.BudgetRepository {
	return &budgetRepository{store: store}
}

func (r *budgetRepository) BudgetTotal(ctx context.Context) (float64, error) {
	return r.getFloat(keystore.KeyBudgetTotal, 0), nil
}

func (r *budgetRepository) SetBudgetTotal(ctx context.Context, amount float64) error {
	return r.store.Set(keystore.KeyBudgetTotal, amount)
}

func (r *budgetRepository) GroceryAllocation(ctx context.Context) (float64, error) {
	return r.getFloat(keystore.KeyGroceryAllocation, 0), nil
}

func (r *budgetRepository) SetGroceryAllocation(ctx context.Context, amount float64) error {
	return r.store.Set(keystore.KeyGroceryAllocation, amount)
}

func (r *budgetRepository) EarnedRewards(ctx context.Context) (float64, error) {
	return r.getFloat(keystore.KeyEarnedRewards, 0), nil
}

func (r *budgetRepository) SetEarnedRewards(ctx context.Context, amount float64) error {
	return r.store.Set(keystore.KeyEarnedRewards, amount)
}

func (r *budgetRepository) GroceryPeriod(ctx context.Context) (string, error) {
	var period string
	r.store.Get(keystore.KeyGroceryPeriod, &period)
	return period, nil
}

func (r *budgetRepository) SetGroceryPeriod(ctx context.Context, period string) error {
	return r.store.Set(keystore.KeyGroceryPeriod, period)
}

func (r *budgetRepository) GroceryList(ctx context.Context) ([]domain.GroceryItem, error) {
	var items []domain.GroceryItem
	r.store.Get(keystore.KeyGroceryList, &items)
	return items, nil
}

func (r *budgetRepository) SaveGroceryList(ctx context.Context, items []domain.GroceryItem) error {
	return r.store.Set(keystore.KeyGroceryList, items)
}

func (r *budgetRepository) PriceCatalog(ctx context.Context) (domain.PriceCatalog, error) {
	catalog := domain.PriceCatalog{}
	r.store.Get(keystore.KeyPriceCatalog, &catalog)
	return catalog, nil
}

func (r *budgetRepository) SavePriceCatalog(ctx context.Context, catalog domain.PriceCatalog) error {
	return r.store.Set(keystore.KeyPriceCatalog, catalog)
}

func (r *budgetRepository) ExchangeRate(ctx context.Context) (float64, error) {
	rate := r.getFloat(keystore.KeyExchangeRate, domain.DefaultExchangeRate)
	if rate <= 0 {
		rate = domain.DefaultExchangeRate
	}
	return rate, nil
}

func (r *budgetRepository) SetExchangeRate(ctx context.Context, rate float64) error {
	return r.store.Set(keystore.KeyExchangeRate, rate)
}

func (r *budgetRepository) getFloat(key string, fallback float64) float64 {
	v := fallback
	r.store.Get(key, &v)
	return v
}
