package domain

import "time"

// GroceryItem is a provisioning-list entry, priced in real units.
type GroceryItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Completed bool    `json:"completed"`
}

// PriceCatalog maps an item name to its unit price in real units.
type PriceCatalog map[string]float64

// CalorieState tracks the daily calorie budget. History is keyed by
// calendar day, same format as protocol history.
type CalorieState struct {
	Current int            `json:"current"`
	Target  int            `json:"target"`
	History map[string]int `json:"history,omitempty"`
}

// BudgetState groups the monthly budget slots. Amounts are stored in real
// units and converted to currency units only at the presentation boundary.
type BudgetState struct {
	Total             float64 `json:"total"`
	GroceryAllocation float64 `json:"grocery_allocation"`
	EarnedRewards     float64 `json:"earned_rewards"`
	GroceryPeriod     string  `json:"grocery_period,omitempty"`
}

// DefaultExchangeRate is used until the user configures one. The rate is
// "display units per stored unit" and must stay positive.
const DefaultExchangeRate = 1.0

// CurrentPeriod returns the month key used for grocery period rollover.
func CurrentPeriod(t time.Time) string {
	return t.Format("2006-01")
}
