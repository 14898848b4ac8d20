package transport

// QuestCreateRequest carries user input for a new quest. Dates use RFC 3339.
type QuestCreateRequest struct {
	Title        string `json:"title"`
	Difficulty   string `json:"difficulty"`
	DueDate      string `json:"due_date,omitempty"`
	MissionBrief string `json:"mission_brief,omitempty"`
	IsToday      bool   `json:"is_today,omitempty"`
}

// QuestUpdateRequest uses pointers so absent fields stay untouched.
type QuestUpdateRequest struct {
	Title        *string `json:"title,omitempty"`
	Difficulty   *string `json:"difficulty,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	ClearDueDate bool    `json:"clear_due_date,omitempty"`
	MissionBrief *string `json:"mission_brief,omitempty"`
	IsToday      *bool   `json:"is_today,omitempty"`
}

type ProtocolCreateRequest struct {
	Title          string `json:"title"`
	Frequency      string `json:"frequency"`
	FrequencyParam int    `json:"frequency_param,omitempty"`
	IsToday        bool   `json:"is_today,omitempty"`
}

type ProtocolUpdateRequest struct {
	Title          *string `json:"title,omitempty"`
	Frequency      *string `json:"frequency,omitempty"`
	FrequencyParam *int    `json:"frequency_param,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	IsToday        *bool   `json:"is_today,omitempty"`
}

// CheckInRequest defaults to a single positive check-in when Delta is zero.
type CheckInRequest struct {
	Delta int `json:"delta,omitempty"`
}

type EarnRequest struct {
	Amount int    `json:"amount"`
	Source string `json:"source"`
}

type SpendRequest struct {
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

type DamageRequest struct {
	Amount int `json:"amount"`
}

type BudgetRequest struct {
	Total             *float64 `json:"total,omitempty"`
	GroceryAllocation *float64 `json:"grocery_allocation,omitempty"`
	ExchangeRate      *float64 `json:"exchange_rate,omitempty"`
}

type GroceryItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

type PriceRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CalorieRequest struct {
	Amount int  `json:"amount,omitempty"`
	Target *int `json:"target,omitempty"`
	Reset  bool `json:"reset,omitempty"`
}
