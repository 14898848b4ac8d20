package domain

import "time"

// EntryType classifies a currency movement.
type EntryType string

const (
	EntryEarned EntryType = "earned"
	EntrySpent  EntryType = "spent"
)

// LedgerEntry is an immutable record of a currency movement. Entries are
// never mutated or deleted after creation.
type LedgerEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
	Type        EntryType `json:"type"`
}

// LedgerBalance folds the log into the net balance. The live Currency field
// on PlayerStats must always equal this sum.
func LedgerBalance(entries []LedgerEntry) int {
	balance := 0
	for _, e := range entries {
		switch e.Type {
		case EntryEarned:
			balance += e.Amount
		case EntrySpent:
			balance -= e.Amount
		}
	}
	return balance
}
