package repository

import "context"

// DeckState is the persisted ordering state of the presentation queue.
// Offsets reposition items without deleting them; the dismissed set hides
// items for the session while preserving their offset history.
type DeckState struct {
	Offsets   map[string]int64 `json:"offsets"`
	Dismissed map[string]bool  `json:"dismissed"`
}

type DeckRepository interface {
	Get(ctx context.Context) (*DeckState, error)
	Save(ctx context.Context, state *DeckState) error
}
