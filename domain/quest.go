package domain

import "time"

// Difficulty scales the reward a quest grants on completion.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultyLegendary Difficulty = "legendary"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyLegendary:
		return true
	default:
		return false
	}
}

// Reward is granted exactly once, atomically with quest completion.
type Reward struct {
	XP       int `json:"xp"`
	Currency int `json:"currency"`
}

// Quest represents a one-shot task.
type Quest struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Difficulty   Difficulty `json:"difficulty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	MissionBrief string     `json:"mission_brief,omitempty"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Discarded    bool       `json:"discarded"`
	DiscardedAt  *time.Time `json:"discarded_at,omitempty"`
	Reward       Reward     `json:"reward"`
	CreatedAt    time.Time  `json:"created_at"`
	IsToday      bool       `json:"is_today"`
}

// IsActive reports whether the quest is neither completed nor discarded.
func (q *Quest) IsActive() bool {
	return q != nil && !q.Completed && !q.Discarded
}
