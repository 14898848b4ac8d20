package domain

// Leveling constants.
const (
	BaseXPToNext = 100
	BaseMaxHP    = 50
)

// XPThreshold returns the experience required to advance from the given
// level. The curve grows 1.2x per level, floored to an integer (*12/10).
// Flooring makes the growth step non-invertible, so both climbing and
// descending the curve must replay it from the base instead of dividing.
func XPThreshold(level int) int {
	threshold := BaseXPToNext
	for l := 1; l < level; l++ {
		threshold = threshold * 12 / 10
	}
	return threshold
}

// PlayerStats is the singleton progression record.
type PlayerStats struct {
	Level    int `json:"level"`
	XP       int `json:"xp"`
	XPToNext int `json:"xp_to_next"`
	HP       int `json:"hp"`
	MaxHP    int `json:"max_hp"`
	Currency int `json:"currency"`
}

// DefaultPlayerStats returns a fresh level-1 record.
func DefaultPlayerStats() *PlayerStats {
	return &PlayerStats{
		Level:    1,
		XP:       0,
		XPToNext: BaseXPToNext,
		HP:       BaseMaxHP,
		MaxHP:    BaseMaxHP,
	}
}

// Normalize repairs a stats record loaded from storage so downstream code
// can assume the leveling invariants hold.
func (s *PlayerStats) Normalize() {
	if s.Level < 1 {
		s.Level = 1
	}
	if s.XPToNext <= 0 {
		s.XPToNext = BaseXPToNext
	}
	if s.MaxHP <= 0 {
		s.MaxHP = BaseMaxHP
	}
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	if s.HP < 0 {
		s.HP = 0
	}
	if s.XP < 0 {
		s.XP = 0
	}
}
