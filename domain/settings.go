package domain

// Settings holds the persisted reward tables. Loaded records pass through
// Normalize once so downstream code can assume fully-populated tables.
type Settings struct {
	QuestRewards map[Difficulty]Reward `json:"quest_rewards"`
	// ProtocolReward is a pointer so an explicitly configured zero reward
	// survives normalization; only an absent slot gets the default.
	ProtocolReward *Reward `json:"protocol_reward,omitempty"`
}

var defaultQuestRewards = map[Difficulty]Reward{
	DifficultyEasy:      {XP: 20, Currency: 10},
	DifficultyMedium:    {XP: 40, Currency: 25},
	DifficultyHard:      {XP: 60, Currency: 40},
	DifficultyLegendary: {XP: 100, Currency: 80},
}

var defaultProtocolReward = Reward{XP: 15, Currency: 10}

// DefaultSettings returns a fully-populated settings record.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.Normalize()
	return s
}

// Normalize fills any missing or invalid slots with defaults.
func (s *Settings) Normalize() {
	if s.QuestRewards == nil {
		s.QuestRewards = make(map[Difficulty]Reward, len(defaultQuestRewards))
	}
	for d, r := range defaultQuestRewards {
		got, ok := s.QuestRewards[d]
		if !ok || got.XP < 0 || got.Currency < 0 {
			s.QuestRewards[d] = r
		}
	}
	if s.ProtocolReward == nil || s.ProtocolReward.XP < 0 || s.ProtocolReward.Currency < 0 {
		r := defaultProtocolReward
		s.ProtocolReward = &r
	}
}

// RewardFor resolves the reward for a quest difficulty.
func (s *Settings) RewardFor(d Difficulty) Reward {
	if r, ok := s.QuestRewards[d]; ok {
		return r
	}
	return defaultQuestRewards[DifficultyMedium]
}
