package rating

// Config holds the tunable parameters of every algorithm.
type Config struct {
	Elo       EloConfig       `koanf:"elo"`
	OpenSkill OpenSkillConfig `koanf:"openskill"`
	XP        XPConfig        `koanf:"xp"`
	Streak    StreakConfig    `koanf:"streak"`
	Underdog  UnderdogConfig  `koanf:"underdog"`
}

type EloConfig struct {
	// Floor is the lowest rating a player can drop to.
	Floor int `koanf:"floor"`
}

type OpenSkillConfig struct {
	Mu    float64 `koanf:"mu"`
	Sigma float64 `koanf:"sigma"`
	// Tau keeps sigma from collapsing over many matches.
	Tau float64 `koanf:"tau"`
	// Z is the number of standard deviations subtracted for the display ordinal.
	Z float64 `koanf:"z"`
}

type XPConfig struct {
	A float64 `koanf:"a"`
	B float64 `koanf:"b"`
}

type StreakConfig struct {
	BasePoints       float64 `koanf:"base_points"`
	StreakMultiplier float64 `koanf:"streak_multiplier"`
	MaxMultiplier    float64 `koanf:"max_multiplier"`
	Bonus            float64 `koanf:"bonus"`
}

type UnderdogConfig struct {
	BasePoints         float64 `koanf:"base_points"`
	DiffMultiplier     float64 `koanf:"diff_multiplier"`
	MaxDiff            float64 `koanf:"max_diff"`
	UpsetBonus         float64 `koanf:"upset_bonus"`
	MinUpsetDiff       float64 `koanf:"min_upset_diff"`
	ContributionFactor float64 `koanf:"contribution_factor"`
}

// DefaultConfig returns the parameters the club has always played with.
func DefaultConfig() Config {
	return Config{
		Elo: EloConfig{Floor: 0},
		OpenSkill: OpenSkillConfig{
			Mu:    1000,
			Sigma: 500,
			Tau:   0.3,
			Z:     2,
		},
		XP: XPConfig{A: 3, B: 400},
		Streak: StreakConfig{
			BasePoints:       25,
			StreakMultiplier: 1.2,
			MaxMultiplier:    15,
			Bonus:            10,
		},
		Underdog: UnderdogConfig{
			BasePoints:         25,
			DiffMultiplier:     0.125,
			MaxDiff:            1000,
			UpsetBonus:         50,
			MinUpsetDiff:       100,
			ContributionFactor: 0.3,
		},
	}
}
