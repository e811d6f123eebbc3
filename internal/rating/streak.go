package rating

import (
	"math"

	"github.com/mauv0809/tribble-league/internal/league"
)

var _ System[StreakRating] = Streak{}

// StreakRating is a point total together with the current win and loss streaks.
type StreakRating struct {
	Points     int `json:"points"`
	WinStreak  int `json:"winStreak"`
	LoseStreak int `json:"loseStreak"`
}

// Streak awards points that grow with the length of a winning streak and
// takes points away the same way during a losing streak.
type Streak struct {
	cfg StreakConfig
}

// NewStreak creates a streak multiplier system.
func NewStreak(cfg StreakConfig) Streak {
	return Streak{cfg: cfg}
}

func (Streak) Name() Algorithm { return AlgorithmStreak }

func (Streak) DefaultRating() StreakRating { return StreakRating{} }

func (st Streak) RateMatch(m MatchWithRatings[StreakRating]) []PlayerWithRating[StreakRating] {
	winning := m.Match.WinningSide()
	return rateEach(m, func(p PlayerWithRating[StreakRating], s league.Side) StreakRating {
		r := p.Rating
		switch {
		case winning == league.SideNone:
		case s == winning:
			r.WinStreak++
			r.LoseStreak = 0
			r.Points += st.points(r.WinStreak)
		default:
			r.LoseStreak++
			r.WinStreak = 0
			r.Points -= st.points(r.LoseStreak)
		}
		return r
	})
}

func (Streak) ToNumber(r StreakRating) float64 { return float64(r.Points) }

func (Streak) Equal(a, b *StreakRating) bool {
	return equalPtr(a, b, func(a, b StreakRating) bool { return a == b })
}

// points is the magnitude awarded for the given streak length.
func (st Streak) points(streak int) int {
	multiplier := math.Min(st.cfg.MaxMultiplier, math.Pow(st.cfg.StreakMultiplier, float64(streak)))
	bonus := 0.0
	if streak > 1 {
		bonus = st.cfg.Bonus
	}
	return int(math.Round(st.cfg.BasePoints*multiplier + bonus))
}
