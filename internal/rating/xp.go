package rating

import (
	"math"

	"github.com/mauv0809/tribble-league/internal/league"
)

var _ System[float64] = XP{}

// XP rewards winners with experience based on how experienced the beaten
// players were. Losing never costs experience.
type XP struct {
	cfg XPConfig
}

// NewXP creates an XP system.
func NewXP(cfg XPConfig) XP {
	return XP{cfg: cfg}
}

func (XP) Name() Algorithm { return AlgorithmXP }

func (XP) DefaultRating() float64 { return 0 }

func (x XP) RateMatch(m MatchWithRatings[float64]) []PlayerWithRating[float64] {
	winning := m.Match.WinningSide()
	if winning == league.SideNone {
		return m.All()
	}

	losers := m.Losers()
	gain := 0.0
	for _, p := range losers {
		gain += float64(XPForDefeating(x.Level(p.Rating)))
	}
	gain /= float64(len(losers))

	return rateEach(m, func(p PlayerWithRating[float64], s league.Side) float64 {
		if s == winning {
			return p.Rating + gain
		}
		return p.Rating
	})
}

// ToNumber is the player's level.
func (x XP) ToNumber(r float64) float64 { return float64(x.Level(r)) }

func (XP) Equal(a, b *float64) bool {
	return equalPtr(a, b, func(a, b float64) bool { return a == b })
}

// Level converts experience into a level, starting at 1.
func (x XP) Level(xp float64) int {
	return int(math.Floor(x.cfg.A*math.Log(1+xp/x.cfg.B) + 1))
}

// XPForDefeating is the experience earned for beating a player of the given level.
func XPForDefeating(level int) int {
	switch {
	case level <= 1:
		return 45
	case level <= 2:
		return 65
	case level <= 3:
		return 77
	case level <= 4:
		return 110
	case level <= 5:
		return 150
	case level <= 6:
		return 210
	case level <= 7:
		return 285
	case level <= 8:
		return 410
	case level <= 9:
		return 565
	default:
		return 800
	}
}
