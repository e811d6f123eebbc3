package rating

import (
	"math"

	"github.com/mauv0809/tribble-league/internal/league"
)

const underdogDefaultRating = 1000

var _ System[float64] = Underdog{}

// Underdog pays more for beating stronger opponents and adds a bonus for upsets.
// In doubles each player's share is scaled by how much they outrate their partner.
type Underdog struct {
	cfg UnderdogConfig
}

// NewUnderdog creates an underdog system.
func NewUnderdog(cfg UnderdogConfig) Underdog {
	return Underdog{cfg: cfg}
}

func (Underdog) Name() Algorithm { return AlgorithmUnderdog }

func (Underdog) DefaultRating() float64 { return underdogDefaultRating }

func (u Underdog) RateMatch(m MatchWithRatings[float64]) []PlayerWithRating[float64] {
	winning := m.Match.WinningSide()
	if winning == league.SideNone {
		return m.All()
	}
	winners, losers := m.Winners(), m.Losers()

	return rateEach(m, func(p PlayerWithRating[float64], s league.Side) float64 {
		if s == winning {
			sum := 0.0
			for _, o := range losers {
				sum += u.pairPoints(p.Rating, o.Rating)
			}
			gain := sum / float64(len(losers)) * u.contribution(p, winners, 1)
			return p.Rating + gain
		}
		sum := 0.0
		for _, w := range winners {
			sum += u.pairPoints(w.Rating, p.Rating)
		}
		loss := sum / float64(len(winners)) * u.contribution(p, losers, -1)
		return p.Rating - loss
	})
}

// ToNumber rounds to the nearest point.
func (Underdog) ToNumber(r float64) float64 { return math.Round(r) }

func (Underdog) Equal(a, b *float64) bool {
	return equalPtr(a, b, func(a, b float64) bool { return a == b })
}

// pairPoints is what a winner rated winner earns for beating loser.
func (u Underdog) pairPoints(winner, loser float64) float64 {
	diff := math.Abs(loser - winner)
	points := u.cfg.BasePoints + math.Min(diff, u.cfg.MaxDiff)*u.cfg.DiffMultiplier
	if winner < loser && diff >= u.cfg.MinUpsetDiff {
		points += u.cfg.UpsetBonus
	}
	return points
}

// contribution scales a player's share by their rating gap to their teammate.
// sign is 1 for winners and -1 for losers, so a stronger loser loses less.
// Singles players always get a factor of 1.
func (u Underdog) contribution(p PlayerWithRating[float64], team []PlayerWithRating[float64], sign float64) float64 {
	for _, mate := range team {
		if mate.PlayerID == p.PlayerID {
			continue
		}
		factor := 1 + sign*(p.Rating-mate.Rating)*u.cfg.ContributionFactor/1000
		return math.Max(0, factor)
	}
	return 1
}
