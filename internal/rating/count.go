package rating

import (
	"slices"

	"github.com/mauv0809/tribble-league/internal/league"
)

var (
	_ System[int]      = GameCount{}
	_ System[[]string] = UniqueOpponents{}
)

// GameCount ranks players by how many matches they have played.
type GameCount struct{}

func (GameCount) Name() Algorithm { return AlgorithmGameCount }

func (GameCount) DefaultRating() int { return 0 }

func (GameCount) RateMatch(m MatchWithRatings[int]) []PlayerWithRating[int] {
	return rateEach(m, func(p PlayerWithRating[int], _ league.Side) int {
		return p.Rating + 1
	})
}

func (GameCount) ToNumber(r int) float64 { return float64(r) }

func (GameCount) Equal(a, b *int) bool {
	return equalPtr(a, b, func(a, b int) bool { return a == b })
}

// UniqueOpponents ranks players by the number of distinct opponents they have beaten.
// The rating is the sorted set of beaten player ids.
type UniqueOpponents struct{}

func (UniqueOpponents) Name() Algorithm { return AlgorithmUniqueOpponents }

func (UniqueOpponents) DefaultRating() []string { return []string{} }

func (UniqueOpponents) RateMatch(m MatchWithRatings[[]string]) []PlayerWithRating[[]string] {
	winning := m.Match.WinningSide()
	losers := m.Losers()
	return rateEach(m, func(p PlayerWithRating[[]string], s league.Side) []string {
		if winning == league.SideNone || s != winning {
			return p.Rating
		}
		beaten := slices.Clone(p.Rating)
		for _, o := range losers {
			if !slices.Contains(beaten, o.PlayerID) {
				beaten = append(beaten, o.PlayerID)
			}
		}
		slices.Sort(beaten)
		return beaten
	})
}

func (UniqueOpponents) ToNumber(r []string) float64 { return float64(len(r)) }

func (UniqueOpponents) Equal(a, b *[]string) bool {
	return equalPtr(a, b, func(a, b []string) bool { return slices.Equal(a, b) })
}
