package rating

import (
	"math"

	"github.com/mauv0809/tribble-league/internal/league"
)

const eloDefaultRating = 1500

var _ System[int] = Elo{}

// Elo is the classic pairwise rating. Teams play as a single entity rated at
// the floored mean of their members, and every member receives the team's delta.
type Elo struct {
	floor int
}

// NewElo creates an Elo system.
func NewElo(cfg EloConfig) Elo {
	return Elo{floor: cfg.Floor}
}

func (Elo) Name() Algorithm { return AlgorithmElo }

func (Elo) DefaultRating() int { return eloDefaultRating }

func (e Elo) RateMatch(m MatchWithRatings[int]) []PlayerWithRating[int] {
	whiteRating := eloTeamRating(m.White())
	blackRating := eloTeamRating(m.Black())
	whiteScore, blackScore := actualScores(m.Match.Result)

	return rateEach(m, func(p PlayerWithRating[int], s league.Side) int {
		if s == league.SideWhite {
			return e.update(p.Rating, whiteRating, blackRating, whiteScore)
		}
		return e.update(p.Rating, blackRating, whiteRating, blackScore)
	})
}

func (Elo) ToNumber(r int) float64 { return float64(r) }

func (Elo) Equal(a, b *int) bool {
	return equalPtr(a, b, func(a, b int) bool { return a == b })
}

func (e Elo) update(rating, own, opponent int, actual float64) int {
	delta := float64(KFactor(own)) * (actual - ExpectedScore(own, opponent))
	return max(e.floor, int(math.Round(float64(rating)+delta)))
}

// ExpectedScore is the probability that a side rated own beats a side rated opponent.
func ExpectedScore(own, opponent int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponent-own)/400))
}

// KFactor returns the update magnitude for a team rating. Higher tiers move slower.
func KFactor(rating int) int {
	switch {
	case rating > 2500:
		return 16
	case rating > 2300:
		return 24
	case rating > 2100:
		return 32
	case rating > 1900:
		return 40
	case rating > 1700:
		return 48
	case rating > 1600:
		return 56
	default:
		return 64
	}
}

// eloTeamRating is the floored mean of the members' ratings.
func eloTeamRating(team []PlayerWithRating[int]) int {
	sum := 0
	for _, p := range team {
		sum += p.Rating
	}
	return int(math.Floor(float64(sum) / float64(len(team))))
}

func actualScores(result league.Result) (white, black float64) {
	switch result {
	case league.ResultWhite:
		return 1, 0
	case league.ResultBlack:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}
