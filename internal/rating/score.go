package rating

import (
	"math"

	"github.com/mauv0809/tribble-league/internal/league"
)

var (
	_ System[int]      = ScoreDiff{}
	_ System[ScoreAvg] = ScoreAverage{}
)

// ScoreDiff transfers the match's score difference from the losers to the winners.
type ScoreDiff struct{}

func (ScoreDiff) Name() Algorithm { return AlgorithmScoreDiff }

func (ScoreDiff) DefaultRating() int { return 0 }

func (ScoreDiff) RateMatch(m MatchWithRatings[int]) []PlayerWithRating[int] {
	winning := m.Match.WinningSide()
	return rateEach(m, func(p PlayerWithRating[int], s league.Side) int {
		switch {
		case winning == league.SideNone:
			return p.Rating
		case s == winning:
			return p.Rating + m.Match.ScoreDiff
		default:
			return p.Rating - m.Match.ScoreDiff
		}
	})
}

func (ScoreDiff) ToNumber(r int) float64 { return float64(r) }

func (ScoreDiff) Equal(a, b *int) bool {
	return equalPtr(a, b, func(a, b int) bool { return a == b })
}

// ScoreAvg is a running score difference and the number of decided matches it covers.
type ScoreAvg struct {
	Diff  int `json:"diff"`
	Count int `json:"count"`
}

// ScoreAverage ranks players by their average score difference per decided match.
type ScoreAverage struct{}

func (ScoreAverage) Name() Algorithm { return AlgorithmScoreAvg }

func (ScoreAverage) DefaultRating() ScoreAvg { return ScoreAvg{} }

func (ScoreAverage) RateMatch(m MatchWithRatings[ScoreAvg]) []PlayerWithRating[ScoreAvg] {
	winning := m.Match.WinningSide()
	return rateEach(m, func(p PlayerWithRating[ScoreAvg], s league.Side) ScoreAvg {
		r := p.Rating
		switch {
		case winning == league.SideNone:
			return r
		case s == winning:
			r.Diff += m.Match.ScoreDiff
		default:
			r.Diff -= m.Match.ScoreDiff
		}
		r.Count++
		return r
	})
}

func (ScoreAverage) ToNumber(r ScoreAvg) float64 {
	if r.Count == 0 {
		return 0
	}
	return math.Floor(float64(r.Diff) / float64(r.Count))
}

func (ScoreAverage) Equal(a, b *ScoreAvg) bool {
	return equalPtr(a, b, func(a, b ScoreAvg) bool { return a == b })
}
