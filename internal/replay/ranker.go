package replay

import (
	"fmt"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/rating"
)

// Standing is a leaderboard row.
type Standing struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"playerId"`
	Rating   float64 `json:"rating"`
}

// HistoryPoint is a projected history entry.
type HistoryPoint struct {
	Date   time.Time `json:"date"`
	Rating float64   `json:"rating"`
}

// PlayerDiff is a projected RatingDiff.
type PlayerDiff struct {
	PlayerID     string   `json:"playerId"`
	RatingBefore *float64 `json:"ratingBefore,omitempty"`
	RatingAfter  float64  `json:"ratingAfter"`
	RankBefore   *int     `json:"rankBefore,omitempty"`
	RankAfter    int      `json:"rankAfter"`
	Changed      bool     `json:"changed"`
}

// Ranker hides the rating type of a system so callers can pick an algorithm at runtime.
type Ranker interface {
	Algorithm() rating.Algorithm
	Leaderboard(matches []league.Match) []Standing
	History(matches []league.Match, playerID string) []HistoryPoint
	MatchDiff(matches []league.Match) ([]PlayerDiff, error)
}

type ranker[T any] struct {
	sys rating.System[T]
}

// NewRanker wraps a rating system.
func NewRanker[T any](sys rating.System[T]) Ranker {
	return ranker[T]{sys: sys}
}

// ForAlgorithm builds the ranker for a season's configured algorithm.
func ForAlgorithm(name string, cfg rating.Config) (Ranker, error) {
	alg, err := rating.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	switch alg {
	case rating.AlgorithmElo:
		return NewRanker(rating.NewElo(cfg.Elo)), nil
	case rating.AlgorithmOpenSkill:
		return NewRanker(rating.NewOpenSkill(cfg.OpenSkill)), nil
	case rating.AlgorithmXP:
		return NewRanker(rating.NewXP(cfg.XP)), nil
	case rating.AlgorithmScoreDiff:
		return NewRanker(rating.ScoreDiff{}), nil
	case rating.AlgorithmScoreAvg:
		return NewRanker(rating.ScoreAverage{}), nil
	case rating.AlgorithmStreak:
		return NewRanker(rating.NewStreak(cfg.Streak)), nil
	case rating.AlgorithmUnderdog:
		return NewRanker(rating.NewUnderdog(cfg.Underdog)), nil
	case rating.AlgorithmGameCount:
		return NewRanker(rating.GameCount{}), nil
	case rating.AlgorithmUniqueOpponents:
		return NewRanker(rating.UniqueOpponents{}), nil
	}
	return nil, fmt.Errorf("%w: %q", rating.ErrUnknownAlgorithm, name)
}

func (r ranker[T]) Algorithm() rating.Algorithm { return r.sys.Name() }

func (r ranker[T]) Leaderboard(matches []league.Match) []Standing {
	ratings := GetRatings(matches, r.sys)
	out := make([]Standing, 0, len(ratings))
	for i, p := range ratings {
		out = append(out, Standing{Rank: i + 1, PlayerID: p.PlayerID, Rating: r.sys.ToNumber(p.Rating)})
	}
	return out
}

func (r ranker[T]) History(matches []league.Match, playerID string) []HistoryPoint {
	history := GetPlayerRatingHistory(matches, playerID, r.sys)
	out := make([]HistoryPoint, 0, len(history))
	for _, h := range history {
		out = append(out, HistoryPoint{Date: h.Date, Rating: r.sys.ToNumber(h.Rating)})
	}
	return out
}

func (r ranker[T]) MatchDiff(matches []league.Match) ([]PlayerDiff, error) {
	diffs, err := GetMatchRatingDiff(matches, r.sys)
	if err != nil {
		return nil, err
	}
	out := make([]PlayerDiff, 0, len(diffs))
	for _, d := range diffs {
		pd := PlayerDiff{
			PlayerID:    d.PlayerID,
			RatingAfter: r.sys.ToNumber(d.After),
			RankBefore:  d.RankBefore,
			RankAfter:   d.RankAfter,
			Changed:     d.Changed,
		}
		if d.Before != nil {
			before := r.sys.ToNumber(*d.Before)
			pd.RatingBefore = &before
		}
		out = append(out, pd)
	}
	return out, nil
}
