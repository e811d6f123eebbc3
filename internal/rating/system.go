// Package rating contains the interchangeable rating algorithms a season can
// be scored with. Every algorithm is a self-contained value implementing
// System for its own rating type.
package rating

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mauv0809/tribble-league/internal/league"
)

// ErrUnknownAlgorithm is returned when a season names an algorithm that does not exist.
var ErrUnknownAlgorithm = errors.New("unknown rating algorithm")

// Algorithm is the configured name of a rating system.
type Algorithm string

const (
	AlgorithmElo             Algorithm = "elo"
	AlgorithmOpenSkill       Algorithm = "openskill"
	AlgorithmXP              Algorithm = "xp"
	AlgorithmScoreDiff       Algorithm = "scorediff"
	AlgorithmScoreAvg        Algorithm = "scoreavg"
	AlgorithmStreak          Algorithm = "streak"
	AlgorithmUnderdog        Algorithm = "underdog"
	AlgorithmGameCount       Algorithm = "gamecount"
	AlgorithmUniqueOpponents Algorithm = "opponents"
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmElo,
		AlgorithmOpenSkill,
		AlgorithmXP,
		AlgorithmScoreDiff,
		AlgorithmScoreAvg,
		AlgorithmStreak,
		AlgorithmUnderdog,
		AlgorithmGameCount,
		AlgorithmUniqueOpponents,
	}
}

// ParseAlgorithm resolves a configured name. An empty name selects Elo.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AlgorithmElo, nil
	}
	for _, a := range Algorithms() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// System is a rating algorithm over ratings of type T.
type System[T any] interface {
	Name() Algorithm
	// DefaultRating is the rating of a player before their first match.
	DefaultRating() T
	// RateMatch returns the post-match rating of every participant, including
	// those whose rating did not change. It must not modify its input.
	RateMatch(m MatchWithRatings[T]) []PlayerWithRating[T]
	// ToNumber projects a rating onto a number used for ranking and display.
	ToNumber(r T) float64
	// Equal reports whether two optional ratings are materially the same.
	Equal(a, b *T) bool
}

// PlayerWithRating pairs a player with their current rating.
type PlayerWithRating[T any] struct {
	PlayerID string
	Rating   T
}

// MatchWithRatings is a match together with the pre-match ratings of its players.
// WhiteTwo and BlackTwo are nil when that side had a single player.
type MatchWithRatings[T any] struct {
	Match    league.Match
	WhiteOne PlayerWithRating[T]
	WhiteTwo *PlayerWithRating[T]
	BlackOne PlayerWithRating[T]
	BlackTwo *PlayerWithRating[T]
}

// White returns the white side's players.
func (m MatchWithRatings[T]) White() []PlayerWithRating[T] {
	return side(m.WhiteOne, m.WhiteTwo)
}

// Black returns the black side's players.
func (m MatchWithRatings[T]) Black() []PlayerWithRating[T] {
	return side(m.BlackOne, m.BlackTwo)
}

// Side returns the players of the given side.
func (m MatchWithRatings[T]) Side(s league.Side) []PlayerWithRating[T] {
	switch s {
	case league.SideWhite:
		return m.White()
	case league.SideBlack:
		return m.Black()
	}
	return nil
}

// Winners returns the players of the winning side; empty for draws.
func (m MatchWithRatings[T]) Winners() []PlayerWithRating[T] {
	return m.Side(m.Match.WinningSide())
}

// Losers returns the players of the losing side; empty for draws.
func (m MatchWithRatings[T]) Losers() []PlayerWithRating[T] {
	return m.Side(m.Match.WinningSide().Opposite())
}

// All returns every participant, white side first.
func (m MatchWithRatings[T]) All() []PlayerWithRating[T] {
	return append(m.White(), m.Black()...)
}

func side[T any](one PlayerWithRating[T], two *PlayerWithRating[T]) []PlayerWithRating[T] {
	if two == nil {
		return []PlayerWithRating[T]{one}
	}
	return []PlayerWithRating[T]{one, *two}
}

// WithRatings attaches ratings to the players of a match. Players missing from
// lookup start at def.
func WithRatings[T any](m league.Match, lookup func(playerID string) (T, bool), def T) MatchWithRatings[T] {
	resolve := func(id string) PlayerWithRating[T] {
		if r, ok := lookup(id); ok {
			return PlayerWithRating[T]{PlayerID: id, Rating: r}
		}
		return PlayerWithRating[T]{PlayerID: id, Rating: def}
	}
	optional := func(id string) *PlayerWithRating[T] {
		if id == "" {
			return nil
		}
		p := resolve(id)
		return &p
	}
	return MatchWithRatings[T]{
		Match:    m,
		WhiteOne: resolve(m.WhitePlayerOne),
		WhiteTwo: optional(m.WhitePlayerTwo),
		BlackOne: resolve(m.BlackPlayerOne),
		BlackTwo: optional(m.BlackPlayerTwo),
	}
}

// rateEach maps every participant through update, keeping the white-first order.
func rateEach[T any](m MatchWithRatings[T], update func(p PlayerWithRating[T], s league.Side) T) []PlayerWithRating[T] {
	rated := make([]PlayerWithRating[T], 0, 4)
	for _, s := range []league.Side{league.SideWhite, league.SideBlack} {
		for _, p := range m.Side(s) {
			rated = append(rated, PlayerWithRating[T]{PlayerID: p.PlayerID, Rating: update(p, s)})
		}
	}
	return rated
}

// equalPtr compares two optional values with eq, treating two nils as equal.
func equalPtr[T any](a, b *T, eq func(a, b T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}
