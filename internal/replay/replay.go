// Package replay folds a match history through a rating system. Nothing is
// persisted: every call recomputes ratings from an empty table.
package replay

import (
	"errors"
	"sort"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/rating"
)

// ErrNoMatch is returned when a diff is requested over an empty match list.
var ErrNoMatch = errors.New("no match to diff")

// HistoryEntry is a player's rating at the end of a UTC day.
type HistoryEntry[T any] struct {
	Date   time.Time
	Rating T
}

// RatingDiff describes how one participant of a match was affected by it.
// Before and RankBefore are nil for a player's first match.
type RatingDiff[T any] struct {
	PlayerID   string
	Before     *T
	After      T
	RankBefore *int
	RankAfter  int
	Changed    bool
}

type table[T any] map[string]rating.PlayerWithRating[T]

func (tb table[T]) apply(m league.Match, sys rating.System[T]) []rating.PlayerWithRating[T] {
	lookup := func(id string) (T, bool) {
		p, ok := tb[id]
		return p.Rating, ok
	}
	rated := sys.RateMatch(rating.WithRatings(m, lookup, sys.DefaultRating()))
	for _, p := range rated {
		tb[p.PlayerID] = p
	}
	return rated
}

func (tb table[T]) clone() table[T] {
	out := make(table[T], len(tb))
	for k, v := range tb {
		out[k] = v
	}
	return out
}

func (tb table[T]) sorted(sys rating.System[T]) []rating.PlayerWithRating[T] {
	out := make([]rating.PlayerWithRating[T], 0, len(tb))
	for _, p := range tb {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := sys.ToNumber(out[i].Rating), sys.ToNumber(out[j].Rating)
		if a != b {
			return a > b
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func fold[T any](matches []league.Match, sys rating.System[T]) table[T] {
	tb := table[T]{}
	for _, m := range league.SortChronologically(matches) {
		tb.apply(m, sys)
	}
	return tb
}

// GetRatings replays the matches in chronological order and returns every
// player's final rating, best first. Ties are ordered by player id.
func GetRatings[T any](matches []league.Match, sys rating.System[T]) []rating.PlayerWithRating[T] {
	return fold(matches, sys).sorted(sys)
}

// GetPlayerRatingHistory returns one entry per UTC day the player played on,
// holding their rating after the last match of that day. The series starts
// with the default rating on the day before their first match.
func GetPlayerRatingHistory[T any](matches []league.Match, playerID string, sys rating.System[T]) []HistoryEntry[T] {
	tb := table[T]{}
	var history []HistoryEntry[T]
	for _, m := range league.SortChronologically(matches) {
		rated := tb.apply(m, sys)
		if !m.HasPlayer(playerID) {
			continue
		}
		day := utcDay(m.CreatedAt)
		if len(history) == 0 {
			history = append(history, HistoryEntry[T]{Date: day.AddDate(0, 0, -1), Rating: sys.DefaultRating()})
		}
		var after T
		for _, p := range rated {
			if p.PlayerID == playerID {
				after = p.Rating
			}
		}
		if last := &history[len(history)-1]; len(history) > 1 && last.Date.Equal(day) {
			last.Rating = after
			continue
		}
		history = append(history, HistoryEntry[T]{Date: day, Rating: after})
	}
	return history
}

// GetMatchRatingDiff treats the chronologically last match as the one being
// diffed and reports how it moved each of its participants.
func GetMatchRatingDiff[T any](matches []league.Match, sys rating.System[T]) ([]RatingDiff[T], error) {
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	ordered := league.SortChronologically(matches)
	last := ordered[len(ordered)-1]

	before := fold(ordered[:len(ordered)-1], sys)
	after := before.clone()
	after.apply(last, sys)

	rankBefore := ranks(before.sorted(sys))
	rankAfter := ranks(after.sorted(sys))

	participants := last.Participants()
	diffs := make([]RatingDiff[T], 0, len(participants))
	for _, id := range participants {
		d := RatingDiff[T]{
			PlayerID:  id,
			After:     after[id].Rating,
			RankAfter: rankAfter[id],
		}
		if p, ok := before[id]; ok {
			r := p.Rating
			rank := rankBefore[id]
			d.Before = &r
			d.RankBefore = &rank
		}
		d.Changed = !sys.Equal(d.Before, &d.After)
		diffs = append(diffs, d)
	}
	return diffs, nil
}

func ranks[T any](sorted []rating.PlayerWithRating[T]) map[string]int {
	out := make(map[string]int, len(sorted))
	for i, p := range sorted {
		out[p.PlayerID] = i + 1
	}
	return out
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
