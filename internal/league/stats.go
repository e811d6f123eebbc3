package league

import (
	"slices"
	"time"
)

// DaySummary aggregates the matches played on one calendar day.
// BiggestWin and ClosestWin are nil when no decided match was played.
type DaySummary struct {
	Day             time.Time
	MatchesPlayed   int
	Draws           int
	BiggestWin      *Match
	ClosestWin      *Match
	MostActive      []string
	MostActiveGames int
}

// BiggestWin returns the decided match with the largest score difference.
// ok is false when there is no decided match to pick from.
func BiggestWin(matches []Match) (Match, bool) {
	return pickWin(matches, func(candidate, best Match) bool {
		return candidate.ScoreDiff > best.ScoreDiff
	})
}

// ClosestWin returns the decided match with the smallest score difference.
// ok is false when there is no decided match to pick from.
func ClosestWin(matches []Match) (Match, bool) {
	return pickWin(matches, func(candidate, best Match) bool {
		return candidate.ScoreDiff < best.ScoreDiff
	})
}

func pickWin(matches []Match, better func(candidate, best Match) bool) (Match, bool) {
	var best Match
	found := false
	for _, m := range SortChronologically(matches) {
		if m.IsDraw() {
			continue
		}
		if !found || better(m, best) {
			best = m
			found = true
		}
	}
	return best, found
}

// Summarize builds the summary for the UTC calendar day containing day.
func Summarize(matches []Match, day time.Time) DaySummary {
	start := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var todays []Match
	for _, m := range matches {
		at := m.CreatedAt.UTC()
		if !at.Before(start) && at.Before(end) {
			todays = append(todays, m)
		}
	}

	summary := DaySummary{Day: start, MatchesPlayed: len(todays)}
	played := make(map[string]int)
	for _, m := range todays {
		if m.IsDraw() {
			summary.Draws++
		}
		for _, id := range m.Participants() {
			played[id]++
		}
	}
	if m, ok := BiggestWin(todays); ok {
		summary.BiggestWin = &m
	}
	if m, ok := ClosestWin(todays); ok {
		summary.ClosestWin = &m
	}

	for _, m := range SortChronologically(todays) {
		for _, id := range m.Participants() {
			count := played[id]
			switch {
			case count > summary.MostActiveGames:
				summary.MostActiveGames = count
				summary.MostActive = []string{id}
			case count == summary.MostActiveGames && !slices.Contains(summary.MostActive, id):
				summary.MostActive = append(summary.MostActive, id)
			}
		}
	}
	return summary
}
