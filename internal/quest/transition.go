package quest

import (
	"slices"

	"github.com/mauv0809/tribble-league/internal/league"
)

// transitionFunc advances the progress of one kind and reports whether the goal is met.
type transitionFunc func(c Condition, p Progress, e Event) (Progress, bool)

var transitions = map[Kind]transitionFunc{
	KindPlayMatchCount: func(c Condition, p Progress, _ Event) (Progress, bool) {
		p.MatchesPlayed++
		return p, p.MatchesPlayed >= c.Target
	},
	KindPlay1v1: func(_ Condition, p Progress, e Event) (Progress, bool) {
		if e.Match.IsOneVsOne() {
			p.HasPlayed = true
		}
		return p, p.HasPlayed
	},
	KindWinStreak: func(c Condition, p Progress, e Event) (Progress, bool) {
		if e.Won {
			p.WinStreak++
		} else {
			p.WinStreak = 0
		}
		return p, p.WinStreak >= c.Target
	},
	KindWinCount: func(c Condition, p Progress, e Event) (Progress, bool) {
		if e.Won {
			p.WinCount++
		}
		return p, p.WinCount >= c.Target
	},
	KindWinByPoints: func(c Condition, p Progress, e Event) (Progress, bool) {
		if e.Won && e.Match.ScoreDiff >= c.Points {
			p.PointsWon = e.Match.ScoreDiff
		}
		return p, p.PointsWon >= c.Points && p.PointsWon > 0
	},
	KindWinAgainst: func(c Condition, p Progress, e Event) (Progress, bool) {
		if e.Won && slices.Contains(e.Opponents, c.OpponentID) {
			p.WonAgainst = true
		}
		return p, p.WonAgainst
	},
	KindWinAgainstByPoints: func(c Condition, p Progress, e Event) (Progress, bool) {
		if e.Won && slices.Contains(e.Opponents, c.OpponentID) && e.Match.ScoreDiff >= c.Points {
			p.WinAgainstPoints = e.Match.ScoreDiff
		}
		return p, p.WinAgainstPoints >= c.Points && p.WinAgainstPoints > 0
	},
	KindWinWith: func(c Condition, p Progress, e Event) (Progress, bool) {
		if e.Won && e.Teammate != "" && e.Teammate == c.TeammateID {
			p.HasWonWith = true
		}
		return p, p.HasWonWith
	},
	KindPlayMatchWith: func(c Condition, p Progress, e Event) (Progress, bool) {
		if e.Teammate != "" && e.Teammate == c.TeammateID {
			p.HasPlayedWith = true
		}
		return p, p.HasPlayedWith
	},
}

// Transition applies a match to a quest without modifying it. Matches the
// owner did not play, or that happened before the quest was created, leave
// it untouched, as does any match once the quest is resolved.
func Transition(q Quest, m league.Match) (Progress, Status) {
	if q.Status.Terminal() {
		return q.Progress, q.Status
	}
	if !m.HasPlayer(q.PlayerID) || !m.CreatedAt.After(q.CreatedAt) {
		return q.Progress, q.Status
	}
	fn, ok := transitions[q.Kind]
	if !ok {
		return q.Progress, q.Status
	}
	p, done := fn(q.Condition, q.Progress, newEvent(m, q.PlayerID))
	if done {
		return p, StatusCompleted
	}
	return p, StatusInProgress
}
