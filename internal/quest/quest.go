// Package quest implements per-player goals that are checked against logged
// matches. Progress is a plain value advanced by a pure transition per kind.
package quest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mauv0809/tribble-league/internal/league"
)

// Evaluate applies the match to the quest and returns its new status.
func (q *Quest) Evaluate(m league.Match) Status {
	q.Progress, q.Status = Transition(*q, m)
	return q.Status
}

// RewardPoints is the number of rating points awarded when the quest is completed.
func (q Quest) RewardPoints() int {
	c := q.Condition
	switch q.Kind {
	case KindPlayMatchCount:
		return 5 * c.Target
	case KindPlay1v1:
		return 15
	case KindWinStreak:
		return 20 * c.Target
	case KindWinCount:
		return 10 * c.Target
	case KindWinByPoints:
		return 2 * c.Points
	case KindWinAgainst:
		return 25
	case KindWinAgainstByPoints:
		return 25 + c.Points
	case KindWinWith:
		return 20
	case KindPlayMatchWith:
		return 10
	}
	return 0
}

// PenaltyPoints is the (negative) number of points taken when the quest fails.
func (q Quest) PenaltyPoints() int {
	return -q.RewardPoints() / 2
}

// Describe renders the goal for humans. name resolves player ids to display names.
func (q Quest) Describe(name func(playerID string) string) string {
	c := q.Condition
	switch q.Kind {
	case KindPlayMatchCount:
		return fmt.Sprintf("Play %d matches", c.Target)
	case KindPlay1v1:
		return "Play a 1v1 match"
	case KindWinStreak:
		return fmt.Sprintf("Win %d matches in a row", c.Target)
	case KindWinCount:
		return fmt.Sprintf("Win %d matches", c.Target)
	case KindWinByPoints:
		return fmt.Sprintf("Win a match by at least %d points", c.Points)
	case KindWinAgainst:
		return fmt.Sprintf("Beat %s", name(c.OpponentID))
	case KindWinAgainstByPoints:
		return fmt.Sprintf("Beat %s by at least %d points", name(c.OpponentID), c.Points)
	case KindWinWith:
		return fmt.Sprintf("Win a match together with %s", name(c.TeammateID))
	case KindPlayMatchWith:
		return fmt.Sprintf("Play a match together with %s", name(c.TeammateID))
	}
	return string(q.Kind)
}

// Reward builds the rating event for a completed quest, linked to the match that completed it.
func (q Quest) Reward(matchID string, at time.Time) (league.RatingEvent, error) {
	event, err := q.event(league.EventQuestReward, StatusCompleted, q.RewardPoints(), at)
	if err != nil {
		return league.RatingEvent{}, err
	}
	if matchID != "" {
		event.MatchID = &matchID
	}
	return event, nil
}

// Penalty builds the rating event for a failed quest.
func (q Quest) Penalty(at time.Time) (league.RatingEvent, error) {
	return q.event(league.EventQuestPenalty, StatusFailed, q.PenaltyPoints(), at)
}

func (q Quest) event(typ league.RatingEventType, outcome Status, points int, at time.Time) (league.RatingEvent, error) {
	data, err := json.Marshal(league.QuestEventData{
		QuestID:     q.ID,
		QuestKind:   string(q.Kind),
		Outcome:     string(outcome),
		Points:      points,
		Description: q.Describe(func(id string) string { return id }),
	})
	if err != nil {
		return league.RatingEvent{}, fmt.Errorf("failed to encode quest event: %w", err)
	}
	return league.RatingEvent{
		ID:        uuid.NewString(),
		Type:      typ,
		PlayerID:  q.PlayerID,
		SeasonID:  q.SeasonID,
		Data:      data,
		CreatedAt: at,
	}, nil
}
