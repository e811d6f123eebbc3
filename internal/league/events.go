package league

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// OutcomeUnknown is shown for events whose payload could not be read.
const OutcomeUnknown = "Unknown"

// EventRow is the display form of a rating event.
type EventRow struct {
	EventID     string    `json:"eventId"`
	PlayerID    string    `json:"playerId"`
	Type        string    `json:"type"`
	Outcome     string    `json:"outcome"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
	MatchID     string    `json:"matchId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DescribeEvents converts rating events into display rows. A payload that
// cannot be decoded produces an Unknown row and does not affect the others.
func DescribeEvents(events []RatingEvent) []EventRow {
	rows := make([]EventRow, 0, len(events))
	for _, event := range events {
		row := EventRow{
			EventID:   event.ID,
			PlayerID:  event.PlayerID,
			Type:      string(event.Type),
			Outcome:   OutcomeUnknown,
			CreatedAt: event.CreatedAt,
		}
		if event.MatchID != nil {
			row.MatchID = *event.MatchID
		}

		data, err := decodeQuestEventData(event)
		if err != nil {
			log.Warn("Failed to decode rating event payload", "error", err, "eventID", event.ID, "type", event.Type)
			rows = append(rows, row)
			continue
		}
		row.Outcome = data.Outcome
		row.Points = data.Points
		row.Description = data.Description
		rows = append(rows, row)
	}
	return rows
}

func decodeQuestEventData(event RatingEvent) (QuestEventData, error) {
	var data QuestEventData
	switch event.Type {
	case EventQuestReward, EventQuestPenalty:
	default:
		return data, fmt.Errorf("unsupported event type %q", event.Type)
	}
	if len(event.Data) == 0 {
		return data, fmt.Errorf("empty payload")
	}
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return data, fmt.Errorf("malformed payload: %w", err)
	}
	if data.Outcome == "" {
		return data, fmt.Errorf("payload has no outcome")
	}
	return data, nil
}
