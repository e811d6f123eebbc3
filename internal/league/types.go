package league

import (
	"encoding/json"
	"time"
)

// Player is the identity of a club member as known by the player directory.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
}

// DisplayName prefers the nickname when one is set.
func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Result is the outcome of a match from the white side's point of view.
type Result string

const (
	ResultWhite Result = "WHITE"
	ResultBlack Result = "BLACK"
	ResultDraw  Result = "DRAW"
)

// Side identifies one of the two teams of a match.
type Side string

const (
	SideNone  Side = ""
	SideWhite Side = "white"
	SideBlack Side = "black"
)

// Opposite returns the other side. SideNone stays SideNone.
func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	}
	return SideNone
}

// Match is a logged game between two teams of one or two players.
// The second player of a team is empty for 1v1 matches.
type Match struct {
	ID             string    `json:"id" msgpack:"id"`
	WhitePlayerOne string    `json:"whitePlayerOne" msgpack:"white_player_one"`
	WhitePlayerTwo string    `json:"whitePlayerTwo,omitempty" msgpack:"white_player_two"`
	BlackPlayerOne string    `json:"blackPlayerOne" msgpack:"black_player_one"`
	BlackPlayerTwo string    `json:"blackPlayerTwo,omitempty" msgpack:"black_player_two"`
	Result         Result    `json:"result" msgpack:"result"`
	ScoreDiff      int       `json:"scoreDiff" msgpack:"score_diff"`
	CreatedAt      time.Time `json:"createdAt" msgpack:"created_at"`
	SeasonID       string    `json:"seasonId" msgpack:"season_id"`
}

// Season is the time window and rating configuration matches are scored under.
type Season struct {
	ID        string
	Name      string
	Algorithm string
	StartsAt  time.Time
	EndsAt    *time.Time
}

// Active reports whether the season is running at the given instant.
func (s Season) Active(at time.Time) bool {
	if at.Before(s.StartsAt) {
		return false
	}
	return s.EndsAt == nil || at.Before(*s.EndsAt)
}

// RatingEventType classifies rating adjustments that do not come from a match result.
type RatingEventType string

const (
	EventQuestReward  RatingEventType = "QUEST_REWARD"
	EventQuestPenalty RatingEventType = "QUEST_PENALTY"
)

// RatingEvent records a reward or penalty applied to a player within a season.
// Data holds a JSON payload whose shape depends on Type.
type RatingEvent struct {
	ID        string          `json:"id"`
	Type      RatingEventType `json:"type"`
	PlayerID  string          `json:"playerId"`
	SeasonID  string          `json:"seasonId"`
	MatchID   *string         `json:"matchId,omitempty"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// QuestEventData is the payload stored on quest reward and penalty events.
type QuestEventData struct {
	QuestID     string `json:"questId"`
	QuestKind   string `json:"questKind"`
	Outcome     string `json:"outcome"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}
