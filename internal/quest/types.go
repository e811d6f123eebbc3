package quest

import (
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
)

// Kind is the persisted type tag of a quest.
type Kind string

const (
	KindPlayMatchCount     Kind = "PLAY_MATCH_COUNT"
	KindPlay1v1            Kind = "PLAY_1V1"
	KindWinStreak          Kind = "WIN_STREAK"
	KindWinCount           Kind = "WIN_COUNT"
	KindWinByPoints        Kind = "WIN_BY_POINTS"
	KindWinAgainst         Kind = "WIN_AGAINST"
	KindWinAgainstByPoints Kind = "WIN_AGAINST_BY_POINTS"
	KindWinWith            Kind = "WIN_WITH"
	KindPlayMatchWith      Kind = "PLAY_MATCH_WITH"
)

// Kinds lists every quest kind.
func Kinds() []Kind {
	return []Kind{
		KindPlayMatchCount,
		KindPlay1v1,
		KindWinStreak,
		KindWinCount,
		KindWinByPoints,
		KindWinAgainst,
		KindWinAgainstByPoints,
		KindWinWith,
		KindPlayMatchWith,
	}
}

// Status is where a quest is in its lifecycle. Completed and Failed are final.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Condition parameterizes the goal of a quest. Which fields matter depends on the kind.
type Condition struct {
	Target     int    `json:"target,omitempty"`
	Points     int    `json:"points,omitempty"`
	OpponentID string `json:"opponentId,omitempty"`
	TeammateID string `json:"teammateId,omitempty"`
}

// Progress is the state accumulated while replaying matches.
type Progress struct {
	MatchesPlayed    int  `json:"matchesPlayed,omitempty"`
	HasPlayed        bool `json:"hasPlayed,omitempty"`
	WinStreak        int  `json:"winStreak,omitempty"`
	WinCount         int  `json:"winCount,omitempty"`
	PointsWon        int  `json:"pointsWon,omitempty"`
	WonAgainst       bool `json:"wonAgainst,omitempty"`
	WinAgainstPoints int  `json:"winAgainstPoints,omitempty"`
	HasWonWith       bool `json:"hasWonWith,omitempty"`
	HasPlayedWith    bool `json:"hasPlayedWith,omitempty"`
}

// Quest is a goal assigned to one player for one season.
type Quest struct {
	ID         string
	PlayerID   string
	SeasonID   string
	Kind       Kind
	Condition  Condition
	Progress   Progress
	Status     Status
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// Event is a match seen from the quest owner's side.
type Event struct {
	Match     league.Match
	Won       bool
	Teammate  string
	Opponents []string
}

func newEvent(m league.Match, playerID string) Event {
	return Event{
		Match:     m,
		Won:       m.IsWinner(playerID),
		Teammate:  m.Teammate(playerID),
		Opponents: m.Opponents(playerID),
	}
}
