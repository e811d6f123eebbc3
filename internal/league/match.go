package league

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrInvalidMatch is returned when a match violates the team or score rules.
var ErrInvalidMatch = errors.New("invalid match")

// WhiteTeam returns the ids of the white side, one or two entries.
func (m Match) WhiteTeam() []string {
	return team(m.WhitePlayerOne, m.WhitePlayerTwo)
}

// BlackTeam returns the ids of the black side, one or two entries.
func (m Match) BlackTeam() []string {
	return team(m.BlackPlayerOne, m.BlackPlayerTwo)
}

func team(one, two string) []string {
	if two == "" {
		return []string{one}
	}
	return []string{one, two}
}

// Team returns the players of the given side.
func (m Match) Team(side Side) []string {
	switch side {
	case SideWhite:
		return m.WhiteTeam()
	case SideBlack:
		return m.BlackTeam()
	}
	return nil
}

// Participants returns every player of the match, white side first.
func (m Match) Participants() []string {
	return append(m.WhiteTeam(), m.BlackTeam()...)
}

// SideOf returns the side the player was on, or SideNone if they did not play.
func (m Match) SideOf(playerID string) Side {
	if playerID == "" {
		return SideNone
	}
	switch playerID {
	case m.WhitePlayerOne, m.WhitePlayerTwo:
		return SideWhite
	case m.BlackPlayerOne, m.BlackPlayerTwo:
		return SideBlack
	}
	return SideNone
}

// HasPlayer reports whether the player took part in the match.
func (m Match) HasPlayer(playerID string) bool {
	return m.SideOf(playerID) != SideNone
}

// WinningSide returns the side that won, or SideNone for a draw.
func (m Match) WinningSide() Side {
	switch m.Result {
	case ResultWhite:
		return SideWhite
	case ResultBlack:
		return SideBlack
	}
	return SideNone
}

// IsDraw reports whether the match ended level.
func (m Match) IsDraw() bool {
	return m.Result == ResultDraw
}

// Winners returns the players of the winning side; empty for draws.
func (m Match) Winners() []string {
	return m.Team(m.WinningSide())
}

// Losers returns the players of the losing side; empty for draws.
func (m Match) Losers() []string {
	return m.Team(m.WinningSide().Opposite())
}

// IsWinner reports whether the player was on the winning side.
func (m Match) IsWinner(playerID string) bool {
	side := m.SideOf(playerID)
	return side != SideNone && side == m.WinningSide()
}

// IsOneVsOne reports whether neither side had a second player.
func (m Match) IsOneVsOne() bool {
	return m.WhitePlayerTwo == "" && m.BlackPlayerTwo == ""
}

// Teammate returns the other member of the player's team, or "" if they played alone.
func (m Match) Teammate(playerID string) string {
	for _, id := range m.Team(m.SideOf(playerID)) {
		if id != playerID {
			return id
		}
	}
	return ""
}

// Opponents returns the players on the other side.
func (m Match) Opponents(playerID string) []string {
	side := m.SideOf(playerID)
	if side == SideNone {
		return nil
	}
	return m.Team(side.Opposite())
}

// Validate checks the team sizes, result and score difference of the match.
func (m Match) Validate() error {
	if m.WhitePlayerOne == "" || m.BlackPlayerOne == "" {
		return fmt.Errorf("%w: each side needs at least one player", ErrInvalidMatch)
	}
	seen := make(map[string]bool, 4)
	for _, id := range m.Participants() {
		if seen[id] {
			return fmt.Errorf("%w: player %s appears more than once", ErrInvalidMatch, id)
		}
		seen[id] = true
	}
	switch m.Result {
	case ResultWhite, ResultBlack:
		if m.ScoreDiff <= 0 {
			return fmt.Errorf("%w: a decided match needs a positive score difference", ErrInvalidMatch)
		}
	case ResultDraw:
		if m.ScoreDiff != 0 {
			return fmt.Errorf("%w: a draw must have a score difference of 0", ErrInvalidMatch)
		}
	default:
		return fmt.Errorf("%w: unknown result %q", ErrInvalidMatch, m.Result)
	}
	return nil
}

// SortChronologically returns a copy of the matches ordered by creation time.
// Matches created at the same instant are ordered by id, so a replay never
// depends on the order the store returned them in.
func SortChronologically(matches []Match) []Match {
	sorted := slices.Clone(matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}
