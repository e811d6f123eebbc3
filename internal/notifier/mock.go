package notifier

import (
	"sync"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/quest"
	"github.com/mauv0809/tribble-league/internal/replay"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchResultFunc func(match league.Match, diffs []replay.PlayerDiff) error

	// Call records
	SendMatchResultCalls []struct {
		Match league.Match
		Diffs []replay.PlayerDiff
	}
	SendQuestCompletedCalls []quest.Quest
	SendQuestFailedCalls    []quest.Quest
	SendNewQuestsCalls      [][]quest.Quest
	SendLeaderboardCalls    []struct {
		Season    league.Season
		Standings []replay.Standing
	}
	SendDailySummaryCalls []league.DaySummary

	LastLeaderboardResponse  any
	LastDailySummaryResponse any
	LastPlayerCard           *PlayerCard
	LastSuggestions          []league.Player
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendQuestCompletedCalls = nil
	m.SendQuestFailedCalls = nil
	m.SendNewQuestsCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendDailySummaryCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastDailySummaryResponse = nil
	m.LastPlayerCard = nil
	m.LastSuggestions = nil
}

func (m *Mock) SendMatchResult(match league.Match, diffs []replay.PlayerDiff, _ Names, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Match league.Match
		Diffs []replay.PlayerDiff
	}{match, diffs})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, diffs)
	}
	return nil
}

func (m *Mock) SendQuestCompleted(q quest.Quest, _ Names, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendQuestCompletedCalls = append(m.SendQuestCompletedCalls, q)
	return nil
}

func (m *Mock) SendQuestFailed(q quest.Quest, _ Names, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendQuestFailedCalls = append(m.SendQuestFailedCalls, q)
	return nil
}

func (m *Mock) SendNewQuests(quests []quest.Quest, _ Names, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendNewQuestsCalls = append(m.SendNewQuestsCalls, quests)
	return nil
}

func (m *Mock) SendLeaderboard(season league.Season, standings []replay.Standing, _ Names, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Season    league.Season
		Standings []replay.Standing
	}{season, standings})
	return nil
}

func (m *Mock) SendDailySummary(summary league.DaySummary, _ Names, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDailySummaryCalls = append(m.SendDailySummaryCalls, summary)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(season league.Season, standings []replay.Standing, _ Names) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := map[string]any{"season": season.ID, "standings": standings}
	m.LastLeaderboardResponse = resp
	return resp, nil
}

func (m *Mock) FormatDailySummaryResponse(summary league.DaySummary, _ Names) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastDailySummaryResponse = summary
	return summary, nil
}

func (m *Mock) FormatPlayerCardResponse(card PlayerCard, _ Names) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerCard = &card
	return card, nil
}

func (m *Mock) FormatPlayerSuggestionsResponse(candidates []league.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastSuggestions = candidates
	return map[string]any{"suggestions": candidates}, nil
}
