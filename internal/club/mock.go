package club

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/quest"
)

// MockStore is an in-memory ClubStore for testing. Every method records its
// call and can be overridden with the matching Func field.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Matches      []league.Match
	Players      []league.Player
	Seasons      []league.Season
	Quests       []quest.Record
	RatingEvents []league.RatingEvent
	// SlackLinks maps player ids to the Slack user linked to them.
	SlackLinks map[string]string

	// Spies for method calls
	InsertMatchFunc         func(match league.Match) error
	GetMatchesForSeasonFunc func(seasonID string) ([]league.Match, error)
	GetActiveSeasonFunc     func(at time.Time) (league.Season, error)
	InsertQuestsFunc        func(quests []quest.Record) error
	ResolveQuestFunc        func(questID string, status quest.Status, progress string, at time.Time) error
	InsertRatingEventsFunc  func(events []league.RatingEvent) error

	// Call records
	InsertMatchCalls         []league.Match
	UpsertPlayersCalls       [][]league.Player
	GetPlayersCalls          [][]string
	InsertQuestsCalls        [][]quest.Record
	UpdateQuestProgressCalls []struct {
		QuestID  string
		Progress string
	}
	ResolveQuestCalls []struct {
		QuestID string
		Status  quest.Status
	}
	InsertRatingEventsCalls [][]league.RatingEvent
	LinkSlackUserCalls      []struct {
		PlayerID    string
		SlackUserID string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{SlackLinks: map[string]string{}}
}

func (m *MockStore) InsertMatch(match league.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMatchCalls = append(m.InsertMatchCalls, match)
	if m.InsertMatchFunc != nil {
		return m.InsertMatchFunc(match)
	}
	m.Matches = append(m.Matches, match)
	return nil
}

func (m *MockStore) GetMatch(matchID string) (league.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, match := range m.Matches {
		if match.ID == matchID {
			return match, nil
		}
	}
	return league.Match{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
}

func (m *MockStore) GetMatchesForSeason(seasonID string) ([]league.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesForSeasonFunc != nil {
		return m.GetMatchesForSeasonFunc(seasonID)
	}
	out := []league.Match{}
	for _, match := range m.Matches {
		if match.SeasonID == seasonID {
			out = append(out, match)
		}
	}
	return out, nil
}

func (m *MockStore) GetMatchesForPlayer(seasonID, playerID string) ([]league.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []league.Match{}
	for _, match := range m.Matches {
		if match.SeasonID == seasonID && match.HasPlayer(playerID) {
			out = append(out, match)
		}
	}
	return out, nil
}

func (m *MockStore) UpsertPlayers(players []league.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	for _, p := range players {
		i := slices.IndexFunc(m.Players, func(x league.Player) bool { return x.ID == p.ID })
		if i >= 0 {
			m.Players[i] = p
			continue
		}
		m.Players = append(m.Players, p)
	}
	return nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	out := []league.Player{}
	for _, p := range m.Players {
		if slices.Contains(playerIDs, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockStore) GetAllPlayers() ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Players), nil
}

func (m *MockStore) UpsertSeason(season league.Season) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Seasons = slices.DeleteFunc(m.Seasons, func(s league.Season) bool { return s.ID == season.ID })
	m.Seasons = append(m.Seasons, season)
	return nil
}

func (m *MockStore) GetSeason(seasonID string) (league.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.Seasons {
		if s.ID == seasonID {
			return s, nil
		}
	}
	return league.Season{}, fmt.Errorf("season %s: %w", seasonID, ErrNotFound)
}

func (m *MockStore) GetActiveSeason(at time.Time) (league.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActiveSeasonFunc != nil {
		return m.GetActiveSeasonFunc(at)
	}
	for _, s := range m.Seasons {
		if s.Active(at) {
			return s, nil
		}
	}
	return league.Season{}, fmt.Errorf("active season: %w", ErrNotFound)
}

func (m *MockStore) GetUnresolvedQuests(seasonID string) ([]quest.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []quest.Record{}
	for _, r := range m.Quests {
		if r.SeasonID == seasonID && r.ResolvedAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockStore) InsertQuests(records []quest.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertQuestsCalls = append(m.InsertQuestsCalls, records)
	if m.InsertQuestsFunc != nil {
		return m.InsertQuestsFunc(records)
	}
	m.Quests = append(m.Quests, records...)
	return nil
}

func (m *MockStore) UpdateQuestProgress(questID, progress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateQuestProgressCalls = append(m.UpdateQuestProgressCalls, struct {
		QuestID  string
		Progress string
	}{questID, progress})
	for i := range m.Quests {
		if m.Quests[i].ID == questID {
			m.Quests[i].Progress = progress
		}
	}
	return nil
}

func (m *MockStore) ResolveQuest(questID string, status quest.Status, progress string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveQuestCalls = append(m.ResolveQuestCalls, struct {
		QuestID string
		Status  quest.Status
	}{questID, status})
	if m.ResolveQuestFunc != nil {
		return m.ResolveQuestFunc(questID, status, progress, at)
	}
	for i := range m.Quests {
		if m.Quests[i].ID == questID && m.Quests[i].ResolvedAt == nil {
			m.Quests[i].Status = string(status)
			m.Quests[i].Progress = progress
			m.Quests[i].ResolvedAt = &at
		}
	}
	return nil
}

func (m *MockStore) InsertRatingEvents(events []league.RatingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertRatingEventsCalls = append(m.InsertRatingEventsCalls, events)
	if m.InsertRatingEventsFunc != nil {
		return m.InsertRatingEventsFunc(events)
	}
	m.RatingEvents = append(m.RatingEvents, events...)
	return nil
}

func (m *MockStore) GetRatingEvents(seasonID, playerID string) ([]league.RatingEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []league.RatingEvent{}
	for _, e := range m.RatingEvents {
		if e.SeasonID == seasonID && (playerID == "" || e.PlayerID == playerID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockStore) GetPlayerBySlackUserID(slackUserID string) (league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Players {
		if id, ok := m.SlackLinks[p.ID]; ok && id == slackUserID {
			return p, nil
		}
	}
	return league.Player{}, fmt.Errorf("slack user %s: %w", slackUserID, ErrNotFound)
}

func (m *MockStore) GetUnlinkedPlayers() ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []league.Player{}
	for _, p := range m.Players {
		if _, ok := m.SlackLinks[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockStore) LinkSlackUser(playerID, slackUserID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LinkSlackUserCalls = append(m.LinkSlackUserCalls, struct {
		PlayerID    string
		SlackUserID string
	}{playerID, slackUserID})
	if !slices.ContainsFunc(m.Players, func(p league.Player) bool { return p.ID == playerID }) {
		return fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	if m.SlackLinks == nil {
		m.SlackLinks = map[string]string{}
	}
	for id, linked := range m.SlackLinks {
		if linked == slackUserID {
			delete(m.SlackLinks, id)
		}
	}
	m.SlackLinks[playerID] = slackUserID
	return nil
}
