package notifier

import (
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/quest"
	"github.com/mauv0809/tribble-league/internal/replay"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For logged matches
	SendMatchResult(match league.Match, diffs []replay.PlayerDiff, names Names, dryRun bool) error
	// For the quest processing job
	SendQuestCompleted(q quest.Quest, names Names, dryRun bool) error
	SendQuestFailed(q quest.Quest, names Names, dryRun bool) error
	SendNewQuests(quests []quest.Quest, names Names, dryRun bool) error
	// For slash commands and scheduled posts
	SendLeaderboard(season league.Season, standings []replay.Standing, names Names, dryRun bool) error
	SendDailySummary(summary league.DaySummary, names Names, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(season league.Season, standings []replay.Standing, names Names) (any, error)
	FormatDailySummaryResponse(summary league.DaySummary, names Names) (any, error)
	FormatPlayerCardResponse(card PlayerCard, names Names) (any, error)
	FormatPlayerSuggestionsResponse(candidates []league.Player) (any, error)
}

// PlayerCard is one player's view of the current season.
type PlayerCard struct {
	Season league.Season `json:"season"`
	Player league.Player `json:"player"`
	// Standing is nil until the player has a rating.
	Standing   *replay.Standing `json:"standing,omitempty"`
	Played     int              `json:"played"`
	Won        int              `json:"won"`
	Drawn      int              `json:"drawn"`
	Recent     []league.Match   `json:"recent"`
	OpenQuests []quest.Quest    `json:"openQuests"`
}

// Names maps player ids to display names.
type Names map[string]string

// NamesFrom indexes players by id.
func NamesFrom(players []league.Player) Names {
	names := make(Names, len(players))
	for _, p := range players {
		names[p.ID] = p.DisplayName()
	}
	return names
}

// Of returns the display name of a player, falling back to the id.
func (n Names) Of(playerID string) string {
	if name, ok := n[playerID]; ok && name != "" {
		return name
	}
	return playerID
}
