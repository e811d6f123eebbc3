package club

import (
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/quest"
)

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	InsertMatch(match league.Match) error
	GetMatch(matchID string) (league.Match, error)
	GetMatchesForSeason(seasonID string) ([]league.Match, error)
	GetMatchesForPlayer(seasonID, playerID string) ([]league.Match, error)

	UpsertPlayers(players []league.Player) error
	GetPlayers(playerIDs []string) ([]league.Player, error)
	GetAllPlayers() ([]league.Player, error)
	GetPlayerBySlackUserID(slackUserID string) (league.Player, error)
	GetUnlinkedPlayers() ([]league.Player, error)
	LinkSlackUser(playerID, slackUserID string) error

	UpsertSeason(season league.Season) error
	GetSeason(seasonID string) (league.Season, error)
	GetActiveSeason(at time.Time) (league.Season, error)

	GetUnresolvedQuests(seasonID string) ([]quest.Record, error)
	InsertQuests(quests []quest.Record) error
	UpdateQuestProgress(questID, progress string) error
	ResolveQuest(questID string, status quest.Status, progress string, at time.Time) error

	InsertRatingEvents(events []league.RatingEvent) error
	GetRatingEvents(seasonID, playerID string) ([]league.RatingEvent, error)
}
