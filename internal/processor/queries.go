package processor

import (
	"fmt"
	"slices"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/notifier"
	"github.com/mauv0809/tribble-league/internal/replay"
)

// recentMatches is how many matches a player card lists.
const recentMatches = 5

// Leaderboard ranks the players of a season. An empty algorithm uses the season's own.
func (p *Processor) Leaderboard(seasonID, algorithm string) (league.Season, []replay.Standing, error) {
	season, matches, ranker, err := p.load(seasonID, algorithm)
	if err != nil {
		return league.Season{}, nil, err
	}
	return season, ranker.Leaderboard(matches), nil
}

// PlayerHistory returns the end-of-day ratings of a player over a season.
func (p *Processor) PlayerHistory(seasonID, playerID, algorithm string) ([]replay.HistoryPoint, error) {
	_, matches, ranker, err := p.load(seasonID, algorithm)
	if err != nil {
		return nil, err
	}
	return ranker.History(matches, playerID), nil
}

// MatchDiff reports how a stored match moved the ratings and ranks of its participants.
func (p *Processor) MatchDiff(matchID, algorithm string) ([]replay.PlayerDiff, error) {
	diffs, _, err := p.matchDiff(matchID, algorithm)
	return diffs, err
}

func (p *Processor) matchDiff(matchID, algorithm string) ([]replay.PlayerDiff, league.Match, error) {
	match, err := p.store.GetMatch(matchID)
	if err != nil {
		return nil, league.Match{}, fmt.Errorf("failed to load match: %w", err)
	}
	_, matches, ranker, err := p.load(match.SeasonID, algorithm)
	if err != nil {
		return nil, league.Match{}, err
	}
	diffs, err := ranker.MatchDiff(upTo(matches, match.ID))
	if err != nil {
		return nil, league.Match{}, fmt.Errorf("failed to diff match %s: %w", match.ID, err)
	}
	return diffs, match, nil
}

// PlayerEvents lists the quest rewards and penalties of a player, newest first.
func (p *Processor) PlayerEvents(seasonID, playerID string) ([]league.EventRow, error) {
	season, err := p.season(seasonID)
	if err != nil {
		return nil, err
	}
	events, err := p.store.GetRatingEvents(season.ID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating events: %w", err)
	}
	return league.DescribeEvents(events), nil
}

// PlayerCard gathers a player's standing, record, latest matches and open quests
// in a season. An empty algorithm uses the season's own.
func (p *Processor) PlayerCard(seasonID, playerID, algorithm string) (notifier.PlayerCard, error) {
	season, matches, ranker, err := p.load(seasonID, algorithm)
	if err != nil {
		return notifier.PlayerCard{}, err
	}
	card := notifier.PlayerCard{Season: season, Player: league.Player{ID: playerID}}

	players, err := p.store.GetPlayers([]string{playerID})
	if err != nil {
		return notifier.PlayerCard{}, fmt.Errorf("failed to load player: %w", err)
	}
	if len(players) > 0 {
		card.Player = players[0]
	}

	for _, st := range ranker.Leaderboard(matches) {
		if st.PlayerID == playerID {
			card.Standing = &st
			break
		}
	}

	played, err := p.store.GetMatchesForPlayer(season.ID, playerID)
	if err != nil {
		return notifier.PlayerCard{}, fmt.Errorf("failed to load matches of %s: %w", playerID, err)
	}
	card.Played = len(played)
	for _, m := range played {
		switch {
		case m.IsDraw():
			card.Drawn++
		case m.IsWinner(playerID):
			card.Won++
		}
	}
	recent := league.SortChronologically(played)
	slices.Reverse(recent)
	card.Recent = recent[:min(len(recent), recentMatches)]

	open, err := p.openQuests(season.ID)
	if err != nil {
		return notifier.PlayerCard{}, err
	}
	for _, q := range open {
		if q.PlayerID == playerID {
			card.OpenQuests = append(card.OpenQuests, *q)
		}
	}
	return card, nil
}

// DailySummary recaps the matches of one UTC day in a season.
func (p *Processor) DailySummary(seasonID string, day time.Time) (league.DaySummary, error) {
	season, err := p.season(seasonID)
	if err != nil {
		return league.DaySummary{}, err
	}
	matches, err := p.store.GetMatchesForSeason(season.ID)
	if err != nil {
		return league.DaySummary{}, fmt.Errorf("failed to load matches: %w", err)
	}
	return league.Summarize(matches, day), nil
}

func (p *Processor) load(seasonID, algorithm string) (league.Season, []league.Match, replay.Ranker, error) {
	season, err := p.season(seasonID)
	if err != nil {
		return league.Season{}, nil, nil, err
	}
	if algorithm == "" {
		algorithm = season.Algorithm
	}
	ranker, err := replay.ForAlgorithm(algorithm, p.ratingCfg)
	if err != nil {
		return league.Season{}, nil, nil, err
	}
	matches, err := p.store.GetMatchesForSeason(season.ID)
	if err != nil {
		return league.Season{}, nil, nil, fmt.Errorf("failed to load matches: %w", err)
	}
	return season, matches, ranker, nil
}

// upTo returns the chronological prefix of matches ending with the given match.
func upTo(matches []league.Match, matchID string) []league.Match {
	ordered := league.SortChronologically(matches)
	for i, m := range ordered {
		if m.ID == matchID {
			return ordered[:i+1]
		}
	}
	return nil
}
