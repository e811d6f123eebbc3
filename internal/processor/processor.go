package processor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/metrics"
	"github.com/mauv0809/tribble-league/internal/notifier"
	"github.com/mauv0809/tribble-league/internal/pubsub"
	"github.com/mauv0809/tribble-league/internal/quest"
	"github.com/mauv0809/tribble-league/internal/rating"
)

// ErrMatchNotInSeason is returned when a match is logged outside the window of its season.
var ErrMatchNotInSeason = errors.New("match is outside its season")

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, counters metrics.MetricsStore, pubsub pubsub.PubSubClient, opts ...Option) *Processor {
	p := &Processor{
		store:     store,
		pubsub:    pubsub,
		notifier:  notifier,
		metrics:   metrics,
		counters:  counters,
		ratingCfg: rating.DefaultConfig(),
		now:       time.Now,
	}
	p.questCfg.MaxPerPlayer = 3
	for _, opt := range opts {
		opt(p)
	}
	if p.generator == nil {
		p.generator = quest.NewGenerator(nil)
	}
	return p
}

// LogMatch validates and stores a match, then announces it on the match-logged topic.
// Missing ids and timestamps are filled in; an empty season means the season active at CreatedAt.
func (p *Processor) LogMatch(ctx context.Context, match league.Match, dryRun bool) (league.Match, error) {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = p.now()
	}
	match.CreatedAt = match.CreatedAt.UTC()

	if err := match.Validate(); err != nil {
		return league.Match{}, err
	}

	season, err := p.seasonFor(match)
	if err != nil {
		return league.Match{}, err
	}
	match.SeasonID = season.ID

	if dryRun {
		log.Info("[Dry Run] Would log match", "matchID", match.ID, "season", match.SeasonID, "result", match.Result)
		return match, nil
	}

	if err := p.registerPlayers(match.Participants()); err != nil {
		return league.Match{}, err
	}
	if err := p.store.InsertMatch(match); err != nil {
		return league.Match{}, fmt.Errorf("failed to store match: %w", err)
	}
	p.metrics.IncMatchesLogged()
	p.counters.Increment(metrics.KeyMatchesLogged)
	log.Info("Match logged", "matchID", match.ID, "season", match.SeasonID)

	// The match is stored at this point; a failed publish only costs the announcement.
	msg := pubsub.MatchLoggedMessage{MatchID: match.ID, SeasonID: match.SeasonID}
	if err := p.pubsub.SendMessage(ctx, pubsub.EventMatchLogged, msg); err != nil {
		log.Error("Failed to publish match-logged event", "error", err, "matchID", match.ID)
	}
	return match, nil
}

func (p *Processor) seasonFor(match league.Match) (league.Season, error) {
	if match.SeasonID == "" {
		season, err := p.store.GetActiveSeason(match.CreatedAt)
		if err != nil {
			return league.Season{}, fmt.Errorf("failed to find active season: %w", err)
		}
		return season, nil
	}
	season, err := p.store.GetSeason(match.SeasonID)
	if err != nil {
		return league.Season{}, fmt.Errorf("failed to load season: %w", err)
	}
	if !season.Active(match.CreatedAt) {
		return league.Season{}, fmt.Errorf("%w: %s", ErrMatchNotInSeason, season.ID)
	}
	return season, nil
}

// registerPlayers adds unknown participants to the player directory without touching known ones.
func (p *Processor) registerPlayers(ids []string) error {
	known, err := p.store.GetPlayers(ids)
	if err != nil {
		return fmt.Errorf("failed to look up players: %w", err)
	}
	var missing []league.Player
	for _, id := range ids {
		if !slices.ContainsFunc(known, func(pl league.Player) bool { return pl.ID == id }) {
			missing = append(missing, league.Player{ID: id})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	log.Info("Registering new players", "count", len(missing))
	if err := p.store.UpsertPlayers(missing); err != nil {
		return fmt.Errorf("failed to register players: %w", err)
	}
	return nil
}

// AnnounceMatch posts the result of a stored match together with the rating moves it caused.
func (p *Processor) AnnounceMatch(ctx context.Context, matchID string, dryRun bool) error {
	diffs, match, err := p.matchDiff(matchID, "")
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	names, err := p.Names()
	if err != nil {
		return err
	}
	return p.notifier.SendMatchResult(match, diffs, names, dryRun)
}

// Names returns the display names of every known player.
func (p *Processor) Names() (notifier.Names, error) {
	players, err := p.store.GetAllPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	return notifier.NamesFrom(players), nil
}

// season resolves an explicit season id, or the active season when it is empty.
func (p *Processor) season(seasonID string) (league.Season, error) {
	if seasonID == "" {
		season, err := p.store.GetActiveSeason(p.now())
		if err != nil {
			return league.Season{}, fmt.Errorf("failed to find active season: %w", err)
		}
		return season, nil
	}
	season, err := p.store.GetSeason(seasonID)
	if err != nil {
		return league.Season{}, fmt.Errorf("failed to load season: %w", err)
	}
	return season, nil
}
