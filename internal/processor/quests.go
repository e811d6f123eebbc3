package processor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/metrics"
	"github.com/mauv0809/tribble-league/internal/notifier"
	"github.com/mauv0809/tribble-league/internal/quest"
)

// ProcessQuests resolves the open quests of a season. Progress is rebuilt from
// scratch by replaying every match of the season, so running it twice over the
// same data resolves nothing new.
func (p *Processor) ProcessQuests(ctx context.Context, seasonID string, dryRun bool) (QuestRunResult, error) {
	p.jobMu.Lock()
	defer p.jobMu.Unlock()

	startTime := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(float64(time.Since(startTime).Milliseconds()))
	}()

	season, err := p.season(seasonID)
	if err != nil {
		return QuestRunResult{}, err
	}
	log.Info("Starting quest processing...", "season", season.ID, "dryRun", dryRun)

	quests, err := p.openQuests(season.ID)
	if err != nil {
		return QuestRunResult{}, err
	}
	result := QuestRunResult{SeasonID: season.ID}
	if len(quests) == 0 {
		log.Info("No open quests to process.")
		return result, nil
	}

	matches, err := p.store.GetMatchesForSeason(season.ID)
	if err != nil {
		return QuestRunResult{}, fmt.Errorf("failed to load matches: %w", err)
	}

	manager := quest.NewManager(quest.WithMaxQuestsPerPlayer(p.questCfg.MaxPerPlayer))
	for _, q := range quests {
		q.Progress = quest.Progress{}
		q.Status = quest.StatusInProgress
		manager.AddQuest(q)
	}

	completedBy := make(map[string]league.Match)
	var completed []*quest.Quest
	for _, m := range league.SortChronologically(matches) {
		if err := ctx.Err(); err != nil {
			return QuestRunResult{}, err
		}
		// A quest that ran out of time before the match cannot be completed by it.
		manager.Expire(m.CreatedAt, p.questCfg.TTL)
		for _, q := range manager.HandleMatch(m) {
			completedBy[q.ID] = m
			completed = append(completed, q)
		}
	}
	now := p.now().UTC()
	manager.Expire(now, p.questCfg.TTL)
	failed := manager.FailedQuests()
	active := manager.ActiveQuests()

	var events []league.RatingEvent
	for _, q := range completed {
		m := completedBy[q.ID]
		at := m.CreatedAt
		q.ResolvedAt = &at
		event, err := q.Reward(m.ID, at)
		if err != nil {
			return QuestRunResult{}, err
		}
		events = append(events, event)
	}
	for _, q := range failed {
		q.ResolvedAt = &now
		event, err := q.Penalty(now)
		if err != nil {
			return QuestRunResult{}, err
		}
		events = append(events, event)
	}

	if dryRun {
		log.Info("[Dry Run] Would resolve quests", "completed", len(completed), "failed", len(failed), "active", len(active))
	} else {
		if err := p.persistRun(completed, failed, active, events); err != nil {
			return QuestRunResult{}, err
		}
	}

	p.metrics.IncQuestRuns()
	p.metrics.IncQuestsCompleted(len(completed))
	p.metrics.IncQuestsFailed(len(failed))
	if !dryRun {
		p.counters.Increment(metrics.KeyQuestRuns)
	}

	p.announceResolved(completed, failed, dryRun)

	result.Completed = values(completed)
	result.Failed = values(failed)
	result.Active = len(active)
	log.Info("Quest processing finished.", "season", season.ID, "completed", len(completed), "failed", len(failed), "active", len(active))
	return result, nil
}

func (p *Processor) persistRun(completed, failed, active []*quest.Quest, events []league.RatingEvent) error {
	for _, q := range completed {
		if err := p.resolve(q); err != nil {
			return err
		}
	}
	for _, q := range failed {
		if err := p.resolve(q); err != nil {
			return err
		}
	}
	for _, q := range active {
		rec, err := quest.Encode(*q)
		if err != nil {
			return err
		}
		if err := p.store.UpdateQuestProgress(q.ID, rec.Progress); err != nil {
			return fmt.Errorf("failed to update progress of quest %s: %w", q.ID, err)
		}
	}
	if len(events) > 0 {
		if err := p.store.InsertRatingEvents(events); err != nil {
			return fmt.Errorf("failed to store rating events: %w", err)
		}
	}
	return nil
}

func (p *Processor) resolve(q *quest.Quest) error {
	rec, err := quest.Encode(*q)
	if err != nil {
		return err
	}
	if err := p.store.ResolveQuest(q.ID, q.Status, rec.Progress, *q.ResolvedAt); err != nil {
		return fmt.Errorf("failed to resolve quest %s: %w", q.ID, err)
	}
	p.counters.Increment(metrics.KeyQuestsResolved)
	return nil
}

func (p *Processor) announceResolved(completed, failed []*quest.Quest, dryRun bool) {
	if len(completed) == 0 && len(failed) == 0 {
		return
	}
	names, err := p.Names()
	if err != nil {
		log.Error("Failed to load player names for quest notifications", "error", err)
		names = notifier.Names{}
	}
	for _, q := range completed {
		if err := p.notifier.SendQuestCompleted(*q, names, dryRun); err != nil {
			log.Error("Failed to send quest completed notification", "error", err, "questID", q.ID)
		}
	}
	for _, q := range failed {
		if err := p.notifier.SendQuestFailed(*q, names, dryRun); err != nil {
			log.Error("Failed to send quest failed notification", "error", err, "questID", q.ID)
		}
	}
}

// GenerateQuests hands every known player a new quest for the season. Players
// already at the quest cap lose their oldest open quest, which is penalized.
func (p *Processor) GenerateQuests(ctx context.Context, seasonID string, dryRun bool) (GenerateResult, error) {
	p.jobMu.Lock()
	defer p.jobMu.Unlock()

	season, err := p.season(seasonID)
	if err != nil {
		return GenerateResult{}, err
	}
	log.Info("Starting quest generation...", "season", season.ID, "dryRun", dryRun)

	players, err := p.store.GetAllPlayers()
	if err != nil {
		return GenerateResult{}, fmt.Errorf("failed to load players: %w", err)
	}
	result := GenerateResult{SeasonID: season.ID}
	if len(players) == 0 {
		log.Info("No players to generate quests for.")
		return result, nil
	}

	open, err := p.openQuests(season.ID)
	if err != nil {
		return GenerateResult{}, err
	}
	manager := quest.NewManager(quest.WithMaxQuestsPerPlayer(p.questCfg.MaxPerPlayer))
	for _, q := range open {
		manager.AddQuest(q)
	}

	pool := make([]string, 0, len(players))
	for _, pl := range players {
		pool = append(pool, pl.ID)
	}

	now := p.now().UTC()
	generated := make([]quest.Quest, 0, len(players))
	records := make([]quest.Record, 0, len(players))
	for _, pl := range players {
		if err := ctx.Err(); err != nil {
			return GenerateResult{}, err
		}
		q := p.generator.Generate(pl.ID, season.ID, pool, now)
		manager.AddQuest(&q)
		rec, err := quest.Encode(q)
		if err != nil {
			return GenerateResult{}, err
		}
		generated = append(generated, q)
		records = append(records, rec)
	}

	evicted := manager.FailedQuests()
	var events []league.RatingEvent
	for _, q := range evicted {
		q.ResolvedAt = &now
		event, err := q.Penalty(now)
		if err != nil {
			return GenerateResult{}, err
		}
		events = append(events, event)
	}

	if dryRun {
		log.Info("[Dry Run] Would store generated quests", "generated", len(generated), "evicted", len(evicted))
	} else {
		for _, q := range evicted {
			if err := p.resolve(q); err != nil {
				return GenerateResult{}, err
			}
		}
		if len(events) > 0 {
			if err := p.store.InsertRatingEvents(events); err != nil {
				return GenerateResult{}, fmt.Errorf("failed to store rating events: %w", err)
			}
		}
		if err := p.store.InsertQuests(records); err != nil {
			return GenerateResult{}, fmt.Errorf("failed to store quests: %w", err)
		}
	}

	p.metrics.IncQuestsGenerated(len(generated))
	p.metrics.IncQuestsFailed(len(evicted))

	names := notifier.NamesFrom(players)
	if err := p.notifier.SendNewQuests(generated, names, dryRun); err != nil {
		log.Error("Failed to send new quests notification", "error", err)
	}
	for _, q := range evicted {
		if err := p.notifier.SendQuestFailed(*q, names, dryRun); err != nil {
			log.Error("Failed to send quest failed notification", "error", err, "questID", q.ID)
		}
	}

	result.Generated = generated
	result.Evicted = values(evicted)
	log.Info("Quest generation finished.", "season", season.ID, "generated", len(generated), "evicted", len(evicted))
	return result, nil
}

// openQuests loads the unresolved quests of a season, oldest first.
// An unknown quest kind aborts the load.
func (p *Processor) openQuests(seasonID string) ([]*quest.Quest, error) {
	records, err := p.store.GetUnresolvedQuests(seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quests: %w", err)
	}
	quests := make([]*quest.Quest, 0, len(records))
	for _, rec := range records {
		q, err := quest.Decode(rec)
		if err != nil {
			return nil, err
		}
		quests = append(quests, &q)
	}
	sort.SliceStable(quests, func(i, j int) bool {
		return quests[i].CreatedAt.Before(quests[j].CreatedAt)
	})
	return quests, nil
}

func values(quests []*quest.Quest) []quest.Quest {
	out := make([]quest.Quest, 0, len(quests))
	for _, q := range quests {
		out = append(out, *q)
	}
	return out
}
