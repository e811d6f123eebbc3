package processor

import (
	"sync"
	"time"

	"github.com/mauv0809/tribble-league/internal/config"
	"github.com/mauv0809/tribble-league/internal/metrics"
	"github.com/mauv0809/tribble-league/internal/pubsub"
	"github.com/mauv0809/tribble-league/internal/quest"
	"github.com/mauv0809/tribble-league/internal/rating"
)

// Processor handles the business logic of logging matches and running quests.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	counters metrics.MetricsStore

	ratingCfg rating.Config
	questCfg  config.QuestConfig
	generator *quest.Generator
	now       func() time.Time

	// jobMu keeps quest runs from overlapping when HTTP and cron trigger together.
	jobMu sync.Mutex
}

// Option configures a Processor.
type Option func(*Processor)

func WithRatingConfig(cfg rating.Config) Option {
	return func(p *Processor) { p.ratingCfg = cfg }
}

func WithQuestConfig(cfg config.QuestConfig) Option {
	return func(p *Processor) { p.questCfg = cfg }
}

func WithGenerator(g *quest.Generator) Option {
	return func(p *Processor) { p.generator = g }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// QuestRunResult reports what a quest processing run resolved.
type QuestRunResult struct {
	SeasonID  string        `json:"seasonId"`
	Completed []quest.Quest `json:"completed"`
	Failed    []quest.Quest `json:"failed"`
	Active    int           `json:"active"`
}

// GenerateResult reports the quests handed out by a generation run.
type GenerateResult struct {
	SeasonID  string        `json:"seasonId"`
	Generated []quest.Quest `json:"generated"`
	Evicted   []quest.Quest `json:"evicted"`
}
