package metrics

import "github.com/prometheus/client_golang/prometheus"

// Durable counter keys.
const (
	KeyMatchesLogged  = "matches_logged"
	KeyQuestRuns      = "quest_runs"
	KeyQuestsResolved = "quests_resolved"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesLogged      prometheus.Counter
	QuestRuns          prometheus.Counter
	Quests             *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
