package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_matches_logged_total",
			Help: "The total number of matches logged.",
		}),
		QuestRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_quest_runs_total",
			Help: "The total number of quest processing runs.",
		}),
		Quests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_quests_total",
			Help: "Quests by lifecycle transition.",
		}, []string{"outcome"}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_quest_processing_duration_seconds",
			Help:    "The duration of a quest processing run.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesLogged,
		s.QuestRuns,
		s.Quests,
		s.ProcessingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesLogged() {
	s.MatchesLogged.Inc()
}

func (s *Service) IncQuestRuns() {
	s.QuestRuns.Inc()
}

func (s *Service) IncQuestsGenerated(n int) {
	s.Quests.WithLabelValues("generated").Add(float64(n))
}

func (s *Service) IncQuestsCompleted(n int) {
	s.Quests.WithLabelValues("completed").Add(float64(n))
}

func (s *Service) IncQuestsFailed(n int) {
	s.Quests.WithLabelValues("failed").Add(float64(n))
}

func (s *Service) ObserveProcessingDuration(duration float64) {
	s.ProcessingDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
