package http

import (
	"net/http"

	"github.com/mauv0809/tribble-league/internal/club"
	"github.com/mauv0809/tribble-league/internal/config"
	"github.com/mauv0809/tribble-league/internal/metrics"
	"github.com/mauv0809/tribble-league/internal/notifier"
	"github.com/mauv0809/tribble-league/internal/processor"
	"github.com/mauv0809/tribble-league/internal/pubsub"
)

// NewServer wires the routes. inngestHandler may be nil when Inngest is not configured.
func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.MetricsStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient, inngestHandler http.Handler) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		mapper:         club.NewPlayerMapper(store),
		pubsub:         pubsub,
		inngest:        inngestHandler,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifier(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /counters", Chain(s.CountersHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/history", Chain(s.PlayerHistoryHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/events", Chain(s.PlayerEventsHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/diff", Chain(s.MatchDiffHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.LogMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /quests/process", Chain(s.ProcessQuestsHandler(), paramsMiddleware))
	s.Router.Handle("POST /quests/generate", Chain(s.GenerateQuestsHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-logged", Chain(s.MatchLoggedHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/daily-summary", Chain(s.DailySummaryCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/me", Chain(s.MeCommandHandler(), paramsMiddleware, slackAuth))
	if s.inngest != nil {
		s.Router.Handle("/api/inngest", s.inngest)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
