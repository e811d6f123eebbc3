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

type Server struct {
	Store          club.ClubStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.MetricsStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	mapper         *club.PlayerMapper
	pubsub         pubsub.PubSubClient
	inngest        http.Handler
}

// pushMessage is the envelope Pub/Sub push subscriptions POST to us.
type pushMessage struct {
	Message struct {
		Data      string `json:"data"` // base64-encoded msgpack payload
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
