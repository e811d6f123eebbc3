package config

import (
	"time"

	"github.com/mauv0809/tribble-league/internal/rating"
)

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	Turso     TursoConfig
	Inngest   InngestConfig
	ProjectID string
	Quests    QuestConfig
	Rating    rating.Config
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// TursoConfig is empty when the local SQLite file should be used.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type InngestConfig struct {
	AppID      string
	SigningKey string
	EventKey   string
	Dev        bool
}

type QuestConfig struct {
	MaxPerPlayer int
	// TTL is how long a quest stays open before it fails. Zero disables expiry.
	TTL time.Duration
}
