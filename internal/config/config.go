package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultMaxQuestsPerPlayer = 3
	defaultQuestTTL           = 7 * 24 * time.Hour
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return ""
	}

	ratingCfg, err := LoadRatingConfig(os.Getenv("RATINGS_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load rating configuration", "error", err)
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Inngest: InngestConfig{
			AppID:      envOr("INNGEST_APP_ID", "tribble-league"),
			SigningKey: os.Getenv("INNGEST_SIGNING_KEY"),
			EventKey:   os.Getenv("INNGEST_EVENT_KEY"),
			Dev:        os.Getenv("INNGEST_DEV") != "",
		},
		ProjectID: getEnv("GCP_PROJECT"),
		Quests: QuestConfig{
			MaxPerPlayer: intEnv("QUEST_MAX_PER_PLAYER", defaultMaxQuestsPerPlayer),
			TTL:          time.Duration(intEnv("QUEST_TTL_HOURS", int(defaultQuestTTL/time.Hour))) * time.Hour,
		},
		Rating: ratingCfg,
	}
	return cfg
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("Ignoring invalid integer environment variable", "key", key, "value", value)
		return fallback
	}
	return n
}
