package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/tribble-league/internal/club"
	"github.com/mauv0809/tribble-league/internal/database"
	"github.com/mauv0809/tribble-league/internal/league"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB("", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer teardown()
	log.Info("Successfully connected to the primary database.")

	store := club.New(db)
	seasonStart := time.Now().UTC().AddDate(-1, 0, 0)
	season := league.Season{ID: "seed-season", Name: "Seeded Season", Algorithm: "elo", StartsAt: seasonStart}
	if err := store.UpsertSeason(season); err != nil {
		log.Fatalf("Failed to insert seed season: %s", err)
	}

	players := []league.Player{
		{ID: "player-1", Name: "Seeder Player A"},
		{ID: "player-2", Name: "Seeder Player B"},
		{ID: "player-3", Name: "Seeder Player C"},
		{ID: "player-4", Name: "Seeder Player D"},
		{ID: "player-5", Name: "Seeder Player E"},
		{ID: "player-6", Name: "Seeder Player F"},
	}
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to insert dummy players: %s", err)
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 2000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]any, 0, batchSize*9) // 9 columns per match

	for i := 0; i < numMatches; i++ {
		m := randomMatch(players, season)
		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			m.ID,
			m.SeasonID,
			m.WhitePlayerOne,
			nullable(m.WhitePlayerTwo),
			m.BlackPlayerOne,
			nullable(m.BlackPlayerTwo),
			string(m.Result),
			m.ScoreDiff,
			m.CreatedAt.UnixMilli(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO matches (id, season_id, white_player_one, white_player_two, black_player_one,
					black_player_two, result, score_diff, created_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			if _, err := tx.Exec(stmt, valueArgs...); err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]any, 0, batchSize*9)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}

// randomMatch draws a valid 1v1 or 2v2 match inside the season.
func randomMatch(players []league.Player, season league.Season) league.Match {
	perm := rand.Perm(len(players))
	m := league.Match{
		ID:             uuid.NewString(),
		SeasonID:       season.ID,
		WhitePlayerOne: players[perm[0]].ID,
		BlackPlayerOne: players[perm[1]].ID,
		CreatedAt:      season.StartsAt.Add(time.Duration(rand.Int63n(int64(364 * 24 * time.Hour)))),
	}
	if rand.Intn(2) == 0 {
		m.WhitePlayerTwo = players[perm[2]].ID
		m.BlackPlayerTwo = players[perm[3]].ID
	}
	switch rand.Intn(5) {
	case 0:
		m.Result = league.ResultDraw
	case 1, 2:
		m.Result = league.ResultWhite
		m.ScoreDiff = 1 + rand.Intn(10)
	default:
		m.Result = league.ResultBlack
		m.ScoreDiff = 1 + rand.Intn(10)
	}
	return m
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
