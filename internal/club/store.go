package club

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-league/internal/league"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

const matchColumns = `id, season_id, white_player_one, white_player_two, black_player_one, black_player_two, result, score_diff, created_at`

// InsertMatch stores a new match. Matches are immutable once logged.
func (s *store) InsertMatch(m league.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO matches (`+matchColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.SeasonID, m.WhitePlayerOne, nullString(m.WhitePlayerTwo), m.BlackPlayerOne, nullString(m.BlackPlayerTwo),
		m.Result, m.ScoreDiff, m.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
	}
	return nil
}

// GetMatch retrieves a single match by id.
func (s *store) GetMatch(matchID string) (league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, matchID)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return league.Match{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return m, err
}

// GetMatchesForSeason returns every match of a season, oldest first.
func (s *store) GetMatchesForSeason(seasonID string) ([]league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMatches(`SELECT `+matchColumns+` FROM matches WHERE season_id = ? ORDER BY created_at, id`, seasonID)
}

// GetMatchesForPlayer returns the season's matches the player took part in, oldest first.
func (s *store) GetMatchesForPlayer(seasonID, playerID string) ([]league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMatches(`
		SELECT `+matchColumns+` FROM matches
		WHERE season_id = ? AND ? IN (white_player_one, white_player_two, black_player_one, black_player_two)
		ORDER BY created_at, id`, seasonID, playerID)
}

func (s *store) queryMatches(query string, args ...any) ([]league.Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []league.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func scanMatch(row scanner) (league.Match, error) {
	var (
		m                  league.Match
		whiteTwo, blackTwo sql.NullString
		createdAt          int64
	)
	err := row.Scan(&m.ID, &m.SeasonID, &m.WhitePlayerOne, &whiteTwo, &m.BlackPlayerOne, &blackTwo,
		&m.Result, &m.ScoreDiff, &createdAt)
	if err != nil {
		return league.Match{}, err
	}
	m.WhitePlayerTwo = whiteTwo.String
	m.BlackPlayerTwo = blackTwo.String
	m.CreatedAt = time.UnixMilli(createdAt).UTC()
	return m, nil
}

// UpsertPlayers inserts or updates a batch of players from the player directory.
func (s *store) UpsertPlayers(players []league.Player) error {
	if len(players) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, nickname) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, nickname = excluded.nickname`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.Nickname); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// GetPlayers resolves the given ids. Unknown ids are skipped.
func (s *store) GetPlayers(playerIDs []string) ([]league.Player, error) {
	if len(playerIDs) == 0 {
		return []league.Player{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	return s.queryPlayers(`SELECT id, name, nickname FROM players WHERE id IN (`+placeholders+`) ORDER BY name`, toAnySlice(playerIDs)...)
}

// GetAllPlayers returns every known player ordered by name.
func (s *store) GetAllPlayers() ([]league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPlayers(`SELECT id, name, nickname FROM players ORDER BY name`)
}

func (s *store) queryPlayers(query string, args ...any) ([]league.Player, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []league.Player{}
	for rows.Next() {
		var p league.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Nickname); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpsertSeason creates or replaces a season.
func (s *store) UpsertSeason(season league.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var endsAt sql.NullInt64
	if season.EndsAt != nil {
		endsAt = sql.NullInt64{Int64: season.EndsAt.UnixMilli(), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO seasons (id, name, algorithm, starts_at, ends_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			algorithm = excluded.algorithm,
			starts_at = excluded.starts_at,
			ends_at = excluded.ends_at`,
		season.ID, season.Name, season.Algorithm, season.StartsAt.UnixMilli(), endsAt)
	if err != nil {
		return fmt.Errorf("failed to upsert season %s: %w", season.ID, err)
	}
	return nil
}

const seasonColumns = `id, name, algorithm, starts_at, ends_at`

// GetSeason retrieves a season by id.
func (s *store) GetSeason(seasonID string) (league.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	season, err := scanSeason(s.db.QueryRow(`SELECT `+seasonColumns+` FROM seasons WHERE id = ?`, seasonID))
	if errors.Is(err, sql.ErrNoRows) {
		return league.Season{}, fmt.Errorf("season %s: %w", seasonID, ErrNotFound)
	}
	return season, err
}

// GetActiveSeason returns the most recently started season running at the given instant.
func (s *store) GetActiveSeason(at time.Time) (league.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ms := at.UnixMilli()
	season, err := scanSeason(s.db.QueryRow(`
		SELECT `+seasonColumns+` FROM seasons
		WHERE starts_at <= ? AND (ends_at IS NULL OR ends_at > ?)
		ORDER BY starts_at DESC LIMIT 1`, ms, ms))
	if errors.Is(err, sql.ErrNoRows) {
		return league.Season{}, fmt.Errorf("active season: %w", ErrNotFound)
	}
	return season, err
}

func scanSeason(row scanner) (league.Season, error) {
	var (
		season   league.Season
		startsAt int64
		endsAt   sql.NullInt64
	)
	if err := row.Scan(&season.ID, &season.Name, &season.Algorithm, &startsAt, &endsAt); err != nil {
		return league.Season{}, err
	}
	season.StartsAt = time.UnixMilli(startsAt).UTC()
	if endsAt.Valid {
		t := time.UnixMilli(endsAt.Int64).UTC()
		season.EndsAt = &t
	}
	return season, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
