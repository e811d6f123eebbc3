package club

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/quest"
)

// GetUnresolvedQuests returns the season's open quests, oldest first.
func (s *store) GetUnresolvedQuests(seasonID string) ([]quest.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player_id, season_id, type, condition_json, progress_json, status, created_at
		FROM quests
		WHERE season_id = ? AND resolved_at IS NULL
		ORDER BY created_at, id`, seasonID)
	if err != nil {
		log.Error("Failed to query unresolved quests", "error", err, "seasonID", seasonID)
		return nil, err
	}
	defer rows.Close()

	records := []quest.Record{}
	for rows.Next() {
		var (
			r         quest.Record
			createdAt int64
		)
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.SeasonID, &r.Type, &r.Condition, &r.Progress, &r.Status, &createdAt); err != nil {
			log.Error("Failed to scan quest row", "error", err)
			continue
		}
		r.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertQuests stores newly generated quests in one transaction.
func (s *store) InsertQuests(records []quest.Record) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO quests (id, player_id, season_id, type, condition_json, progress_json, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.ID, r.PlayerID, r.SeasonID, r.Type, r.Condition, r.Progress, r.Status, r.CreatedAt.UnixMilli()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert quest %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// UpdateQuestProgress stores the progress of an open quest.
func (s *store) UpdateQuestProgress(questID, progress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE quests SET progress_json = ? WHERE id = ? AND resolved_at IS NULL`, progress, questID)
	return err
}

// ResolveQuest marks a quest as completed or failed. Resolving twice is a no-op.
func (s *store) ResolveQuest(questID string, status quest.Status, progress string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE quests SET status = ?, progress_json = ?, resolved_at = ?
		WHERE id = ? AND resolved_at IS NULL`, status, progress, at.UnixMilli(), questID)
	if err != nil {
		return fmt.Errorf("failed to resolve quest %s: %w", questID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Warn("Quest was already resolved or does not exist", "questID", questID)
	}
	return nil
}

// InsertRatingEvents stores reward and penalty events in one transaction.
func (s *store) InsertRatingEvents(events []league.RatingEvent) error {
	if len(events) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO rating_events (id, type, player_id, season_id, match_id, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		var matchID sql.NullString
		if e.MatchID != nil {
			matchID = sql.NullString{String: *e.MatchID, Valid: true}
		}
		if _, err := stmt.Exec(e.ID, e.Type, e.PlayerID, e.SeasonID, matchID, string(e.Data), e.CreatedAt.UnixMilli()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert rating event %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// GetRatingEvents returns a player's events for a season, newest first.
// An empty playerID returns the events of every player.
func (s *store) GetRatingEvents(seasonID, playerID string) ([]league.RatingEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, type, player_id, season_id, match_id, data, created_at
		FROM rating_events
		WHERE season_id = ? AND (? = '' OR player_id = ?)
		ORDER BY created_at DESC, id`, seasonID, playerID, playerID)
	if err != nil {
		log.Error("Failed to query rating events", "error", err, "seasonID", seasonID)
		return nil, err
	}
	defer rows.Close()

	events := []league.RatingEvent{}
	for rows.Next() {
		var (
			e         league.RatingEvent
			matchID   sql.NullString
			data      string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.PlayerID, &e.SeasonID, &matchID, &data, &createdAt); err != nil {
			log.Error("Failed to scan rating event row", "error", err)
			continue
		}
		if matchID.Valid {
			e.MatchID = &matchID.String
		}
		e.Data = []byte(data)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
