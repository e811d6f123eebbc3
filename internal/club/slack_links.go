package club

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mauv0809/tribble-league/internal/league"
)

// GetPlayerBySlackUserID returns the player linked to a Slack user.
func (s *store) GetPlayerBySlackUserID(slackUserID string) (league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p league.Player
	err := s.db.QueryRow(`SELECT id, name, nickname FROM players WHERE slack_user_id = ?`, slackUserID).
		Scan(&p.ID, &p.Name, &p.Nickname)
	if errors.Is(err, sql.ErrNoRows) {
		return league.Player{}, fmt.Errorf("slack user %s: %w", slackUserID, ErrNotFound)
	}
	return p, err
}

// GetUnlinkedPlayers returns the players no Slack user has claimed yet.
func (s *store) GetUnlinkedPlayers() ([]league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPlayers(`SELECT id, name, nickname FROM players WHERE slack_user_id IS NULL ORDER BY name`)
}

// LinkSlackUser attaches a Slack user to a player, moving any earlier link of that user.
func (s *store) LinkSlackUser(playerID, slackUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE players SET slack_user_id = NULL WHERE slack_user_id = ?`, slackUserID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear previous link of %s: %w", slackUserID, err)
	}
	res, err := tx.Exec(`UPDATE players SET slack_user_id = ? WHERE id = ?`, slackUserID, playerID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to link %s to player %s: %w", slackUserID, playerID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	return tx.Commit()
}
