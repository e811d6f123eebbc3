package quest

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrUnknownKind is returned when a stored quest carries a type tag this build does not know.
var ErrUnknownKind = errors.New("unknown quest kind")

// Record is the stored form of a quest. Condition and Progress are JSON documents.
type Record struct {
	ID         string
	PlayerID   string
	SeasonID   string
	Type       string
	Condition  string
	Progress   string
	Status     string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// Encode converts a quest into its stored form.
func Encode(q Quest) (Record, error) {
	condition, err := json.Marshal(q.Condition)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode condition of quest %s: %w", q.ID, err)
	}
	progress, err := json.Marshal(q.Progress)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode progress of quest %s: %w", q.ID, err)
	}
	status := q.Status
	if status == "" {
		status = StatusInProgress
	}
	return Record{
		ID:         q.ID,
		PlayerID:   q.PlayerID,
		SeasonID:   q.SeasonID,
		Type:       string(q.Kind),
		Condition:  string(condition),
		Progress:   string(progress),
		Status:     string(status),
		CreatedAt:  q.CreatedAt,
		ResolvedAt: q.ResolvedAt,
	}, nil
}

// Decode restores a quest from its stored form. An unknown type tag is an error.
func Decode(r Record) (Quest, error) {
	kind := Kind(r.Type)
	if !slices.Contains(Kinds(), kind) {
		return Quest{}, fmt.Errorf("%w: %q (quest %s)", ErrUnknownKind, r.Type, r.ID)
	}
	q := Quest{
		ID:         r.ID,
		PlayerID:   r.PlayerID,
		SeasonID:   r.SeasonID,
		Kind:       kind,
		Status:     Status(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}
	if q.Status == "" {
		q.Status = StatusInProgress
	}
	if err := decodeJSON(r.Condition, &q.Condition); err != nil {
		return Quest{}, fmt.Errorf("failed to decode condition of quest %s: %w", r.ID, err)
	}
	if err := decodeJSON(r.Progress, &q.Progress); err != nil {
		return Quest{}, fmt.Errorf("failed to decode progress of quest %s: %w", r.ID, err)
	}
	return q, nil
}

func decodeJSON(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}
