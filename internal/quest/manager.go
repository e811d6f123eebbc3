package quest

import (
	"slices"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
)

const defaultMaxQuestsPerPlayer = 3

// Manager tracks the open quests of a batch of players. It has a single owner
// and is not safe for concurrent use.
type Manager struct {
	maxPerPlayer int
	active       []*Quest
	failed       []*Quest
	byPlayer     map[string][]*Quest
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxQuestsPerPlayer overrides how many quests a player can hold at once.
func WithMaxQuestsPerPlayer(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxPerPlayer = n
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		maxPerPlayer: defaultMaxQuestsPerPlayer,
		byPlayer:     make(map[string][]*Quest),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddQuest starts tracking a quest. A player already at the cap loses their
// oldest tracked quest, which is marked failed regardless of its progress.
func (m *Manager) AddQuest(q *Quest) {
	m.active = append(m.active, q)
	tracked := m.byPlayer[q.PlayerID]
	if len(tracked) >= m.maxPerPlayer {
		m.fail(tracked[0])
	}
	m.byPlayer[q.PlayerID] = append(m.byPlayer[q.PlayerID], q)
}

// HandleMatch evaluates every active quest against the match and returns the
// ones it completed. Completed quests stop being tracked.
func (m *Manager) HandleMatch(match league.Match) []*Quest {
	var completed []*Quest
	for _, q := range slices.Clone(m.active) {
		if q.Evaluate(match) == StatusCompleted {
			m.untrack(q)
			completed = append(completed, q)
		}
	}
	return completed
}

// Expire fails every active quest created more than ttl before now.
func (m *Manager) Expire(now time.Time, ttl time.Duration) []*Quest {
	if ttl <= 0 {
		return nil
	}
	var expired []*Quest
	for _, q := range slices.Clone(m.active) {
		if now.Sub(q.CreatedAt) > ttl {
			m.fail(q)
			expired = append(expired, q)
		}
	}
	return expired
}

// ActiveQuests returns the quests still in progress, in insertion order.
func (m *Manager) ActiveQuests() []*Quest {
	return slices.Clone(m.active)
}

// FailedQuests returns the quests failed by eviction or expiry.
func (m *Manager) FailedQuests() []*Quest {
	return slices.Clone(m.failed)
}

// PlayerQuests returns the quests currently tracked for a player, oldest first.
func (m *Manager) PlayerQuests(playerID string) []*Quest {
	return slices.Clone(m.byPlayer[playerID])
}

func (m *Manager) fail(q *Quest) {
	m.untrack(q)
	q.Status = StatusFailed
	m.failed = append(m.failed, q)
}

func (m *Manager) untrack(q *Quest) {
	m.active = slices.DeleteFunc(m.active, func(x *Quest) bool { return x == q })
	tracked := slices.DeleteFunc(m.byPlayer[q.PlayerID], func(x *Quest) bool { return x == q })
	if len(tracked) == 0 {
		delete(m.byPlayer, q.PlayerID)
		return
	}
	m.byPlayer[q.PlayerID] = tracked
}
