package quest

import (
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Generator draws random quests. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. A nil source seeds from the clock.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(src)}
}

// Generate creates a new quest for the player. pool holds the other players of
// the season; kinds that name another player are only drawn when it is non-empty.
func (g *Generator) Generate(playerID, seasonID string, pool []string, at time.Time) Quest {
	others := make([]string, 0, len(pool))
	for _, id := range pool {
		if id != playerID && !slices.Contains(others, id) {
			others = append(others, id)
		}
	}

	kinds := []Kind{KindPlayMatchCount, KindPlay1v1, KindWinStreak, KindWinCount, KindWinByPoints}
	if len(others) > 0 {
		kinds = append(kinds, KindWinAgainst, KindWinAgainstByPoints, KindWinWith, KindPlayMatchWith)
	}
	kind := kinds[g.rng.Intn(len(kinds))]

	return Quest{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		SeasonID:  seasonID,
		Kind:      kind,
		Condition: g.condition(kind, others),
		Status:    StatusInProgress,
		CreatedAt: at,
	}
}

func (g *Generator) condition(kind Kind, others []string) Condition {
	between := func(lo, hi int) int { return lo + g.rng.Intn(hi-lo+1) }
	pick := func() string { return others[g.rng.Intn(len(others))] }

	switch kind {
	case KindPlayMatchCount:
		return Condition{Target: between(3, 5)}
	case KindWinStreak:
		return Condition{Target: between(2, 3)}
	case KindWinCount:
		return Condition{Target: between(2, 4)}
	case KindWinByPoints:
		return Condition{Points: between(5, 8)}
	case KindWinAgainst:
		return Condition{OpponentID: pick()}
	case KindWinAgainstByPoints:
		return Condition{OpponentID: pick(), Points: between(3, 6)}
	case KindWinWith, KindPlayMatchWith:
		return Condition{TeammateID: pick()}
	}
	return Condition{}
}
