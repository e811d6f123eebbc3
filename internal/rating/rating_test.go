package rating

import (
	"testing"
	"time"

	"github.com/intinig/go-openskill/types"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singles(result league.Result, diff int) league.Match {
	return league.Match{
		ID:             "m1",
		WhitePlayerOne: "alice",
		BlackPlayerOne: "bob",
		Result:         result,
		ScoreDiff:      diff,
		CreatedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func doubles(result league.Result, diff int) league.Match {
	m := singles(result, diff)
	m.WhitePlayerTwo = "carol"
	m.BlackPlayerTwo = "dave"
	return m
}

func uniform[T any](m league.Match, r T) MatchWithRatings[T] {
	return WithRatings(m, func(string) (T, bool) { return r, true }, r)
}

func ratingOf[T any](t *testing.T, rated []PlayerWithRating[T], id string) T {
	t.Helper()
	for _, p := range rated {
		if p.PlayerID == id {
			return p.Rating
		}
	}
	require.Failf(t, "missing player", "player %s not rated", id)
	var zero T
	return zero
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmElo, a)

	a, err = ParseAlgorithm(" OpenSkill ")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmOpenSkill, a)

	for _, name := range Algorithms() {
		got, err := ParseAlgorithm(string(name))
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}

	_, err = ParseAlgorithm("glicko")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestElo(t *testing.T) {
	elo := NewElo(DefaultConfig().Elo)

	t.Run("worked example", func(t *testing.T) {
		rated := elo.RateMatch(uniform(singles(league.ResultWhite, 5), 1500))
		assert.Equal(t, 1532, ratingOf(t, rated, "alice"))
		assert.Equal(t, 1468, ratingOf(t, rated, "bob"))
	})

	t.Run("k factor tiers", func(t *testing.T) {
		assert.Equal(t, 64, KFactor(1600))
		assert.Equal(t, 56, KFactor(1601))
		assert.Equal(t, 24, KFactor(2500))
		assert.Equal(t, 16, KFactor(2501))
	})

	t.Run("draw between equals is a no-op", func(t *testing.T) {
		rated := elo.RateMatch(uniform(doubles(league.ResultDraw, 0), 1500))
		require.Len(t, rated, 4)
		for _, p := range rated {
			assert.Equal(t, 1500, p.Rating)
		}
	})

	t.Run("team members share the delta", func(t *testing.T) {
		ratings := map[string]int{"alice": 1400, "carol": 1601, "bob": 1500, "dave": 1500}
		m := WithRatings(doubles(league.ResultWhite, 3), func(id string) (int, bool) {
			r, ok := ratings[id]
			return r, ok
		}, elo.DefaultRating())
		rated := elo.RateMatch(m)
		aliceDelta := ratingOf(t, rated, "alice") - 1400
		carolDelta := ratingOf(t, rated, "carol") - 1601
		assert.Equal(t, aliceDelta, carolDelta)
		assert.Positive(t, aliceDelta)
	})

	t.Run("floor", func(t *testing.T) {
		floored := NewElo(EloConfig{Floor: 1490})
		rated := floored.RateMatch(uniform(singles(league.ResultWhite, 5), 1500))
		assert.Equal(t, 1490, ratingOf(t, rated, "bob"))
	})
}

func TestDrawIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	m := doubles(league.ResultDraw, 0)

	t.Run("scorediff", func(t *testing.T) {
		for _, p := range (ScoreDiff{}).RateMatch(uniform(m, 7)) {
			assert.Equal(t, 7, p.Rating)
		}
	})
	t.Run("scoreavg", func(t *testing.T) {
		start := ScoreAvg{Diff: 4, Count: 2}
		for _, p := range (ScoreAverage{}).RateMatch(uniform(m, start)) {
			assert.Equal(t, start, p.Rating)
		}
	})
	t.Run("underdog", func(t *testing.T) {
		for _, p := range NewUnderdog(cfg.Underdog).RateMatch(uniform(m, 1000.0)) {
			assert.Equal(t, 1000.0, p.Rating)
		}
	})
	t.Run("streak", func(t *testing.T) {
		start := StreakRating{Points: 30, WinStreak: 2}
		for _, p := range NewStreak(cfg.Streak).RateMatch(uniform(m, start)) {
			assert.Equal(t, start, p.Rating)
		}
	})
}

func TestScoreSystems(t *testing.T) {
	rated := (ScoreDiff{}).RateMatch(uniform(doubles(league.ResultBlack, 4), 0))
	assert.Equal(t, -4, ratingOf(t, rated, "alice"))
	assert.Equal(t, 4, ratingOf(t, rated, "dave"))

	avg := ScoreAverage{}
	r := avg.RateMatch(uniform(singles(league.ResultWhite, 3), ScoreAvg{Diff: -4, Count: 1}))
	assert.Equal(t, ScoreAvg{Diff: -1, Count: 2}, ratingOf(t, r, "alice"))
	assert.Equal(t, -1.0, avg.ToNumber(ScoreAvg{Diff: -1, Count: 2}))
	assert.Equal(t, 0.0, avg.ToNumber(ScoreAvg{}))
}

func TestStreak(t *testing.T) {
	st := NewStreak(DefaultConfig().Streak)

	rated := st.RateMatch(uniform(singles(league.ResultWhite, 2), StreakRating{}))
	assert.Equal(t, StreakRating{Points: 30, WinStreak: 1}, ratingOf(t, rated, "alice"))
	assert.Equal(t, StreakRating{Points: -30, LoseStreak: 1}, ratingOf(t, rated, "bob"))

	// 25 * 1.2^2 + 10 = 46
	rated = st.RateMatch(uniform(singles(league.ResultWhite, 2), StreakRating{Points: 30, WinStreak: 1}))
	assert.Equal(t, StreakRating{Points: 76, WinStreak: 2}, ratingOf(t, rated, "alice"))
	assert.Equal(t, StreakRating{Points: 0, LoseStreak: 1}, ratingOf(t, rated, "bob"))
}

func TestXP(t *testing.T) {
	xp := NewXP(DefaultConfig().XP)
	assert.Equal(t, 1, xp.Level(0))
	assert.Equal(t, 45, XPForDefeating(1))
	assert.Equal(t, 800, XPForDefeating(12))

	rated := xp.RateMatch(uniform(singles(league.ResultWhite, 1), 0.0))
	assert.Equal(t, 45.0, ratingOf(t, rated, "alice"))
	assert.Equal(t, 0.0, ratingOf(t, rated, "bob"))

	t.Run("doubles average the beaten levels", func(t *testing.T) {
		// dave at 400 xp is level 3 and worth 77, bob is level 1 and worth 45
		ratings := map[string]float64{"dave": 400}
		m := WithRatings(doubles(league.ResultWhite, 2), func(id string) (float64, bool) {
			r, ok := ratings[id]
			return r, ok
		}, xp.DefaultRating())
		require.Equal(t, 3, xp.Level(400))

		rated := xp.RateMatch(m)
		require.Len(t, rated, 4)
		assert.Equal(t, 61.0, ratingOf(t, rated, "alice"))
		assert.Equal(t, 61.0, ratingOf(t, rated, "carol"))
		assert.Equal(t, 0.0, ratingOf(t, rated, "bob"))
		assert.Equal(t, 400.0, ratingOf(t, rated, "dave"))
	})
}

func TestUnderdog(t *testing.T) {
	u := NewUnderdog(DefaultConfig().Underdog)

	t.Run("even singles", func(t *testing.T) {
		rated := u.RateMatch(uniform(singles(league.ResultWhite, 1), 1000.0))
		assert.Equal(t, 1025.0, ratingOf(t, rated, "alice"))
		assert.Equal(t, 975.0, ratingOf(t, rated, "bob"))
	})

	t.Run("upset earns bonus", func(t *testing.T) {
		ratings := map[string]float64{"alice": 1000, "bob": 1200}
		m := WithRatings(singles(league.ResultWhite, 1), func(id string) (float64, bool) {
			r, ok := ratings[id]
			return r, ok
		}, u.DefaultRating())
		rated := u.RateMatch(m)
		// 25 + 200*0.125 + 50
		assert.Equal(t, 1100.0, ratingOf(t, rated, "alice"))
		assert.Equal(t, 1100.0, ratingOf(t, rated, "bob"))
	})

	withRatings := func(m league.Match, ratings map[string]float64) MatchWithRatings[float64] {
		return WithRatings(m, func(id string) (float64, bool) {
			r, ok := ratings[id]
			return r, ok
		}, u.DefaultRating())
	}

	t.Run("doubles winners scale by teammate gap", func(t *testing.T) {
		m := withRatings(doubles(league.ResultWhite, 2), map[string]float64{
			"alice": 1100, "carol": 900, "bob": 1000, "dave": 1000,
		})
		rated := u.RateMatch(m)
		require.Len(t, rated, 4)
		// alice: (25 + 100*0.125) * (1 + 200*0.3/1000)
		assert.InDelta(t, 1139.75, ratingOf(t, rated, "alice"), 1e-9)
		// carol: (25 + 100*0.125 + 50) * (1 - 200*0.3/1000)
		assert.InDelta(t, 982.25, ratingOf(t, rated, "carol"), 1e-9)
		// losers share the mean of both pairings, evenly matched teammates
		assert.InDelta(t, 937.5, ratingOf(t, rated, "bob"), 1e-9)
		assert.InDelta(t, 937.5, ratingOf(t, rated, "dave"), 1e-9)
	})

	t.Run("doubles losers scale by teammate gap", func(t *testing.T) {
		m := withRatings(doubles(league.ResultWhite, 2), map[string]float64{
			"alice": 1000, "carol": 1000, "bob": 1100, "dave": 900,
		})
		rated := u.RateMatch(m)
		// bob: (25 + 12.5 + 50) * (1 - 200*0.3/1000)
		assert.InDelta(t, 1017.75, ratingOf(t, rated, "bob"), 1e-9)
		// dave: (25 + 12.5) * (1 + 200*0.3/1000)
		assert.InDelta(t, 860.25, ratingOf(t, rated, "dave"), 1e-9)
	})

	t.Run("draws change nothing", func(t *testing.T) {
		m := withRatings(doubles(league.ResultDraw, 0), map[string]float64{"alice": 1300})
		rated := u.RateMatch(m)
		assert.Equal(t, 1300.0, ratingOf(t, rated, "alice"))
		assert.Equal(t, 1000.0, ratingOf(t, rated, "dave"))
	})
}

func TestCountSystems(t *testing.T) {
	rated := (GameCount{}).RateMatch(uniform(doubles(league.ResultDraw, 0), 2))
	require.Len(t, rated, 4)
	for _, p := range rated {
		assert.Equal(t, 3, p.Rating)
	}

	opp := UniqueOpponents{}
	beaten := opp.RateMatch(uniform(doubles(league.ResultWhite, 2), []string{"bob"}))
	assert.Equal(t, []string{"bob", "dave"}, ratingOf(t, beaten, "alice"))
	assert.Equal(t, []string{"bob"}, ratingOf(t, beaten, "dave"))
	assert.Equal(t, 2.0, opp.ToNumber(ratingOf(t, beaten, "carol")))

	a, b := []string{"x"}, []string{"x"}
	assert.True(t, opp.Equal(&a, &b))
	assert.False(t, opp.Equal(&a, nil))
}

func TestOpenSkill(t *testing.T) {
	o := NewOpenSkill(DefaultConfig().OpenSkill)
	def := o.DefaultRating()
	assert.Equal(t, types.Rating{Mu: 1000, Sigma: 500}, def)
	assert.Equal(t, 0.0, o.ToNumber(def))

	rated := o.RateMatch(uniform(singles(league.ResultWhite, 3), def))
	require.Len(t, rated, 2)
	assert.Greater(t, ratingOf(t, rated, "alice").Mu, ratingOf(t, rated, "bob").Mu)
	assert.True(t, o.Equal(&def, &def))

	t.Run("ranks", func(t *testing.T) {
		assert.Equal(t, []int{1, 2}, o.options(league.ResultWhite).Rank)
		assert.Equal(t, []int{2, 1}, o.options(league.ResultBlack).Rank)
		assert.Equal(t, []int{1, 1}, o.options(league.ResultDraw).Rank)
	})

	t.Run("draw between equals stays level", func(t *testing.T) {
		drawn := o.RateMatch(uniform(singles(league.ResultDraw, 0), def))
		require.Len(t, drawn, 2)
		alice, bob := ratingOf(t, drawn, "alice"), ratingOf(t, drawn, "bob")
		assert.InDelta(t, alice.Mu, bob.Mu, 1e-9)
		assert.InDelta(t, alice.Sigma, bob.Sigma, 1e-9)
	})

	t.Run("doubles update every player", func(t *testing.T) {
		rated := o.RateMatch(uniform(doubles(league.ResultBlack, 4), def))
		require.Len(t, rated, 4)
		for _, id := range []string{"bob", "dave"} {
			assert.Greater(t, ratingOf(t, rated, id).Mu, def.Mu, id)
		}
		for _, id := range []string{"alice", "carol"} {
			assert.Less(t, ratingOf(t, rated, id).Mu, def.Mu, id)
		}
		assert.InDelta(t, ratingOf(t, rated, "bob").Mu, ratingOf(t, rated, "dave").Mu, 1e-9)
	})
}
