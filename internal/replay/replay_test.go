package replay

import (
	"math/rand"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func match(id string, at time.Time, white, black []string, result league.Result, diff int) league.Match {
	m := league.Match{ID: id, Result: result, ScoreDiff: diff, CreatedAt: at}
	m.WhitePlayerOne = white[0]
	if len(white) > 1 {
		m.WhitePlayerTwo = white[1]
	}
	m.BlackPlayerOne = black[0]
	if len(black) > 1 {
		m.BlackPlayerTwo = black[1]
	}
	return m
}

func fixture() []league.Match {
	return []league.Match{
		match("m1", day0, []string{"alice"}, []string{"bob"}, league.ResultWhite, 5),
		match("m2", day0.Add(time.Hour), []string{"alice", "carol"}, []string{"bob", "dave"}, league.ResultBlack, 2),
		match("m3", day0.AddDate(0, 0, 1), []string{"carol"}, []string{"dave"}, league.ResultDraw, 0),
		match("m4", day0.AddDate(0, 0, 2), []string{"dave", "alice"}, []string{"bob", "erin"}, league.ResultWhite, 7),
		match("m5", day0.AddDate(0, 0, 2).Add(2*time.Hour), []string{"erin"}, []string{"alice"}, league.ResultWhite, 1),
	}
}

func TestGetRatings(t *testing.T) {
	cfg := rating.DefaultConfig()

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GetRatings(nil, rating.NewElo(cfg.Elo)))
	})

	t.Run("sorted by number", func(t *testing.T) {
		for _, alg := range rating.Algorithms() {
			r, err := ForAlgorithm(string(alg), cfg)
			require.NoError(t, err)
			board := r.Leaderboard(fixture())
			require.Len(t, board, 5, alg)
			assert.True(t, sort.SliceIsSorted(board, func(i, j int) bool {
				return board[i].Rating > board[j].Rating
			}), alg)
		}
	})

	t.Run("input order does not matter", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for _, alg := range rating.Algorithms() {
			r, err := ForAlgorithm(string(alg), cfg)
			require.NoError(t, err)
			want := r.Leaderboard(fixture())
			history := r.History(fixture(), "alice")
			for i := 0; i < 10; i++ {
				shuffled := fixture()
				rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
				assert.Equal(t, want, r.Leaderboard(shuffled), alg)
				assert.Equal(t, history, r.History(shuffled, "alice"), alg)
			}
		}
	})

	t.Run("simultaneous matches replay by id", func(t *testing.T) {
		tied := func() []league.Match {
			return []league.Match{
				match("m1", day0, []string{"alice"}, []string{"bob"}, league.ResultWhite, 5),
				match("m2", day0, []string{"bob"}, []string{"alice"}, league.ResultWhite, 3),
				match("m3", day0, []string{"alice"}, []string{"carol"}, league.ResultBlack, 1),
			}
		}
		for _, alg := range rating.Algorithms() {
			r, err := ForAlgorithm(string(alg), cfg)
			require.NoError(t, err)
			want := r.Leaderboard(tied())
			reversed := tied()
			slices.Reverse(reversed)
			assert.Equal(t, want, r.Leaderboard(reversed), alg)
		}
	})

	t.Run("repeated calls do not accumulate", func(t *testing.T) {
		sys := rating.GameCount{}
		first := GetRatings(fixture(), sys)
		second := GetRatings(fixture(), sys)
		assert.Equal(t, first, second)
		assert.Equal(t, "alice", first[0].PlayerID)
		assert.Equal(t, 4, first[0].Rating)
	})
}

func TestGetPlayerRatingHistory(t *testing.T) {
	sys := rating.GameCount{}
	history := GetPlayerRatingHistory(fixture(), "alice", sys)

	require.Len(t, history, 3)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), history[0].Date)
	assert.Equal(t, 0, history[0].Rating)
	// both matches of the first day collapse into the later one
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), history[1].Date)
	assert.Equal(t, 2, history[1].Rating)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), history[2].Date)
	assert.Equal(t, 4, history[2].Rating)

	assert.Empty(t, GetPlayerRatingHistory(fixture(), "nobody", sys))
}

func TestGetMatchRatingDiff(t *testing.T) {
	cfg := rating.DefaultConfig()

	t.Run("empty input", func(t *testing.T) {
		_, err := GetMatchRatingDiff(nil, rating.NewElo(cfg.Elo))
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("only participants of the last match", func(t *testing.T) {
		diffs, err := GetMatchRatingDiff(fixture(), rating.ScoreDiff{})
		require.NoError(t, err)
		require.Len(t, diffs, 2)

		byID := map[string]RatingDiff[int]{}
		for _, d := range diffs {
			byID[d.PlayerID] = d
		}
		erin, alice := byID["erin"], byID["alice"]
		require.NotNil(t, erin.Before)
		assert.Equal(t, -7, *erin.Before)
		assert.Equal(t, -6, erin.After)
		assert.True(t, erin.Changed)
		require.NotNil(t, alice.Before)
		assert.Equal(t, *alice.Before-1, alice.After)
	})

	t.Run("first match has no before", func(t *testing.T) {
		diffs, err := GetMatchRatingDiff(fixture()[:1], rating.NewElo(cfg.Elo))
		require.NoError(t, err)
		require.Len(t, diffs, 2)
		for _, d := range diffs {
			assert.Nil(t, d.Before)
			assert.Nil(t, d.RankBefore)
			assert.True(t, d.Changed)
		}
		assert.Equal(t, "alice", diffs[0].PlayerID)
		assert.Equal(t, 1, diffs[0].RankAfter)
		assert.Equal(t, 2, diffs[1].RankAfter)
	})

	t.Run("draw leaves ratings unchanged", func(t *testing.T) {
		diffs, err := GetMatchRatingDiff(fixture()[:3], rating.ScoreDiff{})
		require.NoError(t, err)
		for _, d := range diffs {
			assert.False(t, d.Changed, d.PlayerID)
		}
	})
}

func TestForAlgorithm(t *testing.T) {
	r, err := ForAlgorithm("", rating.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, rating.AlgorithmElo, r.Algorithm())

	_, err = ForAlgorithm("trueskill", rating.DefaultConfig())
	assert.ErrorIs(t, err, rating.ErrUnknownAlgorithm)

	diff, err := r.MatchDiff(fixture())
	require.NoError(t, err)
	assert.Len(t, diff, 2)

	_, err = r.MatchDiff(nil)
	assert.ErrorIs(t, err, ErrNoMatch)
}
