package quest

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTableCoversKinds(t *testing.T) {
	require.Len(t, transitions, len(Kinds()))
	for _, k := range Kinds() {
		assert.Contains(t, transitions, k)
	}
}

func TestWinStreak(t *testing.T) {
	q := newQuest("streak", "pia", KindWinStreak, Condition{Target: 3})
	results := []league.Result{league.ResultWhite, league.ResultWhite, league.ResultBlack, league.ResultWhite, league.ResultWhite, league.ResultWhite}
	want := []Status{StatusInProgress, StatusInProgress, StatusInProgress, StatusInProgress, StatusInProgress, StatusCompleted}
	streaks := []int{1, 2, 0, 1, 2, 3}

	for i, r := range results {
		got := q.Evaluate(singlesAt("m", i+1, "pia", "ola", r, 2))
		assert.Equal(t, want[i], got, "match %d", i)
		assert.Equal(t, streaks[i], q.Progress.WinStreak, "match %d", i)
	}

	// resolved quests ignore further matches
	p, s := Transition(*q, singlesAt("late", 30, "pia", "ola", league.ResultBlack, 2))
	assert.Equal(t, StatusCompleted, s)
	assert.Equal(t, 3, p.WinStreak)
}

func TestTransitionGating(t *testing.T) {
	q := newQuest("q", "pia", KindPlayMatchCount, Condition{Target: 1})

	_, s := Transition(*q, singlesAt("other", 5, "ola", "kim", league.ResultWhite, 1))
	assert.Equal(t, StatusInProgress, s, "not a participant")

	_, s = Transition(*q, singlesAt("early", 0, "pia", "kim", league.ResultWhite, 1))
	assert.Equal(t, StatusInProgress, s, "match at creation time")

	_, s = Transition(*q, singlesAt("ok", 1, "pia", "kim", league.ResultWhite, 1))
	assert.Equal(t, StatusCompleted, s)
	assert.Equal(t, 0, q.Progress.MatchesPlayed, "Transition must not mutate")
}

func TestKinds(t *testing.T) {
	win := singlesAt("m", 1, "pia", "ola", league.ResultWhite, 6)
	loss := singlesAt("m", 1, "pia", "ola", league.ResultBlack, 6)
	pair := league.Match{
		ID: "d", WhitePlayerOne: "pia", WhitePlayerTwo: "kim", BlackPlayerOne: "ola", BlackPlayerTwo: "max",
		Result: league.ResultBlack, ScoreDiff: 2, CreatedAt: created.Add(time.Minute),
	}

	cases := []struct {
		name  string
		kind  Kind
		cond  Condition
		match league.Match
		want  Status
	}{
		{"play 1v1", KindPlay1v1, Condition{}, loss, StatusCompleted},
		{"play 1v1 in doubles", KindPlay1v1, Condition{}, pair, StatusInProgress},
		{"win count", KindWinCount, Condition{Target: 1}, win, StatusCompleted},
		{"win by points met", KindWinByPoints, Condition{Points: 6}, win, StatusCompleted},
		{"win by points short", KindWinByPoints, Condition{Points: 7}, win, StatusInProgress},
		{"win against", KindWinAgainst, Condition{OpponentID: "ola"}, win, StatusCompleted},
		{"win against other", KindWinAgainst, Condition{OpponentID: "max"}, win, StatusInProgress},
		{"win against by points", KindWinAgainstByPoints, Condition{OpponentID: "ola", Points: 5}, win, StatusCompleted},
		{"lose against by points", KindWinAgainstByPoints, Condition{OpponentID: "ola", Points: 5}, loss, StatusInProgress},
		{"win with loses", KindWinWith, Condition{TeammateID: "kim"}, pair, StatusInProgress},
		{"play with", KindPlayMatchWith, Condition{TeammateID: "kim"}, pair, StatusCompleted},
		{"play with opponent", KindPlayMatchWith, Condition{TeammateID: "ola"}, pair, StatusInProgress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := newQuest("q", "pia", tc.kind, tc.cond)
			assert.Equal(t, tc.want, q.Evaluate(tc.match))
		})
	}
}

func TestRewardAndPenalty(t *testing.T) {
	q := newQuest("q1", "pia", KindWinStreak, Condition{Target: 3})
	q.SeasonID = "s1"

	reward, err := q.Reward("m9", created)
	require.NoError(t, err)
	assert.Equal(t, league.EventQuestReward, reward.Type)
	assert.Equal(t, "pia", reward.PlayerID)
	require.NotNil(t, reward.MatchID)
	assert.Equal(t, "m9", *reward.MatchID)

	var data league.QuestEventData
	require.NoError(t, json.Unmarshal(reward.Data, &data))
	assert.Equal(t, 60, data.Points)
	assert.Equal(t, string(StatusCompleted), data.Outcome)

	penalty, err := q.Penalty(created)
	require.NoError(t, err)
	assert.Nil(t, penalty.MatchID)
	rows := league.DescribeEvents([]league.RatingEvent{reward, penalty})
	require.Len(t, rows, 2)
	assert.Equal(t, -30, rows[1].Points)
	assert.Equal(t, "Win 3 matches in a row", rows[1].Description)
}

func TestRecord(t *testing.T) {
	q := newQuest("q1", "pia", KindWinAgainstByPoints, Condition{OpponentID: "ola", Points: 4})
	q.Progress.WinAgainstPoints = 2

	rec, err := Encode(*q)
	require.NoError(t, err)
	assert.Equal(t, "WIN_AGAINST_BY_POINTS", rec.Type)

	back, err := Decode(rec)
	require.NoError(t, err)
	assert.Equal(t, *q, back)

	rec.Type = "WIN_LOTTERY"
	_, err = Decode(rec)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGenerator(t *testing.T) {
	g := NewGenerator(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		q := g.Generate("pia", "s1", []string{"pia"}, created)
		assert.Contains(t, []Kind{KindPlayMatchCount, KindPlay1v1, KindWinStreak, KindWinCount, KindWinByPoints}, q.Kind)
		assert.Equal(t, StatusInProgress, q.Status)
		assert.NotEmpty(t, q.ID)
	}

	for i := 0; i < 50; i++ {
		q := g.Generate("pia", "s1", []string{"pia", "ola"}, created)
		if q.Condition.OpponentID != "" {
			assert.Equal(t, "ola", q.Condition.OpponentID)
		}
		if q.Condition.TeammateID != "" {
			assert.Equal(t, "ola", q.Condition.TeammateID)
		}
		assert.Positive(t, q.RewardPoints())
	}
}
