package league

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestValidate(t *testing.T) {
	valid := Match{WhitePlayerOne: "a", BlackPlayerOne: "b", Result: ResultWhite, ScoreDiff: 3}
	require.NoError(t, valid.Validate())

	cases := map[string]Match{
		"missing side":      {WhitePlayerOne: "a", Result: ResultWhite, ScoreDiff: 1},
		"duplicate player":  {WhitePlayerOne: "a", BlackPlayerOne: "a", Result: ResultWhite, ScoreDiff: 1},
		"win without diff":  {WhitePlayerOne: "a", BlackPlayerOne: "b", Result: ResultBlack},
		"draw with diff":    {WhitePlayerOne: "a", BlackPlayerOne: "b", Result: ResultDraw, ScoreDiff: 2},
		"unknown result":    {WhitePlayerOne: "a", BlackPlayerOne: "b", Result: "GREY", ScoreDiff: 1},
		"teammate opponent": {WhitePlayerOne: "a", WhitePlayerTwo: "b", BlackPlayerOne: "b", Result: ResultWhite, ScoreDiff: 1},
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, m.Validate(), ErrInvalidMatch)
		})
	}
}

func TestTeams(t *testing.T) {
	m := Match{WhitePlayerOne: "a", WhitePlayerTwo: "b", BlackPlayerOne: "c", Result: ResultBlack, ScoreDiff: 2}

	assert.Equal(t, []string{"a", "b"}, m.WhiteTeam())
	assert.Equal(t, []string{"c"}, m.BlackTeam())
	assert.Equal(t, []string{"c"}, m.Winners())
	assert.Equal(t, []string{"a", "b"}, m.Losers())
	assert.Equal(t, "b", m.Teammate("a"))
	assert.Equal(t, "", m.Teammate("c"))
	assert.Equal(t, []string{"a", "b"}, m.Opponents("c"))
	assert.Nil(t, m.Opponents("z"))
	assert.False(t, m.IsOneVsOne())
	assert.True(t, m.IsWinner("c"))
}

func TestSortChronologically(t *testing.T) {
	ids := func(matches []Match) []string {
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, m.ID)
		}
		return out
	}

	matches := []Match{
		{ID: "late", CreatedAt: day.Add(2 * time.Hour)},
		{ID: "m2", CreatedAt: day},
		{ID: "m1", CreatedAt: day},
	}
	sorted := SortChronologically(matches)
	assert.Equal(t, []string{"m1", "m2", "late"}, ids(sorted))
	assert.Equal(t, "late", matches[0].ID, "input must not be reordered")

	t.Run("ties break by id whatever the input order", func(t *testing.T) {
		permuted := []Match{matches[1], matches[0], matches[2]}
		assert.Equal(t, ids(sorted), ids(SortChronologically(permuted)))
		reversed := []Match{matches[2], matches[1], matches[0]}
		assert.Equal(t, ids(sorted), ids(SortChronologically(reversed)))
	})
}

func TestSummarize(t *testing.T) {
	matches := []Match{
		{ID: "m1", WhitePlayerOne: "a", BlackPlayerOne: "b", Result: ResultWhite, ScoreDiff: 7, CreatedAt: day.Add(9 * time.Hour)},
		{ID: "m2", WhitePlayerOne: "a", BlackPlayerOne: "c", Result: ResultBlack, ScoreDiff: 1, CreatedAt: day.Add(10 * time.Hour)},
		{ID: "m3", WhitePlayerOne: "b", BlackPlayerOne: "c", Result: ResultDraw, CreatedAt: day.Add(11 * time.Hour)},
		{ID: "other-day", WhitePlayerOne: "a", BlackPlayerOne: "b", Result: ResultWhite, ScoreDiff: 10, CreatedAt: day.Add(30 * time.Hour)},
	}

	summary := Summarize(matches, day.Add(15*time.Hour))

	assert.Equal(t, day, summary.Day)
	assert.Equal(t, 3, summary.MatchesPlayed)
	assert.Equal(t, 1, summary.Draws)
	require.NotNil(t, summary.BiggestWin)
	assert.Equal(t, "m1", summary.BiggestWin.ID)
	require.NotNil(t, summary.ClosestWin)
	assert.Equal(t, "m2", summary.ClosestWin.ID)
	assert.Equal(t, []string{"a", "b", "c"}, summary.MostActive)
	assert.Equal(t, 2, summary.MostActiveGames)
}

func TestSummarizeEmptyDay(t *testing.T) {
	summary := Summarize(nil, day)

	assert.Zero(t, summary.MatchesPlayed)
	assert.Nil(t, summary.BiggestWin)
	assert.Nil(t, summary.ClosestWin)

	_, ok := BiggestWin([]Match{{Result: ResultDraw}})
	assert.False(t, ok)
}

func TestDescribeEvents(t *testing.T) {
	matchID := "m1"
	reward, err := json.Marshal(QuestEventData{QuestID: "q1", Outcome: "Completed", Points: 20, Description: "Win 2 matches"})
	require.NoError(t, err)

	rows := DescribeEvents([]RatingEvent{
		{ID: "e1", Type: EventQuestReward, PlayerID: "a", MatchID: &matchID, Data: reward, CreatedAt: day},
		{ID: "e2", Type: EventQuestPenalty, PlayerID: "a", Data: json.RawMessage(`{"outcome":`), CreatedAt: day},
		{ID: "e3", Type: "SOMETHING_ELSE", PlayerID: "a", Data: reward, CreatedAt: day},
		{ID: "e4", Type: EventQuestPenalty, PlayerID: "a", Data: json.RawMessage(`{"points":-5}`), CreatedAt: day},
	})

	require.Len(t, rows, 4)
	assert.Equal(t, "Completed", rows[0].Outcome)
	assert.Equal(t, 20, rows[0].Points)
	assert.Equal(t, "m1", rows[0].MatchID)
	for _, row := range rows[1:] {
		assert.Equal(t, OutcomeUnknown, row.Outcome, row.EventID)
		assert.Zero(t, row.Points, row.EventID)
	}
}
