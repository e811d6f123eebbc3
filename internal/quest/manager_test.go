package quest

import (
	"testing"
	"time"

	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/smartystreets/goconvey/convey"
)

var created = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func singlesAt(id string, minutes int, white, black string, result league.Result, diff int) league.Match {
	return league.Match{
		ID:             id,
		WhitePlayerOne: white,
		BlackPlayerOne: black,
		Result:         result,
		ScoreDiff:      diff,
		CreatedAt:      created.Add(time.Duration(minutes) * time.Minute),
	}
}

func newQuest(id, player string, kind Kind, c Condition) *Quest {
	return &Quest{ID: id, PlayerID: player, Kind: kind, Condition: c, Status: StatusInProgress, CreatedAt: created}
}

func ids(qs []*Quest) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestManager(t *testing.T) {
	convey.Convey("Given a manager with the default cap", t, func() {
		m := NewManager()
		for _, id := range []string{"q1", "q2", "q3"} {
			m.AddQuest(newQuest(id, "pia", KindPlayMatchCount, Condition{Target: 10}))
		}

		convey.Convey("Three quests are tracked and none failed", func() {
			convey.So(ids(m.ActiveQuests()), convey.ShouldResemble, []string{"q1", "q2", "q3"})
			convey.So(m.FailedQuests(), convey.ShouldBeEmpty)
		})

		convey.Convey("When a fourth quest is added", func() {
			m.AddQuest(newQuest("q4", "pia", KindWinCount, Condition{Target: 1}))

			convey.Convey("Then the oldest is failed", func() {
				failed := m.FailedQuests()
				convey.So(ids(failed), convey.ShouldResemble, []string{"q1"})
				convey.So(failed[0].Status, convey.ShouldEqual, StatusFailed)
				convey.So(ids(m.PlayerQuests("pia")), convey.ShouldResemble, []string{"q2", "q3", "q4"})
				convey.So(ids(m.ActiveQuests()), convey.ShouldResemble, []string{"q2", "q3", "q4"})
			})

			convey.Convey("Then a win completes the new quest only", func() {
				completed := m.HandleMatch(singlesAt("m1", 5, "pia", "ola", league.ResultWhite, 3))
				convey.So(ids(completed), convey.ShouldResemble, []string{"q4"})
				convey.So(ids(m.ActiveQuests()), convey.ShouldResemble, []string{"q2", "q3"})
				convey.So(m.PlayerQuests("pia")[0].Progress.MatchesPlayed, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("Other players are not affected by the cap", func() {
			m.AddQuest(newQuest("q5", "ola", KindPlay1v1, Condition{}))
			convey.So(m.FailedQuests(), convey.ShouldBeEmpty)
			convey.So(len(m.ActiveQuests()), convey.ShouldEqual, 4)
		})

		convey.Convey("Expire fails quests past their time box", func() {
			fresh := newQuest("q6", "ola", KindPlay1v1, Condition{})
			fresh.CreatedAt = created.Add(48 * time.Hour)
			m.AddQuest(fresh)

			expired := m.Expire(created.Add(72*time.Hour), 48*time.Hour)
			convey.So(ids(expired), convey.ShouldResemble, []string{"q1", "q2", "q3"})
			convey.So(ids(m.ActiveQuests()), convey.ShouldResemble, []string{"q6"})
			convey.So(m.Expire(created.Add(72*time.Hour), 0), convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given a manager with a custom cap", t, func() {
		m := NewManager(WithMaxQuestsPerPlayer(1))
		m.AddQuest(newQuest("a", "pia", KindPlay1v1, Condition{}))
		m.AddQuest(newQuest("b", "pia", KindPlay1v1, Condition{}))
		convey.So(ids(m.FailedQuests()), convey.ShouldResemble, []string{"a"})
		convey.So(ids(m.PlayerQuests("pia")), convey.ShouldResemble, []string{"b"})
	})
}
