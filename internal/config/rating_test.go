package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/tribble-league/internal/rating"
	"github.com/smartystreets/goconvey/convey"
)

func TestLoadRatingConfig(t *testing.T) {
	convey.Convey("Given no file and no environment", t, func() {
		cfg, err := LoadRatingConfig("")
		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg, convey.ShouldResemble, rating.DefaultConfig())
	})

	convey.Convey("Given a YAML file", t, func() {
		path := filepath.Join(t.TempDir(), "ratings.yaml")
		body := "elo:\n  floor: 100\nstreak:\n  base_points: 30\n"
		convey.So(os.WriteFile(path, []byte(body), 0o600), convey.ShouldBeNil)

		convey.Convey("Then file values override defaults", func() {
			cfg, err := LoadRatingConfig(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Elo.Floor, convey.ShouldEqual, 100)
			convey.So(cfg.Streak.BasePoints, convey.ShouldEqual, 30)
			convey.So(cfg.Streak.Bonus, convey.ShouldEqual, 10)
		})

		convey.Convey("Then environment overrides the file", func() {
			t.Setenv("RATING_ELO__FLOOR", "250")
			t.Setenv("RATING_UNDERDOG__UPSET_BONUS", "75")
			cfg, err := LoadRatingConfig(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Elo.Floor, convey.ShouldEqual, 250)
			convey.So(cfg.Underdog.UpsetBonus, convey.ShouldEqual, 75)
		})
	})

	convey.Convey("Given a missing file", t, func() {
		_, err := LoadRatingConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("Given an invalid xp divisor", t, func() {
		t.Setenv("RATING_XP__B", "0")
		_, err := LoadRatingConfig("")
		convey.So(err, convey.ShouldNotBeNil)
	})
}
