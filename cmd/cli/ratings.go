package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mauv0809/tribble-league/internal/config"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/mauv0809/tribble-league/internal/replay"
	"github.com/spf13/cobra"
)

type ratingsOptions struct {
	algorithm  string
	configPath string
	player     string
	diff       bool
}

var ratingsOpts ratingsOptions

func init() {
	ratingsCmd.Flags().StringVar(&ratingsOpts.algorithm, "algorithm", "elo", "Rating algorithm to replay with")
	ratingsCmd.Flags().StringVar(&ratingsOpts.configPath, "config", "", "YAML file with rating parameters")
	ratingsCmd.Flags().StringVar(&ratingsOpts.player, "player", "", "Show the daily rating history of this player")
	ratingsCmd.Flags().BoolVar(&ratingsOpts.diff, "diff", false, "Show how the last match moved its players")
	rootCmd.AddCommand(ratingsCmd)
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings <matches.json>",
	Short: "Replay a JSON file of matches offline and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open match file: %w", err)
		}
		defer f.Close()
		return runRatings(cmd.OutOrStdout(), f, ratingsOpts)
	},
}

func runRatings(w io.Writer, r io.Reader, opts ratingsOptions) error {
	var matches []league.Match
	if err := json.NewDecoder(r).Decode(&matches); err != nil {
		return fmt.Errorf("failed to decode matches: %w", err)
	}
	for i, m := range matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("match %d (%s): %w", i, m.ID, err)
		}
	}

	cfg, err := config.LoadRatingConfig(opts.configPath)
	if err != nil {
		return err
	}
	ranker, err := replay.ForAlgorithm(opts.algorithm, cfg)
	if err != nil {
		return err
	}

	t := table.New().Border(lipgloss.NormalBorder())
	switch {
	case opts.player != "":
		t.Headers("Date", "Rating")
		for _, h := range ranker.History(matches, opts.player) {
			t.Row(h.Date.Format("2006-01-02"), formatRating(h.Rating))
		}
	case opts.diff:
		diffs, err := ranker.MatchDiff(matches)
		if err != nil {
			return err
		}
		t.Headers("Player", "Before", "After", "Rank")
		for _, d := range diffs {
			before, rank := "-", strconv.Itoa(d.RankAfter)
			if d.RatingBefore != nil {
				before = formatRating(*d.RatingBefore)
			}
			if d.RankBefore != nil {
				rank = fmt.Sprintf("%d -> %d", *d.RankBefore, d.RankAfter)
			}
			t.Row(d.PlayerID, before, formatRating(d.RatingAfter), rank)
		}
	default:
		t.Headers("#", "Player", "Rating")
		for _, s := range ranker.Leaderboard(matches) {
			t.Row(strconv.Itoa(s.Rank), s.PlayerID, formatRating(s.Rating))
		}
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
