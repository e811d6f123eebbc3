package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	dryRun bool
	season string
)

var rootCmd = &cobra.Command{
	Use:   "league-cli",
	Short: "Talk to a running league server or replay match files locally",
	Long: `league-cli calls the league server's HTTP endpoints (leaderboards,
quest runs, counters) and can rate a JSON file of matches offline with any
of the rating algorithms.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to write or notify")
	rootCmd.PersistentFlags().StringVar(&season, "season", "", "Season id (defaults to the active season)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "league-cli: %s\n", err)
		os.Exit(1)
	}
}
