package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var algorithm string

func init() {
	leaderboardCmd.Flags().StringVar(&algorithm, "algorithm", "", "Rating algorithm (defaults to the season's)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(processQuestsCmd)
	rootCmd.AddCommand(generateQuestsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(countersCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the season leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if algorithm != "" {
			params.Set("algorithm", algorithm)
		}
		return performRequest(http.MethodGet, "/leaderboard", params)
	},
}

var processQuestsCmd = &cobra.Command{
	Use:   "process-quests",
	Short: "Resolve open quests against the logged matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/quests/process", nil)
	},
}

var generateQuestsCmd = &cobra.Command{
	Use:   "generate-quests",
	Short: "Hand every player a new quest",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/quests/generate", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Get the persisted counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/counters", nil)
	},
}

func performRequest(method, endpoint string, params url.Values) error {
	if params == nil {
		params = url.Values{}
	}
	if season != "" {
		params.Set("season", season)
	}
	if dryRun {
		params.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
