package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	createName   string
	createGames  []string
	createFormat string
	createMax    int
	scoreLevel   int
	retainDays   int
)

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Tournament name")
	createCmd.Flags().StringSliceVar(&createGames, "games", nil, "Game ids (comma separated)")
	createCmd.Flags().StringVar(&createFormat, "format", "round-robin", "Tournament format")
	createCmd.Flags().IntVar(&createMax, "max", 8, "Maximum participants")
	scoreCmd.Flags().IntVar(&scoreLevel, "level", 0, "Level reached")
	archiveCmd.Flags().IntVar(&retainDays, "retain-days", 30, "Retention window in days")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the known arcade games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games")
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments")
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"name":%q,"games":["%s"],"format":%q,"settings":{"max_participants":%d,"normalize_scores":true}}`,
			createName, strings.Join(createGames, `","`), createFormat, createMax)
		return performPostRequest("/tournaments/create", strings.NewReader(body))
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <tournamentID> <participantID> <name>",
	Short: "Join a tournament",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"id": {args[0]}, "participantID": {args[1]}, "name": {args[2]}}
		return performGetRequest("/tournaments/join?" + params.Encode())
	},
}

var startCmd = &cobra.Command{
	Use:   "start <tournamentID>",
	Short: "Start a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments/start?id=" + url.QueryEscape(args[0]))
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <tournamentID> <participantID> <gameID> <rawScore>",
	Short: "Record a raw game score",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{
			"id":            {args[0]},
			"participantID": {args[1]},
			"gameID":        {args[2]},
			"score":         {args[3]},
		}
		if scoreLevel > 0 {
			params.Set("level", fmt.Sprint(scoreLevel))
		}
		return performGetRequest("/tournaments/score?" + params.Encode())
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <tournamentID>",
	Short: "Complete a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments/complete?id=" + url.QueryEscape(args[0]))
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <tournamentID>",
	Short: "Show a tournament leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments/leaderboard?id=" + url.QueryEscape(args[0]))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <playerID>",
	Short: "Show derived stats for a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/history/player-stats?playerID=" + url.QueryEscape(args[0]))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the tournament history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/history/export")
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported history document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		return performPostRequest("/history/import", bytes.NewReader(payload))
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive completed tournaments past the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/history/archive?retainDays=%d", retainDays))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body io.Reader) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
