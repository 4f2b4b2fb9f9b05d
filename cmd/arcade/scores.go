package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/registry"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresPlayers bool
	flagScoresClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show scores for a game",
	Long: `Display the best rounds for the specified game, fewest moves first.
Without a game, shows a summary of every game played so far.

Examples:
  arcade scores
  arcade scores maze
  arcade scores tiles_easy --players
  arcade scores maze --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresPlayers, "players", false, "Show one entry per player (the leaderboard)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded round for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		store.Close()
		os.Exit(1)
	}

	switch {
	case flagScoresClear:
		err = store.ClearScores(gameID)
		if err == nil {
			fmt.Printf("Cleared all scores for %s.\n", registry.Title(gameID))
		}
	case flagScoresPlayers:
		err = printStandings(gameID)
	default:
		err = printRounds(store, gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printRounds(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Rounds - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Moves", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-6d  %s\n", i+1, entry.User, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Rounds: %d  Players: %d  Best: %d  Average: %.1f moves\n",
		stats.GamesCount, stats.Players, stats.BestScore, stats.AvgScore)
	return nil
}

// printStandings reads the configured leaderboard, which may be redis.
func printStandings(gameID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	board, closeBoard, err := openLeaderboard(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBoard()

	standings, err := board.Top(ctx, gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Leaderboard - %s\n", registry.Title(gameID))
	fmt.Println()
	if len(standings) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "----")
	for _, s := range standings {
		fmt.Printf("  %-4d  %-16s  %d\n", s.Rank, s.User, s.Score)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-14s  %-6s  %-7s  %-5s  %-7s  %s\n", "Game", "Rounds", "Players", "Best", "Average", "Last played")
	fmt.Printf("  %-14s  %-6s  %-7s  %-5s  %-7s  %s\n", "----", "------", "-------", "----", "-------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-14s  %-6d  %-7d  %-5d  %-7.1f  %s\n",
			id, s.GamesCount, s.Players, s.BestScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
