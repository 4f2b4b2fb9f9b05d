package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/platform/tui"
	"github.com/vovakirdan/echo-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD/hjkl  - Move (maze) or move the cursor (tiles)
  Enter/Space       - Turn over the tile under the cursor
  P                 - Pause
  R                 - Restart
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  arcade play maze
  arcade play maze --size large --seed 42
  arcade play tiles_medium --user ada`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := mustLoadConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Continue without a leaderboard if it cannot be opened
	board, closeBoard := openLeaderboardOrWarn(cfg)

	runErr := tui.Run(game, board, runtimeConfig(cfg), playerName())

	// Close before a potential exit
	closeBoard()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
