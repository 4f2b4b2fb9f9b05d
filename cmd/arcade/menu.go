package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Picking the maze asks for a size first. After a game ends, press B
to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Leaderboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 60
  arcade menu --db ./scores.db --user ada`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	board, closeBoard := openLeaderboardOrWarn(cfg)
	defer closeBoard()

	if err := tui.RunSession(board, runtimeConfig(cfg), playerName()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
