// arcade is a terminal and web arcade for the maze and memory-tiles games.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade web               - Start the HTTP console
//	arcade scores [game]     - Show scores and statistics
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--seed <value>   - Set RNG seed for reproducible mazes and decks
//	--db <path>      - Set database path (default: ~/.arcade/scores.db)
//	--config <path>  - Use a specific arcade.yaml
//	--user <name>    - Name recorded on the leaderboard
//	--size <preset>  - Maze size preset: small, medium, large
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/echo-arcade/internal/games/maze"
	_ "github.com/vovakirdan/echo-arcade/internal/games/tiles"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagUser   string
	flagSize   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Echo Arcade - mazes and memory tiles in your terminal",
	Long: `Echo Arcade runs two puzzle games: a maze you walk through to the far
corner, and a memory game where you turn tiles over two at a time to find
every pair. Fewer moves rank higher on the leaderboard.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  web      - Start the HTTP console
  scores   - View scores and leaderboards

Examples:
  arcade list
  arcade play maze --size large
  arcade play tiles_hard
  arcade menu --user ada
  arcade serve --ssh :2222
  arcade web --addr :8080
  arcade scores maze`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arcade.yaml")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Player name for the leaderboard (default: login name)")
	rootCmd.PersistentFlags().StringVar(&flagSize, "size", "", "Maze size preset: small, medium, large")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}
