// pacman is a terminal maze chase: clear the pellets while four ghosts with
// their own personalities hunt you down.
//
// Usage:
//
//	pacman list              - List available game modes
//	pacman play [mode]       - Play a mode (default: pacman)
//	pacman menu              - Start menu to pick a mode interactively
//	pacman serve             - Start SSH server for remote play
//	pacman scores [mode]     - Show high scores and stats
//	pacman maze              - Print the maze the game will use
//	pacman config show       - Print the effective configuration
//	pacman config schema     - Print the JSON schema of the config file
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.pacman/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-pacman/internal/games/pacman"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string

	// Game config flags shared by play, menu, maze and config
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "TUI Pac-Man - the maze chase in your terminal",
	Long: `TUI Pac-Man is the arcade maze chase for the terminal.

Eat every pellet while Blinky, Pinky, Inky and Clyde hunt you, each with
its own targeting. Power pellets turn the tables for a few seconds.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores and stats
  maze     - Print the maze
  config   - Show the effective config or its schema

Examples:
  pacman play
  pacman play pacman_marathon --difficulty hard
  pacman play --spectate :8080
  pacman menu
  pacman serve --ssh :2222
  pacman scores pacman`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pacman/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mazeCmd)
	rootCmd.AddCommand(configCmd)
}

// gameFlags registers the flags that pick the game config on cmd.
func gameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}
