package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to pick the difficulty
and Enter to play. After a game ends you return to the menu.

Controls:
  Up/Down/j/k     - Navigate modes
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Play
  Tab             - Scoreboard
  Q               - Quit

Examples:
  pacman menu
  pacman menu --fps 30
  pacman menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	gameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := checkGameConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pacman.SetConfigPath(flagConfig)
	pacman.SetDifficultyPreset(flagDifficulty)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		opts := []tui.Option{tui.WithBackToMenu()}
		difficulty := string(menuResult.Difficulty)
		if difficulty == "" {
			difficulty = flagDifficulty
		}
		if difficulty != "" {
			opts = append(opts, tui.WithDifficulty(difficulty))
		}

		// Fresh seed per game unless one was asked for
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, opts...); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
