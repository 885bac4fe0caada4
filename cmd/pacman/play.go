package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/spectate"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var (
	flagLogPath  string
	flagSpectate string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode, or the classic maze when none is named.

Controls:
  Arrows/WASD/HJKL  - Move (turns are buffered until the corridor opens)
  P/Space/Esc       - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More lives, longer frightened time
  normal - Default progression
  hard   - Fewer lives, short frightened time, earlier Elroy
  fixed  - No speed progression

Examples:
  pacman play
  pacman play pacman_marathon --difficulty hard
  pacman play --config ./my-maze.yaml
  pacman play --log ./events.log
  pacman play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	gameFlags(playCmd)
	playCmd.Flags().StringVar(&flagLogPath, "log", "", "Write game events to this file")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "pacman"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pacman list' to see available modes.")
		os.Exit(1)
	}

	// Fail before the alt screen hides the message
	if err := checkGameConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pacman.SetConfigPath(flagConfig)
	pacman.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var opts []tui.Option
	if flagDifficulty != "" {
		opts = append(opts, tui.WithDifficulty(flagDifficulty))
	}

	logger, closeLog, err := openEventLog(flagLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if pg, ok := game.(*pacman.Game); ok && flagLogPath != "" {
		logEvents(pg.Events(), logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var served chan error
	if flagSpectate != "" {
		hub := spectate.NewHub(spectate.Config{Logger: logger.WithPrefix("spectate")})
		srv, err := spectate.Listen(hub, flagSpectate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		served = make(chan error, 1)
		go func() { served <- srv.Serve(ctx) }()

		if pg, ok := game.(*pacman.Game); ok {
			forwardEvents(pg.Events(), hub)
		}
		opts = append(opts, tui.WithObserver(hub))
		fmt.Fprintf(os.Stderr, "Spectators: ws://%s/ws\n", srv.Addr())
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig(), opts...)

	if store != nil {
		store.Close()
	}
	if served != nil {
		cancel()
		if err := <-served; err != nil {
			fmt.Fprintf(os.Stderr, "Warning: spectator feed: %v\n", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// checkGameConfig validates --config and --difficulty.
func checkGameConfig() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if _, err := config.LoadPacman(flagConfig); err != nil {
		return err
	}
	return nil
}
