package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/spectate"
)

// openEventLog opens path for appending and returns a logger writing to it.
// An empty path gives a logger that discards everything; stderr belongs to
// the TUI while a game runs.
func openEventLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "pacman",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

// logEvents writes every game event to logger. Tile updates are frequent and
// go to debug. The "level" key belongs to the logger, so the maze level is
// logged as maze_level.
func logEvents(bus *pacman.Bus, logger *log.Logger) int {
	return bus.Subscribe(func(e pacman.Event) {
		switch ev := e.(type) {
		case pacman.TileUpdated:
			logger.Debug(ev.Kind(), "pos", ev.Position, "tile", ev.Tile)
		case pacman.PlayerStateChanged:
			logger.Debug(ev.Kind(), "score", ev.Player.Score, "lives", ev.Player.Lives, "powered", ev.Player.PoweredUp)
		case pacman.GameStateChanged:
			logger.Info(ev.Kind(), "from", ev.From, "to", ev.To)
		case pacman.GhostModeChanged:
			logger.Info(ev.Kind(), "from", ev.From, "to", ev.To)
		case pacman.GhostEaten:
			logger.Info(ev.Kind(), "ghost", ev.Ghost, "points", ev.Points, "combo", ev.Combo)
		case pacman.PlayerDied:
			logger.Warn(ev.Kind(), "by", ev.By, "pos", ev.Position, "lives", ev.LivesLeft)
		case pacman.LevelChanged:
			logger.Info(ev.Kind(), "maze_level", ev.Level)
		case pacman.ExtraLife:
			logger.Info(ev.Kind(), "score", ev.Score, "lives", ev.Lives)
		}
	})
}

// forwardEvents sends every game event to the spectator hub.
func forwardEvents(bus *pacman.Bus, hub *spectate.Hub) int {
	return bus.Subscribe(func(e pacman.Event) {
		hub.PublishEvent(e.Kind(), e)
	})
}
