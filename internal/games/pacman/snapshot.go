package pacman

import (
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/ghost"
)

// Phase is the coarse state of a run.
type Phase string

const (
	PhasePlaying      Phase = "playing"
	PhasePaused       Phase = "paused"
	PhaseDying        Phase = "dying"
	PhaseLevelCleared Phase = "level_cleared"
	PhaseGameOver     Phase = "game_over"
	PhaseWon          Phase = "won"
	PhaseTooSmall     Phase = "paused_small_window"
)

// IsOver reports whether the run has ended.
func (p Phase) IsOver() bool {
	return p == PhaseGameOver || p == PhaseWon
}

// GhostSnapshot is the observable state of one ghost.
type GhostSnapshot struct {
	Type       ghost.Type     `json:"type"`
	Name       string         `json:"name"`
	Position   core.Point     `json:"position"`
	Facing     core.Direction `json:"facing"`
	Frightened bool           `json:"frightened"`
	Eaten      bool           `json:"eaten"`
	InHouse    bool           `json:"in_house"`
}

// Snapshot captures the complete game state for determinism testing and
// for spectators. It holds only values and is comparable with ==.
type Snapshot struct {
	Tick        uint64           `json:"tick"`
	Variant     Variant          `json:"variant"`
	Phase       Phase            `json:"phase"`
	Level       int              `json:"level"`
	Score       int              `json:"score"`
	Lives       int              `json:"lives"`
	PelletsLeft int              `json:"pellets_left"`
	Player      core.Point       `json:"player"`
	Facing      core.Direction   `json:"facing"`
	Mode        ghost.Mode       `json:"mode"`
	Wave        int              `json:"wave"`
	Frightened  float64          `json:"frightened_remaining"`
	Elroy       int              `json:"elroy"`
	Ghosts      [4]GhostSnapshot `json:"ghosts"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        g.tick,
		Variant:     g.variant,
		Phase:       g.Phase(),
		Level:       g.level,
		Score:       g.score,
		Lives:       g.lives,
		PelletsLeft: g.maze.PelletCount(),
		Player:      g.player.pos,
		Facing:      g.player.facing,
		Mode:        g.modes.Mode(),
		Wave:        g.modes.Wave(),
		Frightened:  g.modes.FrightenedTimeRemaining(),
		Elroy:       g.elroyLevel(),
	}
	for i, a := range g.ghosts {
		s.Ghosts[i] = GhostSnapshot{
			Type:       a.kind,
			Name:       a.kind.Nickname(),
			Position:   a.pos,
			Facing:     a.facing,
			Frightened: a.frightened,
			Eaten:      a.eaten,
			InHouse:    a.house != houseOut,
		}
	}
	return s
}

// Observe returns the snapshot as an opaque value for the spectator feed.
func (g *Game) Observe() any {
	return g.Snapshot()
}
