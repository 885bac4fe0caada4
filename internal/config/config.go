// Package config provides YAML-based game configuration loading and
// difficulty management for the pacman game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// PacmanConfig contains all tunable parameters of the game.
type PacmanConfig struct {
	Maze       MazeConfig       `yaml:"maze" json:"maze"`
	Scoring    ScoringConfig    `yaml:"scoring" json:"scoring"`
	Timing     TimingConfig     `yaml:"timing" json:"timing"`
	Waves      WavesConfig      `yaml:"waves" json:"waves"`
	Targeting  TargetingConfig  `yaml:"targeting" json:"targeting"`
	Corners    GhostPoints      `yaml:"corners" json:"corners" jsonschema:"description=Scatter corners; they may lie outside the maze"`
	Elroy      ElroyConfig      `yaml:"elroy" json:"elroy"`
	Lives      LivesConfig      `yaml:"lives" json:"lives"`
	House      HouseConfig      `yaml:"house" json:"house"`
	Difficulty DifficultyConfig `yaml:"difficulty" json:"difficulty"`
}

// MazeConfig selects the board. An empty layout means the classic maze.
type MazeConfig struct {
	Layout      []string   `yaml:"layout,omitempty" json:"layout,omitempty" jsonschema:"description=Rows of # . o - _ and space; empty uses the classic maze"`
	PlayerStart core.Point `yaml:"player_start" json:"player_start"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	Pellet          int `yaml:"pellet" json:"pellet"`
	PowerPellet     int `yaml:"power_pellet" json:"power_pellet"`
	Ghost           int `yaml:"ghost" json:"ghost" jsonschema:"description=Points for the first ghost eaten in one frightened period"`
	GhostMultiplier int `yaml:"ghost_multiplier" json:"ghost_multiplier"`
	ExtraLifeAt     int `yaml:"extra_life_at" json:"extra_life_at" jsonschema:"description=Score that awards one extra life; 0 disables"`
}

// TimingConfig defines step intervals and the frightened period, in seconds.
type TimingConfig struct {
	PlayerStep        float64 `yaml:"player_step" json:"player_step"`
	GhostStep         float64 `yaml:"ghost_step" json:"ghost_step"`
	FrightenedStep    float64 `yaml:"frightened_step" json:"frightened_step"`
	EatenStep         float64 `yaml:"eaten_step" json:"eaten_step"`
	Frightened        float64 `yaml:"frightened" json:"frightened"`
	FrightenedWarning float64 `yaml:"frightened_warning" json:"frightened_warning"`
	DeathPause        float64 `yaml:"death_pause" json:"death_pause"`
	LevelPause        float64 `yaml:"level_pause" json:"level_pause"`
}

// WavesConfig defines the scatter/chase schedule. Scatter[i] and Chase[i]
// make up wave i; the last chase never ends.
type WavesConfig struct {
	Scatter []float64 `yaml:"scatter" json:"scatter"`
	Chase   []float64 `yaml:"chase" json:"chase"`
}

// TargetingConfig defines the ghost personality constants.
type TargetingConfig struct {
	PinkAhead         int `yaml:"pink_ahead" json:"pink_ahead"`
	BlueAhead         int `yaml:"blue_ahead" json:"blue_ahead"`
	OrangeShyDistance int `yaml:"orange_shy_distance" json:"orange_shy_distance"`
}

// GhostPoints holds one position per ghost.
type GhostPoints struct {
	Red    core.Point `yaml:"red" json:"red"`
	Pink   core.Point `yaml:"pink" json:"pink"`
	Blue   core.Point `yaml:"blue" json:"blue"`
	Orange core.Point `yaml:"orange" json:"orange"`
}

// Array returns the points in Red, Pink, Blue, Orange order.
func (g GhostPoints) Array() [4]core.Point {
	return [4]core.Point{g.Red, g.Pink, g.Blue, g.Orange}
}

// ElroyConfig defines when Red speeds up near the end of a level.
type ElroyConfig struct {
	Enabled    bool    `yaml:"enabled" json:"enabled"`
	Threshold1 int     `yaml:"threshold1" json:"threshold1"`
	Threshold2 int     `yaml:"threshold2" json:"threshold2"`
	StepScale1 float64 `yaml:"step_scale1" json:"step_scale1" jsonschema:"description=Multiplier applied to Red's step interval below threshold1"`
	StepScale2 float64 `yaml:"step_scale2" json:"step_scale2"`
}

// LivesConfig defines the life counter.
type LivesConfig struct {
	Start int `yaml:"start" json:"start"`
	Max   int `yaml:"max" json:"max"`
}

// HouseConfig defines the ghost house geometry and release timing.
type HouseConfig struct {
	Center        core.Point  `yaml:"center" json:"center" jsonschema:"description=Where eaten ghosts revive"`
	Exit          core.Point  `yaml:"exit" json:"exit" jsonschema:"description=Tile just outside the door"`
	Starts        GhostPoints `yaml:"starts" json:"starts"`
	ReleaseDelays []float64   `yaml:"release_delays" json:"release_delays" jsonschema:"description=Seconds each ghost waits before leaving, Red first"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" json:"enabled"`
	InitialLevel float64           `yaml:"initial_level" json:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" json:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" json:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type" json:"type" jsonschema:"enum=level,enum=score,enum=time,enum=none"`
	MaxAt int    `yaml:"max_at" json:"max_at"` // Level/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier     float64 `yaml:"speed_multiplier" json:"speed_multiplier"`         // Ghost speed added at max difficulty
	FrightenedReduction float64 `yaml:"frightened_reduction" json:"frightened_reduction"` // Seconds of frightened time removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string is accepted and
// means "leave the config alone".
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports the first setting that would make the game unplayable.
func (c PacmanConfig) Validate() error {
	steps := []struct {
		name string
		v    float64
	}{
		{"timing.player_step", c.Timing.PlayerStep},
		{"timing.ghost_step", c.Timing.GhostStep},
		{"timing.frightened_step", c.Timing.FrightenedStep},
		{"timing.eaten_step", c.Timing.EatenStep},
	}
	for _, s := range steps {
		if s.v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", s.name, s.v)
		}
	}
	if c.Timing.Frightened < 0 || c.Timing.FrightenedWarning < 0 {
		return errors.New("config: frightened timings must not be negative")
	}

	if len(c.Waves.Scatter) == 0 {
		return errors.New("config: waves.scatter is empty")
	}
	if len(c.Waves.Scatter) != len(c.Waves.Chase) {
		return fmt.Errorf("config: waves.scatter has %d entries but waves.chase has %d",
			len(c.Waves.Scatter), len(c.Waves.Chase))
	}
	for i := range c.Waves.Scatter {
		if c.Waves.Scatter[i] < 0 || c.Waves.Chase[i] < 0 {
			return fmt.Errorf("config: wave %d has a negative duration", i)
		}
	}

	if c.Lives.Start <= 0 {
		return fmt.Errorf("config: lives.start must be positive, got %d", c.Lives.Start)
	}
	if c.Lives.Max < c.Lives.Start {
		return fmt.Errorf("config: lives.max (%d) is below lives.start (%d)", c.Lives.Max, c.Lives.Start)
	}
	if c.Scoring.GhostMultiplier < 1 {
		return fmt.Errorf("config: scoring.ghost_multiplier must be at least 1, got %d", c.Scoring.GhostMultiplier)
	}
	if c.Elroy.Enabled && c.Elroy.Threshold2 > c.Elroy.Threshold1 {
		return fmt.Errorf("config: elroy.threshold2 (%d) exceeds threshold1 (%d)", c.Elroy.Threshold2, c.Elroy.Threshold1)
	}

	if n := len(c.Maze.Layout); n > 0 {
		width := len([]rune(c.Maze.Layout[0]))
		for y, row := range c.Maze.Layout {
			if len([]rune(row)) != width {
				return fmt.Errorf("config: maze.layout row %d has width %d, expected %d", y, len([]rune(row)), width)
			}
		}
	}
	return nil
}
