package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default configuration. It mirrors
// defaults/pacman.yaml and is used when the embedded file cannot be parsed.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Maze: MazeConfig{
			PlayerStart: core.Pt(13, 23),
		},
		Scoring: ScoringConfig{
			Pellet:          10,
			PowerPellet:     50,
			Ghost:           200,
			GhostMultiplier: 2,
			ExtraLifeAt:     10000,
		},
		Timing: TimingConfig{
			PlayerStep:        0.12,
			GhostStep:         0.16,
			FrightenedStep:    0.24,
			EatenStep:         0.06,
			Frightened:        6.0,
			FrightenedWarning: 2.0,
			DeathPause:        1.5,
			LevelPause:        2.0,
		},
		Waves: WavesConfig{
			Scatter: []float64{7, 7, 5, 5},
			Chase:   []float64{20, 20, 20, 99999},
		},
		Targeting: TargetingConfig{
			PinkAhead:         4,
			BlueAhead:         2,
			OrangeShyDistance: 8,
		},
		Corners: GhostPoints{
			Red:    core.Pt(25, -3),
			Pink:   core.Pt(2, -3),
			Blue:   core.Pt(27, 34),
			Orange: core.Pt(0, 34),
		},
		Elroy: ElroyConfig{
			Enabled:    true,
			Threshold1: 20,
			Threshold2: 10,
			StepScale1: 0.9,
			StepScale2: 0.8,
		},
		Lives: LivesConfig{
			Start: 3,
			Max:   5,
		},
		House: HouseConfig{
			Center: core.Pt(13, 14),
			Exit:   core.Pt(13, 11),
			Starts: GhostPoints{
				Red:    core.Pt(13, 11),
				Pink:   core.Pt(13, 14),
				Blue:   core.Pt(11, 14),
				Orange: core.Pt(15, 14),
			},
			ReleaseDelays: []float64{0, 1, 4, 8},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:     0.5,
				FrightenedReduction: 4.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pacman", "pacman_marathon":
		return defaultPacmanYAML
	default:
		return nil
	}
}
