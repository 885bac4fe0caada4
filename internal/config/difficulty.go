package config

import "math"

// Progress is how far a run has come, as seen by the difficulty manager.
type Progress struct {
	Level int // 1-based maze level
	Score int
	Ticks int
}

// DifficultyManager calculates dynamic game parameters based on run progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(p.Level-1) / maxAt
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = float64(p.Ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the ghost speed factor: 1 at level 0, growing to
// 1 + speed_multiplier at max difficulty.
func (d *DifficultyManager) Speed(p Progress) float64 {
	return 1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
}

// StepInterval shortens a base step interval by the current speed factor.
func (d *DifficultyManager) StepInterval(base float64, p Progress) float64 {
	return base / d.Speed(p)
}

// FrightenedDuration shortens the frightened period as difficulty rises.
// It never goes below zero.
func (d *DifficultyManager) FrightenedDuration(base float64, p Progress) float64 {
	return math.Max(0, base-d.Level(p)*d.cfg.Scaling.FrightenedReduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
