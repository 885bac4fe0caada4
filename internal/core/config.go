package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  36,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level, 1-based
	Lives    int  // Remaining lives
	GameOver bool // Whether the game has ended (lost or won)
	Won      bool // Whether the game ended by clearing the maze
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
