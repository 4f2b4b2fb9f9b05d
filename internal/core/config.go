package core

// RuntimeConfig contains configuration passed to games on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic gameplay

	// Options carries per-game settings from the config file
	// (for example "width" and "height" for the maze).
	Options map[string]int
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Option returns the named option, or def when it is unset or not positive.
func (c RuntimeConfig) Option(name string, def int) int {
	if v, ok := c.Options[name]; ok && v > 0 {
		return v
	}
	return def
}

// GameState is what a game reports to the platform after every tick.
// For the puzzle games here Score is the number of moves taken,
// so a lower score is a better one.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
