package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to adapt to the screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frame ticks per second requested from the platform
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the runner status reported to the platform after each frame.
type GameState struct {
	Score     int     // Distance in whole meters
	Distance  float64 // Exact distance travelled along the track axis
	GameOver  bool    // Whether the run has ended (failure or completion)
	Completed bool    // Whether the run ended by reaching the goal distance
	Paused    bool    // Whether the run is paused
	Reason    string  // End-of-run reason, empty while running
}

// StepResult is returned by the game after each frame.
type StepResult struct {
	State GameState
}
