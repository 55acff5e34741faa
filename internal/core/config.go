package core

// RuntimeConfig contains configuration passed to a game mode at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 50)
	Seed     uint32 // RNG seed for deterministic gameplay
	Players  int    // Number of local players, 1..MaxPlayers
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
		Seed:     0, // 0 means use current time in platform layer
		Players:  1,
	}
}

// GameState is the externally visible state of a run.
type GameState struct {
	Tick     uint64 // Ticks simulated so far
	Score    int64  // Combined score of all players
	Lives    int    // Shared lives remaining
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the run is paused
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State GameState
}
