package core

// RuntimeConfig contains platform parameters handed to a game on Reset.
// The simulation itself is configured separately (see internal/config);
// these values describe the display surface, pacing and RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Frame clock rate in ticks per second (default 60)
	Seed     int64 // RNG seed for the run
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

// GameState is the platform-facing summary of a run.
type GameState struct {
	Score    int  // Pipes passed this run
	Frame    int  // Frame counter of the run
	GameOver bool // Run has ended in a collision
	Paused   bool // Simulation is paused
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	Quit  bool // A quit action was consumed this tick
}
