package core

// Game is the contract between a simulation and the terminal platform.
// Games contain pure logic with no external dependencies (especially no
// Bubble Tea). The platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a short identifier used for storage and CLI output.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh run. Called once at start and again on restart.
	// The RuntimeConfig provides screen dimensions and the RNG seed.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current platform-facing state.
	State() GameState

	// RestartButton returns the cell rectangle of the game-over restart
	// control for a screen of the given size.
	RestartButton(cols, rows int) Rect
}
