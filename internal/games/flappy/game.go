// Package flappy implements a Flappy Bird-style game.
// The player taps to make the bird climb through gaps in a stream of pipe
// pairs that scroll in from the right and speed up as the score grows.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game adapts a Run to the platform's core.Game contract. It owns the
// configuration across restarts and the pointer position used to highlight
// the restart button.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	run     *Run

	pointerX, pointerY int
	hasPointer         bool
}

var _ core.Game = (*Game)(nil)

// New creates a game for a validated configuration. The first run uses
// seed 0 until Reset supplies the platform's seed.
func New(cfg config.FlappyConfig) *Game {
	return &Game{
		cfg:     cfg,
		runtime: core.DefaultConfig(),
		run:     NewRun(cfg, 0),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset starts a new run with score 0 using the seed in cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.run = NewRun(g.cfg, cfg.Seed)
}

// Step advances the current run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	res := g.run.Tick(in)
	return core.StepResult{
		State: g.State(),
		Quit:  res.Quit,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.run.Score(),
		Frame:    g.run.Frame(),
		GameOver: g.run.State() == StateDead,
		Paused:   g.run.State() == StatePaused,
	}
}

// Run returns the current run.
func (g *Game) Run() *Run {
	return g.run
}

// Config returns the simulation configuration.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// SetPointer records the mouse position in cells for button hover.
func (g *Game) SetPointer(x, y int) {
	g.pointerX, g.pointerY = x, y
	g.hasPointer = true
}

// ClearPointer forgets the mouse position.
func (g *Game) ClearPointer() {
	g.hasPointer = false
}

// RestartButton returns the cell rectangle of the restart button on the
// game-over view for a screen of cols x rows.
func (g *Game) RestartButton(cols, rows int) core.Rect {
	w := len(restartLabel) + 4
	return core.NewRect((cols-w)/2, rows/2+1, w, 3)
}

// restartHot reports whether the pointer hovers the restart button.
func (g *Game) restartHot(cols, rows int) bool {
	return g.hasPointer && g.RestartButton(cols, rows).Contains(g.pointerX, g.pointerY)
}
