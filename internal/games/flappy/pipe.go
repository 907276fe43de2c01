package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// PipePair is one obstacle: a top and a bottom stack of pipe pieces with a
// vertical gap between them. Each stack ends in an end piece facing the gap.
type PipePair struct {
	x            float64
	topPieces    int // body pieces plus the end piece
	bottomPieces int // body pieces plus the end piece
	scored       bool

	width       float64
	pieceHeight float64
	windowW     float64
	windowH     float64
	frameMillis float64
	speed       config.SpeedCurve

	// Silhouette relative to x = 0, built once at construction.
	top, bottom core.Box
}

// NewPipePair builds a pair at the right edge of the window. The available
// body pieces are split at random between the stacks; clearance reserved by
// config.TotalPieces keeps the gap tall enough for the bird.
// cfg must have passed Validate.
func NewPipePair(cfg config.FlappyConfig, rng *rand.Rand) *PipePair {
	total := cfg.TotalPieces()
	bottom := 1 + rng.Intn(total)
	return newPipePair(cfg, total-bottom, bottom)
}

// newPipePair builds a pair from body piece counts, before end pieces.
func newPipePair(cfg config.FlappyConfig, top, bottom int) *PipePair {
	p := &PipePair{
		x:            float64(cfg.Window.Width - 1),
		topPieces:    top + 1,
		bottomPieces: bottom + 1,
		width:        cfg.Pipes.Width,
		pieceHeight:  cfg.Pipes.PieceHeight,
		windowW:      float64(cfg.Window.Width),
		windowH:      float64(cfg.Window.Height),
		frameMillis:  cfg.FrameMillis(),
		speed:        cfg.Speed(),
	}
	p.top = core.NewBox(0, 0, p.width, p.TopHeight())
	p.bottom = core.NewBox(0, p.windowH-p.BottomHeight(), p.width, p.BottomHeight())
	return p
}

// X returns the left edge of the pair.
func (p *PipePair) X() float64 { return p.x }

// Right returns the right (trailing) edge of the pair.
func (p *PipePair) Right() float64 { return p.x + p.width }

// Width returns the pair width in pixels.
func (p *PipePair) Width() float64 { return p.width }

// TopPieces returns the number of pieces in the top stack, end piece included.
func (p *PipePair) TopPieces() int { return p.topPieces }

// BottomPieces returns the number of pieces in the bottom stack, end piece included.
func (p *PipePair) BottomPieces() int { return p.bottomPieces }

// TopHeight is the height of the top stack in pixels.
func (p *PipePair) TopHeight() float64 { return float64(p.topPieces) * p.pieceHeight }

// BottomHeight is the height of the bottom stack in pixels.
func (p *PipePair) BottomHeight() float64 { return float64(p.bottomPieces) * p.pieceHeight }

// GapTop is the y coordinate where the gap starts.
func (p *PipePair) GapTop() float64 { return p.TopHeight() }

// GapBottom is the y coordinate where the gap ends.
func (p *PipePair) GapBottom() float64 { return p.windowH - p.BottomHeight() }

// GapHeight is the passable height between the stacks.
func (p *PipePair) GapHeight() float64 { return p.GapBottom() - p.GapTop() }

// Scored reports whether the pair has already counted towards the score.
func (p *PipePair) Scored() bool { return p.scored }

// Update scrolls the pair left by deltaFrames frames at the speed for score.
func (p *PipePair) Update(deltaFrames int, score int) {
	p.x -= p.speed.Speed(score) * float64(deltaFrames) * p.frameMillis
}

// Visible reports whether any part of the pair is inside the window.
func (p *PipePair) Visible() bool {
	return -p.width < p.x && p.x < p.windowW
}

// Shape returns the silhouette of both stacks at the current position.
func (p *PipePair) Shape() core.Shape {
	return core.Group{p.top.Translate(p.x, 0), p.bottom.Translate(p.x, 0)}
}

// CollidesWith tests the pair silhouette against the bird's current shape.
func (p *PipePair) CollidesWith(b *Bird) bool {
	return p.Shape().Intersects(b.Shape())
}

// scoreIfPassed marks the pair as scored the first time its trailing edge is
// left of anchorX, and reports whether that happened on this call.
func (p *PipePair) scoreIfPassed(anchorX float64) bool {
	if p.scored || p.Right() >= anchorX {
		return false
	}
	p.scored = true
	return true
}
