package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// WingPhase selects one of the two bird sprites and hitboxes.
type WingPhase int

const (
	WingDown WingPhase = iota
	WingUp
)

// String returns the phase name.
func (p WingPhase) String() string {
	if p == WingUp {
		return "up"
	}
	return "down"
}

// Bird is the player-controlled entity. X is fixed at spawn; Y moves
// under the climb/sink kinematics.
type Bird struct {
	cfg         config.BirdConfig
	frameMillis float64

	x, y        float64
	msecToClimb float64 // may go negative on the last climb step
	wingMillis  float64 // simulated time driving the wing phase
}

// NewBird creates a bird at the configured spawn point with the initial
// climb allowance.
func NewBird(cfg config.FlappyConfig) *Bird {
	return &Bird{
		cfg:         cfg.Bird,
		frameMillis: cfg.FrameMillis(),
		x:           cfg.Bird.X,
		y:           cfg.Bird.Y,
		msecToClimb: cfg.Bird.InitialClimb,
	}
}

// TriggerClimb restarts the climb countdown. It can be called mid-climb or
// mid-sink.
func (b *Bird) TriggerClimb() {
	b.msecToClimb = b.cfg.ClimbDuration
}

// Climbing reports whether the next update moves the bird up.
func (b *Bird) Climbing() bool {
	return b.msecToClimb > 0
}

// Update advances the bird by deltaFrames frames.
func (b *Bird) Update(deltaFrames int) {
	elapsed := float64(deltaFrames) * b.frameMillis

	if b.msecToClimb > 0 {
		b.y -= ClimbDisplacement(b.cfg.ClimbSpeed, elapsed, b.msecToClimb, b.cfg.ClimbDuration)
		b.msecToClimb -= elapsed
	} else {
		b.y += SinkDisplacement(b.cfg.SinkSpeed, elapsed)
	}

	b.wingMillis += elapsed
}

// X returns the fixed horizontal position (left edge).
func (b *Bird) X() float64 { return b.x }

// Y returns the vertical position (top edge).
func (b *Bird) Y() float64 { return b.y }

// MsecToClimb returns the remaining climb time in milliseconds.
func (b *Bird) MsecToClimb() float64 { return b.msecToClimb }

// Width returns the bird width in pixels.
func (b *Bird) Width() float64 { return b.cfg.Width }

// Height returns the bird height in pixels.
func (b *Bird) Height() float64 { return b.cfg.Height }

// Rect is the bounding rectangle at the current position.
func (b *Bird) Rect() core.Box {
	return core.NewBox(b.x, b.y, b.cfg.Width, b.cfg.Height)
}

// Phase returns the wing phase: the second half of every wing period is WingUp.
func (b *Bird) Phase() WingPhase {
	if math.Mod(b.wingMillis, b.cfg.WingPeriod) >= b.cfg.WingPeriod/2 {
		return WingUp
	}
	return WingDown
}

// Shape returns the collision silhouette for the current wing phase: an
// ellipse inscribed in the bounding rectangle, flattened at the bottom when
// the wings are up.
func (b *Bird) Shape() core.Shape {
	e := core.EllipseIn(b.Rect(), b.cfg.HitboxInset)
	if b.Phase() == WingUp && b.cfg.WingUpHitboxDY > 0 {
		e.RY = math.Max(e.RY-b.cfg.WingUpHitboxDY/2, 0)
		e.CY -= b.cfg.WingUpHitboxDY / 2
	}
	return e
}
