package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// State is the phase of a run.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateDead
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// TickResult reports what happened during one Tick.
type TickResult struct {
	State   State
	Score   int
	Frame   int
	Quit    bool // quit was requested; the caller terminates
	Spawned bool // a pipe pair was added this tick
	Scored  int  // pairs scored this tick
	Died    bool // the run ended this tick
}

// Run is one attempt from spawn to collision: one bird, one obstacle
// stream, a frame counter and a score. All state is owned by the run and
// mutated only by Tick.
type Run struct {
	cfg    config.FlappyConfig
	seed   int64
	bird   *Bird
	stream *Stream
	frame  int
	score  int
	state  State
}

// NewRun starts a run. cfg must have passed Validate; the seed fully
// determines the pipe layout.
func NewRun(cfg config.FlappyConfig, seed int64) *Run {
	rng := rand.New(rand.NewSource(seed))
	return &Run{
		cfg:    cfg,
		seed:   seed,
		bird:   NewBird(cfg),
		stream: NewStream(cfg, rng),
		state:  StateRunning,
	}
}

// Tick advances the run by one frame:
//
//  1. spawn a pair if not paused and the cadence is met
//  2. dispatch input in arrival order (quit, pause toggle, climb)
//  3. stop here while paused
//  4. collision check against pipes and the window bounds
//  5. evict invisible pairs
//  6. scroll pairs at the speed for the current score
//  7. move the bird
//  8. score pairs whose trailing edge passed the bird
//  9. advance the frame counter
//
// A collision marks the run dead but steps 5-9 still run, so the final
// frame shows the crash. Once dead, Tick only honours quit.
func (r *Run) Tick(in core.InputFrame) TickResult {
	res := TickResult{}

	if r.state == StateDead {
		res.Quit = in.Has(core.ActionQuit)
		return r.fill(res)
	}

	if r.state != StatePaused {
		res.Spawned = r.stream.MaybeSpawn(r.frame)
	}

	for _, a := range in.Actions() {
		switch a {
		case core.ActionQuit:
			res.Quit = true
			return r.fill(res)
		case core.ActionPause:
			r.togglePause()
		case core.ActionJump:
			r.bird.TriggerClimb()
		}
	}

	if r.state == StatePaused {
		return r.fill(res)
	}

	if r.collided() {
		r.state = StateDead
		res.Died = true
	}

	r.stream.EvictInvisible()
	r.stream.Update(1, r.score)
	r.bird.Update(1)

	res.Scored = r.stream.Score(r.bird.X())
	r.score += res.Scored

	r.frame++
	return r.fill(res)
}

func (r *Run) togglePause() {
	if r.state == StatePaused {
		r.state = StateRunning
	} else {
		r.state = StatePaused
	}
}

// collided checks the pipes and both window bounds.
func (r *Run) collided() bool {
	if r.bird.Y() < 0 || r.bird.Y() > float64(r.cfg.Window.Height)-r.bird.Height() {
		return true
	}
	return r.stream.CollidesWith(r.bird)
}

func (r *Run) fill(res TickResult) TickResult {
	res.State = r.state
	res.Score = r.score
	res.Frame = r.frame
	return res
}

// State returns the current phase.
func (r *Run) State() State { return r.state }

// Score returns the number of pairs passed.
func (r *Run) Score() int { return r.score }

// Frame returns the frame counter.
func (r *Run) Frame() int { return r.frame }

// Seed returns the seed the run was created with.
func (r *Run) Seed() int64 { return r.seed }

// Bird returns the run's bird.
func (r *Run) Bird() *Bird { return r.bird }

// Pipes returns the live pipe pairs, oldest first.
func (r *Run) Pipes() []*PipePair { return r.stream.Pairs() }

// Config returns the configuration the run was built with.
func (r *Run) Config() config.FlappyConfig { return r.cfg }

// Speed returns the current pipe scroll speed in pixels per millisecond.
func (r *Run) Speed() float64 { return r.cfg.Speed().Speed(r.score) }
