package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func TestRunFirstTick(t *testing.T) {
	r := NewRun(config.DefaultFlappyConfig(), 1)

	res := r.Tick(idle())

	if !res.Spawned {
		t.Error("first pair should spawn at frame 0")
	}
	if len(r.Pipes()) != 1 {
		t.Fatalf("pipes = %d, want 1", len(r.Pipes()))
	}
	if x := r.Pipes()[0].X(); math.Abs(x-996.5) > 1e-9 {
		t.Errorf("first pair x = %v, want 996.5", x)
	}
	if res.Frame != 1 || r.Frame() != 1 {
		t.Errorf("frame = %d, want 1", r.Frame())
	}
	if res.Score != 0 {
		t.Errorf("score = %d, want 0", res.Score)
	}
	if res.State != StateRunning {
		t.Errorf("state = %v, want running", res.State)
	}

	y := r.Bird().Y()
	r.Tick(idle())
	if r.Bird().Y() <= y {
		t.Errorf("bird should sink on the second tick, y %v -> %v", y, r.Bird().Y())
	}
}

func TestRunSpawnsEvery150Frames(t *testing.T) {
	r := NewRun(config.DefaultFlappyConfig(), 3)

	for i := 0; i < 301; i++ {
		in := idle()
		if i > 0 && i%20 == 0 {
			in.Set(core.ActionJump)
		}
		r.Tick(in)
	}

	if r.State() != StateRunning {
		t.Fatalf("bird died at frame %d", r.Frame())
	}
	if len(r.Pipes()) != 3 {
		t.Fatalf("pipes = %d, want 3", len(r.Pipes()))
	}
	if x := r.Pipes()[0].X(); math.Abs(x-(999-2.5*301)) > 1e-6 {
		t.Errorf("oldest pair x = %v, want %v", x, 999-2.5*301)
	}
}

func TestRunPauseFreezesEverything(t *testing.T) {
	r := NewRun(config.DefaultFlappyConfig(), 5)
	for i := 0; i < 10; i++ {
		r.Tick(idle())
	}

	res := r.Tick(core.NewInputFrame(core.ActionPause))
	if res.State != StatePaused {
		t.Fatalf("state = %v, want paused", res.State)
	}

	frame, score, y := r.Frame(), r.Score(), r.Bird().Y()
	pipeX := r.Pipes()[0].X()

	for i := 0; i < 200; i++ {
		res = r.Tick(idle())
		if res.Spawned {
			t.Fatal("spawned while paused")
		}
	}

	if r.Frame() != frame || r.Score() != score || r.Bird().Y() != y || r.Pipes()[0].X() != pipeX {
		t.Error("paused run changed state")
	}

	// A climb requested while paused is remembered but does not move the bird.
	r.Tick(core.NewInputFrame(core.ActionJump))
	if r.Bird().Y() != y {
		t.Error("bird moved while paused")
	}
	if r.Bird().MsecToClimb() != 150 {
		t.Errorf("climb while paused = %v, want 150", r.Bird().MsecToClimb())
	}

	res = r.Tick(core.NewInputFrame(core.ActionPause))
	if res.State != StateRunning || r.Frame() != frame+1 {
		t.Errorf("resume: state %v frame %d", res.State, r.Frame())
	}
}

func TestRunPauseTogglesInOrder(t *testing.T) {
	r := NewRun(config.DefaultFlappyConfig(), 5)

	res := r.Tick(core.NewInputFrame(core.ActionPause, core.ActionPause))
	if res.State != StateRunning {
		t.Errorf("two pauses in one tick should cancel out, got %v", res.State)
	}
	if r.Frame() != 1 {
		t.Errorf("frame = %d, want 1", r.Frame())
	}
}

func TestRunQuitStopsProcessing(t *testing.T) {
	r := NewRun(config.DefaultFlappyConfig(), 5)
	r.Tick(idle())
	y := r.Bird().Y()

	res := r.Tick(core.NewInputFrame(core.ActionQuit, core.ActionPause))
	if !res.Quit {
		t.Fatal("quit not reported")
	}
	if res.State != StateRunning {
		t.Errorf("actions after quit were processed, state %v", res.State)
	}
	if r.Frame() != 1 || r.Bird().Y() != y {
		t.Error("quit tick should not advance the simulation")
	}
}

func TestRunOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		dead bool
	}{
		{"above ceiling", -0.5, true},
		{"at ceiling", 0, false},
		{"at floor limit", 680, false},
		{"below floor limit", 680.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRun(config.DefaultFlappyConfig(), 1)
			r.bird.y = tt.y
			res := r.Tick(idle())
			if res.Died != tt.dead || (r.State() == StateDead) != tt.dead {
				t.Errorf("died=%v state=%v, want dead=%v", res.Died, r.State(), tt.dead)
			}
		})
	}
}

func TestRunDeadFinishesTickThenFreezes(t *testing.T) {
	r := NewRun(config.DefaultFlappyConfig(), 1)
	r.bird.y = -10

	res := r.Tick(idle())
	if !res.Died {
		t.Fatal("expected death")
	}
	// The crash tick still moves everything and advances the frame.
	if r.Frame() != 1 {
		t.Errorf("frame = %d, want 1", r.Frame())
	}

	frame, y := r.Frame(), r.Bird().Y()
	for i := 0; i < 10; i++ {
		res = r.Tick(core.NewInputFrame(core.ActionJump, core.ActionPause))
		if res.Died {
			t.Fatal("death reported twice")
		}
	}
	if r.Frame() != frame || r.Bird().Y() != y || r.State() != StateDead {
		t.Error("dead run kept simulating")
	}

	if res := r.Tick(core.NewInputFrame(core.ActionQuit)); !res.Quit {
		t.Error("quit should still be honoured when dead")
	}
}

func TestRunScoresPairExactlyOnce(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	r := NewRun(cfg, 1)
	r.Tick(idle())

	// Replace the random pair with one whose gap [256, 432) holds the bird.
	p := newPipePair(cfg, 7, 8)
	p.x = -27
	r.stream.pairs = []*PipePair{p}

	res := r.Tick(idle()) // x -> -29.5, right edge 50.5
	if res.Died {
		t.Fatal("bird should fly through the gap")
	}
	if res.Scored != 0 || r.Score() != 0 {
		t.Fatalf("scored too early at right edge %v", p.Right())
	}

	res = r.Tick(idle()) // x -> -32, right edge 48
	if res.Scored != 1 || r.Score() != 1 {
		t.Fatalf("scored %d, total %d, want 1", res.Scored, r.Score())
	}

	for i := 0; i < 30; i++ {
		res = r.Tick(idle())
		if res.Scored != 0 {
			t.Fatal("pair scored twice")
		}
	}
	if r.Score() != 1 {
		t.Errorf("score = %d, want 1", r.Score())
	}
	if len(r.Pipes()) != 0 {
		t.Errorf("passed pair should have been evicted, %d left", len(r.Pipes()))
	}
}

func TestRunSpeedCap(t *testing.T) {
	r := NewRun(config.DefaultFlappyConfig(), 1)

	if r.Speed() != 0.15 {
		t.Errorf("speed at 0 = %v, want 0.15", r.Speed())
	}
	prev := r.Speed()
	for score := 1; score <= 1000; score++ {
		r.score = score
		s := r.Speed()
		if s < prev || s > 2.0 {
			t.Fatalf("speed at %d = %v", score, s)
		}
		prev = s
	}
	if prev != 2.0 {
		t.Errorf("speed at 1000 = %v, want cap 2.0", prev)
	}
}

func TestRunDeterminism(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	script := make([]core.InputFrame, 900)
	for i := range script {
		script[i] = core.NewInputFrame()
		if i%17 == 0 {
			script[i].Set(core.ActionJump)
		}
		if i == 200 || i == 260 {
			script[i].Set(core.ActionPause)
		}
	}

	play := func() *Run {
		r := NewRun(cfg, 12345)
		for _, in := range script {
			r.Tick(in)
		}
		return r
	}

	a, b := play(), play()

	if a.Frame() != b.Frame() || a.Score() != b.Score() || a.State() != b.State() {
		t.Fatalf("runs diverged: frame %d/%d score %d/%d", a.Frame(), b.Frame(), a.Score(), b.Score())
	}
	if a.Bird().Y() != b.Bird().Y() || a.Bird().Phase() != b.Bird().Phase() {
		t.Error("bird state diverged")
	}
	if len(a.Pipes()) != len(b.Pipes()) {
		t.Fatalf("pipe count diverged: %d vs %d", len(a.Pipes()), len(b.Pipes()))
	}
	for i := range a.Pipes() {
		pa, pb := a.Pipes()[i], b.Pipes()[i]
		if pa.X() != pb.X() || pa.TopPieces() != pb.TopPieces() {
			t.Errorf("pipe %d diverged", i)
		}
	}
}
