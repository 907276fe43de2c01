package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestGame(seed int64) (*Game, core.RuntimeConfig) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
	g := New(config.DefaultFlappyConfig())
	g.Reset(cfg)
	return g, cfg
}

// screenText reads the rendered screen back as plain text.
func screenText(s *core.Screen) string {
	var sb strings.Builder
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			sb.WriteRune(s.GetCell(x, y).Rune)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestGameDeterminism(t *testing.T) {
	// Jump every 15 ticks to try to stay airborne
	inputSequence := make([]core.InputFrame, 400)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputSequence[i].Set(core.ActionJump)
		}
	}

	g1, _ := newTestGame(12345)
	var state1 core.GameState
	for _, in := range inputSequence {
		state1 = g1.Step(in).State
	}

	g2, _ := newTestGame(12345)
	var state2 core.GameState
	for _, in := range inputSequence {
		state2 = g2.Step(in).State
	}

	if state1 != state2 {
		t.Errorf("Determinism failed: %+v vs %+v", state1, state2)
	}
	if g1.Run().Bird().Y() != g2.Run().Bird().Y() {
		t.Errorf("Determinism failed: bird y %v vs %v", g1.Run().Bird().Y(), g2.Run().Bird().Y())
	}
}

func TestGameReset(t *testing.T) {
	g, cfg := newTestGame(42)

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}
	g.Run().bird.y = -5
	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	cfg.Seed = 43
	g.Reset(cfg)

	st := g.State()
	if st.Score != 0 || st.Frame != 0 || st.GameOver || st.Paused {
		t.Errorf("Reset should start a fresh run, got %+v", st)
	}
	if g.Run().Seed() != 43 {
		t.Errorf("Reset seed = %d, want 43", g.Run().Seed())
	}
}

func TestGamePause(t *testing.T) {
	g, _ := newTestGame(1)

	pauseInput := core.NewInputFrame(core.ActionPause)
	g.Step(pauseInput)
	if !g.State().Paused {
		t.Error("Game should be paused")
	}

	before := g.State()
	g.Step(core.NewInputFrame())
	if g.State() != before {
		t.Errorf("State changed while paused: %+v -> %+v", before, g.State())
	}

	g.Step(pauseInput)
	if g.State().Paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameQuit(t *testing.T) {
	g, _ := newTestGame(1)

	res := g.Step(core.NewInputFrame(core.ActionQuit))
	if !res.Quit {
		t.Error("Step should report quit")
	}
}

func TestGameRender(t *testing.T) {
	g, cfg := newTestGame(1)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	// Bird sits at world (50, ~340), which is cell (4, 12) on 80x24.
	if got := screen.GetCell(4, 12).Rune; got != WingDnChar {
		t.Errorf("wing glyph = %q, want %q", got, WingDnChar)
	}
	if got := screen.GetCell(5, 12).Rune; got != BirdBody {
		t.Errorf("body glyph = %q, want %q", got, BirdBody)
	}
	if got := screen.GetCell(5, 12).Color; got != core.ColorBird {
		t.Errorf("bird color = %v, want %v", got, core.ColorBird)
	}

	// The first pair has just entered at the right edge.
	if got := screen.GetCell(79, 0).Rune; got != PipeChar && got != PipeCapChar {
		t.Errorf("pipe glyph at right edge = %q", got)
	}
	if got := screen.GetCell(79, 23).Rune; got != PipeChar {
		t.Errorf("bottom stack glyph at right edge = %q, want %q", got, PipeChar)
	}

	// Score is centered near the top.
	if got := screen.GetCell(39, 1).Rune; got != '0' {
		t.Errorf("score glyph = %q, want '0'", got)
	}
}

func TestGameRenderTinyScreen(t *testing.T) {
	g, _ := newTestGame(1)
	g.Step(core.NewInputFrame())

	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 3}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen) // must not panic
	}
}

func TestGameRenderPaused(t *testing.T) {
	g, cfg := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionPause))

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	if !strings.Contains(screenText(screen), "PAUSED") {
		t.Error("paused view should say PAUSED")
	}
}

func TestGameOverView(t *testing.T) {
	g, cfg := newTestGame(1)
	g.Run().bird.y = 700
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("Game should be over when the bird leaves the window")
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	out := screenText(screen)
	for _, want := range []string{"GAME OVER", "Score: 0", restartLabel} {
		if !strings.Contains(out, want) {
			t.Errorf("game-over view missing %q", want)
		}
	}

	btn := g.RestartButton(cfg.ScreenW, cfg.ScreenH)
	labelX := (cfg.ScreenW - len(restartLabel)) / 2
	if got := screen.GetCell(labelX, btn.Y+1).Color; got != core.ColorButton {
		t.Errorf("idle button color = %v, want %v", got, core.ColorButton)
	}

	g.SetPointer(btn.X+1, btn.Y+1)
	g.Render(screen)
	if got := screen.GetCell(labelX, btn.Y+1).Color; got != core.ColorButtonHot {
		t.Errorf("hovered button color = %v, want %v", got, core.ColorButtonHot)
	}

	g.ClearPointer()
	g.Render(screen)
	if got := screen.GetCell(labelX, btn.Y+1).Color; got != core.ColorButton {
		t.Errorf("button color after pointer left = %v, want %v", got, core.ColorButton)
	}
}

func TestRestartButtonInsideScreen(t *testing.T) {
	g := New(config.DefaultFlappyConfig())

	for _, size := range [][2]int{{80, 24}, {120, 40}, {40, 16}} {
		btn := g.RestartButton(size[0], size[1])
		if btn.X < 0 || btn.Right() > size[0] || btn.Y < 0 || btn.Bottom() > size[1] {
			t.Errorf("button %+v outside %dx%d", btn, size[0], size[1])
		}
		if !btn.Contains(btn.X+btn.W/2, btn.Y+btn.H/2) {
			t.Errorf("button %+v does not contain its center", btn)
		}
	}
}
