package flappy

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	PipeChar    = '█'
	PipeCapChar = '▓'
	BirdBody    = 'o'
	BirdBeak    = '>'
	WingUpChar  = '^'
	WingDnChar  = 'v'
)

const restartLabel = "Restart"

// viewport maps world pixels onto the cell grid of a screen.
type viewport struct {
	cols, rows     int
	worldW, worldH float64
}

func (v viewport) cellX(x float64) int {
	return int(x * float64(v.cols) / v.worldW)
}

func (v viewport) cellY(y float64) int {
	return int(y * float64(v.rows) / v.worldH)
}

// Render draws the current run to the screen, scaled from world pixels to cells.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	v := viewport{
		cols:   dst.Width(),
		rows:   dst.Height(),
		worldW: float64(g.cfg.Window.Width),
		worldH: float64(g.cfg.Window.Height),
	}

	for _, p := range g.run.Pipes() {
		g.drawPipe(dst, v, p)
	}
	g.drawBird(dst, v)

	dst.DrawTextCentered(v.cellY(g.cfg.Pipes.PieceHeight), strconv.Itoa(g.run.Score()), core.ColorScore)

	switch g.run.State() {
	case StatePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case StateDead:
		g.drawGameOver(dst)
	}
}

// drawPipe renders both stacks of a pair. The end piece of each stack is
// drawn one cell wider on both sides.
func (g *Game) drawPipe(dst *core.Screen, v viewport, p *PipePair) {
	x0 := v.cellX(p.X())
	x1 := max(v.cellX(p.Right()), x0+1)
	w := x1 - x0

	topEnd := max(v.cellY(p.GapTop()), 1)
	dst.DrawRect(core.NewRect(x0, 0, w, topEnd), PipeChar, core.ColorPipeBody)
	dst.DrawHLine(x0-1, topEnd-1, w+2, PipeCapChar, core.ColorPipeCap)

	bottomStart := min(v.cellY(p.GapBottom()), v.rows-1)
	dst.DrawRect(core.NewRect(x0, bottomStart, w, v.rows-bottomStart), PipeChar, core.ColorPipeBody)
	dst.DrawHLine(x0-1, bottomStart, w+2, PipeCapChar, core.ColorPipeCap)
}

// drawBird draws a one-row sprite at the bird's vertical center. The wing
// glyph follows the wing phase.
func (g *Game) drawBird(dst *core.Screen, v viewport) {
	b := g.run.Bird()
	x := v.cellX(b.X())
	y := v.cellY(b.Y() + b.Height()/2)

	wing := WingDnChar
	if b.Phase() == WingUp {
		wing = WingUpChar
	}

	if v.cellX(b.X()+b.Width())-x < 3 {
		dst.SetColored(x, y, BirdBody, core.ColorBird)
		return
	}
	dst.SetColored(x, y, wing, core.ColorBirdWing)
	dst.SetColored(x+1, y, BirdBody, core.ColorBird)
	dst.SetColored(x+2, y, BirdBeak, core.ColorBird)
}

// drawGameOver shows the final score, the restart button and key hints.
func (g *Game) drawGameOver(dst *core.Screen) {
	cols, rows := dst.Width(), dst.Height()
	btn := g.RestartButton(cols, rows)

	panelW := min(max(28, btn.W+4), cols)
	panel := core.NewRect((cols-panelW)/2, btn.Y-5, panelW, 11)
	dst.DrawRect(panel, ' ', core.ColorDefault)
	dst.DrawBox(panel, core.ColorWhite)

	dst.DrawTextCentered(panel.Y+1, "GAME OVER", core.ColorBrightRed)
	dst.DrawTextCentered(panel.Y+3, fmt.Sprintf("Score: %d", g.run.Score()), core.ColorScore)

	c := core.ColorButton
	if g.restartHot(cols, rows) {
		c = core.ColorButtonHot
	}
	dst.DrawBox(btn, c)
	dst.DrawTextCentered(btn.Y+1, restartLabel, c)

	dst.DrawTextCentered(panel.Bottom()-2, "R restart  Q quit", core.ColorHint)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextColored(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle, core.ColorHint)
}
