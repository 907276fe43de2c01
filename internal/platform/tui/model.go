package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Options configure a game model.
type Options struct {
	Store    *storage.Store      // run journal; nil disables recording
	Logger   *log.Logger         // nil discards
	Player   string              // stored with each recorded run
	Config   config.FlappyConfig // simulation config snapshot stored with each run
	Embedded bool                // quitting returns to the caller instead of ending the program
}

// pointerAware is implemented by games that highlight controls under the mouse.
type pointerAware interface {
	SetPointer(x, y int)
	ClearPointer()
}

// Model is the Bubble Tea model for playing or watching a run.
type Model struct {
	game       core.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        uint64

	recorder *replay.Recorder
	saved    bool // current run is in the journal
	lastRun  int64

	playback       *replay.Player
	playbackPaused bool
	playbackTotal  int

	quitting bool
	done     bool
}

// NewModel creates a model that plays game and records each run.
func NewModel(game core.Game, opts Options, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gen:        nextTickGen(),
		recorder:   replay.NewRecorder(),
	}
}

// NewReplayModel creates a model that plays a recording back. game must
// have been built with rec.Config. Playback runs at the recorded frame rate
// whatever cfg.TickRate says.
func NewReplayModel(game core.Game, rec replay.Recording, opts Options, cfg core.RuntimeConfig) Model {
	cfg.Seed = rec.Seed
	if rec.Config.Timing.FPS > 0 {
		cfg.TickRate = rec.Config.Timing.FPS
	}
	opts.Store = nil
	m := NewModel(game, opts, cfg)
	m.playback = replay.NewPlayer(rec.Log)
	m.playbackTotal = rec.Log.Ticks
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("run started", "seed", m.config.Seed, "replay", m.playback != nil)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.done || m.quitting {
			return m, nil
		}
		if m.playback != nil {
			return m.handlePlaybackTick()
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the action for a key. Actions are applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsKill(msg) {
		if m.playback == nil && !m.gameState.GameOver {
			m.stepQuit()
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.playback != nil {
		switch m.keys.MapKey(msg, false) {
		case core.ActionQuit:
			return m.leave()
		case core.ActionPause:
			m.playbackPaused = !m.playbackPaused
		}
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, m.gameState.GameOver, &m.inputFrame)
	return m, nil
}

// handleMouse tracks hover and maps clicks.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if p, ok := m.game.(pointerAware); ok {
		p.SetPointer(msg.X, msg.Y)
	}
	if m.playback != nil {
		return m, nil
	}

	btn := m.game.RestartButton(m.screen.Width(), m.screen.Height())
	m.inputFrame.Set(m.keys.MapMouse(msg, m.gameState.GameOver, btn))
	return m, nil
}

// handleTick drains the queued input into one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.inputFrame.Clone()
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		switch {
		case in.Has(core.ActionQuit):
			return m.leave()
		case in.Has(core.ActionRestart):
			m.restart()
		}
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	m.recorder.Record(in)
	result := m.game.Step(in)
	m.gameState = result.State

	if result.Quit {
		m.finishRun(true)
		return m.leave()
	}
	if m.gameState.GameOver {
		m.finishRun(false)
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// handlePlaybackTick feeds the next recorded tick to the game.
func (m Model) handlePlaybackTick() (tea.Model, tea.Cmd) {
	if !m.playbackPaused && !m.playback.Done() && !m.gameState.GameOver {
		result := m.game.Step(m.playback.Next())
		m.gameState = result.State
		if result.Quit {
			// The recorded quit ends the playback; stay on the last frame.
			for !m.playback.Done() {
				m.playback.Next()
			}
		}
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

// stepQuit feeds a quit into the simulation so the recorded log ends the
// same way the run did.
func (m *Model) stepQuit() {
	in := core.NewInputFrame(core.ActionQuit)
	m.recorder.Record(in)
	m.gameState = m.game.Step(in).State
	m.finishRun(true)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.recorder.Reset()
	m.saved = false
	if p, ok := m.game.(pointerAware); ok {
		p.ClearPointer()
	}
	m.logger.Debug("run restarted", "seed", m.config.Seed)
}

// finishRun writes the current run to the journal once.
func (m *Model) finishRun(quit bool) {
	if m.saved || m.recorder.Ticks() == 0 {
		return
	}
	m.saved = true

	m.logger.Info("run finished",
		"score", m.gameState.Score,
		"frames", m.gameState.Frame,
		"ticks", m.recorder.Ticks(),
		"quit", quit,
	)

	if m.opts.Store == nil {
		return
	}

	rec := replay.Recording{
		Seed:   m.config.Seed,
		Config: m.opts.Config,
		Log:    m.recorder.Log(),
		Score:  m.gameState.Score,
		Quit:   quit,
	}
	row, err := rec.Stored(m.game.ID(), m.opts.Player)
	if err != nil {
		m.logger.Error("cannot encode run", "error", err)
		return
	}
	id, err := m.opts.Store.SaveRun(row)
	if err != nil {
		m.logger.Error("cannot save run", "error", err)
		return
	}
	m.lastRun = id
	m.logger.Info("run recorded", "id", id, "player", m.opts.Player)
}

// leave ends the model: back to the caller when embedded, otherwise quit.
func (m Model) leave() (tea.Model, tea.Cmd) {
	if m.opts.Embedded {
		m.done = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.playback != nil {
		m.drawPlaybackStatus()
	}
	return RenderScreen(m.screen)
}

// drawPlaybackStatus writes the replay progress on the bottom row.
func (m Model) drawPlaybackStatus() {
	status := fmt.Sprintf(" REPLAY  tick %d/%d ", m.playback.Tick(), m.playbackTotal)
	switch {
	case m.playback.Done() || m.gameState.GameOver:
		status += " finished  q: back "
	case m.playbackPaused:
		status += " paused  p: resume  q: back "
	default:
		status += " p: pause  q: back "
	}
	m.screen.DrawTextColored(0, m.screen.Height()-1, status, core.ColorBrightCyan)
}

// IsQuitting returns true if the program should exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Done returns true if an embedded model wants to return to its caller.
func (m Model) Done() bool {
	return m.done
}

// LastRunID returns the journal id of the most recently recorded run, or 0.
func (m Model) LastRunID() int64 {
	return m.lastRun
}

// Run starts the Bubble Tea program for a live game.
func Run(game core.Game, opts Options, cfg core.RuntimeConfig) error {
	opts.Embedded = false
	return runProgram(NewModel(game, opts, cfg))
}

// RunReplay starts the Bubble Tea program for watching a recording.
func RunReplay(game core.Game, rec replay.Recording, opts Options, cfg core.RuntimeConfig) error {
	opts.Embedded = false
	return runProgram(NewReplayModel(game, rec, opts, cfg))
}

func runProgram(model tea.Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Hover and clicks on the restart button
	)

	_, err := p.Run()
	return err
}
