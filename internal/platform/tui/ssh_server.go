package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.flappy/host_key.
	HostKeyPath string

	// DBPath is the path to the run journal.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Game is the simulation config shared by all sessions.
	Game config.FlappyConfig

	// Logger receives server and session events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.flappy/runs.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultFlappyConfig(),
	}
}

// SSHServer wraps a Wish SSH server for remote play.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "flappy-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run journal", "error", err)
		// Continue without recording
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".flappy", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	runtime := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(SessionOptions{
		Store:  s.store,
		Logger: s.logger.With("user", sshSession.User()),
		Player: sshSession.User(),
		Game:   s.config.Game,
	}, runtime)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRuns
	viewReplay
)

// SessionOptions configure a session.
type SessionOptions struct {
	Store  *storage.Store
	Logger *log.Logger
	Player string
	Game   config.FlappyConfig
}

// SessionModel manages the full session flow inside one program:
// menu -> game -> menu and menu -> runs -> replay -> runs.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts    SessionOptions
	runtime core.RuntimeConfig
	view    sessionView
	menu    MenuModel
	runs    RunsModel
	game    *Model
	quit    bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, runtime core.RuntimeConfig) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:    opts,
		runtime: runtime,
		menu:    NewMenuModel(opts.Player, runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame, viewReplay:
		return m.updateGame(msg)
	case viewRuns:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quit = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case MenuChoicePlay:
		g := NewModel(flappy.New(m.opts.Game), m.modelOptions(), m.runtime)
		return m.enterGame(g, viewGame)

	case MenuChoiceRuns:
		m.runs = NewRunsModel(m.opts.Store, m.opts.Player, m.runtime.ScreenW, m.runtime.ScreenH)
		m.view = viewRuns
		return m, m.runs.Init()
	}

	return m, cmd
}

// updateRuns handles updates when browsing recorded runs.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newRuns, cmd := m.runs.Update(msg)
	if runsModel, ok := newRuns.(RunsModel); ok {
		m.runs = runsModel
	}

	switch {
	case m.runs.IsQuitting():
		m.quit = true
		return m, tea.Quit

	case m.runs.IsGoingBack():
		return m.backToMenu()

	case m.runs.ReplayID() != 0:
		id := m.runs.ReplayID()
		rec, err := m.loadRecording(id)
		if err != nil {
			m.opts.Logger.Warn("cannot replay run", "id", id, "error", err)
			m.runs = NewRunsModel(m.opts.Store, m.opts.Player, m.runtime.ScreenW, m.runtime.ScreenH)
			return m, nil
		}
		m.opts.Logger.Info("replaying run", "id", id)
		g := NewReplayModel(flappy.New(rec.Config), rec, m.modelOptions(), m.runtime)
		return m.enterGame(g, viewReplay)
	}

	return m, cmd
}

// updateGame handles updates while playing or watching a replay.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quit = true
		return m, tea.Quit
	}

	if m.game.Done() {
		from := m.view
		m.game = nil
		if from == viewReplay {
			m.runs = NewRunsModel(m.opts.Store, m.opts.Player, m.runtime.ScreenW, m.runtime.ScreenH)
			m.view = viewRuns
			return m, nil
		}
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) enterGame(g Model, view sessionView) (tea.Model, tea.Cmd) {
	m.game = &g
	m.view = view
	return m, m.game.Init()
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.opts.Player, m.runtime)
	return m, m.menu.Init()
}

func (m SessionModel) modelOptions() Options {
	return Options{
		Store:    m.opts.Store,
		Logger:   m.opts.Logger,
		Player:   m.opts.Player,
		Config:   m.opts.Game,
		Embedded: true,
	}
}

// loadRecording reads a run from the journal and decodes it.
func (m SessionModel) loadRecording(id int64) (replay.Recording, error) {
	if m.opts.Store == nil {
		return replay.Recording{}, storage.ErrRunNotFound
	}
	row, err := m.opts.Store.Run(id)
	if err != nil {
		return replay.Recording{}, err
	}
	return replay.FromStored(row)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quit {
		return ""
	}

	switch m.view {
	case viewGame, viewReplay:
		return m.game.View()
	case viewRuns:
		return m.runs.View()
	}
	return m.menu.View()
}

// IsQuitting returns true if the session has ended.
func (m SessionModel) IsQuitting() bool {
	return m.quit
}
