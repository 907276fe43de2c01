package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// newLogger builds the command logger. Interactive commands own the
// terminal, so they log to --log-file or nowhere; headless commands log to
// stderr. The returned func closes the log file.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the simulation config and applies the --fps override.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	if flagFPS > 0 {
		cfg.Timing.FPS = flagFPS
		if err := cfg.Validate(); err != nil {
			return config.FlappyConfig{}, err
		}
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal and paces the clock at
// the simulation's frame rate.
func runtimeConfig(cfg config.FlappyConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Timing.FPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run journal. Interactive commands keep working
// without one, so failures are only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
