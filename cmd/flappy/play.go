package main

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start playing immediately.

Controls:
  Space/Up/W/Enter  - Flap (mouse click too)
  P                 - Pause
  R                 - Restart (after game over, or click the button)
  Q/Esc/Ctrl+C      - Quit

Examples:
  flappy play
  flappy play --seed 42
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err = tui.Run(flappy.New(cfg), tui.Options{
		Store:  store,
		Logger: logger,
		Player: localPlayer(),
		Config: cfg,
	}, runtimeConfig(cfg))
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// localPlayer names the player recorded with local runs.
func localPlayer() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
