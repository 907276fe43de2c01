package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends, you return to the menu to play again.
"Recorded runs" lists your runs; Enter replays one, d deletes it.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	player := localPlayer()
	runtime := runtimeConfig(cfg)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(player, runtime)
		if err != nil {
			return fmt.Errorf("running menu: %w", err)
		}
		runtime = menuResult.Config

		switch menuResult.Choice {
		case tui.MenuChoicePlay:
			err := tui.Run(flappy.New(cfg), tui.Options{
				Store:  store,
				Logger: logger,
				Player: player,
				Config: cfg,
			}, runtime)
			if err != nil {
				logger.Error("game failed", "error", err)
			}
			// --seed applies to the first run only
			runtime.Seed = 0

		case tui.MenuChoiceRuns:
			if !browseRuns(store, player, runtime, logger) {
				return nil
			}

		default:
			return nil
		}
	}
}

// browseRuns shows the run browser and plays replays until the user goes
// back to the menu. Returns false when the user quit.
func browseRuns(store *storage.Store, player string, runtime core.RuntimeConfig, logger *log.Logger) bool {
	for {
		res, err := tui.RunRunsBrowser(store, player, runtime.ScreenW, runtime.ScreenH)
		if err != nil {
			logger.Error("run browser failed", "error", err)
			return false
		}

		switch {
		case res.Quit:
			return false
		case res.ReplayID == 0:
			return true
		}

		rec, err := loadRecording(store, res.ReplayID)
		if err != nil {
			logger.Warn("cannot replay run", "id", res.ReplayID, "error", err)
			continue
		}
		if err := tui.RunReplay(flappy.New(rec.Config), rec, tui.Options{Logger: logger}, runtime); err != nil {
			logger.Error("replay failed", "error", err)
		}
	}
}

// loadRecording reads and decodes a run from the journal.
func loadRecording(store *storage.Store, id int64) (replay.Recording, error) {
	if store == nil {
		return replay.Recording{}, storage.ErrRunNotFound
	}
	row, err := store.Run(id)
	if err != nil {
		return replay.Recording{}, err
	}
	return replay.FromStored(row)
}
