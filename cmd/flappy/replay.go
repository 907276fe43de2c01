package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or verify a recorded run",
	Long: `Play a recorded run back from its seed, config and input log.

With --verify the run is re-simulated without a screen and the command
fails if the outcome differs from what was recorded.

Controls while watching:
  P      - Pause / resume
  Q/Esc  - Leave

Examples:
  flappy replay 7
  flappy replay 7 --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Re-simulate headless and check the recorded outcome")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	logger, closeLog, err := newLogger(!flagVerify)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	rec, err := loadRecording(store, id)
	store.Close()
	if err != nil {
		return fmt.Errorf("loading run %d: %w", id, err)
	}

	if flagVerify {
		res, err := replay.Verify(rec)
		if err != nil {
			logger.Error("replay diverged", "id", id, "seed", rec.Seed, "score", res.Score, "ticks", res.Ticks, "error", err)
			return fmt.Errorf("run %d: %w", id, err)
		}
		logger.Debug("replay verified", "id", id, "seed", rec.Seed, "state", res.State)
		fmt.Println(verifiedLine(id, rec, res))
		return nil
	}

	if err := tui.RunReplay(flappy.New(rec.Config), rec, tui.Options{Logger: logger}, runtimeConfig(rec.Config)); err != nil {
		return fmt.Errorf("replaying run: %w", err)
	}
	return nil
}

// verifiedLine summarizes a verified run, with its length in simulated
// seconds.
func verifiedLine(id int64, rec replay.Recording, res replay.Result) string {
	secs := flappy.FramesToMillis(float64(res.Ticks), float64(rec.Config.Timing.FPS)) / 1000
	return fmt.Sprintf("Run %d verified: score %d after %d ticks (%.1fs)", id, res.Score, res.Ticks, secs)
}
