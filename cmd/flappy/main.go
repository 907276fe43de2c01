// flappy is a Flappy Bird game for the terminal with recorded, replayable runs.
//
// Usage:
//
//	flappy play              - Play a run
//	flappy menu              - Title menu: play, browse and replay runs
//	flappy runs              - List recorded runs
//	flappy replay <id>       - Watch or verify a recorded run
//	flappy config            - Print the effective configuration
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Override the simulation tick rate
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set run journal path (default: ~/.flappy/runs.db)
//	--config <path>     - Load a custom config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file while the TUI is active
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - fly between the pipes in your terminal",
	Long: `Flappy is a terminal Flappy Bird. Every run is recorded with its seed
and input so it can be watched again or verified later.

Available commands:
  play     - Play a run directly
  menu     - Title menu with recorded runs
  runs     - List or delete recorded runs
  replay   - Watch or verify a recorded run
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  flappy play
  flappy play --seed 42
  flappy menu
  flappy replay 7 --verify
  flappy serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/runs.db", "Path to run journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive commands")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
