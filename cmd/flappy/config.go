package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the search order
(--config, ~/.flappy/configs/flappy.yaml, ./configs/flappy.yaml, built-in
defaults) and --fps have been applied. The output is valid YAML and can be
saved as a starting point for a custom config.

Examples:
  flappy config
  flappy config --defaults > ~/.flappy/configs/flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(speedNote(cfg))
	_, err = os.Stdout.Write(data)
	return err
}

// speedNote is a YAML comment telling when the pipes stop speeding up.
func speedNote(cfg config.FlappyConfig) string {
	switch at := cfg.Speed().CappedAt(); at {
	case -1:
		return "# pipe speed stays below speed_cap at every score\n"
	case 0:
		return "# pipes start at speed_cap\n"
	default:
		return fmt.Sprintf("# pipes reach speed_cap at score %d\n", at)
	}
}
