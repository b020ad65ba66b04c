package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/noderunner/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration the game would run with, after the config
file, the difficulty preset and --tick are applied. With --defaults prints
the built-in noderunner.yaml, a starting point for
~/.noderunner/configs/noderunner.yaml.

Examples:
  noderunner config --difficulty hard
  noderunner config --defaults > ~/.noderunner/configs/noderunner.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	addSessionFlags(configCmd)
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
