// noderunner is a terminal Lode Runner: dig holes, trap guards, mine every
// token and climb out.
//
// Usage:
//
//	noderunner                  - Pack and level menu
//	noderunner play             - Play a pack directly
//	noderunner levels [pack]    - List packs or the levels of a pack
//	noderunner validate <file>  - Check level and pack files
//	noderunner scores [pack]    - Show high scores
//	noderunner saves            - List save slots
//	noderunner config           - Print the effective configuration
//
// Global flags:
//
//	--db <path|dsn>  - Scores database (default: ~/.noderunner/scores.db)
//	--tick <ms>      - Override the tick length
//	--levels <dir>   - Extra level directory
//	--debug          - Verbose logging
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the game
	_ "github.com/vovakirdan/noderunner/internal/games/noderunner"
)

var (
	// Global flags
	flagDBPath    string
	flagTickMs    int
	flagLevelsDir string
	flagDebug     bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "noderunner",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "noderunner",
	Short: "Node Runner - a Lode Runner for the terminal",
	Long: `Node Runner is a tick-based Lode Runner played in the terminal.
Collect every token, dodge or bury the guards, then escape through the top.

Without a subcommand the pack and level menu starts.

Examples:
  noderunner
  noderunner play --level 3 --difficulty easy
  noderunner levels
  noderunner scores "Built-in Levels"
  noderunner --db postgres://localhost/noderunner scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			logger.SetLevel(log.DebugLevel)
			logger.SetReportCaller(true)
		}
	},
	RunE: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.noderunner/scores.db", "Scores database path, or a postgres:// DSN")
	rootCmd.PersistentFlags().IntVar(&flagTickMs, "tick", 0, "Tick length in milliseconds (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra levels and .nlp packs")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	addSessionFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(configCmd)
}
