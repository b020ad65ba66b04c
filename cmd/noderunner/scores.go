package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/noderunner/internal/config"
	"github.com/vovakirdan/noderunner/internal/platform/tui"
	"github.com/vovakirdan/noderunner/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show high scores",
	Long: `Without an argument, shows a summary of every pack played.
With a pack name, shows that pack's best runs.

Examples:
  noderunner scores
  noderunner scores "Built-in Levels"
  noderunner scores --tui
  noderunner --db postgres://user@localhost/noderunner scores`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores of the given pack")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresTUI {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		_, err = tui.RunScoreboard(store, packNames(loadPacks(cfg)), width, height)
		return err
	}

	if len(args) == 0 {
		if flagScoresClear {
			return fmt.Errorf("--clear needs a pack name")
		}
		return printPackSummary(store)
	}

	pack := args[0]
	if flagScoresClear {
		if err := store.ClearScores(pack); err != nil {
			return err
		}
		logger.Info("scores cleared", "pack", pack)
		return nil
	}

	scores, err := store.TopScores(pack, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", pack)
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-4s  %s\n", "Rank", "Score", "Node", "Date")
	fmt.Printf("  %-4s  %-10s  %-4s  %s\n", "----", "-----", "----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-4d  %s\n", i+1, entry.Score, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetPackStats(pack)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f  Furthest node: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
	return nil
}

func printPackSummary(store *storage.Store) error {
	all, err := store.GetAllPackStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  %-28s  %5s  %8s  %5s  %s\n", "Pack", "Runs", "Best", "Node", "Last played")
	for _, name := range names {
		st := all[name]
		fmt.Printf("  %-28s  %5d  %8d  %5d  %s\n", name, st.GamesCount, st.HighScore, st.BestLevel, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
