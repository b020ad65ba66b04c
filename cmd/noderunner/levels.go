package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noderunner/internal/config"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [pack]",
	Short: "List level packs, or the levels of one pack",
	Long: `Without an argument, lists every pack: the built-in pack, the loose
level files of the level directory, and each .nlp pack inside it.
With a pack name, lists that pack's levels.

Examples:
  noderunner levels
  noderunner levels "Built-in Levels"
  noderunner --levels ./mylevels levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	packs := loadPacks(cfg)

	if len(args) == 0 {
		maxName := 4 // "Pack" header
		for _, p := range packs {
			maxName = max(maxName, len(p.Name))
		}
		fmt.Println("Level packs:")
		fmt.Println()
		fmt.Printf("  %-*s  %6s  %s\n", maxName, "Pack", "Levels", "Description")
		fmt.Printf("  %-*s  %6s  %s\n", maxName, "----", "------", "-----------")
		for _, p := range packs {
			fmt.Printf("  %-*s  %6d  %s\n", maxName, p.Name, p.Len(), p.Description)
		}
		fmt.Println()
		fmt.Println("Run 'noderunner play --pack <name>' to play a pack.")
		return nil
	}

	pack, ok := levels.FindPack(packs, args[0])
	if !ok {
		return fmt.Errorf("unknown pack %q", args[0])
	}
	fmt.Printf("%s", pack.Name)
	if pack.Author != "" {
		fmt.Printf(" by %s", pack.Author)
	}
	fmt.Println()
	fmt.Println()
	for i := range pack.Levels {
		lvl := &pack.Levels[i]
		fmt.Printf("  %3d  %-32s  %2dx%-2d  gold %d  guards %d\n",
			i+1, lvl.Name, lvl.Width(), lvl.Height(),
			lvl.Count(levels.GlyphGold), lvl.Count(levels.GlyphGuard))
	}
	return nil
}
