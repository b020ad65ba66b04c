package main

import (
	"fmt"

	"github.com/spf13/cobra"

	nrcore "github.com/vovakirdan/noderunner/internal/games/noderunner/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
)

var (
	flagPack     string
	flagLevel    int
	flagSlot     int
	flagContinue bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level pack",
	Long: `Start playing a level pack directly, skipping the menus.

Controls:
  Arrows/WASD   - Run and climb
  Z/Q, X/E      - Dig left, dig right
  Enter/Space   - Skip intro, next level
  F1            - Pause
  R/F2          - Restart level
  F5-F8         - Save to slot 1-4
  F9-F12        - Load slot 1-4
  Esc           - Back (autosaves)
  Ctrl+S        - Screenshot
  Ctrl+C        - Quit

Difficulty options:
  easy   - Slower guards, longer-lasting holes, one extra life
  normal - The values from the config file
  hard   - Faster guards, holes close sooner, at most three lives
  fixed  - The config file exactly as written

Examples:
  noderunner play
  noderunner play --pack classic --level 4
  noderunner play --difficulty hard
  noderunner play --slot 2
  noderunner play --continue
  noderunner play --config ./my-noderunner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addSessionFlags(playCmd)
	playCmd.Flags().StringVar(&flagPack, "pack", "", "Level pack name (default: the built-in pack)")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on, 1-based")
	playCmd.Flags().IntVar(&flagSlot, "slot", 0, "Resume save slot 1-4")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume the autosave")
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if flagSlot != 0 && (flagSlot < nrcore.FirstSlot || flagSlot > nrcore.LastSlot) {
		return fmt.Errorf("--slot must be between %d and %d", nrcore.FirstSlot, nrcore.LastSlot)
	}

	packs := loadPacks(s.cfg)
	saves := openSaves()

	run := gameRun{slot: flagSlot, cont: flagContinue}
	resumeSlot := flagSlot
	if resumeSlot == 0 && flagContinue {
		resumeSlot = nrcore.AutosaveSlot
	}

	pack, ok := levels.FindPack(packs, flagPack)
	if flagPack == "" && (flagSlot > 0 || flagContinue) {
		if saved, found := savedPack(packs, saves, resumeSlot); found {
			pack, ok = saved, true
		}
	}
	if !ok {
		return fmt.Errorf("unknown pack %q (run 'noderunner levels' to list packs)", flagPack)
	}
	if flagLevel < 1 || flagLevel > pack.Len() {
		return fmt.Errorf("--level must be between 1 and %d for %s", pack.Len(), pack.Name)
	}
	run.pack = pack
	run.startLevel = flagLevel - 1

	scores := openScores()
	if scores != nil {
		defer scores.Close()
	}

	outcome, err := playGame(s, run, scores, saves)
	if err != nil {
		return err
	}
	if outcome.State.GameOver {
		fmt.Printf("%s - final score %d, reached node %d\n", pack.Name, outcome.State.Score, outcome.State.Level)
	}
	return nil
}
