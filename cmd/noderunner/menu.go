package main

import (
	"github.com/spf13/cobra"

	nrcore "github.com/vovakirdan/noderunner/internal/games/noderunner/core"
	"github.com/vovakirdan/noderunner/internal/platform/tui"
)

// runMenu is the interactive loop: pack menu, level selector, game, and
// back to the menu when the game exits.
func runMenu(_ *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	packs := loadPacks(s.cfg)
	saves := openSaves()
	scores := openScores()
	if scores != nil {
		defer scores.Close()
	}

	cfg := s.runtime
	for {
		menuResult, err := tui.RunMenu(packs, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config
		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			var reader tui.ScoreReader
			if scores != nil {
				reader = scores
			}
			goBack, err := tui.RunScoreboard(reader, packNames(packs), cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		pack := packs[menuResult.Pack]
		saved, hasAutosave := savedPack(packs, saves, nrcore.AutosaveSlot)
		canContinue := hasAutosave && saved.Name == pack.Name

		sel, quit, err := tui.RunLevelSelector(pack, canContinue, cfg)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if sel == nil {
			continue
		}

		s.runtime = cfg
		outcome, err := playGame(s, gameRun{pack: pack, startLevel: sel.Level, cont: sel.Continue}, scores, saves)
		if err != nil {
			return err
		}
		if outcome.Quit {
			return nil
		}
	}
}
