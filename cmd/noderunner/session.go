package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/noderunner/internal/config"
	"github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner"
	nrcore "github.com/vovakirdan/noderunner/internal/games/noderunner/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
	"github.com/vovakirdan/noderunner/internal/platform/tui"
	"github.com/vovakirdan/noderunner/internal/registry"
	"github.com/vovakirdan/noderunner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

// addSessionFlags adds the flags shared by every command that starts a game.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom noderunner.yaml")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// settings is everything a game session needs, resolved from config
// files and flags.
type settings struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	keys    tui.GameKeyMap
}

func loadSettings() (settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return settings{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagTickMs > 0 {
		cfg.Speed.TickMs = flagTickMs
	}
	logger.Debug("config loaded", "tick", cfg.Tick(), "difficulty", preset, "lives", cfg.General.StartLives)

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return settings{
		cfg: cfg,
		runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Tick:    cfg.Tick(),
		},
		keys: tui.NewGameKeyMap(cfg.Keys.DigLeft, cfg.Keys.DigRight),
	}, nil
}

// levelsDir picks the level directory: flag, then config, then ./levels.
func levelsDir(cfg config.Config) string {
	switch {
	case flagLevelsDir != "":
		return flagLevelsDir
	case cfg.General.LevelsDir != "":
		return cfg.General.LevelsDir
	default:
		return "levels"
	}
}

// loadPacks returns the built-in pack plus whatever the level directory
// holds. Directory errors are logged and only the built-in pack is kept.
func loadPacks(cfg config.Config) []levels.Pack {
	dir := levelsDir(cfg)
	packs, err := levels.NewLoader(dir, logger).Packs()
	if err != nil {
		logger.Warn("could not read level directory", "dir", dir, "error", err)
	}
	if len(packs) == 0 {
		packs = []levels.Pack{levels.Builtin()}
	}
	logger.Debug("packs loaded", "dir", dir, "count", len(packs))
	return packs
}

func packNames(packs []levels.Pack) []string {
	names := make([]string, len(packs))
	for i := range packs {
		names[i] = packs[i].Name
	}
	return names
}

// openScores opens the scoreboard. Failure is logged and play continues
// without it.
func openScores() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

// openSaves opens the save slots. Failure is logged and play continues
// without saving.
func openSaves() *storage.Saves {
	saves, err := storage.OpenSaves(storage.AppName)
	if err != nil {
		logger.Warn("could not open save data", "error", err)
		return nil
	}
	return saves
}

// savedPack returns the pack a save slot was made in.
func savedPack(packs []levels.Pack, saves *storage.Saves, slot int) (levels.Pack, bool) {
	if saves == nil {
		return levels.Pack{}, false
	}
	data, err := saves.Load(slot)
	if err != nil {
		if !errors.Is(err, nrcore.ErrNoSave) {
			logger.Warn("could not read save slot", "slot", slot, "error", err)
		}
		return levels.Pack{}, false
	}
	return levels.FindPack(packs, data.Pack)
}

// gameRun describes one session to start.
type gameRun struct {
	pack       levels.Pack
	startLevel int // zero-based
	cont       bool
	slot       int
}

// playGame runs one session and logs what it reports.
func playGame(s settings, run gameRun, scores *storage.Store, saves *storage.Saves) (tui.Outcome, error) {
	opts := noderunner.Options{
		Pack:       run.pack,
		StartLevel: run.startLevel,
		Lives:      s.cfg.General.StartLives,
		Speed:      s.cfg.ToSpeed(),
		Continue:   run.cont,
		Slot:       run.slot,
	}
	if saves != nil {
		opts.Saves = saves
	}
	noderunner.SetOptions(opts)

	game, err := registry.Create(noderunner.GameID)
	if err != nil {
		return tui.Outcome{}, err
	}

	logger.Debug("starting game", "pack", run.pack.Name, "level", run.startLevel+1, "continue", run.cont, "slot", run.slot)
	started := time.Now()

	var scoreSaver tui.ScoreSaver
	if scores != nil {
		scoreSaver = scores
	}
	outcome, err := tui.Run(game, scoreSaver, s.runtime, s.keys)
	if err != nil {
		return outcome, fmt.Errorf("running game: %w", err)
	}
	for _, e := range outcome.Errors {
		logger.Warn("game reported an error", "error", e)
	}
	logger.Debug("game ended",
		"score", outcome.State.Score,
		"level", outcome.State.Level,
		"phase", outcome.State.Phase,
		"duration", time.Since(started).Round(time.Second),
	)
	return outcome, nil
}
