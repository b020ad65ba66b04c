// Package noderunner provides the Node Runner game session.
//
// The simulation lives in the core subpackage. This package wraps it in a
// session: level progression, lives, pause, save slots and rendering.
package noderunner

import (
	"errors"
	"fmt"
	"sync"

	platformcore "github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
	"github.com/vovakirdan/noderunner/internal/registry"
)

// GameID is the registry and scoreboard identifier.
const GameID = "noderunner"

// Session timings in ticks.
const (
	introNameTicks   = 8
	introRowInterval = 2
	introTailTicks   = 4
	outroStepTicks   = 3
	dyingTicks       = 18

	gameOverTicks = 120
	slotMsgTicks  = 40
	restartTicks  = 30
)

const (
	msgPaused    = "PAUSED  [F1] Resume"
	msgRestarted = "Level Restarted"
	msgGameOver  = "CONNECTION LOST"
	msgSaveFail  = "Save failed!"
	msgLoadFail  = "Load failed!"
)

// SaveStore persists save slots. Slot 0 is the autosave.
type SaveStore interface {
	Save(slot int, data core.SaveData) error
	Load(slot int) (core.SaveData, error) // core.ErrNoSave when empty
	Delete(slot int) error
}

// Options configures a new session.
type Options struct {
	Pack       levels.Pack
	StartLevel int // zero-based
	Lives      int
	Speed      core.Speed
	Saves      SaveStore
	Continue   bool // resume the autosave
	Slot       int  // resume save slot 1-4, 0 for none
}

// DefaultOptions plays the built-in pack from the first level.
func DefaultOptions() Options {
	return Options{
		Pack:  levels.Builtin(),
		Lives: 5,
		Speed: core.DefaultSpeed(),
	}
}

var (
	optsMu      sync.Mutex
	currentOpts *Options
)

// SetOptions sets the options used by games created through the registry.
func SetOptions(opts Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	currentOpts = &opts
}

func registeredOptions() Options {
	optsMu.Lock()
	defer optsMu.Unlock()
	if currentOpts == nil {
		return DefaultOptions()
	}
	return *currentOpts
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New(registeredOptions())
	})
}

// Game is a Node Runner session.
type Game struct {
	opts  Options
	pack  levels.Pack
	world *core.World
	saves SaveStore

	camera  Camera
	screenW int
	screenH int

	paused   bool
	animTick int
	outroY   int // player row while climbing off the map
	exit     bool
	events   []core.Event
	err      error
}

// New creates a session. Call Reset before stepping it.
func New(opts Options) *Game {
	if opts.Pack.Len() == 0 {
		opts.Pack = levels.Builtin()
	}
	if opts.Lives <= 0 {
		opts.Lives = 5
	}
	if opts.Speed == (core.Speed{}) {
		opts.Speed = core.DefaultSpeed()
	}
	return &Game{
		opts:  opts,
		pack:  opts.Pack,
		saves: opts.Saves,
		world: core.NewWorld(opts.Speed),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Node Runner"
}

// Reset starts the session over: either a fresh game at the configured
// level or a resumed save.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.exit = false
	g.err = nil

	switch {
	case g.opts.Slot > 0 && g.resume(g.opts.Slot):
		g.world.SetMessage(fmt.Sprintf("Loaded Slot %d", g.opts.Slot), slotMsgTicks)
	case g.opts.Continue && g.resume(core.AutosaveSlot):
	default:
		g.newGame(g.opts.StartLevel)
	}
}

// resume loads a save slot and reports whether it worked.
func (g *Game) resume(slot int) bool {
	if g.saves == nil {
		return false
	}
	data, err := g.saves.Load(slot)
	if err != nil {
		if !errors.Is(err, core.ErrNoSave) {
			g.err = err
		}
		return false
	}
	return g.applySave(data)
}

func (g *Game) newGame(level int) {
	w := core.NewWorld(g.opts.Speed)
	w.Lives = g.opts.Lives
	g.world = w
	g.loadLevel(level)
}

// loadLevel starts level i of the pack, or ends the run past the last one.
func (g *Game) loadLevel(i int) {
	g.animTick = 0
	g.paused = false
	lvl, ok := g.pack.Level(i)
	if !ok {
		g.world.Phase = core.PhaseGameComplete
		return
	}
	data, err := lvl.Data()
	if err == nil {
		g.world.Level = i
		err = g.world.Load(data)
	}
	if err != nil {
		g.err = err
		g.world.Phase = core.PhaseGameComplete
		return
	}
	g.centerCamera()
}

// applySave restores score, lives and level, then the snapshot if any.
func (g *Game) applySave(data core.SaveData) bool {
	if _, ok := g.pack.Level(data.Level); !ok {
		g.err = fmt.Errorf("save for level %d, pack %q has %d", data.Level+1, g.pack.Name, g.pack.Len())
		return false
	}
	w := core.NewWorld(g.opts.Speed)
	w.Score = data.Score
	w.Lives = data.Lives
	if w.Lives <= 0 {
		w.Lives = g.opts.Lives
	}
	g.world = w
	g.loadLevel(data.Level)
	if data.Snapshot == nil {
		return true
	}
	if err := g.world.Restore(*data.Snapshot); err != nil {
		g.err = err
		return true
	}
	g.world.Phase = core.PhasePlaying
	g.world.SetMessage("", 0)
	g.centerCamera()
	return true
}

func (g *Game) saveData(level int, withSnapshot bool) core.SaveData {
	data := core.SaveData{
		Pack:  g.pack.Name,
		Level: level,
		Score: g.world.Score,
		Lives: g.world.Lives,
	}
	if withSnapshot {
		snap := g.world.Capture()
		data.Snapshot = &snap
	}
	return data
}

func (g *Game) autosave(level int, withSnapshot bool) {
	if g.saves == nil {
		return
	}
	if err := g.saves.Save(core.AutosaveSlot, g.saveData(level, withSnapshot)); err != nil {
		g.err = err
	}
}

func (g *Game) deleteAutosave() {
	if g.saves == nil {
		return
	}
	if err := g.saves.Delete(core.AutosaveSlot); err != nil {
		g.err = err
	}
}

func (g *Game) saveSlot(slot int, withSnapshot bool) {
	if g.saves == nil || slot < core.FirstSlot || slot > core.LastSlot {
		g.world.SetMessage(msgSaveFail, slotMsgTicks)
		return
	}
	level := g.world.Level
	if err := g.saves.Save(slot, g.saveData(level, withSnapshot)); err != nil {
		g.err = err
		g.world.SetMessage(msgSaveFail, slotMsgTicks)
		return
	}
	kind := "Level"
	if withSnapshot {
		kind = "Mid-game"
	}
	g.world.SetMessage(fmt.Sprintf("%s Saved Slot %d (Node %d)", kind, slot, level+1), slotMsgTicks)
}

func (g *Game) loadSlot(slot int) {
	if g.saves == nil || slot < core.FirstSlot || slot > core.LastSlot {
		g.world.SetMessage(msgLoadFail, slotMsgTicks)
		return
	}
	data, err := g.saves.Load(slot)
	switch {
	case errors.Is(err, core.ErrNoSave):
		g.world.SetMessage(fmt.Sprintf("Slot %d is empty", slot), slotMsgTicks)
		return
	case err != nil:
		g.err = err
		g.world.SetMessage(msgLoadFail, slotMsgTicks)
		return
	}
	if !g.applySave(data) {
		g.world.SetMessage(msgLoadFail, slotMsgTicks)
		return
	}
	kind := "Loaded"
	if data.Snapshot != nil {
		kind = "Resumed"
	}
	g.world.SetMessage(fmt.Sprintf("%s Slot %d", kind, slot), slotMsgTicks)
}

// Step handles session keys, then advances the current phase by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.exit = false
	g.events = g.events[:0]

	if !g.handleMeta(in) && !g.exit {
		g.advance(in)
	}

	var names []string
	if len(g.events) > 0 {
		names = make([]string, len(g.events))
		for i, e := range g.events {
			names[i] = e.Kind.String()
		}
	}
	return platformcore.StepResult{State: g.State(), Exit: g.exit, Events: names}
}

func (g *Game) inLevel() bool {
	switch g.world.Phase {
	case core.PhasePlaying, core.PhaseLevelReady, core.PhaseLevelIntro,
		core.PhaseLevelOutro, core.PhaseLevelComplete:
		return true
	}
	return false
}

// handleMeta reacts to session keys. It returns true when the key
// consumed the tick.
func (g *Game) handleMeta(in platformcore.InputFrame) bool {
	w := g.world

	if g.inLevel() || g.paused {
		if in.Has(platformcore.ActionPause) {
			g.paused = !g.paused
			if g.paused {
				w.SetMessage(msgPaused, 0)
			} else {
				w.SetMessage("", 0)
			}
			return true
		}

		if g.paused {
			switch {
			case in.Has(platformcore.ActionSave):
				g.saveSlot(in.Slot, true)
			case in.Has(platformcore.ActionLoad):
				g.paused = false
				g.loadSlot(in.Slot)
			case in.Has(platformcore.ActionBack):
				g.paused = false
				g.autosave(w.Level, true)
				g.exit = true
			default:
				return false
			}
			return true
		}

		switch {
		case in.Has(platformcore.ActionRestart):
			if w.Phase == core.PhasePlaying || w.Phase == core.PhaseLevelReady {
				w.RestartLevel()
				w.Phase = core.PhasePlaying
				w.SetMessage(msgRestarted, restartTicks)
			}
			return true
		case in.Has(platformcore.ActionSave):
			g.saveSlot(in.Slot, w.Phase == core.PhasePlaying)
			return true
		case in.Has(platformcore.ActionLoad):
			g.loadSlot(in.Slot)
			return true
		}
	}

	back := in.Has(platformcore.ActionBack)
	confirm := in.Has(platformcore.ActionConfirm)

	switch w.Phase {
	case core.PhaseLevelIntro:
		if confirm {
			w.Phase = core.PhaseLevelReady
			g.animTick = 0
		} else if back {
			g.autosave(w.Level, false)
			g.exit = true
		}
	case core.PhaseLevelReady:
		if confirm || in.AnyMovement() {
			w.Phase = core.PhasePlaying
			w.SetMessage("", 0)
		} else if back {
			g.autosave(w.Level, false)
			g.exit = true
		}
	case core.PhasePlaying:
		if back {
			g.autosave(w.Level, true)
			g.exit = true
		}
	case core.PhaseLevelOutro:
		if back {
			g.autosave(w.Level+1, false)
			g.exit = true
		}
	case core.PhaseLevelComplete:
		if confirm {
			next := w.Level + 1
			g.autosave(next, false)
			g.loadLevel(next)
			return true
		} else if back {
			g.autosave(w.Level+1, false)
			g.exit = true
		}
	case core.PhaseGameOver:
		if confirm {
			g.deleteAutosave()
			g.newGame(0)
			return true
		} else if back {
			g.deleteAutosave()
			g.exit = true
		}
	case core.PhaseGameComplete:
		if confirm || back {
			g.deleteAutosave()
			g.exit = true
		}
	}
	return false
}

// advance runs one tick of the current phase.
func (g *Game) advance(in platformcore.InputFrame) {
	w := g.world
	if g.paused {
		g.animTick++
		g.tickMessage()
		return
	}

	switch w.Phase {
	case core.PhasePlaying:
		g.events = append(g.events, w.Step(frameInput(in))...)
		switch w.Phase {
		case core.PhaseLevelOutro:
			g.animTick = 0
			g.outroY = w.Player.Y
		case core.PhaseDying:
			g.animTick = 0
		}
		return
	case core.PhaseLevelIntro:
		g.animTick++
		if g.animTick >= g.introTicks() {
			w.Phase = core.PhaseLevelReady
			g.animTick = 0
		}
	case core.PhaseLevelOutro:
		g.animTick++
		if g.animTick%outroStepTicks == 0 {
			g.outroY--
		}
		if g.outroY < -2 {
			w.Phase = core.PhaseLevelComplete
		}
	case core.PhaseDying:
		g.animTick++
		if g.animTick >= dyingTicks {
			g.loseLife()
		}
	default:
		g.animTick++
	}
	g.tickMessage()
}

func (g *Game) loseLife() {
	w := g.world
	if w.Lives > 0 {
		w.Lives--
	}
	g.animTick = 0
	if w.Lives == 0 {
		w.Phase = core.PhaseGameOver
		w.SetMessage(msgGameOver, gameOverTicks)
		return
	}
	w.RestartLevel()
	w.Phase = core.PhaseLevelReady
	g.centerCamera()
}

func (g *Game) tickMessage() {
	w := g.world
	if w.MessageTimer > 0 {
		w.MessageTimer--
		if w.MessageTimer == 0 {
			w.Message = ""
		}
	}
}

// introTicks is the length of the level reveal: the name, one row every
// two ticks from the bottom, then a short hold.
func (g *Game) introTicks() int {
	return introNameTicks + g.world.Height*introRowInterval + introTailTicks
}

// introRows returns how many rows the reveal currently shows.
func (g *Game) introRows() int {
	if g.animTick <= introNameTicks {
		return 0
	}
	return platformcore.Min((g.animTick-introNameTicks)/introRowInterval, g.world.Height)
}

// frameInput turns platform actions into simulation input. Direction keys
// count while held, with vertical taking priority; digs only on a press.
func frameInput(in platformcore.InputFrame) core.FrameInput {
	var fi core.FrameInput
	switch {
	case in.Active(platformcore.ActionUp):
		fi.Move = core.MoveUp
	case in.Active(platformcore.ActionDown):
		fi.Move = core.MoveDown
	case in.Active(platformcore.ActionLeft):
		fi.Move = core.MoveLeft
	case in.Active(platformcore.ActionRight):
		fi.Move = core.MoveRight
	}
	switch {
	case in.Has(platformcore.ActionDigLeft):
		fi.Dig = core.DigLeft
	case in.Has(platformcore.ActionDigRight):
		fi.Dig = core.DigRight
	}
	return fi
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	w := g.world
	return platformcore.GameState{
		Score:    w.Score,
		Lives:    w.Lives,
		Level:    w.Level + 1,
		Phase:    w.Phase.String(),
		GameOver: w.Phase == core.PhaseGameOver || w.Phase == core.PhaseGameComplete,
		Paused:   g.paused,
	}
}

// World exposes the simulation.
func (g *Game) World() *core.World { return g.world }

// Pack returns the level pack being played.
func (g *Game) Pack() levels.Pack { return g.pack }

// PackName groups this session's scores on the scoreboard.
func (g *Game) PackName() string { return g.pack.Name }

// Paused reports whether the session is paused.
func (g *Game) Paused() bool { return g.paused }

// Err returns the last storage or level error the session swallowed.
func (g *Game) Err() error { return g.err }
