package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/registry"
)

// ScoreSaver records finished runs.
type ScoreSaver interface {
	SaveScore(pack string, level, score int) (int64, error)
}

// packNamer is implemented by games whose scores are grouped by level pack.
type packNamer interface {
	PackName() string
}

var screenshotKey = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot"))

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	scores     ScoreSaver
	config     core.RuntimeConfig
	keys       GameKeyMap
	input      *holdTracker
	now        func() time.Time
	gameState  core.GameState
	quitting   bool
	exited     bool
	scoreSaved bool // whether the score has been saved for this game over
	lastErr    error
	errs       []error
}

// NewModel creates a model for game. scores may be nil.
func NewModel(game registry.Game, scores ScoreSaver, cfg core.RuntimeConfig, keys GameKeyMap) Model {
	if cfg.Tick <= 0 {
		cfg.Tick = core.DefaultTick
	}
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores: scores,
		config: cfg,
		keys:   keys,
		input:  newHoldTracker(),
		now:    time.Now,
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records a key event for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, screenshotKey) {
		m.saveScreenshot()
		return m, nil
	}

	action, slot := m.keys.Lookup(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	m.input.Press(action, slot, m.now())
	return m, nil
}

// handleResize resizes the screen buffer. The game keeps running; it reads
// the new size from the screen on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick steps the game once.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input.Frame(m.now()))
	m.gameState = result.State

	if err := registry.LastErr(m.game); err != nil && err != m.lastErr {
		m.errs = append(m.errs, err)
	}
	m.lastErr = registry.LastErr(m.game)

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	} else if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	if result.Exit {
		m.exited = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.Tick)
}

func (m *Model) saveScore() {
	if m.scores == nil || m.gameState.Score <= 0 {
		return
	}
	pack := m.game.ID()
	if p, ok := m.game.(packNamer); ok {
		pack = p.PackName()
	}
	if _, err := m.scores.SaveScore(pack, m.gameState.Level, m.gameState.Score); err != nil {
		m.errs = append(m.errs, err)
	}
}

// saveScreenshot writes the current screen as text under
// ~/.noderunner/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.errs = append(m.errs, err)
		return
	}
	dir := filepath.Join(home, ".noderunner", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.errs = append(m.errs, err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.errs = append(m.errs, err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Outcome describes how a game run ended.
type Outcome struct {
	State  core.GameState
	Exited bool    // the game asked to return to the menu
	Quit   bool    // the player quit the program
	Errors []error // non-fatal errors seen during the run
}

// Outcome returns the run's result so far.
func (m Model) Outcome() Outcome {
	return Outcome{
		State:  m.gameState,
		Exited: m.exited,
		Quit:   m.quitting,
		Errors: m.errs,
	}
}

// Run plays game until it exits or the player quits.
func Run(game registry.Game, scores ScoreSaver, cfg core.RuntimeConfig, keys GameKeyMap) (Outcome, error) {
	p := tea.NewProgram(
		NewModel(game, scores, cfg, keys),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return Outcome{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Outcome{Quit: true}, nil
	}
	return m.Outcome(), nil
}
