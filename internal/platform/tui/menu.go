package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
)

// MenuModel is the pack picker shown at start-up.
type MenuModel struct {
	packs          []levels.Pack
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	quitting       bool
	selected       int // pack index, -1 until chosen
	openScoreboard bool
}

// NewMenuModel creates a pack picker.
func NewMenuModel(packs []levels.Pack, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		packs:    packs,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		config:   cfg,
		selected: -1,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.packs)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.packs) > 0 {
			m.selected = m.cursor
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("N O D E   R U N N E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Description.Render("Select a level pack"), m.width))
	b.WriteString("\n\n")

	for i, p := range m.packs {
		cursor := "  "
		style := theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.ItemActive
		}
		line := style.Render(fmt.Sprintf("%s%s (%d)", cursor, p.Name, p.Len()))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.packs) > 0 {
		b.WriteString("\n")
		desc := m.packs[m.cursor].Description
		if a := m.packs[m.cursor].Author; a != "" {
			desc = fmt.Sprintf("%s  by %s", desc, a)
		}
		b.WriteString(centerText(theme.Description.Render(desc), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen pack index, or -1.
func (m MenuModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Pack            int // index into the packs, -1 if none
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the pack picker.
func RunMenu(packs []levels.Pack, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(packs, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Pack: -1, Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Pack: -1, Config: cfg, Quit: true}, nil
	}
	return menuResult(m), nil
}

func menuResult(m MenuModel) MenuResult {
	result := MenuResult{Pack: m.Selected(), Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() < 0:
		result.Quit = true
	}
	return result
}
