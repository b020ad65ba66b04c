package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
)

// LevelSelection is the player's choice in the level selector.
type LevelSelection struct {
	Level    int  // zero-based start level
	Continue bool // resume the autosave instead
}

// LevelSelectModel lists the levels of one pack. The first entries are
// "Continue" (when an autosave exists) and "Start from Beginning".
type LevelSelectModel struct {
	pack         levels.Pack
	canContinue  bool
	cursor       int
	width        int
	height       int
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
}

// NewLevelSelectModel creates a level selector for pack.
func NewLevelSelectModel(pack levels.Pack, canContinue bool, width, height int) LevelSelectModel {
	return LevelSelectModel{
		pack:        pack,
		canContinue: canContinue,
		width:       width,
		height:      height,
		choosing:    true,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

// headerItems is the number of entries above the level list.
func (m LevelSelectModel) headerItems() int {
	if m.canContinue {
		return 2
	}
	return 1
}

func (m LevelSelectModel) itemCount() int {
	return m.headerItems() + m.pack.Len()
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = m.selectionAt(m.cursor)
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelSelectModel) selectionAt(i int) LevelSelection {
	if m.canContinue && i == 0 {
		return LevelSelection{Continue: true}
	}
	lvl := i - m.headerItems()
	if lvl < 0 {
		lvl = 0
	}
	return LevelSelection{Level: lvl}
}

func (m LevelSelectModel) visibleItems() int {
	return core.Max(m.height-10, 3)
}

// updateScroll keeps the cursor visible.
func (m *LevelSelectModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

func (m LevelSelectModel) itemLabel(i int) string {
	switch {
	case m.canContinue && i == 0:
		return "Continue"
	case i == m.headerItems()-1:
		return "Start from Beginning"
	}
	lvl := i - m.headerItems()
	return fmt.Sprintf("%2d. %s", lvl+1, m.pack.Levels[lvl].Name)
}

// View renders the level selection.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render(m.pack.Name), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Description.Render("Select a node:"), m.width))
	b.WriteString("\n\n")

	end := core.Min(m.scrollOffset+m.visibleItems(), m.itemCount())
	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.ItemActive
		}
		b.WriteString(centerText(style.Render(cursor+m.itemLabel(i)), m.width))
		b.WriteString("\n")
	}
	if end < m.itemCount() {
		b.WriteString(centerText(theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelSelectModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector shows the levels of pack. A nil selection means the
// player backed out; quit reports a request to leave the program.
func RunLevelSelector(pack levels.Pack, canContinue bool, cfg core.RuntimeConfig) (sel *LevelSelection, quit bool, err error) {
	p := tea.NewProgram(
		NewLevelSelectModel(pack, canContinue, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	m, ok := final.(LevelSelectModel)
	if !ok {
		return nil, true, nil
	}
	if m.IsQuitting() {
		return nil, true, nil
	}
	if m.WantsBack() {
		return nil, false, nil
	}
	return m.Selected(), false, nil
}
