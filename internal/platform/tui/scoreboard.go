package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	boardRows          = 100
)

// ScoreReader is the read side of the score store.
type ScoreReader interface {
	TopScores(pack string, limit int) ([]storage.ScoreEntry, error)
	GetPackStats(pack string) (*storage.PackStats, error)
}

type boardKeys struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Back, Quit key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next pack")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev pack")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// packBoard is what the scoreboard shows for the selected pack.
type packBoard struct {
	scores []storage.ScoreEntry
	stats  *storage.PackStats
	err    error
}

// ScoreboardModel browses the best runs of each level pack.
type ScoreboardModel struct {
	store      ScoreReader
	packs      []string
	packCursor int
	board      packBoard
	table      table.Model
	help       help.Model
	keys       boardKeys
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard over the named packs.
func NewScoreboardModel(store ScoreReader, packs []string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		packs:  packs,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool { return m.width >= minWidthForSidebar }

func (m *ScoreboardModel) newTable() table.Model {
	dateW := 12
	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	if avail > 46 {
		dateW = core.Min(avail-28, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Node", Width: 5},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		// title, stats line, help and borders
		table.WithHeight(core.Max(m.height-10, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = theme.ItemActive
	t.SetStyles(st)
	return t
}

func (m *ScoreboardModel) reload() {
	m.board = packBoard{}
	if m.store != nil && len(m.packs) > 0 {
		pack := m.packs[m.packCursor]
		m.board.scores, m.board.err = m.store.TopScores(pack, boardRows)
		if m.board.err == nil && len(m.board.scores) > 0 {
			// a missing summary only hides the stats line
			m.board.stats, _ = m.store.GetPackStats(pack)
		}
	}

	rows := make([]table.Row, len(m.board.scores))
	for i, s := range m.board.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Level),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) selectPack(delta int) {
	n := len(m.packs)
	if n == 0 {
		return
	}
	m.packCursor = ((m.packCursor+delta)%n + n) % n
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectPack(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectPack(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.packs) > 0 {
		title += " - " + m.packs[m.packCursor]
	}

	var b strings.Builder
	b.WriteString(centerText(theme.Title.Render(title), m.width))
	b.WriteString("\n\n")
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", m.panel()))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.panel(), m.width))
	}
	b.WriteString("\n")
	b.WriteString(theme.Controls.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Packs"))
	b.WriteString("\n")
	for i, name := range m.packs {
		name = truncate(name, sidebarWidth-6)
		if i == m.packCursor {
			b.WriteString(theme.ItemActive.Render("▸ " + name))
		} else {
			b.WriteString(theme.ItemNormal.Render("  " + name))
		}
		b.WriteString("\n")
	}
	return theme.Border.Width(sidebarWidth).Render(b.String())
}

func (m ScoreboardModel) tabs() string {
	if len(m.packs) == 0 {
		return ""
	}
	parts := make([]string, len(m.packs))
	for i, name := range m.packs {
		name = truncate(name, 10)
		if i == m.packCursor {
			parts[i] = theme.ItemActive.Render("[" + name + "]")
		} else {
			parts[i] = theme.Description.Render(" " + name + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = "◂ " + m.packs[m.packCursor] + " ▸"
	}
	return line
}

func (m ScoreboardModel) panel() string {
	var body string
	switch {
	case m.board.err != nil:
		body = theme.Warning.Padding(2, 4).Render("Could not load scores:\n" + m.board.err.Error())
	case len(m.board.scores) == 0:
		body = theme.Description.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nFinish a run to set a high score!")
	default:
		body = m.table.View()
		if st := m.board.stats; st != nil {
			body += "\n" + theme.Description.Render(fmt.Sprintf(
				"Best %d  Runs %d  Avg %.0f  Furthest node %d",
				st.HighScore, st.GamesCount, st.AvgScore, st.BestLevel))
		}
	}
	return theme.Border.Render(body)
}

// truncate shortens s to max runes, marking the cut with a dot.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 2 {
		return s
	}
	return string(r[:max-1]) + "."
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the user asked to leave the program.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard shows the scoreboard and reports whether the user went
// back to the menu rather than quitting.
func RunScoreboard(store ScoreReader, packs []string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, packs, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
