package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/noderunner/internal/core"
)

// GameKeyMap binds keys to game actions.
type GameKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	DigLeft  key.Binding
	DigRight key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Save     key.Binding
	Load     key.Binding
	Quit     key.Binding
}

// saveKeys and loadKeys are indexed by slot - 1.
var (
	saveKeys = []string{"f5", "f6", "f7", "f8"}
	loadKeys = []string{"f9", "f10", "f11", "f12"}
)

// NewGameKeyMap returns the default bindings plus any extra dig keys.
func NewGameKeyMap(extraDigLeft, extraDigRight []string) GameKeyMap {
	return GameKeyMap{
		Left:     key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Up:       key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "climb")),
		Down:     key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "descend")),
		DigLeft:  key.NewBinding(key.WithKeys(mergeKeys([]string{"z", "q"}, extraDigLeft)...), key.WithHelp("z/q", "dig left")),
		DigRight: key.NewBinding(key.WithKeys(mergeKeys([]string{"x", "e"}, extraDigRight)...), key.WithHelp("x/e", "dig right")),
		Confirm:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "confirm")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Pause:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "pause")),
		Restart:  key.NewBinding(key.WithKeys("r", "f2"), key.WithHelp("r", "restart")),
		Save:     key.NewBinding(key.WithKeys(saveKeys...), key.WithHelp("f5-f8", "save")),
		Load:     key.NewBinding(key.WithKeys(loadKeys...), key.WithHelp("f9-f12", "load")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func mergeKeys(base, extra []string) []string {
	out := append([]string(nil), base...)
	for _, k := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		dup := false
		for _, b := range out {
			if b == k {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, k)
		}
	}
	return out
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.DigLeft, k.DigRight, k.Pause, k.Restart, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.DigLeft, k.DigRight, k.Confirm},
		{k.Pause, k.Restart, k.Save, k.Load},
		{k.Back, k.Quit},
	}
}

// Lookup maps a key message to an action. slot is set for save and load
// keys. Unbound keys return core.ActionNone.
func (k GameKeyMap) Lookup(msg tea.KeyMsg) (action core.Action, slot int) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, 0
	case key.Matches(msg, k.Left):
		return core.ActionLeft, 0
	case key.Matches(msg, k.Right):
		return core.ActionRight, 0
	case key.Matches(msg, k.Up):
		return core.ActionUp, 0
	case key.Matches(msg, k.Down):
		return core.ActionDown, 0
	case key.Matches(msg, k.DigLeft):
		return core.ActionDigLeft, 0
	case key.Matches(msg, k.DigRight):
		return core.ActionDigRight, 0
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, 0
	case key.Matches(msg, k.Back):
		return core.ActionBack, 0
	case key.Matches(msg, k.Pause):
		return core.ActionPause, 0
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, 0
	case key.Matches(msg, k.Save):
		return core.ActionSave, slotFor(msg.String(), saveKeys)
	case key.Matches(msg, k.Load):
		return core.ActionLoad, slotFor(msg.String(), loadKeys)
	}
	return core.ActionNone, 0
}

func slotFor(name string, keys []string) int {
	for i, k := range keys {
		if k == name {
			return i + 1
		}
	}
	return 0
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
