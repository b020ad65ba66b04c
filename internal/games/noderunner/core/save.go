package core

import "errors"

// ErrNoSave is returned when a save slot holds nothing.
var ErrNoSave = errors.New("no save in slot")

// Save slots. Slot 0 is the autosave written when leaving a game.
const (
	AutosaveSlot = 0
	FirstSlot    = 1
	LastSlot     = 4
)

// SaveData is a resumable game. Without a snapshot it restarts Level from
// the beginning with the saved score and lives.
type SaveData struct {
	Pack     string    `yaml:"pack"`
	Level    int       `yaml:"level"` // zero-based
	Score    int       `yaml:"score"`
	Lives    int       `yaml:"lives"`
	Snapshot *Snapshot `yaml:"snapshot,omitempty"`
}

// ValidSlot reports whether slot names a save slot, autosave included.
func ValidSlot(slot int) bool {
	return slot >= AutosaveSlot && slot <= LastSlot
}
