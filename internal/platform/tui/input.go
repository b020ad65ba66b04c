package tui

import (
	"time"

	"github.com/vovakirdan/noderunner/internal/core"
)

// HoldTimeout is how long a key counts as held after its last key event.
// Terminals report auto-repeat but never key release, so a key is taken as
// released once its repeats stop.
const HoldTimeout = 160 * time.Millisecond

// holdTracker turns the terminal's key events into per-tick input frames.
type holdTracker struct {
	lastSeen map[core.Action]time.Time
	frame    core.InputFrame
}

func newHoldTracker() *holdTracker {
	return &holdTracker{
		lastSeen: make(map[core.Action]time.Time),
		frame:    core.NewInputFrame(),
	}
}

// Press records a key event at now. Auto-repeat of a key that is still
// held is not a new press.
func (h *holdTracker) Press(a core.Action, slot int, now time.Time) {
	last, held := h.lastSeen[a]
	h.lastSeen[a] = now
	if held && now.Sub(last) <= HoldTimeout {
		return
	}
	h.frame.Set(a)
	if slot > 0 {
		h.frame.Slot = slot
	}
}

// Frame returns the input for a tick at now: presses since the last frame
// plus the directions seen within HoldTimeout. It then clears the presses.
func (h *holdTracker) Frame(now time.Time) core.InputFrame {
	out := h.frame.Clone()
	for a, t := range h.lastSeen {
		switch {
		case now.Sub(t) > HoldTimeout:
			delete(h.lastSeen, a)
		case a.IsMovement():
			out.SetHeld(a)
		}
	}
	h.frame.Clear()
	return out
}

// Reset forgets every key.
func (h *holdTracker) Reset() {
	clear(h.lastSeen)
	h.frame.Clear()
}
