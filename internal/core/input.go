package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left, A
	ActionRight           // Right, D
	ActionUp              // Up, W
	ActionDown            // Down, S
	ActionDigLeft         // Z, Q
	ActionDigRight        // X, E
	ActionConfirm         // Enter, Space
	ActionBack            // Esc
	ActionRestart         // R, F2
	ActionQuit            // Ctrl+C
	ActionPause           // F1, P
	ActionSave            // F5-F8, slot in InputFrame.Slot
	ActionLoad            // F9-F12, slot in InputFrame.Slot
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionDigLeft:  "DigLeft",
	ActionDigRight: "DigRight",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
	ActionPause:    "Pause",
	ActionSave:     "Save",
	ActionLoad:     "Load",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether a is one of the four directions.
func (a Action) IsMovement() bool {
	return a >= ActionLeft && a <= ActionDown
}

// InputFrame is the input for one simulation tick.
//
// Actions holds keys pressed since the previous tick (edge-triggered).
// Held holds keys still considered down, which drives continuous movement.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
	Slot    int // save slot for ActionSave and ActionLoad, 1-4
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetHeld marks an action as held down this frame.
func (f *InputFrame) SetHeld(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Active returns true if the action was pressed or is held.
func (f InputFrame) Active(a Action) bool {
	return f.Actions[a] || f.Held[a]
}

// AnyMovement reports whether a direction or dig key was pressed this frame.
func (f InputFrame) AnyMovement() bool {
	for a, on := range f.Actions {
		if on && (a.IsMovement() || a == ActionDigLeft || a == ActionDigRight) {
			return true
		}
	}
	return false
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
	f.Slot = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Slot = f.Slot
	return clone
}
