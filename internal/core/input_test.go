package core

import "testing"

func TestInputFramePressedAndHeld(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionDigLeft)
	f.SetHeld(ActionLeft)

	if !f.Has(ActionDigLeft) {
		t.Error("pressed action should be reported by Has")
	}
	if f.Has(ActionLeft) {
		t.Error("held-only action should not be reported by Has")
	}
	if !f.Active(ActionLeft) || !f.Active(ActionDigLeft) {
		t.Error("Active should cover both pressed and held actions")
	}
	if f.Active(ActionRight) {
		t.Error("unset action should not be active")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionConfirm) || f.Active(ActionUp) {
		t.Error("zero frame should report nothing")
	}
	f.Set(ActionConfirm)
	f.SetHeld(ActionUp)
	if !f.Has(ActionConfirm) || !f.Active(ActionUp) {
		t.Error("Set and SetHeld should allocate maps on demand")
	}
}

func TestInputFrameAnyMovement(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   bool
	}{
		{"left", ActionLeft, true},
		{"down", ActionDown, true},
		{"dig right", ActionDigRight, true},
		{"confirm", ActionConfirm, false},
		{"pause", ActionPause, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			f.Set(tc.action)
			if got := f.AnyMovement(); got != tc.want {
				t.Errorf("AnyMovement() with %v = %v, expected %v", tc.action, got, tc.want)
			}
		})
	}

	held := NewInputFrame()
	held.SetHeld(ActionLeft)
	if held.AnyMovement() {
		t.Error("a held key is not a fresh press")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionSave)
	f.SetHeld(ActionUp)
	f.Slot = 3

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionSave) || f.Active(ActionUp) || f.Slot != 0 {
		t.Error("Clear should reset actions, held keys and slot")
	}
	if !clone.Has(ActionSave) || !clone.Active(ActionUp) || clone.Slot != 3 {
		t.Error("clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionDigLeft.String() != "DigLeft" {
		t.Errorf("ActionDigLeft.String() = %q", ActionDigLeft.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}

func TestRuntimeConfigTickRate(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickRate() != 13 {
		t.Errorf("75ms ticks should give 13 per second, got %d", cfg.TickRate())
	}
	cfg.Tick = 0
	if cfg.TickRate() != 13 {
		t.Errorf("zero tick should fall back to the default, got %d", cfg.TickRate())
	}
}

func TestColorString(t *testing.T) {
	if ColorYellow.String() != "yellow" {
		t.Errorf("ColorYellow.String() = %q", ColorYellow.String())
	}
	if Color(200).Valid() {
		t.Error("out of palette color should be invalid")
	}
}
