package noderunner

// Camera is the window of world cells shown on screen. X and Y are the
// world cell at the top-left of the view and go negative when a small map
// is centered inside a larger view.
type Camera struct {
	X, Y  int
	ViewW int
	ViewH int
}

// SetView changes the view size, capped to the world size.
func (c *Camera) SetView(viewW, viewH, worldW, worldH int) {
	c.ViewW = viewW
	c.ViewH = viewH
	if worldW > 0 && c.ViewW > worldW {
		c.ViewW = worldW
	}
	if worldH > 0 && c.ViewH > worldH {
		c.ViewH = worldH
	}
}

// Follow scrolls only when the target leaves the inner area of the view.
// The margin on each side is a fifth of the view.
func (c *Camera) Follow(tx, ty, worldW, worldH int) {
	if c.ViewW <= 0 || c.ViewH <= 0 {
		return
	}
	c.X = followAxis(c.X, tx, c.ViewW, worldW)
	c.Y = followAxis(c.Y, ty, c.ViewH, worldH)
}

// CenterOn snaps the view onto the target.
func (c *Camera) CenterOn(tx, ty, worldW, worldH int) {
	if c.ViewW <= 0 || c.ViewH <= 0 {
		return
	}
	c.X = centerAxis(tx, c.ViewW, worldW)
	c.Y = centerAxis(ty, c.ViewH, worldH)
}

// WorldToView converts a world cell to a view cell.
func (c *Camera) WorldToView(wx, wy int) (vx, vy int, ok bool) {
	vx, vy = wx-c.X, wy-c.Y
	ok = vx >= 0 && vx < c.ViewW && vy >= 0 && vy < c.ViewH
	return vx, vy, ok
}

func followAxis(pos, target, view, world int) int {
	if world <= view {
		return -((view - world) / 2)
	}
	margin := view / 5
	switch {
	case target < pos+margin:
		pos = target - margin
	case target > pos+view-margin-1:
		pos = target - view + margin + 1
	}
	return clampAxis(pos, view, world)
}

func centerAxis(target, view, world int) int {
	if world <= view {
		return -((view - world) / 2)
	}
	return clampAxis(target-view/2, view, world)
}

func clampAxis(pos, view, world int) int {
	if pos > world-view {
		pos = world - view
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
