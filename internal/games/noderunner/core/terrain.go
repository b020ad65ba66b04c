package core

// NoGuard is passed as the excluded guard index when no guard is excluded.
const NoGuard = -1

// TerrainCell is what a cell is, independent of who stands on it.
type TerrainCell struct {
	Passable  bool
	Climbable bool
	Hangable  bool
	Hole      bool // an active hole overrides the tile underneath
}

// Terrain combines the effective tiles, the hole grid and the guard list
// into the physics queries used by gravity, guard movement and the AI.
// It is a read-only view built per query pass; nothing stores it.
type Terrain struct {
	Tiles  *TileGrid
	Holes  HoleGrid
	Guards []Guard
}

// Width returns the map width.
func (t Terrain) Width() int { return t.Tiles.W }

// Height returns the map height.
func (t Terrain) Height() int { return t.Tiles.H }

// At returns the terrain at (x, y). Out of bounds is a wall.
func (t Terrain) At(x, y int) TerrainCell {
	if !t.Tiles.InBounds(x, y) {
		return TerrainCell{}
	}
	if t.Holes.At(x, y) {
		return TerrainCell{Passable: true, Hole: true}
	}
	tile := t.Tiles.At(x, y)
	return TerrainCell{
		Passable:  tile.Passable(),
		Climbable: tile.Climbable(),
		Hangable:  tile.Hangable(),
	}
}

// Support reports terrain-only support at (x, y): the bottom row, a
// ladder or rope in the cell, or solid ground or a ladder below.
func (t Terrain) Support(x, y int) bool {
	if y+1 >= t.Height() {
		return true
	}
	here := t.At(x, y)
	if here.Climbable || here.Hangable {
		return true
	}
	below := t.At(x, y+1)
	return !below.Passable || below.Climbable
}

// TrappedGuardAt reports whether a guard other than except is InHole at (x, y).
func (t Terrain) TrappedGuardAt(x, y, except int) bool {
	for i := range t.Guards {
		g := &t.Guards[i]
		if i != except && g.X == x && g.Y == y && g.State == StateInHole {
			return true
		}
	}
	return false
}

// ActiveGuardAt reports whether a guard other than except, neither dead nor
// trapped, is at (x, y).
func (t Terrain) ActiveGuardAt(x, y, except int) bool {
	for i := range t.Guards {
		g := &t.Guards[i]
		if i != except && g.X == x && g.Y == y && g.Active() {
			return true
		}
	}
	return false
}

// StandingGuardAt reports whether a guard that is neither dead nor falling
// is at (x, y). Trapped guards count.
func (t Terrain) StandingGuardAt(x, y int) bool {
	for i := range t.Guards {
		g := &t.Guards[i]
		if g.X == x && g.Y == y && g.State != StateDead && g.State != StateFalling {
			return true
		}
	}
	return false
}

// HasSupport is terrain support or a trapped guard directly below.
func (t Terrain) HasSupport(x, y int) bool {
	if t.Support(x, y) {
		return true
	}
	return y+1 < t.Height() && t.TrappedGuardAt(x, y+1, NoGuard)
}

// HasSupportForPlayer is terrain support or any standing guard below.
// The player can walk on the heads of moving guards.
func (t Terrain) HasSupportForPlayer(x, y int) bool {
	if t.Support(x, y) {
		return true
	}
	return y+1 < t.Height() && t.StandingGuardAt(x, y+1)
}

// HasSupportForGuard is terrain support or a trapped guard below other
// than the guard at index idx.
func (t Terrain) HasSupportForGuard(x, y, idx int) bool {
	if t.Support(x, y) {
		return true
	}
	return y+1 < t.Height() && t.TrappedGuardAt(x, y+1, idx)
}

// ResolveState picks the actor state for (x, y). Dead and InHole are kept.
// Otherwise the first match wins: climbable, hangable, supported, falling.
func (t Terrain) ResolveState(x, y int, current ActorState) ActorState {
	if current.Sticky() {
		return current
	}
	here := t.At(x, y)
	switch {
	case here.Climbable:
		return StateOnLadder
	case here.Hangable:
		return StateOnRope
	case t.HasSupport(x, y):
		return StateOnGround
	default:
		return StateFalling
	}
}
