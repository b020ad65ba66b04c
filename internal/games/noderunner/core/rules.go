package core

// Tile-only movement rules. Guards and holes are not consulted here;
// Terrain resolves gravity and occupancy after the move.

// TileSupport reports whether an actor at (x, y) is held up by tiles alone.
func (g *TileGrid) TileSupport(x, y int) bool {
	if y+1 >= g.H {
		return true
	}
	here := g.At(x, y)
	if here.Climbable() || here.Hangable() {
		return true
	}
	below := g.At(x, y+1)
	return below.Solid() || below.Climbable()
}

// ResolveTileState is Terrain.ResolveState computed from tiles only.
func (g *TileGrid) ResolveTileState(x, y int, current ActorState) ActorState {
	if current.Sticky() {
		return current
	}
	here := g.At(x, y)
	switch {
	case here.Climbable():
		return StateOnLadder
	case here.Hangable():
		return StateOnRope
	case g.TileSupport(x, y):
		return StateOnGround
	default:
		return StateFalling
	}
}

// ShouldFall reports whether tiles alone leave (x, y) unsupported.
func (g *TileGrid) ShouldFall(x, y int) bool {
	return !g.TileSupport(x, y)
}

// CanMoveLeft reports whether a step left from (x, y) is legal.
func CanMoveLeft(g *TileGrid, x, y int, state ActorState) bool {
	if x == 0 || state.immobile() {
		return false
	}
	return g.At(x-1, y).Passable()
}

// CanMoveRight reports whether a step right from (x, y) is legal.
func CanMoveRight(g *TileGrid, x, y int, state ActorState) bool {
	if x+1 >= g.W || state.immobile() {
		return false
	}
	return g.At(x+1, y).Passable()
}

// CanMoveUp reports whether a climb up from (x, y) is legal.
// The actor must already be on a ladder.
func CanMoveUp(g *TileGrid, x, y int, state ActorState) bool {
	if y == 0 || state.immobile() {
		return false
	}
	if !g.At(x, y).Climbable() {
		return false
	}
	return g.At(x, y-1).Passable()
}

// CanMoveDown reports whether a step down from (x, y) is legal: descending
// a ladder, letting go of a rope, or stepping onto the top of a ladder.
// Falling actors may still move down.
func CanMoveDown(g *TileGrid, x, y int, state ActorState) bool {
	if y+1 >= g.H || state.Sticky() {
		return false
	}
	here := g.At(x, y)
	below := g.At(x, y+1)
	if (here.Climbable() || here.Hangable()) && below.Passable() {
		return true
	}
	return below.Climbable()
}

// CanMove dispatches to the rule for dir. MoveNone is never legal.
func CanMove(g *TileGrid, x, y int, state ActorState, dir MoveDir) bool {
	switch dir {
	case MoveLeft:
		return CanMoveLeft(g, x, y, state)
	case MoveRight:
		return CanMoveRight(g, x, y, state)
	case MoveUp:
		return CanMoveUp(g, x, y, state)
	case MoveDown:
		return CanMoveDown(g, x, y, state)
	default:
		return false
	}
}

// CanDig returns the cell a dig from (x, y) facing f would remove.
// The dig goes into the brick below the neighbouring cell. The neighbour
// must be open and not a ladder, and the target must be plain brick.
func CanDig(g *TileGrid, x, y int, state ActorState, f Facing) (Coord, bool) {
	if state.immobile() {
		return Coord{}, false
	}
	if !g.TileSupport(x, y) && state != StateOnLadder && state != StateOnRope {
		return Coord{}, false
	}

	sideX := x + 1
	if f == FacingLeft {
		if x == 0 {
			return Coord{}, false
		}
		sideX = x - 1
	} else if sideX >= g.W {
		return Coord{}, false
	}
	digY := y + 1
	if digY >= g.H {
		return Coord{}, false
	}

	side := g.At(sideX, y)
	if !side.Passable() || side.Climbable() {
		return Coord{}, false
	}
	if !g.At(sideX, digY).Diggable() {
		return Coord{}, false
	}
	return C(sideX, digY), true
}
