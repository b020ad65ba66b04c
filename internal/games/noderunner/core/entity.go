package core

// Player is the runner controlled by the user.
type Player struct {
	X, Y         int
	Facing       Facing
	State        ActorState
	Alive        bool
	MoveCooldown int // ticks until the next voluntary step is accepted
}

// NewPlayer creates a live player standing at (x, y) and facing right.
func NewPlayer(x, y int) Player {
	return Player{X: x, Y: y, Facing: FacingRight, State: StateOnGround, Alive: true}
}

// Pos returns the player's cell.
func (p *Player) Pos() Coord { return C(p.X, p.Y) }

// Guard is an enemy that chases the player.
type Guard struct {
	ID     int // stable across respawns
	X, Y   int
	Facing Facing
	State  ActorState
	SpawnX int
	SpawnY int

	CarryingGold bool
	CarryTimer   int // ticks since the gold was picked up

	StuckTimer      int // ticks left before trying to climb out of a hole
	MoveCooldown    int
	RespawnTimer    int // ticks spent dead
	SeparationTimer int // >0 switches the AI to separation mode
}

// NewGuard creates a guard at its spawn cell.
func NewGuard(id, x, y int) Guard {
	return Guard{
		ID:     id,
		X:      x,
		Y:      y,
		Facing: FacingLeft,
		State:  StateOnGround,
		SpawnX: x,
		SpawnY: y,
	}
}

// Pos returns the guard's cell.
func (g *Guard) Pos() Coord { return C(g.X, g.Y) }

// Active reports whether the guard is neither dead nor trapped.
func (g *Guard) Active() bool {
	return g.State != StateDead && g.State != StateInHole
}

// Hole is a dug cell that stays open for a while and then fills back in.
type Hole struct {
	X, Y           int
	OpenRemaining  int // fully open phase
	CloseRemaining int // filling phase, still passable
}

// NewHole creates a hole with the given phase durations.
func NewHole(x, y, openTicks, closeTicks int) Hole {
	return Hole{X: x, Y: y, OpenRemaining: openTicks, CloseRemaining: closeTicks}
}

// Tick advances the hole by one tick and reports whether it has expired.
// The open phase runs first, then the close phase.
func (h *Hole) Tick() bool {
	if h.OpenRemaining > 0 {
		h.OpenRemaining--
	} else if h.CloseRemaining > 0 {
		h.CloseRemaining--
	}
	return !h.IsActive()
}

// IsActive reports whether either phase has time left.
func (h *Hole) IsActive() bool {
	return h.OpenRemaining > 0 || h.CloseRemaining > 0
}

// IsClosing reports whether the hole is filling in.
func (h *Hole) IsClosing() bool {
	return h.OpenRemaining == 0 && h.CloseRemaining > 0
}

// CloseProgress returns how far the close phase has gone, from 0 to 1.
// A zero total counts as fully closed.
func (h *Hole) CloseProgress(totalClose int) float64 {
	if totalClose == 0 {
		return 1.0
	}
	return 1.0 - float64(h.CloseRemaining)/float64(totalClose)
}

// Dig is a dig in progress. The brick stays solid until the countdown ends.
type Dig struct {
	X, Y           int
	TicksRemaining int
	TotalTicks     int
}

// NewDig starts a dig that takes duration ticks.
func NewDig(x, y, duration int) Dig {
	return Dig{X: x, Y: y, TicksRemaining: duration, TotalTicks: duration}
}

// RestoreDig recreates a dig from saved timers.
func RestoreDig(x, y, remaining, total int) Dig {
	return Dig{X: x, Y: y, TicksRemaining: remaining, TotalTicks: total}
}

// Progress returns how far the dig has gone, from 0 to 1.
func (d *Dig) Progress() float64 {
	if d.TotalTicks == 0 {
		return 1.0
	}
	return 1.0 - float64(d.TicksRemaining)/float64(d.TotalTicks)
}

// Stage returns the display stage (0-3) for the dig animation.
func (d *Dig) Stage() int {
	p := d.Progress()
	switch {
	case p < 0.25:
		return 0
	case p < 0.5:
		return 1
	case p < 0.75:
		return 2
	default:
		return 3
	}
}
