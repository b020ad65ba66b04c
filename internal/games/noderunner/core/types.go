// Package core provides the simulation for Node Runner, a dig-and-escape
// platformer played on a tile grid.
// This package is UI-agnostic and deterministic: the same World and the same
// FrameInput always produce the same next World and the same events.
package core

import "fmt"

// Coord represents a cell on the grid.
// X increases to the right, Y increases downward (row 0 is the top).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Facing is the horizontal direction an actor looks at. It decides which
// side a dig goes to.
type Facing uint8

const (
	FacingLeft Facing = iota
	FacingRight
)

// String returns the string representation of a facing.
func (f Facing) String() string {
	if f == FacingLeft {
		return "Left"
	}
	return "Right"
}

// facingFor returns the facing that matches a horizontal step.
func facingFor(dx int) Facing {
	if dx < 0 {
		return FacingLeft
	}
	return FacingRight
}

// MoveDir is the movement direction held by the player this tick.
type MoveDir uint8

const (
	MoveNone MoveDir = iota
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

// String returns the string representation of a move direction.
func (d MoveDir) String() string {
	switch d {
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	default:
		return "None"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
func (d MoveDir) Delta() (dx, dy int) {
	switch d {
	case MoveLeft:
		return -1, 0
	case MoveRight:
		return 1, 0
	case MoveUp:
		return 0, -1
	case MoveDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// DigDir is a fresh dig request for this tick.
type DigDir uint8

const (
	DigNone DigDir = iota
	DigLeft
	DigRight
)

// Facing returns the facing used for the dig.
func (d DigDir) Facing() Facing {
	if d == DigLeft {
		return FacingLeft
	}
	return FacingRight
}

// FrameInput is everything the player does during one tick.
// Move is level-triggered (the held direction), Dig is edge-triggered.
type FrameInput struct {
	Move MoveDir
	Dig  DigDir
}

// ActorState is the movement state shared by the player and guards.
type ActorState uint8

const (
	StateOnGround ActorState = iota
	StateFalling
	StateOnLadder
	StateOnRope
	StateInHole // guards only
	StateDead
)

// String returns the string representation of an actor state.
func (s ActorState) String() string {
	switch s {
	case StateOnGround:
		return "OnGround"
	case StateFalling:
		return "Falling"
	case StateOnLadder:
		return "OnLadder"
	case StateOnRope:
		return "OnRope"
	case StateInHole:
		return "InHole"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Sticky reports whether terrain-based resolution must leave the state alone.
func (s ActorState) Sticky() bool {
	return s == StateDead || s == StateInHole
}

// immobile reports whether voluntary movement is denied in this state.
func (s ActorState) immobile() bool {
	return s == StateFalling || s == StateDead || s == StateInHole
}
