package core

import "time"

// DefaultTick is the wall-clock length of one simulation tick.
const DefaultTick = 75 * time.Millisecond

// RuntimeConfig is handed to a game on Reset.
type RuntimeConfig struct {
	ScreenW int           // Screen width in characters
	ScreenH int           // Screen height in characters
	Tick    time.Duration // Wall-clock length of one simulation tick
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Tick:    DefaultTick,
	}
}

// TickRate returns the number of ticks per second, at least 1.
func (c RuntimeConfig) TickRate() int {
	if c.Tick <= 0 {
		return int(time.Second / DefaultTick)
	}
	rate := int(time.Second / c.Tick)
	if rate < 1 {
		return 1
	}
	return rate
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	Lives    int
	Level    int    // one-based
	Phase    string // human-readable phase name
	GameOver bool   // the run has ended, won or lost
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	// Exit asks the platform to leave the game and return to its menu.
	Exit bool
	// Events holds the names of simulation events emitted this tick.
	Events []string
}
