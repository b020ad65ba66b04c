package core

import (
	"errors"
	"fmt"
	"hash/fnv"
)

// ErrInvalidLevel is returned by Load when the level data is malformed.
var ErrInvalidLevel = errors.New("core: invalid level data")

// Scoring and banner constants.
const (
	ScoreGold      = 100
	ScoreGuardKill = 50
	ScoreStage     = 500

	MessageTicks = 80
)

// Phase is the session phase of the world. Step only runs while Playing;
// every other transition is driven by the embedding application.
type Phase uint8

const (
	PhaseLevelIntro Phase = iota
	PhaseLevelReady
	PhasePlaying
	PhaseLevelOutro
	PhaseLevelComplete
	PhaseDying
	PhaseGameOver
	PhaseGameComplete
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseLevelIntro:
		return "LevelIntro"
	case PhaseLevelReady:
		return "LevelReady"
	case PhasePlaying:
		return "Playing"
	case PhaseLevelOutro:
		return "LevelOutro"
	case PhaseLevelComplete:
		return "LevelComplete"
	case PhaseDying:
		return "Dying"
	case PhaseGameOver:
		return "GameOver"
	case PhaseGameComplete:
		return "GameComplete"
	default:
		return "Unknown"
	}
}

// Speed holds the tick-based tuning of the simulation.
type Speed struct {
	PlayerMoveRate    int // ticks between player steps
	GuardMoveRate     int // ticks between guard steps
	DigDuration       int
	HoleOpenTicks     int
	HoleCloseTicks    int
	TrapEscapeTicks   int // ticks a guard stays in a hole before climbing out
	GuardRespawnTicks int
	GoldCarryTicks    int // 0 disables forced gold drops
}

// DefaultSpeed returns the standard tuning.
func DefaultSpeed() Speed {
	return Speed{
		PlayerMoveRate:    2,
		GuardMoveRate:     5,
		DigDuration:       5,
		HoleOpenTicks:     100,
		HoleCloseTicks:    20,
		TrapEscapeTicks:   70,
		GuardRespawnTicks: 40,
		GoldCarryTicks:    150,
	}
}

// LevelData is a validated level as handed over by a level loader.
// Tiles is row-major and holds only terrain: spawns are listed separately.
type LevelData struct {
	Name          string
	Width         int
	Height        int
	Tiles         []Tile
	PlayerSpawn   Coord
	GuardSpawns   []Coord
	ExitColumns   []int
	HiddenLadders []Coord
}

// World is the whole simulation state. It owns every entity and tile layer;
// entities refer to each other only through positions.
type World struct {
	Width  int
	Height int

	base     *TileGrid // as authored, never mutated after Load
	tiles    *TileGrid // effective layer
	holeGrid HoleGrid
	holes    []Hole

	Player Player
	Guards []Guard
	Digs   []Dig

	GoldRemaining int
	GoldTotal     int
	ExitEnabled   bool
	ExitColumns   []int
	HiddenLadders []Coord
	PlayerSpawn   Coord

	Speed Speed
	Phase Phase
	Score int
	Lives int
	Tick  uint64

	Level        int // zero-based index in the active level list
	LevelName    string
	Message      string
	MessageTimer int
}

// NewWorld creates an empty world with the given tuning.
func NewWorld(speed Speed) *World {
	w := &World{
		base:  NewTileGrid(0, 0),
		tiles: NewTileGrid(0, 0),
		Speed: speed,
		Lives: 5,
	}
	w.RebuildHoleGrid()
	return w
}

// Load resets the world to a fresh copy of the level. Score, lives and the
// level index are kept.
func (w *World) Load(data LevelData) error {
	if data.Width <= 0 || data.Height <= 0 || len(data.Tiles) != data.Width*data.Height {
		return fmt.Errorf("%w: %dx%d grid with %d tiles", ErrInvalidLevel, data.Width, data.Height, len(data.Tiles))
	}
	if sp := data.PlayerSpawn; sp.X < 0 || sp.X >= data.Width || sp.Y < 0 || sp.Y >= data.Height {
		return fmt.Errorf("%w: player spawn %v out of bounds", ErrInvalidLevel, data.PlayerSpawn)
	}

	w.Width, w.Height = data.Width, data.Height
	w.base = &TileGrid{W: data.Width, H: data.Height, Tiles: append([]Tile(nil), data.Tiles...)}
	w.tiles = w.base.Clone()
	w.holes = nil
	w.Digs = nil
	w.RebuildHoleGrid()

	w.PlayerSpawn = data.PlayerSpawn
	w.Player = NewPlayer(data.PlayerSpawn.X, data.PlayerSpawn.Y)
	w.Guards = make([]Guard, 0, len(data.GuardSpawns))
	for i, s := range data.GuardSpawns {
		g := NewGuard(i, s.X, s.Y)
		g.MoveCooldown = w.Speed.GuardMoveRate
		w.Guards = append(w.Guards, g)
	}

	w.ExitColumns = w.ExitColumns[:0]
	for _, x := range data.ExitColumns {
		if !containsInt(w.ExitColumns, x) {
			w.ExitColumns = append(w.ExitColumns, x)
		}
	}
	w.HiddenLadders = w.HiddenLadders[:0]
	for _, c := range data.HiddenLadders {
		if !containsCoord(w.HiddenLadders, c) {
			w.HiddenLadders = append(w.HiddenLadders, c)
		}
	}

	w.GoldRemaining = w.tiles.Count(TileGold)
	w.GoldTotal = w.GoldRemaining
	w.ExitEnabled = false
	w.Tick = 0
	w.LevelName = data.Name
	w.Phase = PhaseLevelIntro
	w.SetMessage(data.Name, MessageTicks)
	return nil
}

// RestartLevel puts the current level back to its loaded state after a
// death. Score and lives are untouched.
func (w *World) RestartLevel() {
	w.ResetTiles()
	w.Player.X, w.Player.Y = w.PlayerSpawn.X, w.PlayerSpawn.Y
	w.Player.Alive = true
	w.Player.State = StateOnGround
	w.Player.MoveCooldown = 0
	w.holes = nil
	w.Digs = nil
	w.RebuildHoleGrid()
	w.ExitEnabled = false
	w.GoldRemaining = w.tiles.Count(TileGold)
	w.GoldTotal = w.GoldRemaining
	for i := range w.Guards {
		g := &w.Guards[i]
		g.X, g.Y = g.SpawnX, g.SpawnY
		g.State = StateOnGround
		g.CarryingGold = false
		g.CarryTimer = 0
		g.StuckTimer = 0
		g.MoveCooldown = w.Speed.GuardMoveRate
		g.RespawnTimer = 0
		g.SeparationTimer = 0
	}
}

// SetMessage shows a banner for the given number of ticks.
func (w *World) SetMessage(msg string, ticks int) {
	w.Message = msg
	w.MessageTimer = ticks
}

// Tile returns the effective tile at (x, y). Out of bounds is concrete.
func (w *World) Tile(x, y int) Tile { return w.tiles.At(x, y) }

// BaseTile returns the authored tile at (x, y).
func (w *World) BaseTile(x, y int) Tile { return w.base.At(x, y) }

// Tiles returns the effective tile layer. Callers must not modify it;
// use SetTile and ClearTile instead.
func (w *World) Tiles() *TileGrid { return w.tiles }

// SetTile changes one cell of the effective layer.
func (w *World) SetTile(x, y int, t Tile) { w.tiles.Set(x, y, t) }

// ClearTile reverts one cell to its authored tile.
func (w *World) ClearTile(x, y int) {
	if w.tiles.InBounds(x, y) {
		w.tiles.Set(x, y, w.base.At(x, y))
	}
}

// ResetTiles reverts the whole effective layer to the authored tiles.
func (w *World) ResetTiles() { w.tiles.CopyFrom(w.base) }

// Holes returns the open holes. Callers must not modify the slice.
func (w *World) Holes() []Hole { return w.holes }

// HoleAt returns the hole at (x, y), if any.
func (w *World) HoleAt(x, y int) (Hole, bool) {
	for _, h := range w.holes {
		if h.X == x && h.Y == y {
			return h, true
		}
	}
	return Hole{}, false
}

// AddHole adds a hole and refreshes the hole grid.
func (w *World) AddHole(h Hole) {
	w.holes = append(w.holes, h)
	w.RebuildHoleGrid()
}

// RebuildHoleGrid recomputes the hole grid from the hole list.
func (w *World) RebuildHoleGrid() {
	w.holeGrid = BuildHoleGrid(w.holes, w.Width, w.Height)
}

// HoleGrid returns the derived hole grid.
func (w *World) HoleGrid() HoleGrid { return w.holeGrid }

// Terrain returns the physics view of the current state.
func (w *World) Terrain() Terrain {
	return Terrain{Tiles: w.tiles, Holes: w.holeGrid, Guards: w.Guards}
}

// Clone returns a deep copy of the world.
func (w *World) Clone() *World {
	c := *w
	c.base = w.base.Clone()
	c.tiles = w.tiles.Clone()
	c.holes = append([]Hole(nil), w.holes...)
	c.Guards = append([]Guard(nil), w.Guards...)
	c.Digs = append([]Dig(nil), w.Digs...)
	c.ExitColumns = append([]int(nil), w.ExitColumns...)
	c.HiddenLadders = append([]Coord(nil), w.HiddenLadders...)
	c.RebuildHoleGrid()
	return &c
}

// Hash returns a hash of the simulation state for determinism checks.
func (w *World) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%d;P:%d;S:%d;L:%d;", w.Tick, w.Phase, w.Score, w.Lives)
	for _, t := range w.tiles.Tiles {
		h.Write([]byte{byte(t)})
	}
	p := w.Player
	fmt.Fprintf(h, "PL:%d,%d,%d,%d,%t,%d;", p.X, p.Y, p.Facing, p.State, p.Alive, p.MoveCooldown)
	for _, g := range w.Guards {
		fmt.Fprintf(h, "G:%d,%d,%d,%d,%d,%t,%d,%d,%d,%d,%d;",
			g.ID, g.X, g.Y, g.Facing, g.State, g.CarryingGold, g.CarryTimer,
			g.StuckTimer, g.MoveCooldown, g.RespawnTimer, g.SeparationTimer)
	}
	for _, ho := range w.holes {
		fmt.Fprintf(h, "H:%d,%d,%d,%d;", ho.X, ho.Y, ho.OpenRemaining, ho.CloseRemaining)
	}
	for _, d := range w.Digs {
		fmt.Fprintf(h, "D:%d,%d,%d,%d;", d.X, d.Y, d.TicksRemaining, d.TotalTicks)
	}
	fmt.Fprintf(h, "Au:%d/%d;X:%t;", w.GoldRemaining, w.GoldTotal, w.ExitEnabled)
	return h.Sum64()
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsCoord(s []Coord, v Coord) bool {
	for _, c := range s {
		if c == v {
			return true
		}
	}
	return false
}
