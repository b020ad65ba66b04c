package core

import (
	"errors"
	"fmt"
)

// ErrSnapshotMismatch is returned when a snapshot does not fit the loaded level.
var ErrSnapshotMismatch = errors.New("core: snapshot does not match level")

// Snapshot is everything needed to resume play at a tick boundary.
// It is plain data so storage layers can encode it however they like.
type Snapshot struct {
	Tick          uint64          `yaml:"tick"`
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	Tiles         []string        `yaml:"tiles"`
	Player        SnapshotPlayer  `yaml:"player"`
	Guards        []SnapshotGuard `yaml:"guards"`
	Holes         []SnapshotHole  `yaml:"holes"`
	Digs          []SnapshotDig   `yaml:"digs"`
	GoldRemaining int             `yaml:"gold_remaining"`
	GoldTotal     int             `yaml:"gold_total"`
	ExitEnabled   bool            `yaml:"exit_enabled"`
	ExitColumns   []int           `yaml:"exit_columns,omitempty"`
	HiddenLadders []Coord         `yaml:"hidden_ladders,omitempty"`
	PlayerSpawn   Coord           `yaml:"player_spawn"`
}

// SnapshotPlayer is the saved part of Player.
type SnapshotPlayer struct {
	X            int        `yaml:"x"`
	Y            int        `yaml:"y"`
	Facing       Facing     `yaml:"facing"`
	State        ActorState `yaml:"state"`
	MoveCooldown int        `yaml:"move_cooldown"`
}

// SnapshotGuard is a full Guard record.
type SnapshotGuard struct {
	ID              int        `yaml:"id"`
	X               int        `yaml:"x"`
	Y               int        `yaml:"y"`
	Facing          Facing     `yaml:"facing"`
	State           ActorState `yaml:"state"`
	CarryingGold    bool       `yaml:"carrying_gold"`
	CarryTimer      int        `yaml:"carry_timer"`
	StuckTimer      int        `yaml:"stuck_timer"`
	MoveCooldown    int        `yaml:"move_cooldown"`
	SpawnX          int        `yaml:"spawn_x"`
	SpawnY          int        `yaml:"spawn_y"`
	RespawnTimer    int        `yaml:"respawn_timer"`
	SeparationTimer int        `yaml:"separation_timer"`
}

// SnapshotHole is a saved Hole.
type SnapshotHole struct {
	X              int `yaml:"x"`
	Y              int `yaml:"y"`
	OpenRemaining  int `yaml:"open_remaining"`
	CloseRemaining int `yaml:"close_remaining"`
}

// SnapshotDig is a saved Dig.
type SnapshotDig struct {
	X              int `yaml:"x"`
	Y              int `yaml:"y"`
	TicksRemaining int `yaml:"ticks_remaining"`
	TotalTicks     int `yaml:"total_ticks"`
}

// Capture records the current runtime state.
func (w *World) Capture() Snapshot {
	s := Snapshot{
		Tick:   w.Tick,
		Width:  w.Width,
		Height: w.Height,
		Tiles:  w.tiles.Rows(),
		Player: SnapshotPlayer{
			X:            w.Player.X,
			Y:            w.Player.Y,
			Facing:       w.Player.Facing,
			State:        w.Player.State,
			MoveCooldown: w.Player.MoveCooldown,
		},
		GoldRemaining: w.GoldRemaining,
		GoldTotal:     w.GoldTotal,
		ExitEnabled:   w.ExitEnabled,
		ExitColumns:   append([]int(nil), w.ExitColumns...),
		HiddenLadders: append([]Coord(nil), w.HiddenLadders...),
		PlayerSpawn:   w.PlayerSpawn,
	}
	for _, g := range w.Guards {
		s.Guards = append(s.Guards, SnapshotGuard{
			ID:              g.ID,
			X:               g.X,
			Y:               g.Y,
			Facing:          g.Facing,
			State:           g.State,
			CarryingGold:    g.CarryingGold,
			CarryTimer:      g.CarryTimer,
			StuckTimer:      g.StuckTimer,
			MoveCooldown:    g.MoveCooldown,
			SpawnX:          g.SpawnX,
			SpawnY:          g.SpawnY,
			RespawnTimer:    g.RespawnTimer,
			SeparationTimer: g.SeparationTimer,
		})
	}
	for _, h := range w.holes {
		s.Holes = append(s.Holes, SnapshotHole{X: h.X, Y: h.Y, OpenRemaining: h.OpenRemaining, CloseRemaining: h.CloseRemaining})
	}
	for _, d := range w.Digs {
		s.Digs = append(s.Digs, SnapshotDig{X: d.X, Y: d.Y, TicksRemaining: d.TicksRemaining, TotalTicks: d.TotalTicks})
	}
	return s
}

// Restore overwrites the runtime state with a snapshot. The level the
// snapshot was taken on must be loaded first, since the authored tiles
// are not part of the snapshot. The hole grid is always rebuilt.
func (w *World) Restore(s Snapshot) error {
	if s.Width != w.Width || s.Height != w.Height || len(s.Tiles) != s.Height {
		return fmt.Errorf("%w: snapshot %dx%d, level %dx%d", ErrSnapshotMismatch, s.Width, s.Height, w.Width, w.Height)
	}
	tiles := NewTileGrid(s.Width, s.Height)
	for y, row := range s.Tiles {
		runes := []rune(row)
		if len(runes) != s.Width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrSnapshotMismatch, y, len(runes), s.Width)
		}
		for x, r := range runes {
			tiles.Set(x, y, TileFromRune(r))
		}
	}

	if err := s.checkBounds(); err != nil {
		return err
	}

	w.Tick = s.Tick
	w.tiles = tiles
	w.Player = Player{
		X:            s.Player.X,
		Y:            s.Player.Y,
		Facing:       s.Player.Facing,
		State:        s.Player.State,
		Alive:        true,
		MoveCooldown: s.Player.MoveCooldown,
	}

	w.Guards = make([]Guard, 0, len(s.Guards))
	for _, g := range s.Guards {
		w.Guards = append(w.Guards, Guard{
			ID:              g.ID,
			X:               g.X,
			Y:               g.Y,
			Facing:          g.Facing,
			State:           g.State,
			SpawnX:          g.SpawnX,
			SpawnY:          g.SpawnY,
			CarryingGold:    g.CarryingGold,
			CarryTimer:      g.CarryTimer,
			StuckTimer:      g.StuckTimer,
			MoveCooldown:    g.MoveCooldown,
			RespawnTimer:    g.RespawnTimer,
			SeparationTimer: g.SeparationTimer,
		})
	}

	w.holes = make([]Hole, 0, len(s.Holes))
	for _, h := range s.Holes {
		w.holes = append(w.holes, NewHole(h.X, h.Y, h.OpenRemaining, h.CloseRemaining))
	}
	w.Digs = make([]Dig, 0, len(s.Digs))
	for _, d := range s.Digs {
		w.Digs = append(w.Digs, RestoreDig(d.X, d.Y, d.TicksRemaining, d.TotalTicks))
	}

	w.GoldRemaining = s.GoldRemaining
	w.GoldTotal = s.GoldTotal
	w.ExitEnabled = s.ExitEnabled
	w.ExitColumns = append([]int(nil), s.ExitColumns...)
	w.HiddenLadders = append([]Coord(nil), s.HiddenLadders...)
	w.PlayerSpawn = s.PlayerSpawn
	w.RebuildHoleGrid()
	return nil
}

// checkBounds rejects entity and marker cells outside the grid.
func (s *Snapshot) checkBounds() error {
	in := func(x, y int) bool { return x >= 0 && x < s.Width && y >= 0 && y < s.Height }
	bad := func(what string, x, y int) error {
		return fmt.Errorf("%w: %s at (%d,%d) outside %dx%d", ErrSnapshotMismatch, what, x, y, s.Width, s.Height)
	}

	if !in(s.Player.X, s.Player.Y) {
		return bad("player", s.Player.X, s.Player.Y)
	}
	if !in(s.PlayerSpawn.X, s.PlayerSpawn.Y) {
		return bad("player spawn", s.PlayerSpawn.X, s.PlayerSpawn.Y)
	}
	for i, g := range s.Guards {
		if !in(g.X, g.Y) {
			return bad(fmt.Sprintf("guard %d", i), g.X, g.Y)
		}
		if !in(g.SpawnX, g.SpawnY) {
			return bad(fmt.Sprintf("guard %d spawn", i), g.SpawnX, g.SpawnY)
		}
	}
	for _, h := range s.Holes {
		if !in(h.X, h.Y) {
			return bad("hole", h.X, h.Y)
		}
	}
	for _, d := range s.Digs {
		if !in(d.X, d.Y) {
			return bad("dig", d.X, d.Y)
		}
	}
	for _, c := range s.HiddenLadders {
		if !in(c.X, c.Y) {
			return bad("hidden ladder", c.X, c.Y)
		}
	}
	for _, x := range s.ExitColumns {
		if x < 0 || x >= s.Width {
			return bad("exit column", x, 0)
		}
	}
	return nil
}
