package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

// levelFromRows builds level data from a map drawn with the level glyphs:
// '#' brick, '=' concrete, 'H' ladder, '-' rope, '$' gold, 'T' trap brick,
// 'P' player, 'E' guard, '^' exit column, '~' hidden ladder cell.
func levelFromRows(rows ...string) core.LevelData {
	data := core.LevelData{Name: "test", Width: len(rows[0]), Height: len(rows)}
	data.Tiles = make([]core.Tile, data.Width*data.Height)
	for y, row := range rows {
		for x, ch := range row {
			var t core.Tile
			switch ch {
			case '#':
				t = core.TileBrick
			case '=':
				t = core.TileConcrete
			case 'H':
				t = core.TileLadder
			case '-':
				t = core.TileRope
			case '$':
				t = core.TileGold
			case 'T':
				t = core.TileTrapBrick
			case 'P':
				data.PlayerSpawn = core.C(x, y)
			case 'E':
				data.GuardSpawns = append(data.GuardSpawns, core.C(x, y))
			case '^':
				data.ExitColumns = append(data.ExitColumns, x)
			case '~':
				data.HiddenLadders = append(data.HiddenLadders, core.C(x, y))
			}
			data.Tiles[y*data.Width+x] = t
		}
	}
	return data
}

// newWorld loads rows into a world that is ready to step.
func newWorld(t *testing.T, rows ...string) *core.World {
	t.Helper()
	w := core.NewWorld(core.DefaultSpeed())
	require.NoError(t, w.Load(levelFromRows(rows...)))
	w.Phase = core.PhasePlaying
	return w
}

// gridFromRows builds a bare tile grid for the rule tests.
func gridFromRows(rows ...string) *core.TileGrid {
	data := levelFromRows(rows...)
	return &core.TileGrid{W: data.Width, H: data.Height, Tiles: data.Tiles}
}

// freezeGuards stops every guard from taking voluntary steps.
func freezeGuards(w *core.World) {
	for i := range w.Guards {
		w.Guards[i].MoveCooldown = 1 << 20
	}
}

// digHole opens an active hole at (x, y) the way a finished dig would.
func digHole(w *core.World, x, y, open, closeTicks int) {
	w.SetTile(x, y, core.TileEmpty)
	w.AddHole(core.NewHole(x, y, open, closeTicks))
}

func stepN(w *core.World, n int, in core.FrameInput) []core.Event {
	var all []core.Event
	for i := 0; i < n; i++ {
		all = append(all, w.Step(in)...)
	}
	return all
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func findEvent(events []core.Event, kind core.EventKind) (core.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return core.Event{}, false
}
