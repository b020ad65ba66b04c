package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

var chaseLevel = []string{
	"      $   ",
	"   H--- E ",
	"P  H   ###",
	"##########",
}

var walledLevel = []string{
	"P $ H=E  $",
	"### H=####",
	"    H=    ",
	"==========",
}

func scriptInput(i int) core.FrameInput {
	switch {
	case i == 0:
		return core.FrameInput{Dig: core.DigRight}
	case i < 8:
		return core.FrameInput{}
	case i < 20:
		return core.FrameInput{Move: core.MoveRight}
	case i%7 == 0:
		return core.FrameInput{Move: core.MoveUp, Dig: core.DigLeft}
	default:
		return core.FrameInput{Move: core.MoveLeft}
	}
}

func TestStepIsDeterministic(t *testing.T) {
	a := newWorld(t, chaseLevel...)
	b := a.Clone()
	require.Equal(t, a.Hash(), b.Hash())

	for i := 0; i < 200; i++ {
		ea := a.Step(scriptInput(i))
		eb := b.Step(scriptInput(i))
		require.Equal(t, ea, eb, "tick %d", i)
		require.Equal(t, a.Hash(), b.Hash(), "tick %d", i)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := newWorld(t, chaseLevel...)
	b := a.Clone()

	b.SetTile(0, 0, core.TileBrick)
	b.Guards[0].X = 5
	b.AddHole(core.NewHole(1, 3, 10, 10))

	assert.Equal(t, core.TileEmpty, a.Tile(0, 0))
	assert.Equal(t, 8, a.Guards[0].X)
	assert.Empty(t, a.Holes())
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestSnapshotResumesIdentically(t *testing.T) {
	data := levelFromRows(walledLevel...)
	a := newWorld(t, walledLevel...)
	for i := 0; i < 30; i++ {
		a.Step(scriptInput(i))
	}
	require.Equal(t, core.PhasePlaying, a.Phase)
	snap := a.Capture()

	b := core.NewWorld(core.DefaultSpeed())
	require.NoError(t, b.Load(data))
	require.NoError(t, b.Restore(snap))
	b.Score = a.Score
	b.Phase = core.PhasePlaying
	require.Equal(t, a.Hash(), b.Hash())

	for i := 30; i < 90; i++ {
		require.Equal(t, a.Step(scriptInput(i)), b.Step(scriptInput(i)), "tick %d", i)
		require.Equal(t, a.Hash(), b.Hash(), "tick %d", i)
	}
}

func TestSnapshotSurvivesYAML(t *testing.T) {
	a := newWorld(t, walledLevel...)
	for i := 0; i < 12; i++ {
		a.Step(scriptInput(i))
	}
	a.ExitEnabled = true
	a.SetTile(4, 0, core.TileHiddenLadder)

	out, err := yaml.Marshal(a.Capture())
	require.NoError(t, err)

	var snap core.Snapshot
	require.NoError(t, yaml.Unmarshal(out, &snap))

	b := core.NewWorld(core.DefaultSpeed())
	require.NoError(t, b.Load(levelFromRows(walledLevel...)))
	require.NoError(t, b.Restore(snap))
	b.Phase = a.Phase
	b.Score = a.Score
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, core.TileHiddenLadder, b.Tile(4, 0))
}

func TestRestoreRejectsMismatchedSnapshot(t *testing.T) {
	w := newWorld(t,
		"P  ",
		"###",
	)
	snap := w.Capture()

	wide := snap
	wide.Width = 4
	require.ErrorIs(t, w.Restore(wide), core.ErrSnapshotMismatch)

	short := snap
	short.Tiles = []string{"   ", "##"}
	require.ErrorIs(t, w.Restore(short), core.ErrSnapshotMismatch)

	missing := snap
	missing.Tiles = snap.Tiles[:1]
	require.ErrorIs(t, w.Restore(missing), core.ErrSnapshotMismatch)
}

func TestRestoreRejectsOutOfBoundsEntities(t *testing.T) {
	w := newWorld(t, chaseLevel...)
	snap := w.Capture()
	before := w.Hash()

	tests := []struct {
		name   string
		mutate func(s *core.Snapshot)
	}{
		{"player", func(s *core.Snapshot) { s.Player.X = -1 }},
		{"player spawn", func(s *core.Snapshot) { s.PlayerSpawn.Y = 4 }},
		{"guard", func(s *core.Snapshot) { s.Guards[0].X, s.Guards[0].Y = 40, 1 }},
		{"guard spawn", func(s *core.Snapshot) { s.Guards[0].SpawnX = 10 }},
		{"hole", func(s *core.Snapshot) { s.Holes = []core.SnapshotHole{{X: 3, Y: 9, OpenRemaining: 5}} }},
		{"dig", func(s *core.Snapshot) { s.Digs = []core.SnapshotDig{{X: -2, Y: 3, TicksRemaining: 2, TotalTicks: 5}} }},
		{"hidden ladder", func(s *core.Snapshot) { s.HiddenLadders = []core.Coord{core.C(10, 0)} }},
		{"exit column", func(s *core.Snapshot) { s.ExitColumns = []int{12} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bad := snap
			bad.Guards = append([]core.SnapshotGuard(nil), snap.Guards...)
			tc.mutate(&bad)

			require.ErrorIs(t, w.Restore(bad), core.ErrSnapshotMismatch)
			assert.Equal(t, before, w.Hash(), "a rejected snapshot leaves the world untouched")
			assert.NotPanics(t, func() { w.Clone().Step(core.FrameInput{}) })
		})
	}
}

func TestCaptureKeepsTimers(t *testing.T) {
	w := newWorld(t, chaseLevel...)
	digHole(w, 1, 3, 42, 7)
	w.Digs = append(w.Digs, core.RestoreDig(2, 3, 3, 5))
	w.Guards[0].CarryingGold = true
	w.Guards[0].CarryTimer = 12
	w.Guards[0].SeparationTimer = 4

	snap := w.Capture()

	require.Len(t, snap.Holes, 1)
	assert.Equal(t, core.SnapshotHole{X: 1, Y: 3, OpenRemaining: 42, CloseRemaining: 7}, snap.Holes[0])
	require.Len(t, snap.Digs, 1)
	assert.Equal(t, core.SnapshotDig{X: 2, Y: 3, TicksRemaining: 3, TotalTicks: 5}, snap.Digs[0])
	require.Len(t, snap.Guards, 1)
	assert.True(t, snap.Guards[0].CarryingGold)
	assert.Equal(t, 12, snap.Guards[0].CarryTimer)
	assert.Equal(t, 4, snap.Guards[0].SeparationTimer)
	assert.Equal(t, " ", snap.Tiles[3][1:2])
}
