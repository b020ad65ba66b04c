package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

func TestStepOnlyRunsWhilePlaying(t *testing.T) {
	w := newWorld(t,
		" P ",
		"###",
	)
	for _, p := range []core.Phase{core.PhaseLevelIntro, core.PhaseLevelReady, core.PhaseDying, core.PhaseGameOver} {
		w.Phase = p
		before := w.Hash()
		assert.Nil(t, w.Step(core.FrameInput{Move: core.MoveLeft}), p.String())
		assert.Equal(t, before, w.Hash(), p.String())
		assert.Equal(t, uint64(0), w.Tick)
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	w := core.NewWorld(core.DefaultSpeed())
	err := w.Load(core.LevelData{Width: 2, Height: 2, Tiles: make([]core.Tile, 3)})
	require.ErrorIs(t, err, core.ErrInvalidLevel)

	err = w.Load(core.LevelData{Width: 2, Height: 1, Tiles: make([]core.Tile, 2), PlayerSpawn: core.C(2, 0)})
	require.ErrorIs(t, err, core.ErrInvalidLevel)
}

func TestLoadInitialState(t *testing.T) {
	w := core.NewWorld(core.DefaultSpeed())
	data := levelFromRows(
		"^ $  ",
		" P$E ",
		"#####",
	)
	data.Name = "Node 9 - Test"
	require.NoError(t, w.Load(data))

	assert.Equal(t, core.PhaseLevelIntro, w.Phase)
	assert.Equal(t, 2, w.GoldRemaining)
	assert.Equal(t, 2, w.GoldTotal)
	assert.Equal(t, []int{0}, w.ExitColumns)
	assert.Equal(t, core.C(1, 1), w.Player.Pos())
	require.Len(t, w.Guards, 1)
	assert.Equal(t, core.C(3, 1), w.Guards[0].Pos())
	assert.Equal(t, core.DefaultSpeed().GuardMoveRate, w.Guards[0].MoveCooldown)
	assert.Equal(t, "Node 9 - Test", w.Message)
	assert.Equal(t, 5, w.Lives)
}

func TestDigOpensHoleAfterDuration(t *testing.T) {
	w := newWorld(t,
		"     ",
		" P   ",
		"#####",
	)

	events := w.Step(core.FrameInput{Dig: core.DigRight})
	e, ok := findEvent(events, core.EventHoleCreated)
	require.True(t, ok)
	assert.Equal(t, core.C(2, 2), core.C(e.X, e.Y))

	stepN(w, 3, core.FrameInput{})
	assert.Equal(t, core.TileBrick, w.Tile(2, 2), "brick stays solid while digging")
	assert.Len(t, w.Digs, 1)

	w.Step(core.FrameInput{})
	assert.Equal(t, core.TileEmpty, w.Tile(2, 2))
	assert.Empty(t, w.Digs)
	h, ok := w.HoleAt(2, 2)
	require.True(t, ok)
	assert.True(t, h.IsActive())
	assert.True(t, w.HoleGrid().At(2, 2))
	assert.Equal(t, core.C(1, 1), w.Player.Pos(), "digging does not move the player")
}

func TestDigRepeatedOnSameCellIsIgnored(t *testing.T) {
	w := newWorld(t,
		"     ",
		" P   ",
		"#####",
	)
	events := stepN(w, 3, core.FrameInput{Dig: core.DigRight})

	n := 0
	for _, e := range events {
		if e.Kind == core.EventHoleCreated {
			n++
		}
	}
	assert.Equal(t, 1, n)
	assert.Len(t, w.Digs, 1)
}

func TestCannotDigUnderGold(t *testing.T) {
	w := newWorld(t,
		" P$ ",
		"####",
	)
	events := w.Step(core.FrameInput{Dig: core.DigRight})
	assert.False(t, hasEvent(events, core.EventHoleCreated))
	assert.Empty(t, w.Digs)
}

func TestPlayerMoveCooldown(t *testing.T) {
	w := newWorld(t,
		"P    ",
		"#####",
	)
	right := core.FrameInput{Move: core.MoveRight}

	w.Step(right)
	assert.Equal(t, 1, w.Player.X)
	assert.Equal(t, core.FacingRight, w.Player.Facing)

	stepN(w, 2, right)
	assert.Equal(t, 1, w.Player.X, "waiting out the cooldown")

	w.Step(right)
	assert.Equal(t, 2, w.Player.X)

	stepN(w, 3, core.FrameInput{Move: core.MoveLeft})
	assert.Equal(t, 1, w.Player.X)
	assert.Equal(t, core.FacingLeft, w.Player.Facing)
}

func TestGuardDropsGoldIntoHoleWhenTrapped(t *testing.T) {
	w := newWorld(t,
		"      ",
		" E  P ",
		"######",
	)
	digHole(w, 2, 2, 100, 20)
	w.Guards[0].MoveCooldown = 0
	w.Guards[0].CarryingGold = true

	events := w.Step(core.FrameInput{})

	g := w.Guards[0]
	assert.Equal(t, core.C(2, 2), g.Pos())
	assert.Equal(t, core.StateInHole, g.State)
	assert.Equal(t, core.DefaultSpeed().TrapEscapeTicks-1, g.StuckTimer)
	assert.False(t, g.CarryingGold)
	assert.Equal(t, core.TileGold, w.Tile(2, 1), "gold rests on the trapped guard")

	e, ok := findEvent(events, core.EventGuardTrapped)
	require.True(t, ok)
	assert.Equal(t, 0, e.GuardID)
	assert.Equal(t, core.C(2, 2), core.C(e.X, e.Y))
}

func TestTrappedGuardEscapesTowardPlayer(t *testing.T) {
	w := newWorld(t,
		"      ",
		"    P ",
		"##E###",
		"######",
	)
	w.AddHole(core.NewHole(2, 2, 100, 20))
	w.Guards[0].State = core.StateInHole
	w.Guards[0].StuckTimer = 1

	w.Step(core.FrameInput{})

	g := w.Guards[0]
	assert.Equal(t, core.C(3, 1), g.Pos())
	assert.Equal(t, core.StateOnGround, g.State)
	assert.Equal(t, core.FacingRight, g.Facing)
}

func TestBlockedEscapeIsRetried(t *testing.T) {
	w := newWorld(t,
		"      ",
		"    P ",
		"##E###",
		"######",
	)
	w.AddHole(core.NewHole(2, 2, 100, 20))
	w.Guards[0].State = core.StateInHole
	w.Guards[0].StuckTimer = 1
	w.SetTile(1, 1, core.TileBrick)
	w.SetTile(3, 1, core.TileBrick)

	w.Step(core.FrameInput{})
	assert.Equal(t, core.StateInHole, w.Guards[0].State)
	assert.Equal(t, core.C(2, 2), w.Guards[0].Pos())
	assert.Equal(t, 0, w.Guards[0].StuckTimer)

	w.ClearTile(3, 1)
	w.Step(core.FrameInput{})
	assert.Equal(t, core.C(3, 1), w.Guards[0].Pos())
	assert.Equal(t, core.StateOnGround, w.Guards[0].State)
}

func TestLastGoldRevealsHiddenLadders(t *testing.T) {
	w := newWorld(t,
		"  ~   ",
		"  ~   ",
		"  H   ",
		"P$H   ",
		"######",
	)

	events := w.Step(core.FrameInput{Move: core.MoveRight})

	assert.True(t, hasEvent(events, core.EventGoldPicked))
	assert.True(t, hasEvent(events, core.EventAllGoldCollected))
	assert.True(t, hasEvent(events, core.EventExitEnabled))
	assert.True(t, w.ExitEnabled)
	assert.Equal(t, 0, w.GoldRemaining)
	assert.Equal(t, core.ScoreGold, w.Score)
	assert.Equal(t, core.TileHiddenLadder, w.Tile(2, 0))
	assert.Equal(t, core.TileHiddenLadder, w.Tile(2, 1))
	assert.Equal(t, "All tokens mined! Escape to the top!", w.Message)
}

func TestClimbingOutClearsStage(t *testing.T) {
	w := newWorld(t,
		"  ~   ",
		"  ~   ",
		"  H   ",
		"P$H   ",
		"######",
	)

	var events []core.Event
	for i := 0; i < 60 && w.Phase == core.PhasePlaying; i++ {
		in := core.FrameInput{Move: core.MoveUp}
		if w.Player.X < 2 {
			in.Move = core.MoveRight
		}
		events = append(events, w.Step(in)...)
	}

	assert.Equal(t, core.PhaseLevelOutro, w.Phase)
	assert.Equal(t, 0, w.Player.Y)
	assert.True(t, hasEvent(events, core.EventStageCleared))
	assert.Equal(t, core.ScoreGold+core.ScoreStage, w.Score)
	assert.Equal(t, "Node 1 Complete! +500", w.Message)
}

func TestExitColumnWithoutLadderFallsBackToAuto(t *testing.T) {
	w := newWorld(t,
		"^     ",
		"      ",
		"   H  ",
		"P$ H  ",
		"######",
	)
	w.Step(core.FrameInput{Move: core.MoveRight})

	require.True(t, w.ExitEnabled)
	assert.Equal(t, core.TileEmpty, w.Tile(0, 0))
	assert.Equal(t, core.TileHiddenLadder, w.Tile(3, 0))
	assert.Equal(t, core.TileHiddenLadder, w.Tile(3, 1))
}

func TestExitWithoutMarkersExtendsEveryLadder(t *testing.T) {
	w := newWorld(t,
		"      ",
		"     H",
		"   H H",
		"P$ H H",
		"######",
	)
	w.Step(core.FrameInput{Move: core.MoveRight})

	require.True(t, w.ExitEnabled)
	for _, c := range []core.Coord{core.C(3, 0), core.C(3, 1), core.C(5, 0)} {
		assert.Equal(t, core.TileHiddenLadder, w.Tile(c.X, c.Y), "cell %v", c)
	}
}

func TestAdjacentGuardsEnterSeparation(t *testing.T) {
	w := newWorld(t,
		"EE  P ",
		"######",
	)

	w.Step(core.FrameInput{})
	assert.Equal(t, core.SeparationTicks, w.Guards[0].SeparationTimer)
	assert.Equal(t, core.SeparationTicks, w.Guards[1].SeparationTimer)

	w.Guards[0].MoveCooldown = 0
	w.Guards[1].MoveCooldown = 0
	w.Step(core.FrameInput{})

	assert.Equal(t, core.SeparationTicks-1, w.Guards[0].SeparationTimer)
	// Guard 0 wants guard 1's cell, which is still occupied during arbitration.
	assert.Equal(t, core.C(0, 0), w.Guards[0].Pos())
	assert.Equal(t, core.C(2, 0), w.Guards[1].Pos())
}

func TestLowerGuardIndexWinsContestedCell(t *testing.T) {
	w := newWorld(t,
		" EHE ",
		"##H##",
		"  P  ",
		"=====",
	)
	w.Guards[0].MoveCooldown = 0
	w.Guards[1].MoveCooldown = 0

	w.Step(core.FrameInput{})

	// both guards head for the ladder top at (2,0)
	assert.Equal(t, core.C(2, 0), w.Guards[0].Pos())
	assert.Equal(t, core.C(3, 0), w.Guards[1].Pos())
	assert.Equal(t, w.Speed.GuardMoveRate, w.Guards[0].MoveCooldown)
	assert.Zero(t, w.Guards[1].MoveCooldown, "a refused move keeps the guard ready")
}

func TestTrappedGuardDoesNotBlockMove(t *testing.T) {
	w := newWorld(t,
		"      ",
		" EE  P",
		"======",
	)
	digHole(w, 2, 1, 100, 20)
	trapped := &w.Guards[1]
	trapped.State = core.StateInHole
	trapped.StuckTimer = 50
	w.Guards[0].MoveCooldown = 0

	w.Step(core.FrameInput{})

	assert.Equal(t, core.C(2, 1), w.Guards[0].Pos())
	assert.Equal(t, core.C(2, 1), w.Guards[1].Pos())
	assert.Equal(t, core.StateInHole, w.Guards[1].State)
}

func TestGuardPicksUpGold(t *testing.T) {
	w := newWorld(t,
		"E$  P",
		"#####",
	)
	w.Guards[0].MoveCooldown = 0

	w.Step(core.FrameInput{})

	assert.Equal(t, core.C(1, 0), w.Guards[0].Pos())
	assert.True(t, w.Guards[0].CarryingGold)
	assert.Equal(t, core.TileEmpty, w.Tile(1, 0))
	assert.Equal(t, 1, w.GoldRemaining, "carried gold still counts as remaining")
}

func TestGuardDropsGoldAfterCarryLimit(t *testing.T) {
	w := newWorld(t,
		"E  P",
		"####",
	)
	freezeGuards(w)
	w.Guards[0].CarryingGold = true
	w.Guards[0].CarryTimer = w.Speed.GoldCarryTicks - 1

	events := w.Step(core.FrameInput{})

	e, ok := findEvent(events, core.EventGuardDroppedGold)
	require.True(t, ok)
	assert.Equal(t, core.C(0, 0), core.C(e.X, e.Y))
	assert.Equal(t, core.TileGold, w.Tile(0, 0))
	assert.False(t, w.Guards[0].CarryingGold)
}

func TestGuardCollisionKillsPlayer(t *testing.T) {
	w := newWorld(t,
		" PE  ",
		"#####",
	)
	w.Guards[0].MoveCooldown = 0

	events := w.Step(core.FrameInput{})

	assert.True(t, hasEvent(events, core.EventPlayerKilled))
	assert.False(t, w.Player.Alive)
	assert.Equal(t, core.PhaseDying, w.Phase)
	assert.Nil(t, w.Step(core.FrameInput{}), "no ticks after death")
}

func TestGuardAboveKillsPlayer(t *testing.T) {
	w := newWorld(t,
		" E ",
		" P ",
		"###",
	)
	w.SetTile(1, 0, core.TileRope)
	freezeGuards(w)

	events := w.Step(core.FrameInput{})
	assert.True(t, hasEvent(events, core.EventPlayerKilled))
	assert.Equal(t, core.PhaseDying, w.Phase)
}

func TestPlayerStandsOnGuardSafely(t *testing.T) {
	w := newWorld(t,
		" P ",
		" E ",
		"###",
	)
	freezeGuards(w)

	events := stepN(w, 5, core.FrameInput{})
	assert.False(t, hasEvent(events, core.EventPlayerKilled))
	assert.True(t, w.Player.Alive)
	assert.Equal(t, core.C(1, 0), w.Player.Pos())
	assert.Equal(t, core.PhasePlaying, w.Phase)
}

func TestHoleFillKillsTrappedGuard(t *testing.T) {
	w := newWorld(t,
		"   P ",
		"#####",
	)
	g := core.NewGuard(0, 1, 1)
	g.State = core.StateInHole
	g.StuckTimer = 100
	g.CarryingGold = true
	w.Guards = append(w.Guards, g)
	digHole(w, 1, 1, 0, 1)

	events := w.Step(core.FrameInput{})

	assert.True(t, hasEvent(events, core.EventHoleFilled))
	e, ok := findEvent(events, core.EventGuardKilled)
	require.True(t, ok)
	assert.Equal(t, 0, e.GuardID)
	assert.Equal(t, core.StateDead, w.Guards[0].State)
	assert.Equal(t, core.ScoreGuardKill, w.Score)
	assert.Equal(t, core.TileBrick, w.Tile(1, 1))
	assert.Equal(t, core.TileGold, w.Tile(1, 0), "carried gold pops out on top")
	assert.Empty(t, w.Holes())
	assert.False(t, w.HoleGrid().At(1, 1))
}

func TestHoleFillPushesRidingGuardUp(t *testing.T) {
	w := newWorld(t,
		"    P",
		"#####",
	)
	trapped := core.NewGuard(0, 1, 1)
	trapped.State = core.StateInHole
	trapped.StuckTimer = 100
	rider := core.NewGuard(1, 1, 1)
	rider.MoveCooldown = 1 << 20
	w.Guards = append(w.Guards, trapped, rider)
	digHole(w, 1, 1, 0, 1)

	w.Step(core.FrameInput{})

	assert.Equal(t, core.StateDead, w.Guards[0].State)
	assert.Equal(t, core.C(1, 0), w.Guards[1].Pos())
	assert.NotEqual(t, core.StateDead, w.Guards[1].State)
}

func TestPlayerBuriedInClosingHole(t *testing.T) {
	w := newWorld(t,
		"P  ",
		"###",
		"###",
	)
	digHole(w, 1, 1, 0, 2)
	w.Player.X, w.Player.Y = 1, 1

	w.Step(core.FrameInput{Move: core.MoveLeft})
	assert.Equal(t, core.C(1, 1), w.Player.Pos(), "a closing hole holds the player")
	assert.True(t, w.Player.Alive)

	events := w.Step(core.FrameInput{})
	assert.True(t, hasEvent(events, core.EventHoleFilled))
	assert.True(t, hasEvent(events, core.EventPlayerKilled))
	assert.False(t, w.Player.Alive)
	assert.Equal(t, core.PhaseDying, w.Phase)
}

func TestTrapBrickCollapses(t *testing.T) {
	w := newWorld(t,
		" P ",
		" T ",
		"   ",
		"###",
	)

	events := w.Step(core.FrameInput{})
	e, ok := findEvent(events, core.EventTrapCollapsed)
	require.True(t, ok)
	assert.Equal(t, core.C(1, 1), core.C(e.X, e.Y))
	assert.True(t, hasEvent(events, core.EventPlayerFallStart))
	assert.Equal(t, core.C(1, 1), w.Player.Pos())
	assert.Equal(t, core.StateFalling, w.Player.State)

	events = stepN(w, 2, core.FrameInput{})
	assert.False(t, hasEvent(events, core.EventPlayerFallStart), "one fall, one event")
	assert.Equal(t, core.C(1, 2), w.Player.Pos())
	assert.Equal(t, core.StateOnGround, w.Player.State)
	assert.Equal(t, core.TileEmpty, w.Tile(1, 1))
}

func TestDeadGuardRespawns(t *testing.T) {
	w := newWorld(t,
		"P   ",
		"#  E",
		"####",
	)
	w.Guards[0].State = core.StateDead
	w.Guards[0].X, w.Guards[0].Y = 2, 1
	w.Guards[0].RespawnTimer = w.Speed.GuardRespawnTicks - 1

	events := w.Step(core.FrameInput{})

	e, ok := findEvent(events, core.EventGuardRespawned)
	require.True(t, ok)
	assert.Equal(t, 0, e.GuardID)
	assert.Equal(t, core.C(3, 1), w.Guards[0].Pos())
	assert.Equal(t, core.StateOnGround, w.Guards[0].State)
}

func TestRespawnWaitsForFreeCell(t *testing.T) {
	w := newWorld(t,
		"P    ",
		"#  EE",
		"#####",
	)
	freezeGuards(w)
	w.Guards[1].X = 3 // stands on guard 0's respawn cell
	w.Guards[0].State = core.StateDead
	w.Guards[0].X = 2
	w.Guards[0].RespawnTimer = w.Speed.GuardRespawnTicks - 1

	events := w.Step(core.FrameInput{})
	assert.False(t, hasEvent(events, core.EventGuardRespawned))
	assert.Equal(t, core.StateDead, w.Guards[0].State)
	assert.Equal(t, w.Speed.GuardRespawnTicks, w.Guards[0].RespawnTimer)
}

func TestRestartLevelRestoresTiles(t *testing.T) {
	w := newWorld(t,
		"  $  ",
		" P E ",
		"#####",
	)
	digHole(w, 2, 2, 50, 10)
	w.SetTile(2, 0, core.TileEmpty)
	w.GoldRemaining = 0
	w.Player.X = 4
	w.Guards[0].X = 0
	w.Guards[0].CarryingGold = true

	w.RestartLevel()

	assert.Equal(t, core.TileGold, w.Tile(2, 0))
	assert.Equal(t, core.TileBrick, w.Tile(2, 2))
	assert.Empty(t, w.Holes())
	assert.Equal(t, 1, w.GoldRemaining)
	assert.Equal(t, core.C(1, 1), w.Player.Pos())
	assert.Equal(t, core.C(3, 1), w.Guards[0].Pos())
	assert.False(t, w.Guards[0].CarryingGold)
}
