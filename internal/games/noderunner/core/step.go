package core

import "fmt"

const (
	messageAllGold = "All tokens mined! Escape to the top!"
	messageCleared = "Node %d Complete! +%d"
)

// Step advances the world by exactly one tick and returns what happened.
// It does nothing unless the phase is Playing.
//
// The stages run in a fixed order and each one sees the result of the
// previous: dig, dig progress, player movement, guard movement, trap
// bricks, gravity, hole traps, gold pickup, gold drop, collision, timers
// and holes, win check. A collision ends the tick early.
func (w *World) Step(in FrameInput) []Event {
	if w.Phase != PhasePlaying {
		return nil
	}

	var events []Event
	w.Tick++
	if w.MessageTimer > 0 {
		w.MessageTimer--
		if w.MessageTimer == 0 {
			w.Message = ""
		}
	}

	events = w.resolveDig(in.Dig, events)
	w.resolveDigProgress()
	w.RebuildHoleGrid()
	w.resolvePlayerMovement(in.Move)
	w.resolveGuardMovement()
	events = w.resolveTrapBricks(events)
	events = w.resolveGravity(events)
	events = w.resolveHoleTraps(events)
	events = w.resolveGoldPickup(events)
	events = w.resolveGoldDrop(events)

	var killed bool
	if events, killed = w.resolveCollision(events); killed {
		return events
	}
	events = w.resolveTimers(events)
	events = w.resolveWin(events)
	return events
}

// playerInClosingHole reports whether the player stands in a hole that is
// filling in. Such a player can neither move nor fall.
func (w *World) playerInClosingHole() bool {
	if !w.Player.Alive {
		return false
	}
	for i := range w.holes {
		h := &w.holes[i]
		if h.X == w.Player.X && h.Y == w.Player.Y && h.IsClosing() {
			return true
		}
	}
	return false
}

// canDropGoldAt reports whether gold may rest at (x, y): an empty cell on
// the bottom row, on solid ground, or on top of a trapped guard.
func (w *World) canDropGoldAt(x, y int) bool {
	if !w.tiles.InBounds(x, y) || w.tiles.At(x, y) != TileEmpty {
		return false
	}
	if y+1 >= w.Height {
		return true
	}
	return w.tiles.At(x, y+1).Solid() || w.Terrain().TrappedGuardAt(x, y+1, NoGuard)
}

func (w *World) playerDie() {
	w.Player.Alive = false
	w.Phase = PhaseDying
}

func (w *World) resolveDig(dir DigDir, events []Event) []Event {
	if dir == DigNone {
		return events
	}
	p := &w.Player
	target, ok := CanDig(w.tiles, p.X, p.Y, p.State, dir.Facing())
	if !ok {
		return events
	}
	for _, d := range w.Digs {
		if d.X == target.X && d.Y == target.Y {
			return events
		}
	}
	if _, exists := w.HoleAt(target.X, target.Y); exists {
		return events
	}
	// Digging out from under gold is not allowed.
	if target.Y > 0 && w.tiles.At(target.X, target.Y-1) == TileGold {
		return events
	}
	w.Digs = append(w.Digs, NewDig(target.X, target.Y, w.Speed.DigDuration))
	return append(events, cellEvent(EventHoleCreated, target.X, target.Y))
}

func (w *World) resolveDigProgress() {
	var completed []int
	for i := range w.Digs {
		d := &w.Digs[i]
		if d.TicksRemaining > 0 {
			d.TicksRemaining--
		}
		if d.TicksRemaining == 0 {
			completed = append(completed, i)
		}
	}
	for k := len(completed) - 1; k >= 0; k-- {
		i := completed[k]
		d := w.Digs[i]
		w.Digs = append(w.Digs[:i], w.Digs[i+1:]...)
		w.SetTile(d.X, d.Y, TileEmpty)
		w.holes = append(w.holes, NewHole(d.X, d.Y, w.Speed.HoleOpenTicks, w.Speed.HoleCloseTicks))
	}
}

// resolvePlayerMovement applies the held direction using the tile-only
// rules. The player falls through holes and walks on guards, which is
// settled later by gravity.
func (w *World) resolvePlayerMovement(dir MoveDir) {
	p := &w.Player
	if !p.Alive || p.State == StateFalling || w.playerInClosingHole() {
		return
	}
	if p.MoveCooldown > 0 {
		p.MoveCooldown--
		return
	}
	if !CanMove(w.tiles, p.X, p.Y, p.State, dir) {
		return
	}

	dx, dy := dir.Delta()
	p.X += dx
	p.Y += dy
	if dx != 0 {
		p.Facing = facingFor(dx)
	}
	p.MoveCooldown = w.Speed.PlayerMoveRate
	p.State = w.tiles.ResolveTileState(p.X, p.Y, p.State)
	if p.State == StateFalling && w.Terrain().HasSupportForPlayer(p.X, p.Y) {
		p.State = StateOnGround
	}
}

type moveIntent struct {
	guard  int
	target Coord
	dx     int
}

// resolveGuardMovement moves guards in three passes: every guard picks an
// intent, conflicts are arbitrated in guard index order, then approved
// moves are applied together.
func (w *World) resolveGuardMovement() {
	target := w.Player.Pos()

	for i := range w.Guards {
		if w.Guards[i].SeparationTimer > 0 {
			w.Guards[i].SeparationTimer--
		}
	}

	var intents []moveIntent
	for i := range w.Guards {
		g := &w.Guards[i]
		if g.State == StateDead || g.State == StateInHole || g.State == StateFalling {
			continue
		}
		if g.MoveCooldown > 0 {
			g.MoveCooldown--
			continue
		}

		t := w.Terrain()
		var dx, dy int
		if g.SeparationTimer > 0 {
			dx, dy = SeparationDirection(t, i, target)
		} else {
			dx, dy = ChaseDirection(t, g.Pos(), g.State, target)
		}
		if dx == 0 && dy == 0 {
			continue
		}
		next := g.Pos().Add(dx, dy)
		if !w.tiles.InBounds(next.X, next.Y) || !t.At(next.X, next.Y).Passable {
			continue
		}
		intents = append(intents, moveIntent{guard: i, target: next, dx: dx})
	}

	// Trapped guards are floor and never block. Only active guards and
	// earlier approved intents do.
	t := w.Terrain()
	claimed := make([]Coord, 0, len(intents))
	approved := intents[:0]
	for _, in := range intents {
		if t.ActiveGuardAt(in.target.X, in.target.Y, in.guard) || containsCoord(claimed, in.target) {
			continue
		}
		claimed = append(claimed, in.target)
		approved = append(approved, in)
	}

	for _, in := range approved {
		g := &w.Guards[in.guard]
		g.X, g.Y = in.target.X, in.target.Y
		if in.dx != 0 {
			g.Facing = facingFor(in.dx)
		}
		g.MoveCooldown = w.Speed.GuardMoveRate
	}

	for i := range w.Guards {
		g := &w.Guards[i]
		if g.State.Sticky() {
			continue
		}
		g.State = w.Terrain().ResolveState(g.X, g.Y, g.State)
	}

	for i := range w.Guards {
		if !w.Guards[i].Active() {
			continue
		}
		for j := i + 1; j < len(w.Guards); j++ {
			if !w.Guards[j].Active() {
				continue
			}
			if w.Guards[i].Pos().Manhattan(w.Guards[j].Pos()) <= 1 {
				if w.Guards[i].SeparationTimer == 0 {
					w.Guards[i].SeparationTimer = SeparationTicks
				}
				if w.Guards[j].SeparationTimer == 0 {
					w.Guards[j].SeparationTimer = SeparationTicks
				}
			}
		}
	}
}

// resolveTrapBricks collapses a trap brick under anyone standing on it.
func (w *World) resolveTrapBricks(events []Event) []Event {
	var positions []Coord
	if w.Player.Alive {
		positions = append(positions, w.Player.Pos())
	}
	for i := range w.Guards {
		if w.Guards[i].State != StateDead {
			positions = append(positions, w.Guards[i].Pos())
		}
	}
	for _, c := range positions {
		below := c.Y + 1
		if below >= w.Height {
			continue
		}
		if w.tiles.At(c.X, below) == TileTrapBrick {
			w.SetTile(c.X, below, TileEmpty)
			events = append(events, cellEvent(EventTrapCollapsed, c.X, below))
		}
	}
	return events
}

func (w *World) resolveGravity(events []Event) []Event {
	events = w.resolvePlayerGravity(events)
	return w.resolveGuardGravity(events)
}

func (w *World) resolvePlayerGravity(events []Event) []Event {
	// A player in a closing hole waits there to be buried.
	if w.playerInClosingHole() {
		return events
	}
	p := &w.Player
	wasFalling := p.State == StateFalling

	if !w.Terrain().HasSupportForPlayer(p.X, p.Y) {
		if p.Y+1 < w.Height && w.tiles.At(p.X, p.Y+1).Passable() {
			p.Y++
			p.State = StateFalling
			if !wasFalling {
				events = append(events, plainEvent(EventPlayerFallStart))
			}
		}
		return events
	}

	if p.State == StateFalling {
		p.State = w.tiles.ResolveTileState(p.X, p.Y, p.State)
		// Landed on a guard: tiles alone still say falling.
		if p.State == StateFalling {
			p.State = StateOnGround
		}
		p.MoveCooldown = 0
	}
	return events
}

func (w *World) resolveGuardGravity(events []Event) []Event {
	for i := range w.Guards {
		g := &w.Guards[i]
		if g.State.Sticky() {
			continue
		}
		t := w.Terrain()
		gx, gy := g.X, g.Y

		if t.At(gx, gy).Hole {
			if !t.TrappedGuardAt(gx, gy, i) {
				events = w.guardEnterHole(events, i, gx, gy-1)
				continue
			}
			// Someone is already trapped here: ride on top.
			if g.State == StateFalling {
				g.State = StateOnGround
			}
			continue
		}

		if t.HasSupportForGuard(gx, gy, i) {
			if g.State == StateFalling {
				g.State = StateOnGround
			}
			continue
		}

		ny := gy + 1
		if ny >= w.Height {
			g.State = StateOnGround
			continue
		}
		below := t.At(gx, ny)
		switch {
		case !below.Passable:
			g.State = StateOnGround
		case below.Hole && !t.TrappedGuardAt(gx, ny, NoGuard):
			g.Y = ny
			events = w.guardEnterHole(events, i, gx, gy)
		case below.Hole:
			g.State = StateOnGround
		default:
			g.Y = ny
			g.State = StateFalling
		}
	}
	return events
}

// guardEnterHole traps guard idx. A gold carrier drops its gold at
// (holeX, dropY) when that cell can take it, otherwise it keeps carrying.
// A negative dropY means there is no cell above the hole.
func (w *World) guardEnterHole(events []Event, idx, holeX, dropY int) []Event {
	g := &w.Guards[idx]
	g.State = StateInHole
	g.StuckTimer = w.Speed.TrapEscapeTicks
	events = append(events, guardEvent(EventGuardTrapped, g.ID, g.X, g.Y))

	if g.CarryingGold && dropY >= 0 && w.canDropGoldAt(holeX, dropY) {
		w.SetTile(holeX, dropY, TileGold)
		g.CarryingGold = false
		g.CarryTimer = 0
	}
	return events
}

// resolveHoleTraps catches guards that walked sideways into a hole.
func (w *World) resolveHoleTraps(events []Event) []Event {
	for i := range w.Guards {
		g := &w.Guards[i]
		if g.State.Sticky() {
			continue
		}
		t := w.Terrain()
		if t.At(g.X, g.Y).Hole && !t.TrappedGuardAt(g.X, g.Y, i) {
			events = w.guardEnterHole(events, i, g.X, g.Y-1)
		}
	}
	return events
}

func (w *World) resolveGoldPickup(events []Event) []Event {
	p := &w.Player
	if w.tiles.At(p.X, p.Y) == TileGold {
		w.SetTile(p.X, p.Y, TileEmpty)
		w.GoldRemaining--
		w.Score += ScoreGold
		events = append(events, cellEvent(EventGoldPicked, p.X, p.Y))
		if w.GoldRemaining == 0 {
			events = append(events, plainEvent(EventAllGoldCollected))
			w.enableExit()
			events = append(events, plainEvent(EventExitEnabled))
			w.SetMessage(messageAllGold, MessageTicks)
		}
	}

	for i := range w.Guards {
		g := &w.Guards[i]
		if g.State.Sticky() || g.CarryingGold {
			continue
		}
		if w.tiles.At(g.X, g.Y) == TileGold {
			w.SetTile(g.X, g.Y, TileEmpty)
			g.CarryingGold = true
			g.CarryTimer = 0
		}
	}
	return events
}

// resolveGoldDrop makes guards give up gold they have held too long.
// Trapped guards keep counting. A failed drop is retried next tick.
func (w *World) resolveGoldDrop(events []Event) []Event {
	limit := w.Speed.GoldCarryTicks
	if limit == 0 {
		return events
	}
	for i := range w.Guards {
		g := &w.Guards[i]
		if !g.CarryingGold || g.State == StateDead {
			continue
		}
		g.CarryTimer++
		if g.CarryTimer >= limit && w.canDropGoldAt(g.X, g.Y) {
			w.SetTile(g.X, g.Y, TileGold)
			g.CarryingGold = false
			g.CarryTimer = 0
			events = append(events, cellEvent(EventGuardDroppedGold, g.X, g.Y))
		}
	}
	return events
}

// resolveCollision kills the player when an active guard shares its cell
// or stands right above it. A guard below is safe to stand on.
func (w *World) resolveCollision(events []Event) ([]Event, bool) {
	p := &w.Player
	if !p.Alive {
		return events, false
	}
	for i := range w.Guards {
		g := &w.Guards[i]
		if !g.Active() || g.X != p.X {
			continue
		}
		if g.Y == p.Y || (p.Y > 0 && g.Y == p.Y-1) {
			events = append(events, plainEvent(EventPlayerKilled))
			w.playerDie()
			return events, true
		}
	}
	return events, false
}

func (w *World) resolveTimers(events []Event) []Event {
	for i := range w.Guards {
		g := &w.Guards[i]
		if g.State == StateInHole {
			if g.StuckTimer > 0 {
				g.StuckTimer--
			}
			// Retried every tick until it works or the hole seals.
			if g.StuckTimer == 0 {
				w.tryEscape(i)
			}
		}

		if g.State == StateDead {
			g.RespawnTimer++
			if g.RespawnTimer >= w.Speed.GuardRespawnTicks && !w.cellHasLiveGuard(g.SpawnX, 1, i) {
				g.X, g.Y = g.SpawnX, 1
				g.State = StateOnGround
				g.RespawnTimer = 0
				g.CarryingGold = false
				g.CarryTimer = 0
				g.SeparationTimer = 0
				events = append(events, guardEvent(EventGuardRespawned, g.ID, g.X, g.Y))
			}
		}
	}
	return w.resolveHoles(events)
}

// cellHasLiveGuard reports whether a non-dead guard other than except is at (x, y).
func (w *World) cellHasLiveGuard(x, y, except int) bool {
	for j := range w.Guards {
		o := &w.Guards[j]
		if j != except && o.State != StateDead && o.X == x && o.Y == y {
			return true
		}
	}
	return false
}

// resolveHoles ticks every hole and seals the expired ones. Sealing kills
// the player and trapped guards in the cell and pushes other guards up.
func (w *World) resolveHoles(events []Event) []Event {
	var expired []int
	for i := range w.holes {
		if w.holes[i].Tick() {
			expired = append(expired, i)
		}
	}

	for k := len(expired) - 1; k >= 0; k-- {
		idx := expired[k]
		hx, hy := w.holes[idx].X, w.holes[idx].Y

		w.ClearTile(hx, hy)
		events = append(events, cellEvent(EventHoleFilled, hx, hy))

		if w.Player.Alive && w.Player.X == hx && w.Player.Y == hy {
			events = append(events, plainEvent(EventPlayerKilled))
			w.playerDie()
		}

		for i := range w.Guards {
			g := &w.Guards[i]
			if g.X != hx || g.Y != hy {
				continue
			}
			switch g.State {
			case StateInHole:
				g.State = StateDead
				g.RespawnTimer = 0
				w.Score += ScoreGuardKill
				events = append(events, guardEvent(EventGuardKilled, g.ID, hx, hy))
				if g.CarryingGold {
					g.CarryingGold = false
					g.CarryTimer = 0
					if hy > 0 && w.canDropGoldAt(hx, hy-1) {
						w.SetTile(hx, hy-1, TileGold)
					}
				}
			case StateDead:
			default:
				if hy > 0 && w.tiles.At(hx, hy-1).Passable() {
					g.Y--
				}
			}
		}
		w.holes = append(w.holes[:idx], w.holes[idx+1:]...)
	}

	if len(expired) > 0 {
		w.RebuildHoleGrid()
	}
	return events
}

// tryEscape climbs guard i out of its hole onto a diagonal cell above,
// trying the side facing the player first.
func (w *World) tryEscape(i int) {
	g := &w.Guards[i]
	gx, gy := g.X, g.Y
	if gy == 0 {
		return
	}

	dirs := [2]int{-1, 1}
	if w.Player.X > gx {
		dirs = [2]int{1, -1}
	}

	for _, dx := range dirs {
		ex, ey := gx+dx, gy-1
		if ex < 0 || ex >= w.Width {
			continue
		}
		t := w.Terrain()
		if !t.At(ex, ey).Passable || !t.HasSupport(ex, ey) || w.cellHasLiveGuard(ex, ey, i) {
			continue
		}

		g.X, g.Y = ex, ey
		g.State = StateOnGround
		g.Facing = facingFor(dx)

		// The cell above the hole is free now, so the gold can't land
		// under the guard's feet.
		if g.CarryingGold && w.canDropGoldAt(gx, gy-1) {
			w.SetTile(gx, gy-1, TileGold)
			g.CarryingGold = false
			g.CarryTimer = 0
		}

		g.State = w.Terrain().ResolveState(ex, ey, g.State)
		return
	}
}

func (w *World) resolveWin(events []Event) []Event {
	if !w.Player.Alive || !w.ExitEnabled || w.Player.Y != 0 {
		return events
	}
	w.Phase = PhaseLevelOutro
	w.Score += ScoreStage
	events = append(events, plainEvent(EventStageCleared))
	w.SetMessage(fmt.Sprintf(messageCleared, w.Level+1, ScoreStage), MessageTicks)
	return events
}

// enableExit reveals the way out once the last gold is taken. Explicit
// hidden ladder cells win; otherwise ladders in the exit columns (or in
// every ladder column) are extended up to row 0.
func (w *World) enableExit() {
	w.ExitEnabled = true

	if len(w.HiddenLadders) > 0 {
		for _, c := range w.HiddenLadders {
			if w.tiles.InBounds(c.X, c.Y) && w.tiles.At(c.X, c.Y) == TileEmpty {
				w.SetTile(c.X, c.Y, TileHiddenLadder)
			}
		}
		return
	}

	columns := w.ExitColumns
	if len(columns) == 0 {
		columns = w.ladderColumns()
	}
	if !w.extendLadders(columns) && len(w.ExitColumns) > 0 {
		w.extendLadders(w.ladderColumns())
	}
}

// ladderColumns returns every column that holds a climbable tile.
func (w *World) ladderColumns() []int {
	var cols []int
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if w.tiles.At(x, y).Climbable() {
				cols = append(cols, x)
				break
			}
		}
	}
	return cols
}

// extendLadders stamps hidden ladders on the empty cells above the topmost
// ladder of each column. It reports whether anything was placed.
func (w *World) extendLadders(columns []int) bool {
	placed := false
	for _, x := range columns {
		top := -1
		for y := 0; y < w.Height; y++ {
			if w.tiles.At(x, y).Climbable() {
				top = y
				break
			}
		}
		for y := 0; y < top; y++ {
			if w.tiles.At(x, y) == TileEmpty {
				w.SetTile(x, y, TileHiddenLadder)
				placed = true
			}
		}
	}
	return placed
}
