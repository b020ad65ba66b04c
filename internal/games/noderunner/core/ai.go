package core

import "math"

// bfsMaxNodes bounds the chase search so one tick always finishes in
// bounded work, whatever the map looks like.
const bfsMaxNodes = 300

// SeparationTicks is how long guards stay in separation mode after contact.
const SeparationTicks = 10

// Search order: left, right, up, down. Ties resolve to the earlier entry.
var aiDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

type bfsNode struct {
	x, y     int
	fdx, fdy int // first step taken from the guard
}

// ChaseDirection returns the first step of a shortest path from the guard
// at from to the player at to. The search walks legal guard moves. Cells
// without support only expand downward, since falling is not a choice.
// When the node budget runs out it falls back to a greedy step.
func ChaseDirection(t Terrain, from Coord, state ActorState, to Coord) (dx, dy int) {
	if state.Sticky() || from == to {
		return 0, 0
	}

	w, h := t.Width(), t.Height()
	visited := make([]bool, w*h)
	visited[from.Y*w+from.X] = true
	queue := make([]bfsNode, 0, 256)

	for _, d := range aiDirs {
		n, ok := guardStep(t, from.X, from.Y, d[0], d[1])
		if !ok {
			continue
		}
		if n == to {
			return d[0], d[1]
		}
		if !visited[n.Y*w+n.X] {
			visited[n.Y*w+n.X] = true
			queue = append(queue, bfsNode{n.X, n.Y, d[0], d[1]})
		}
	}

	steps := 0
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		steps++
		if steps > bfsMaxNodes {
			break
		}

		if !t.HasSupport(cur.x, cur.y) {
			ny := cur.y + 1
			if ny < h && t.At(cur.x, ny).Passable && !visited[ny*w+cur.x] {
				if cur.x == to.X && ny == to.Y {
					return cur.fdx, cur.fdy
				}
				visited[ny*w+cur.x] = true
				queue = append(queue, bfsNode{cur.x, ny, cur.fdx, cur.fdy})
			}
			continue
		}

		for _, d := range aiDirs {
			n, ok := guardStep(t, cur.x, cur.y, d[0], d[1])
			if !ok || visited[n.Y*w+n.X] {
				continue
			}
			if n == to {
				return cur.fdx, cur.fdy
			}
			visited[n.Y*w+n.X] = true
			queue = append(queue, bfsNode{n.X, n.Y, cur.fdx, cur.fdy})
		}
	}

	return fallbackChase(t, from, to)
}

// SeparationDirection steers guard idx away from the nearest other active
// guard while still drifting toward the player. Without a guard within
// distance 3, or without any legal step, it chases instead.
func SeparationDirection(t Terrain, idx int, to Coord) (dx, dy int) {
	g := &t.Guards[idx]
	if g.State.Sticky() {
		return 0, 0
	}
	from := g.Pos()

	nearestDist := math.MaxInt
	nearest := from
	for j := range t.Guards {
		other := &t.Guards[j]
		if j == idx || !other.Active() {
			continue
		}
		if d := from.Manhattan(other.Pos()); d < nearestDist {
			nearestDist = d
			nearest = other.Pos()
		}
	}
	if nearestDist > 3 {
		return ChaseDirection(t, from, g.State, to)
	}

	curGuardDist := from.Manhattan(nearest)
	curPlayerDist := from.Manhattan(to)
	bestDX, bestDY := 0, 0
	bestScore := math.MinInt
	for _, d := range aiDirs {
		n, ok := guardStep(t, from.X, from.Y, d[0], d[1])
		if !ok {
			continue
		}
		separationGain := n.Manhattan(nearest) - curGuardDist
		playerGain := curPlayerDist - n.Manhattan(to)
		if score := separationGain*10 + playerGain; score > bestScore {
			bestScore = score
			bestDX, bestDY = d[0], d[1]
		}
	}

	if bestDX == 0 && bestDY == 0 {
		return ChaseDirection(t, from, g.State, to)
	}
	return bestDX, bestDY
}

// guardStep returns the cell reached by a legal guard move from (x, y).
// Up needs a ladder, sideways needs support, and down needs a ladder or
// rope here, a ladder below, or nothing to stand on.
func guardStep(t Terrain, x, y, dx, dy int) (Coord, bool) {
	nx, ny := x+dx, y+dy
	if nx < 0 || ny < 0 || nx >= t.Width() || ny >= t.Height() {
		return Coord{}, false
	}
	if !t.At(nx, ny).Passable {
		return Coord{}, false
	}

	here := t.At(x, y)
	if dy < 0 && !here.Climbable {
		return Coord{}, false
	}
	if dy > 0 && y+1 < t.Height() {
		below := t.At(x, y+1)
		if !here.Climbable && !here.Hangable && !below.Climbable && t.HasSupport(x, y) {
			return Coord{}, false
		}
	}
	if dx != 0 && !t.HasSupport(x, y) {
		return Coord{}, false
	}
	return C(nx, ny), true
}

// fallbackChase walks toward the player's column, or climbs toward the
// player's row when standing on a ladder.
func fallbackChase(t Terrain, from, to Coord) (dx, dy int) {
	if sx := sign(to.X - from.X); sx != 0 {
		if t.At(from.X+sx, from.Y).Passable {
			return sx, 0
		}
	}
	if t.At(from.X, from.Y).Climbable {
		if sy := sign(to.Y - from.Y); sy != 0 && t.At(from.X, from.Y+sy).Passable {
			return 0, sy
		}
	}
	return 0, 0
}
