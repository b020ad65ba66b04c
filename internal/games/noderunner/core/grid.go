package core

// TileGrid is a rectangular layer of tiles.
// Tiles are stored in row-major order: index = y*W + x.
type TileGrid struct {
	W     int
	H     int
	Tiles []Tile
}

// NewTileGrid creates a grid of the given size filled with TileEmpty.
func NewTileGrid(w, h int) *TileGrid {
	return &TileGrid{W: w, H: h, Tiles: make([]Tile, w*h)}
}

// InBounds returns true if (x, y) is inside the grid.
func (g *TileGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the tile at (x, y).
// Out-of-bounds cells read as TileConcrete so map edges behave as walls.
func (g *TileGrid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileConcrete
	}
	return g.Tiles[y*g.W+x]
}

// Set stores a tile at (x, y). Out-of-bounds writes are ignored.
func (g *TileGrid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.Tiles[y*g.W+x] = t
	}
}

// CopyFrom overwrites the grid contents with src. Both grids must have the same size.
func (g *TileGrid) CopyFrom(src *TileGrid) {
	copy(g.Tiles, src.Tiles)
}

// Clone returns a deep copy of the grid.
func (g *TileGrid) Clone() *TileGrid {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &TileGrid{W: g.W, H: g.H, Tiles: tiles}
}

// Count returns how many cells hold tile t.
func (g *TileGrid) Count(t Tile) int {
	n := 0
	for _, v := range g.Tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Rows renders the grid as one string per row using Tile.Rune.
func (g *TileGrid) Rows() []string {
	rows := make([]string, g.H)
	buf := make([]rune, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			buf[x] = g.Tiles[y*g.W+x].Rune()
		}
		rows[y] = string(buf)
	}
	return rows
}

// HoleGrid marks the cells that hold an active hole.
// It is derived data: build it with BuildHoleGrid, never edit it in place.
type HoleGrid struct {
	W     int
	H     int
	cells []bool
}

// BuildHoleGrid derives the hole grid from a hole list.
func BuildHoleGrid(holes []Hole, w, h int) HoleGrid {
	hg := HoleGrid{W: w, H: h, cells: make([]bool, w*h)}
	for _, hole := range holes {
		if hole.IsActive() && hole.X >= 0 && hole.X < w && hole.Y >= 0 && hole.Y < h {
			hg.cells[hole.Y*w+hole.X] = true
		}
	}
	return hg
}

// At reports whether (x, y) holds an active hole. Out of bounds is false.
func (hg HoleGrid) At(x, y int) bool {
	if x < 0 || x >= hg.W || y < 0 || y >= hg.H {
		return false
	}
	return hg.cells[y*hg.W+x]
}
