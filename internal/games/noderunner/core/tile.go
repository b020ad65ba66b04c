package core

// Tile is the kind of terrain in one grid cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileBrick
	TileConcrete
	TileLadder
	TileRope
	TileGold
	TileHiddenLadder // revealed when the last gold is picked up
	TileTrapBrick    // looks like brick, collapses when stood on
)

// Solid reports whether the tile blocks movement.
func (t Tile) Solid() bool {
	return t == TileBrick || t == TileConcrete || t == TileTrapBrick
}

// Diggable reports whether a hole can be dug into the tile.
// Concrete and trap bricks can't be dug.
func (t Tile) Diggable() bool {
	return t == TileBrick
}

// Climbable reports whether the tile can be climbed up and down.
func (t Tile) Climbable() bool {
	return t == TileLadder || t == TileHiddenLadder
}

// Hangable reports whether an actor can hang from the tile.
func (t Tile) Hangable() bool {
	return t == TileRope
}

// Passable reports whether an actor can occupy the tile.
func (t Tile) Passable() bool {
	return !t.Solid()
}

// String returns the string representation of a tile.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileBrick:
		return "Brick"
	case TileConcrete:
		return "Concrete"
	case TileLadder:
		return "Ladder"
	case TileRope:
		return "Rope"
	case TileGold:
		return "Gold"
	case TileHiddenLadder:
		return "HiddenLadder"
	case TileTrapBrick:
		return "TrapBrick"
	default:
		return "Unknown"
	}
}

// Rune returns the character used for the tile in snapshots.
func (t Tile) Rune() rune {
	switch t {
	case TileBrick:
		return '#'
	case TileConcrete:
		return '='
	case TileLadder:
		return 'H'
	case TileRope:
		return '-'
	case TileGold:
		return '$'
	case TileHiddenLadder:
		return '%'
	case TileTrapBrick:
		return 'T'
	default:
		return ' '
	}
}

// TileFromRune is the inverse of Tile.Rune. Unknown runes map to TileEmpty.
func TileFromRune(r rune) Tile {
	switch r {
	case '#':
		return TileBrick
	case '=':
		return TileConcrete
	case 'H':
		return TileLadder
	case '-':
		return TileRope
	case '$':
		return TileGold
	case '%':
		return TileHiddenLadder
	case 'T':
		return TileTrapBrick
	default:
		return TileEmpty
	}
}
