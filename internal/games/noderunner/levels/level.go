// Package levels loads Node Runner levels from text, YAML and pack files.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels/formats"
)

var (
	ErrEmptyLevel   = formats.ErrEmptyLevel
	ErrNoPlayer     = errors.New("level has no player spawn")
	ErrManyPlayers  = errors.New("level has more than one player spawn")
	ErrNothingToWin = errors.New("level has no gold and no exit marker")
)

// Glyphs used by the level formats.
const (
	GlyphEmpty        = ' '
	GlyphBrick        = '#'
	GlyphConcrete     = '='
	GlyphLadder       = 'H'
	GlyphRope         = '-'
	GlyphGold         = '$'
	GlyphTrapBrick    = 'T'
	GlyphPlayer       = 'P'
	GlyphGuard        = 'E'
	GlyphExitColumn   = '^'
	GlyphHiddenLadder = '~'
)

// Level is a level definition as read from disk or the built-in pack.
type Level struct {
	ID            string
	Name          string
	Author        string
	Rows          []string
	HiddenLadders []core.Coord
	FilePath      string
}

func fromParsed(id, path string, p formats.Level) Level {
	return Level{
		ID:            id,
		Name:          p.Name,
		Author:        p.Author,
		Rows:          p.Rows,
		HiddenLadders: p.HiddenLadders,
		FilePath:      path,
	}
}

// Width returns the number of columns.
func (l *Level) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len([]rune(l.Rows[0]))
}

// Height returns the number of rows.
func (l *Level) Height() int { return len(l.Rows) }

// Count returns how many cells hold glyph g.
func (l *Level) Count(g rune) int {
	n := 0
	for _, row := range l.Rows {
		for _, r := range row {
			if r == g {
				n++
			}
		}
	}
	return n
}

// Validate checks that the level can be played: a non-empty grid, exactly
// one player spawn, and something to finish the level with.
func (l *Level) Validate() error {
	if l.Width() == 0 || l.Height() == 0 {
		return ErrEmptyLevel
	}
	for y, row := range l.Rows {
		if n := len([]rune(row)); n != l.Width() {
			return fmt.Errorf("row %d has %d cells, want %d", y, n, l.Width())
		}
	}
	switch n := l.Count(GlyphPlayer); {
	case n == 0:
		return ErrNoPlayer
	case n > 1:
		return fmt.Errorf("%w: found %d", ErrManyPlayers, n)
	}
	if l.Count(GlyphGold) == 0 && l.Count(GlyphExitColumn) == 0 && l.Count(GlyphHiddenLadder) == 0 && len(l.HiddenLadders) == 0 {
		return ErrNothingToWin
	}
	return nil
}

// Data converts the level into simulation input.
func (l *Level) Data() (core.LevelData, error) {
	if err := l.Validate(); err != nil {
		return core.LevelData{}, fmt.Errorf("level %q: %w", l.Name, err)
	}

	data := core.LevelData{
		Name:   l.Name,
		Width:  l.Width(),
		Height: l.Height(),
	}
	data.Tiles = make([]core.Tile, data.Width*data.Height)
	for y, row := range l.Rows {
		for x, r := range []rune(row) {
			t := core.TileEmpty
			switch r {
			case GlyphBrick:
				t = core.TileBrick
			case GlyphConcrete:
				t = core.TileConcrete
			case GlyphLadder:
				t = core.TileLadder
			case GlyphRope:
				t = core.TileRope
			case GlyphGold:
				t = core.TileGold
			case GlyphTrapBrick:
				t = core.TileTrapBrick
			case GlyphPlayer:
				data.PlayerSpawn = core.C(x, y)
			case GlyphGuard:
				data.GuardSpawns = append(data.GuardSpawns, core.C(x, y))
			case GlyphExitColumn:
				data.ExitColumns = append(data.ExitColumns, x)
			case GlyphHiddenLadder:
				data.HiddenLadders = append(data.HiddenLadders, core.C(x, y))
			}
			data.Tiles[y*data.Width+x] = t
		}
	}
	data.HiddenLadders = append(data.HiddenLadders, l.HiddenLadders...)
	return data, nil
}
