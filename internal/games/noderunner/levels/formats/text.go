// Package formats provides the level file parsers.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

// DefaultName is used when a level file carries no name line.
const DefaultName = "Unnamed Node"

// ErrEmptyLevel is returned when a file holds no map rows.
var ErrEmptyLevel = errors.New("level has no rows")

// Level is a parsed level ready for validation.
type Level struct {
	Name          string
	Author        string
	Rows          []string
	HiddenLadders []core.Coord // extra hidden ladder cells from "@" lines
}

// ParseText parses the plain text level format:
//
//	# Node 1 - Name
//	@ 3,0 3,1
//	<map rows>
//
// The name line is optional. Trailing blank rows are dropped and the
// remaining rows are padded with spaces to the widest one.
func ParseText(data []byte) (Level, error) {
	var lvl Level

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case lvl.Name == "" && len(lvl.Rows) == 0 && isNameLine(line):
			lvl.Name = strings.TrimSpace(line[1:])
		case strings.HasPrefix(line, "@ "):
			lvl.HiddenLadders = append(lvl.HiddenLadders, parseCoords(line[2:])...)
		default:
			lvl.Rows = append(lvl.Rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return Level{}, err
	}

	lvl.Rows = normalizeRows(lvl.Rows)
	if len(lvl.Rows) == 0 {
		return Level{}, ErrEmptyLevel
	}
	if lvl.Name == "" {
		lvl.Name = DefaultName
	}
	return lvl, nil
}

// isNameLine tells "# Node 1 - Genesis" apart from a map row that starts
// with brick. Map rows only hold glyphs, and the only letters among them
// are H, P, E and T.
func isNameLine(line string) bool {
	if !strings.HasPrefix(line, "#") {
		return false
	}
	for _, r := range line[1:] {
		if unicode.IsLetter(r) && !strings.ContainsRune("HPET", r) {
			return true
		}
	}
	return false
}

// parseCoords reads "x,y" pairs separated by whitespace. Malformed pairs
// are ignored.
func parseCoords(s string) []core.Coord {
	var out []core.Coord
	for _, pair := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			continue
		}
		x, errX := strconv.Atoi(xs)
		y, errY := strconv.Atoi(ys)
		if errX != nil || errY != nil || x < 0 || y < 0 {
			continue
		}
		out = append(out, core.C(x, y))
	}
	return out
}

func normalizeRows(rows []string) []string {
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	width := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > width {
			width = n
		}
	}
	for i, r := range rows {
		if n := len([]rune(r)); n < width {
			rows[i] = r + strings.Repeat(" ", width-n)
		}
	}
	return rows
}

// FormatExtensions returns the single-level file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}
