package levels

import "strings"

// Pack is an ordered list of levels played one after another.
type Pack struct {
	Name        string
	Author      string
	Description string
	Path        string // empty for the built-in pack
	Levels      []Level
}

// Len returns the number of levels in the pack.
func (p *Pack) Len() int { return len(p.Levels) }

// Level returns level i, if the pack has it.
func (p *Pack) Level(i int) (Level, bool) {
	if i < 0 || i >= len(p.Levels) {
		return Level{}, false
	}
	return p.Levels[i], true
}

// Names returns the level names in play order.
func (p *Pack) Names() []string {
	names := make([]string, len(p.Levels))
	for i := range p.Levels {
		names[i] = p.Levels[i].Name
	}
	return names
}

// FindPack looks a pack up by name, ignoring case. An empty name selects
// the first pack.
func FindPack(packs []Pack, name string) (Pack, bool) {
	if len(packs) == 0 {
		return Pack{}, false
	}
	if name == "" {
		return packs[0], true
	}
	for _, p := range packs {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Pack{}, false
}
