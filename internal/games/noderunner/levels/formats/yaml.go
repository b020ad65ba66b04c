package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Name   string      `yaml:"name"`
	Author string      `yaml:"author,omitempty"`
	Hidden []YAMLCoord `yaml:"hidden,omitempty"`
	Rows   []string    `yaml:"rows"`
}

// YAMLCoord is a cell position in YAML format.
type YAMLCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseYAML parses a YAML level file. Rows use the same glyphs as the
// text format.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	lvl := Level{
		Name:   yl.Name,
		Author: yl.Author,
		Rows:   normalizeRows(append([]string(nil), yl.Rows...)),
	}
	for _, c := range yl.Hidden {
		lvl.HiddenLadders = append(lvl.HiddenLadders, core.C(c.X, c.Y))
	}
	if len(lvl.Rows) == 0 {
		return Level{}, ErrEmptyLevel
	}
	if lvl.Name == "" {
		lvl.Name = DefaultName
	}
	return lvl, nil
}
