package levels

import (
	"embed"
	"fmt"
	"path"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels/formats"
)

// BuiltinPackName is the name of the pack compiled into the binary.
const BuiltinPackName = "Built-in Levels"

//go:embed embedded/*.txt
var embedded embed.FS

// Builtin returns the levels shipped with the game. It is also the
// fallback when no other pack can be loaded.
func Builtin() Pack {
	entries, err := embedded.ReadDir("embedded")
	if err != nil {
		panic(fmt.Sprintf("levels: reading built-in levels: %v", err))
	}

	pack := Pack{Name: BuiltinPackName, Author: "NodeRunner"}
	for _, e := range entries {
		name := path.Join("embedded", e.Name())
		raw, err := embedded.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("levels: reading %s: %v", name, err))
		}
		parsed, err := formats.ParseText(raw)
		if err != nil {
			panic(fmt.Sprintf("levels: parsing %s: %v", name, err))
		}
		lvl := fromParsed(e.Name(), "", parsed)
		lvl.Author = pack.Author
		pack.Levels = append(pack.Levels, lvl)
	}
	pack.Description = fmt.Sprintf("%d levels included with the game", len(pack.Levels))
	return pack
}
