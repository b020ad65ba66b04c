package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels/formats"
)

// Loader handles loading levels and packs from a directory.
type Loader struct {
	Root   string
	Logger *log.Logger // optional; skipped files are reported here
}

// NewLoader creates a new level loader.
func NewLoader(root string, logger *log.Logger) *Loader {
	return &Loader{Root: root, Logger: logger}
}

func (l *Loader) warn(msg string, keyvals ...interface{}) {
	if l.Logger != nil {
		l.Logger.Warn(msg, keyvals...)
	}
}

// LoadAll recursively scans Root and loads every single-level file.
// Invalid files are skipped. Levels are sorted by ID, which is the path
// relative to Root.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelExtension(filepath.Ext(path)) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			l.warn("skipping level file", "path", path, "error", err)
			return nil
		}
		if err := lvl.Validate(); err != nil {
			l.warn("skipping invalid level", "path", path, "error", err)
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file. It does not validate it.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	var parsed formats.Level
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data)
	case ".txt":
		parsed, err = formats.ParseText(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return fromParsed(l.relID(path), path, parsed), nil
}

// LoadPackFile loads an .nlp pack. Invalid levels inside it are skipped.
// A pack without a name is named after its file.
func (l *Loader) LoadPackFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	parsed, skipped, err := formats.ParsePack(data)
	if err != nil {
		return Pack{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if skipped > 0 {
		l.warn("skipped unreadable levels in pack", "path", path, "count", skipped)
	}

	pack := Pack{
		Name:        parsed.Name,
		Author:      parsed.Author,
		Description: parsed.Description,
		Path:        path,
	}
	if pack.Name == "" {
		pack.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for i, p := range parsed.Levels {
		lvl := fromParsed(fmt.Sprintf("%s#%d", filepath.Base(path), i+1), path, p)
		if err := lvl.Validate(); err != nil {
			l.warn("skipping invalid level in pack", "path", path, "level", i+1, "error", err)
			continue
		}
		pack.Levels = append(pack.Levels, lvl)
	}
	if len(pack.Levels) == 0 {
		return Pack{}, fmt.Errorf("pack %s: %w", path, ErrEmptyLevel)
	}
	return pack, nil
}

// Packs returns every playable pack: the built-in pack first, then the
// loose level files under Root as one pack, then each .nlp file under
// Root in file name order. A missing Root only yields the built-in pack.
func (l *Loader) Packs() ([]Pack, error) {
	packs := []Pack{Builtin()}
	if l.Root == "" {
		return packs, nil
	}
	if _, err := os.Stat(l.Root); errors.Is(err, fs.ErrNotExist) {
		return packs, nil
	}

	loose, err := l.LoadAll()
	if err != nil {
		return packs, err
	}
	if len(loose) > 0 {
		dir := filepath.Base(l.Root)
		packs = append(packs, Pack{
			Name:        dir + "/ (individual files)",
			Description: fmt.Sprintf("%d levels from %s/", len(loose), dir),
			Path:        l.Root,
			Levels:      loose,
		})
	}

	var packFiles []string
	err = filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), formats.PackExtension) {
			packFiles = append(packFiles, path)
		}
		return nil
	})
	if err != nil {
		return packs, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}
	sort.Strings(packFiles)

	for _, path := range packFiles {
		p, err := l.LoadPackFile(path)
		if err != nil {
			l.warn("skipping pack", "path", path, "error", err)
			continue
		}
		packs = append(packs, p)
	}
	return packs, nil
}

func (l *Loader) relID(path string) string {
	if rel, err := filepath.Rel(l.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(path)
}

func isLevelExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
