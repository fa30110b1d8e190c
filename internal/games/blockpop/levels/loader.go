// Package levels provides level loading functionality for blockpop.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/levels/formats"
)

//go:embed data/*.yaml
var builtin embed.FS

// Level represents a complete level definition.
type Level struct {
	formats.Level
	FilePath string
}

// Build lays the level out on a fresh engine.
func (l *Level) Build(svc core.Services, tuning core.Tuning) (*core.Engine, error) {
	e, err := core.NewEngine(core.Options{
		Width:    l.Width,
		Height:   l.Height,
		Services: svc,
		Tuning:   tuning,
	})
	if err != nil {
		return nil, fmt.Errorf("levels: build %s: %w", l.ID, err)
	}

	g := e.Grid()
	for _, c := range l.Holes {
		if err := g.Punch(c); err != nil {
			return nil, fmt.Errorf("levels: build %s: %w", l.ID, err)
		}
	}
	for c, kind := range l.Kinds {
		if g.At(c) == nil {
			continue
		}
		if err := g.SetKind(c, kind); err != nil {
			return nil, fmt.Errorf("levels: build %s: %w", l.ID, err)
		}
	}
	// Row-major placement keeps block ids stable between runs.
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			d, ok := l.Cells[core.C(x, y)]
			if !ok {
				continue
			}
			if _, err := e.Place(core.C(x, y), d); err != nil {
				return nil, fmt.Errorf("levels: build %s: %w", l.ID, err)
			}
		}
	}
	return e, nil
}

// Loader handles loading levels from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over fsys, rooted at root.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, root: root}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

// Builtin returns a loader over the levels shipped with the binary.
func Builtin() *Loader {
	return NewLoader(builtin, "data")
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	return Level{Level: parsed, FilePath: p}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
