// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Moves    int               `yaml:"moves"`
	Target   int               `yaml:"target"`
	Colors   []string          `yaml:"colors,omitempty"`
	Layout   []string          `yaml:"layout"`
	Slots    []YAMLSlot        `yaml:"slots,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLSlot overrides the kind of a single slot.
type YAMLSlot struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Moves    int
	Target   int
	Palette  []core.SimpleColor
	Cells    map[core.Coord]core.Descriptor
	Kinds    map[core.Coord]core.SlotKind
	Holes    []core.Coord
	Metadata map[string]string
}

// Layout tokens. Lowercase stone letters are later damage stages.
var tokens = map[string]core.Descriptor{
	"R": core.SimpleOf(core.ColorRed),
	"G": core.SimpleOf(core.ColorGreen),
	"B": core.SimpleOf(core.ColorBlue),
	"Y": core.SimpleOf(core.ColorYellow),
	"P": core.SimpleOf(core.ColorPurple),
	"H": core.RocketOf(core.OrientationHorizontal),
	"V": core.RocketOf(core.OrientationVertical),
	"X": core.RocketOf(core.OrientationBilinear),
	"S": core.StoneOf(core.StoneFull),
	"s": core.StoneOf(core.StoneDamagedLittle),
	"z": core.StoneOf(core.StoneDamagedMore),
	".": core.EmptyBlock,
}

const holeToken = "#"

// Token returns the layout token for d, or "?" if it has none.
func Token(d core.Descriptor) string {
	for tok, td := range tokens {
		if td == d {
			return tok
		}
	}
	return "?"
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	if yl.Size.W <= 0 || yl.Size.H <= 0 {
		return Level{}, fmt.Errorf("level %s: invalid size %dx%d", yl.ID, yl.Size.W, yl.Size.H)
	}
	if len(yl.Layout) != yl.Size.H {
		return Level{}, fmt.Errorf("level %s: layout has %d rows, expected %d", yl.ID, len(yl.Layout), yl.Size.H)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		Moves:    yl.Moves,
		Target:   yl.Target,
		Cells:    make(map[core.Coord]core.Descriptor),
		Kinds:    make(map[core.Coord]core.SlotKind),
		Metadata: yl.Metadata,
	}

	for y, row := range yl.Layout {
		fields := strings.Fields(row)
		if len(fields) != yl.Size.W {
			return Level{}, fmt.Errorf("level %s: row %d has %d cells, expected %d", yl.ID, y, len(fields), yl.Size.W)
		}
		for x, tok := range fields {
			c := core.C(x, y)
			if tok == holeToken {
				level.Holes = append(level.Holes, c)
				continue
			}
			d, ok := tokens[tok]
			if !ok {
				return Level{}, fmt.Errorf("level %s: unknown token %q at %s", yl.ID, tok, c)
			}
			if d.Instantiable() {
				level.Cells[c] = d
			}
		}
	}

	for _, s := range yl.Slots {
		kind, err := core.ParseSlotKind(s.Kind)
		if err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
		c := core.C(s.X, s.Y)
		if c.X < 0 || c.X >= level.Width || c.Y < 0 || c.Y >= level.Height {
			return Level{}, fmt.Errorf("level %s: slot %s out of bounds", yl.ID, c)
		}
		level.Kinds[c] = kind
	}

	for _, name := range yl.Colors {
		d, err := core.ParseDescriptor("simple:" + name)
		if err != nil {
			return Level{}, fmt.Errorf("level %s: palette: %w", yl.ID, err)
		}
		color, _ := d.SimpleColor()
		if color == core.ColorNone {
			return Level{}, fmt.Errorf("level %s: palette cannot contain none", yl.ID)
		}
		level.Palette = append(level.Palette, color)
	}
	if len(level.Palette) == 0 {
		level.Palette = core.Colors[:]
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
