package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the top-level kind of block a Descriptor asks for.
type Category uint8

const (
	CategoryNone Category = iota
	CategorySimple
	CategoryRocket
	CategoryStone
	CategoryEmpty
)

var categoryNames = [...]string{"none", "simple", "rocket", "stone", "empty"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category#%d", uint8(c))
}

// SimpleColor is the subtype of a simple block.
type SimpleColor uint8

const (
	ColorNone SimpleColor = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
)

var simpleColorNames = [...]string{"none", "red", "green", "blue", "yellow", "purple"}

// Colors lists the playable simple block colours.
var Colors = [...]SimpleColor{ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple}

func (c SimpleColor) String() string {
	if int(c) < len(simpleColorNames) {
		return simpleColorNames[c]
	}
	return fmt.Sprintf("color#%d", uint8(c))
}

// Orientation is the subtype of a rocket.
type Orientation uint8

const (
	OrientationNone Orientation = iota
	OrientationHorizontal
	OrientationVertical
	OrientationBilinear
)

var orientationNames = [...]string{"none", "horizontal", "vertical", "bilinear"}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return fmt.Sprintf("orientation#%d", uint8(o))
}

// StoneStage is the damage stage of a stone. Broken is terminal.
type StoneStage uint8

const (
	StoneFull StoneStage = iota
	StoneDamagedLittle
	StoneDamagedMore
	StoneBroken
)

var stoneStageNames = [...]string{"full", "damaged_little", "damaged_more", "broken"}

func (s StoneStage) String() string {
	if int(s) < len(stoneStageNames) {
		return stoneStageNames[s]
	}
	return fmt.Sprintf("stage#%d", uint8(s))
}

// Descriptor identifies what block to construct: a category plus a subtype
// whose meaning depends on the category.
type Descriptor struct {
	Category Category
	Subtype  uint8
}

var (
	// NoBlock asks for nothing.
	NoBlock = Descriptor{Category: CategoryNone}
	// EmptyBlock marks a deliberately empty cell.
	EmptyBlock = Descriptor{Category: CategoryEmpty}
)

// SimpleOf returns the descriptor of a simple block of the given colour.
func SimpleOf(c SimpleColor) Descriptor {
	return Descriptor{Category: CategorySimple, Subtype: uint8(c)}
}

// RocketOf returns the descriptor of a rocket with the given orientation.
func RocketOf(o Orientation) Descriptor {
	return Descriptor{Category: CategoryRocket, Subtype: uint8(o)}
}

// StoneOf returns the descriptor of a stone at the given damage stage.
func StoneOf(s StoneStage) Descriptor {
	return Descriptor{Category: CategoryStone, Subtype: uint8(s)}
}

// SimpleColor returns the colour subtype; ok is false for other categories.
func (d Descriptor) SimpleColor() (SimpleColor, bool) {
	return SimpleColor(d.Subtype), d.Category == CategorySimple
}

// Orientation returns the rocket subtype; ok is false for other categories.
func (d Descriptor) Orientation() (Orientation, bool) {
	return Orientation(d.Subtype), d.Category == CategoryRocket
}

// StoneStage returns the stone subtype; ok is false for other categories.
func (d Descriptor) StoneStage() (StoneStage, bool) {
	return StoneStage(d.Subtype), d.Category == CategoryStone
}

// Instantiable reports whether the descriptor names a real block.
// None and Empty never produce an instance.
func (d Descriptor) Instantiable() bool {
	return d.Category != CategoryNone && d.Category != CategoryEmpty
}

// String returns the text form, e.g. "simple:red" or "empty".
func (d Descriptor) String() string {
	switch d.Category {
	case CategoryNone, CategoryEmpty:
		return d.Category.String()
	case CategorySimple:
		return "simple:" + SimpleColor(d.Subtype).String()
	case CategoryRocket:
		return "rocket:" + Orientation(d.Subtype).String()
	case CategoryStone:
		return "stone:" + StoneStage(d.Subtype).String()
	default:
		return fmt.Sprintf("%s:%d", d.Category, d.Subtype)
	}
}

// ParseDescriptor parses the text form produced by String.
func ParseDescriptor(s string) (Descriptor, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	name, sub, hasSub := strings.Cut(text, ":")

	cat, ok := lookupName(categoryNames[:], name)
	if !ok {
		return NoBlock, fmt.Errorf("blockpop: parse descriptor %q: unknown category: %w", s, ErrInvalidDescriptor)
	}

	d := Descriptor{Category: Category(cat)}
	if !d.Instantiable() {
		if hasSub {
			return NoBlock, fmt.Errorf("blockpop: parse descriptor %q: %s takes no subtype: %w", s, d.Category, ErrInvalidDescriptor)
		}
		return d, nil
	}
	if !hasSub {
		return NoBlock, fmt.Errorf("blockpop: parse descriptor %q: missing subtype: %w", s, ErrInvalidDescriptor)
	}

	var names []string
	switch d.Category {
	case CategorySimple:
		names = simpleColorNames[:]
	case CategoryRocket:
		names = orientationNames[:]
	case CategoryStone:
		names = stoneStageNames[:]
	}
	idx, ok := lookupName(names, sub)
	if !ok {
		return NoBlock, fmt.Errorf("blockpop: parse descriptor %q: unknown %s subtype %q: %w", s, d.Category, sub, ErrInvalidDescriptor)
	}
	d.Subtype = uint8(idx)
	return d, nil
}

func lookupName(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// MarshalYAML writes the descriptor in its text form.
func (d Descriptor) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML reads a descriptor from its text form.
func (d *Descriptor) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	parsed, err := ParseDescriptor(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
