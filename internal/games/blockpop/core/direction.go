// Package core implements the blockpop rules engine: slots, blocks, the pop
// protocol and cascade resolution. It renders nothing and reads no input;
// presentation, audio and score persistence are reached through the
// collaborator interfaces in services.go.
package core

import (
	"fmt"
	"strings"
)

// Coord represents a 2D coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns a new Coord one step towards the given side.
func (c Coord) Step(s Side) Coord {
	dx, dy := s.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// PopDirection is a flag set recording from which side(s) a slot was
// affected by a neighbouring pop.
type PopDirection uint8

const (
	PopRight PopDirection = 1 << iota
	PopLeft
	PopTop
	PopBottom
)

// PopNone is the empty direction set.
const PopNone PopDirection = 0

// Has reports whether every bit of f is set in d.
func (d PopDirection) Has(f PopDirection) bool {
	return f != 0 && d&f == f
}

// With returns d with the bits of f added.
func (d PopDirection) With(f PopDirection) PopDirection {
	return d | f
}

// IsZero reports whether no side is set.
func (d PopDirection) IsZero() bool {
	return d == PopNone
}

func (d PopDirection) String() string {
	if d == PopNone {
		return "none"
	}
	parts := make([]string, 0, 4)
	for _, s := range Sides {
		if d.Has(s.Flag()) {
			parts = append(parts, s.String())
		}
	}
	return strings.Join(parts, "|")
}

// Side names one of the four positional neighbours of a slot.
type Side uint8

const (
	SideRight Side = iota
	SideLeft
	SideTop
	SideBottom
)

// Sides lists the sides in neighbour scan order. Every neighbour
// enumeration in the engine walks this order.
var Sides = [...]Side{SideRight, SideLeft, SideTop, SideBottom}

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Flag returns the PopDirection bit for this side.
func (s Side) Flag() PopDirection {
	switch s {
	case SideRight:
		return PopRight
	case SideLeft:
		return PopLeft
	case SideTop:
		return PopTop
	case SideBottom:
		return PopBottom
	default:
		return PopNone
	}
}

// Delta returns the (dx, dy) offset of the neighbour on this side.
// Top decreases Y, Bottom increases Y (screen coordinates).
func (s Side) Delta() (dx, dy int) {
	switch s {
	case SideRight:
		return 1, 0
	case SideLeft:
		return -1, 0
	case SideTop:
		return 0, -1
	case SideBottom:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the side facing this one.
func (s Side) Opposite() Side {
	switch s {
	case SideRight:
		return SideLeft
	case SideLeft:
		return SideRight
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	default:
		return s
	}
}
