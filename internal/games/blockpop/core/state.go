package core

import "strings"

// StateFlags is the base state bit set shared by every block.
type StateFlags uint8

const (
	FlagHighlighted StateFlags = 1 << iota
	FlagVisible
	FlagSelected
	FlagPopped
)

// Highlighted reports the highlighted bit.
func (f StateFlags) Highlighted() bool { return f&FlagHighlighted != 0 }

// Visible reports the visible bit.
func (f StateFlags) Visible() bool { return f&FlagVisible != 0 }

// Selected reports the selected bit.
func (f StateFlags) Selected() bool { return f&FlagSelected != 0 }

// Popped reports the popped bit.
func (f StateFlags) Popped() bool { return f&FlagPopped != 0 }

func (f *StateFlags) set(flag StateFlags, on bool) {
	if on {
		*f |= flag
	} else {
		*f &^= flag
	}
}

func (f StateFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Highlighted() {
		parts = append(parts, "highlighted")
	}
	if f.Visible() {
		parts = append(parts, "visible")
	}
	if f.Selected() {
		parts = append(parts, "selected")
	}
	if f.Popped() {
		parts = append(parts, "popped")
	}
	return strings.Join(parts, "|")
}

// Pose is the transient presentation state of a block. The engine only
// writes it; renderers read it.
type Pose struct {
	Scale     float64
	Rotation  float64
	Shaking   bool
	Glow      bool
	GlowOrder int
	Armed     bool // rocket "ready to fire" indicator
	Hidden    bool
	Stage     int // sprite frame, used by stones
}

// initialPose is the baseline captured when a block is initialized.
func initialPose() Pose {
	return Pose{Scale: 1, GlowOrder: -1}
}

const (
	selectScale = 1.7

	sortingSelected   = 10
	sortingDeselected = 8
	sortingIdle       = 0

	glowSelected   = 9
	glowDeselected = 7
)
