package core

import "fmt"

// Grid is the board: a W×H arrangement of slots stored in row-major order
// (index = y*W + x). A cell may hold no slot at all (a hole).
type Grid struct {
	w     int
	h     int
	slots []*Slot
	scene *Scene
}

// NewGrid creates a grid with a regular slot in every cell.
// Blocks referenced by its slots are resolved through scene.
func NewGrid(w, h int, scene *Scene) *Grid {
	g := &Grid{
		w:     w,
		h:     h,
		slots: make([]*Slot, w*h),
		scene: scene,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.slots[g.index(C(x, y))] = &Slot{coord: C(x, y), kind: SlotRegular, grid: g}
		}
	}
	return g
}

// W returns the grid width.
func (g *Grid) W() int { return g.w }

// H returns the grid height.
func (g *Grid) H() int { return g.h }

// Scene returns the arena blocks are resolved through.
func (g *Grid) Scene() *Scene { return g.scene }

func (g *Grid) index(c Coord) int {
	return c.Y*g.w + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// At returns the slot at c, or nil for holes and out-of-bounds coordinates.
func (g *Grid) At(c Coord) *Slot {
	if !g.InBounds(c) {
		return nil
	}
	return g.slots[g.index(c)]
}

// SetKind changes the kind of the slot at c.
func (g *Grid) SetKind(c Coord, kind SlotKind) error {
	s := g.At(c)
	if s == nil {
		return fmt.Errorf("blockpop: set kind at %s: %w", c, ErrOutOfBounds)
	}
	s.kind = kind
	return nil
}

// Punch removes the slot at c, leaving a hole. The slot must be empty.
func (g *Grid) Punch(c Coord) error {
	s := g.At(c)
	if s == nil {
		return nil
	}
	if !s.IsEmpty() {
		return fmt.Errorf("blockpop: punch %s: %w", c, ErrOccupied)
	}
	g.slots[g.index(c)] = nil
	return nil
}

// Neighbour returns the slot adjacent to s on side, or nil.
func (g *Grid) Neighbour(s *Slot, side Side) *Slot {
	if s == nil {
		return nil
	}
	return g.At(s.coord.Step(side))
}

// RightNeighbour returns the slot to the right of s.
func (g *Grid) RightNeighbour(s *Slot) *Slot { return g.Neighbour(s, SideRight) }

// LeftNeighbour returns the slot to the left of s.
func (g *Grid) LeftNeighbour(s *Slot) *Slot { return g.Neighbour(s, SideLeft) }

// TopNeighbour returns the slot above s.
func (g *Grid) TopNeighbour(s *Slot) *Slot { return g.Neighbour(s, SideTop) }

// BottomNeighbour returns the slot below s.
func (g *Grid) BottomNeighbour(s *Slot) *Slot { return g.Neighbour(s, SideBottom) }

// Row returns every slot sharing s's row, ordered by x. s is included.
func (g *Grid) Row(s *Slot) []*Slot {
	if s == nil {
		return nil
	}
	out := make([]*Slot, 0, g.w)
	for x := 0; x < g.w; x++ {
		if other := g.At(C(x, s.coord.Y)); other != nil {
			out = append(out, other)
		}
	}
	return out
}

// Column returns every slot sharing s's column, ordered by y. s is included.
func (g *Grid) Column(s *Slot) []*Slot {
	if s == nil {
		return nil
	}
	out := make([]*Slot, 0, g.h)
	for y := 0; y < g.h; y++ {
		if other := g.At(C(s.coord.X, y)); other != nil {
			out = append(out, other)
		}
	}
	return out
}

// Slots returns all slots in row-major order, skipping holes.
func (g *Grid) Slots() []*Slot {
	out := make([]*Slot, 0, len(g.slots))
	for _, s := range g.slots {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Blocks returns the occupants of all slots in row-major order.
func (g *Grid) Blocks() []Block {
	var out []Block
	for _, s := range g.slots {
		if s == nil {
			continue
		}
		if b := s.Block(); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// ClearHits resets the recorded hits of every slot.
func (g *Grid) ClearHits() {
	for _, s := range g.slots {
		if s != nil {
			s.ClearHits()
		}
	}
}

// CheckLinks verifies that slot and block references agree: every occupied
// slot's block points back at it, and every unpopped placed block is the
// occupant of its slot.
func (g *Grid) CheckLinks() error {
	for _, s := range g.slots {
		if s == nil || s.occupant == 0 {
			continue
		}
		b, ok := g.scene.Lookup(s.occupant)
		if !ok {
			return fmt.Errorf("blockpop: slot %s references released block %d", s, s.occupant)
		}
		if b.Slot() != s {
			return fmt.Errorf("blockpop: slot %s holds block %d whose slot is %s", s, b.ID(), b.Slot())
		}
	}
	for _, b := range g.scene.Blocks() {
		s := b.Slot()
		if s == nil || s.grid != g || b.HasPopped() {
			continue
		}
		if s.occupant != b.ID() {
			return fmt.Errorf("blockpop: block %d claims slot %s held by %d", b.ID(), s, s.occupant)
		}
	}
	return nil
}
