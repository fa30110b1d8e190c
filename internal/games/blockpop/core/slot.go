package core

import (
	"fmt"
	"strings"
)

// SlotKind decides how a slot presents the block it holds.
type SlotKind uint8

const (
	SlotRegular SlotKind = iota
	SlotHasItem
	SlotInvisible
)

var slotKindNames = [...]string{"regular", "has_item", "invisible"}

func (k SlotKind) String() string {
	if int(k) < len(slotKindNames) {
		return slotKindNames[k]
	}
	return fmt.Sprintf("kind#%d", uint8(k))
}

// ParseSlotKind parses the name produced by String.
func ParseSlotKind(s string) (SlotKind, error) {
	idx, ok := lookupName(slotKindNames[:], strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return SlotRegular, fmt.Errorf("blockpop: unknown slot kind %q", s)
	}
	return SlotKind(idx), nil
}

// ShowsBlock reports whether a block placed in a slot of this kind is visible.
func (k SlotKind) ShowsBlock() bool {
	switch k {
	case SlotRegular, SlotHasItem:
		return true
	case SlotInvisible:
		return false
	default:
		panic(fmt.Sprintf("blockpop: slot kind %d has no visibility rule", k))
	}
}

// Slot is a fixed cell of the grid. It holds at most one block, referenced
// by handle, and collects the sides it was hit from during a resolution pass.
type Slot struct {
	coord    Coord
	kind     SlotKind
	grid     *Grid
	occupant BlockID
	hits     PopDirection
}

// Coord returns the slot position.
func (s *Slot) Coord() Coord {
	return s.coord
}

// Kind returns the slot kind.
func (s *Slot) Kind() SlotKind {
	return s.kind
}

// Grid returns the grid this slot belongs to.
func (s *Slot) Grid() *Grid {
	return s.grid
}

// Block returns the occupying block, or nil.
func (s *Slot) Block() Block {
	if s.occupant == 0 {
		return nil
	}
	b, ok := s.grid.scene.Lookup(s.occupant)
	if !ok {
		return nil
	}
	return b
}

// IsEmpty reports whether no live block occupies the slot.
func (s *Slot) IsEmpty() bool {
	return s.Block() == nil
}

// Pop marks the slot empty. The popping block keeps its back-reference.
func (s *Slot) Pop() {
	s.occupant = 0
}

// NeighbourPop records that a neighbouring pop reached this slot.
func (s *Slot) NeighbourPop(dir PopDirection) {
	s.hits |= dir
}

// Hits returns the sides recorded since the last ClearHits.
func (s *Slot) Hits() PopDirection {
	return s.hits
}

// ClearHits forgets recorded hits.
func (s *Slot) ClearHits() {
	s.hits = PopNone
}

// Neighbour returns the adjacent slot on side, or nil.
func (s *Slot) Neighbour(side Side) *Slot {
	return s.grid.Neighbour(s, side)
}

func (s *Slot) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.coord.String()
}
