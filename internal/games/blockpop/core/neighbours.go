package core

// NeighbourPopDict maps slots to the sides they were reached from during one
// resolution pass. Each slot appears once; adding it again merges the bits.
// Iteration follows first insertion.
type NeighbourPopDict struct {
	order []*Slot
	dirs  map[*Slot]PopDirection
}

// NewNeighbourPopDict creates an empty dictionary.
func NewNeighbourPopDict() *NeighbourPopDict {
	return &NeighbourPopDict{dirs: make(map[*Slot]PopDirection)}
}

// Add ORs dir into the entry for slot.
func (d *NeighbourPopDict) Add(slot *Slot, dir PopDirection) {
	if slot == nil || dir == PopNone {
		return
	}
	if d.dirs == nil {
		d.dirs = make(map[*Slot]PopDirection)
	}
	prev, ok := d.dirs[slot]
	if !ok {
		d.order = append(d.order, slot)
	}
	d.dirs[slot] = prev | dir
}

// Merge adds every entry of other.
func (d *NeighbourPopDict) Merge(other *NeighbourPopDict) {
	if other == nil {
		return
	}
	for _, s := range other.order {
		d.Add(s, other.dirs[s])
	}
}

// Get returns the directions recorded for slot.
func (d *NeighbourPopDict) Get(slot *Slot) (PopDirection, bool) {
	dir, ok := d.dirs[slot]
	return dir, ok
}

// Len returns the number of slots.
func (d *NeighbourPopDict) Len() int {
	return len(d.order)
}

// Slots returns the slots in first-insertion order.
func (d *NeighbourPopDict) Slots() []*Slot {
	out := make([]*Slot, len(d.order))
	copy(out, d.order)
	return out
}

// Each calls fn for every entry in first-insertion order.
func (d *NeighbourPopDict) Each(fn func(slot *Slot, dir PopDirection)) {
	for _, s := range d.Slots() {
		fn(s, d.dirs[s])
	}
}
