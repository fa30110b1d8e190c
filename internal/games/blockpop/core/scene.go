package core

import "sort"

// BlockID is a handle to a block owned by a Scene. Zero is never issued.
type BlockID uint64

// Scene is the arena that owns every live block of one game. Slots refer
// to blocks by BlockID, so a released block can never be reached through a
// stale slot reference.
type Scene struct {
	blocks  map[BlockID]Block
	nextID  BlockID
	factory *Factory
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{blocks: make(map[BlockID]Block)}
}

// Lookup resolves a handle. ok is false for released or unknown ids.
func (s *Scene) Lookup(id BlockID) (Block, bool) {
	if id == 0 {
		return nil, false
	}
	b, ok := s.blocks[id]
	return b, ok
}

// Len returns the number of live blocks.
func (s *Scene) Len() int {
	return len(s.blocks)
}

// Blocks returns the live blocks ordered by id.
func (s *Scene) Blocks() []Block {
	out := make([]Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Factory returns the factory attached to this scene, if any.
func (s *Scene) Factory() *Factory {
	return s.factory
}

func (s *Scene) allocate() BlockID {
	s.nextID++
	return s.nextID
}

func (s *Scene) attach(b Block) {
	s.blocks[b.ID()] = b
}

func (s *Scene) remove(id BlockID) {
	delete(s.blocks, id)
}
