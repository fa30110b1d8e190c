package blockpop

import (
	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
)

const shuffleAttempts = 16

// groupAt returns the connected same-colour simple blocks around s, the
// block in s first. Non-simple occupants form no group.
func (g *Game) groupAt(s *core.Slot) []core.Block {
	if s == nil {
		return nil
	}
	start, ok := s.Block().(*core.SimpleBlock)
	if !ok || start.HasPopped() {
		return nil
	}

	grid := g.engine.Grid()
	seen := map[core.BlockID]bool{start.ID(): true}
	group := []core.Block{start}
	queue := []*core.Slot{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, side := range core.Sides {
			n := grid.Neighbour(cur, side)
			if n == nil {
				continue
			}
			b, ok := n.Block().(*core.SimpleBlock)
			if !ok || seen[b.ID()] || b.HasPopped() || b.Color() != start.Color() {
				continue
			}
			seen[b.ID()] = true
			group = append(group, b)
			queue = append(queue, n)
		}
	}
	return group
}

func bounds(group []core.Block) (minX, maxX, minY, maxY int) {
	for i, b := range group {
		c := b.Slot().Coord()
		if i == 0 {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			continue
		}
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}
	return minX, maxX, minY, maxY
}

// refreshSelection highlights the group under the cursor and selects the
// cursor block. Groups below the minimum size only get the selection.
func (g *Game) refreshSelection() {
	g.clearSelection()
	if g.engine == nil || g.gameOver {
		return
	}

	b := g.engine.BlockAt(g.cursor)
	if b == nil {
		return
	}
	if _, ok := b.(*core.SimpleBlock); ok {
		group := g.groupAt(b.Slot())
		if len(group) >= g.opts.Config.Rules.MinGroup {
			for _, m := range group[1:] {
				m.Highlight()
				g.group = append(g.group, m.ID())
			}
		}
	}
	b.Select()
	g.group = append(g.group, b.ID())
}

// clearSelection drops highlight and selection from blocks still alive.
func (g *Game) clearSelection() {
	if g.engine != nil {
		scene := g.engine.Scene()
		for _, id := range g.group {
			if b, ok := scene.Lookup(id); ok && !b.HasPopped() {
				b.Dehighlight()
			}
		}
	}
	g.group = g.group[:0]
}

// falls reports whether gravity moves b.
func falls(b core.Block) bool {
	switch b.(type) {
	case *core.SimpleBlock, *core.Rocket:
		return !b.HasPopped()
	default:
		return false
	}
}

// collapse drops blocks into empty slots below them and fills the top of
// every column with new blocks. Stones and holes split a column into
// segments; nothing falls across them. Reports whether anything changed.
func (g *Game) collapse() bool {
	grid := g.engine.Grid()
	ticks := g.engine.Tuning().Timing.Move
	changed := false

	for x := 0; x < grid.W(); x++ {
		free := -1 // lowest empty row of the current segment
		for y := grid.H() - 1; y >= 0; y-- {
			s := grid.At(core.C(x, y))
			if s == nil {
				free = -1
				continue
			}
			b := s.Block()
			switch {
			case b == nil:
				if free < 0 {
					free = y
				}
			case !falls(b):
				free = -1
			case free >= 0:
				b.Move(grid.At(core.C(x, free)), ticks)
				changed = true
				free--
			}
		}

		for y := 0; y < grid.H(); y++ {
			s := grid.At(core.C(x, y))
			if s == nil || !s.IsEmpty() {
				break
			}
			if g.spawn(s.Coord()) {
				changed = true
			}
		}
	}
	return changed
}

func (g *Game) spawn(c core.Coord) bool {
	b, err := g.engine.Place(c, core.SimpleOf(g.randomColor()))
	if err != nil || b == nil {
		g.opts.Logger.Error("spawn failed", "coord", c, "error", err)
		return false
	}
	g.engine.Animator().Play(b.ID(), core.Animation{Name: "spawn", Ticks: g.engine.Tuning().Timing.Move}, nil)
	return true
}

func (g *Game) palette() []core.SimpleColor {
	if len(g.level.Palette) > 0 {
		return g.level.Palette
	}
	return core.Colors[:]
}

func (g *Game) randomColor() core.SimpleColor {
	p := g.palette()
	return p[g.rng.Intn(len(p))]
}

// movable returns a block the player can confirm on, or nil.
func (g *Game) movable() core.Block {
	for _, b := range g.engine.Grid().Blocks() {
		switch b.(type) {
		case *core.Rocket:
			return b
		case *core.SimpleBlock:
			if len(g.groupAt(b.Slot())) >= g.opts.Config.Rules.MinGroup {
				return b
			}
		}
	}
	return nil
}

// ensureMoves recolours the simple blocks in place until a move exists.
func (g *Game) ensureMoves() {
	for attempt := 0; attempt < shuffleAttempts && g.movable() == nil; attempt++ {
		g.opts.Logger.Debug("no moves left, shuffling", "attempt", attempt+1)
		for _, b := range g.engine.Grid().Blocks() {
			if _, ok := b.(*core.SimpleBlock); ok {
				b.Replace(core.SimpleOf(g.randomColor()), false, false)
			}
		}
	}
}

func (g *Game) showHint() {
	b := g.movable()
	if b == nil {
		return
	}
	b.Shake()
	g.hinted = b.ID()
}

func (g *Game) clearHint() {
	if g.hinted == 0 {
		return
	}
	if b, ok := g.engine.Scene().Lookup(g.hinted); ok {
		b.OnInput()
	}
	g.hinted = 0
}
