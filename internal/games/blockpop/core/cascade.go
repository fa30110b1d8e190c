package core

// PopRequest asks the resolver to pop a block, optionally refilling its slot.
type PopRequest struct {
	Block       Block
	Replacement *Descriptor
}

// CascadeReport describes one resolution pass.
type CascadeReport struct {
	Popped  []Block // blocks that transitioned to popped, in order
	Damaged []Block // stones that took a hit and survived
	Waves   int
	Score   int // score gained during the pass
}

// Resolve pops originators and everything their pops reach.
func (e *Engine) Resolve(originators ...Block) CascadeReport {
	requests := make([]PopRequest, 0, len(originators))
	for _, b := range originators {
		if b != nil {
			requests = append(requests, PopRequest{Block: b})
		}
	}
	return e.ResolveWith(requests)
}

// ResolveWith runs a resolution pass in waves. A wave pops its requests;
// every block that became popped contributes its additional blocks (popped
// in the next wave) and its effected neighbours, merged into one
// NeighbourPopDict. Each mapped occupant is then notified once with the
// merged directions. Blocks already queued for a direct pop in the next wave
// only get the hit recorded on their slot.
func (e *Engine) ResolveWith(requests []PopRequest) CascadeReport {
	var report CascadeReport
	startScore := e.score.total
	e.grid.ClearHits()

	expanded := make(map[BlockID]bool)
	wave := requests
	var fresh []Block

	for len(wave) > 0 || len(fresh) > 0 {
		report.Waves++

		popped := fresh
		fresh = nil
		for _, req := range wave {
			b := req.Block
			if b == nil || b.HasPopped() || b.IsReleased() {
				continue
			}
			before := stoneStage(b)
			if req.Replacement != nil {
				b.PopAndReplace(*req.Replacement)
			} else {
				b.Pop()
			}
			report.track(b, before, &popped)
		}

		dict := NewNeighbourPopDict()
		var next []PopRequest
		queued := make(map[BlockID]bool)
		for _, b := range popped {
			if expanded[b.ID()] {
				continue
			}
			expanded[b.ID()] = true
			report.Popped = append(report.Popped, b)

			for _, extra := range b.AdditionalBlocksToPop() {
				if extra.HasPopped() || queued[extra.ID()] {
					continue
				}
				queued[extra.ID()] = true
				next = append(next, PopRequest{Block: extra})
			}
			dict.Merge(b.EffectedBlocks())
		}

		dict.Each(func(slot *Slot, dir PopDirection) {
			target := slot.Block()
			if target == nil || target.HasPopped() {
				return
			}
			if queued[target.ID()] {
				slot.NeighbourPop(dir)
				return
			}
			before := stoneStage(target)
			target.NeighbourPopped(dir)
			report.track(target, before, &fresh)
		})

		wave = next
	}

	report.Score = e.score.total - startScore
	return report
}

// track files b as newly popped or as a damaged stone.
func (r *CascadeReport) track(b Block, before StoneStage, popped *[]Block) {
	if b.HasPopped() {
		*popped = append(*popped, b)
		return
	}
	if after := stoneStage(b); after != before {
		r.Damaged = append(r.Damaged, b)
	}
}

// stoneStage returns the damage stage of stones; other blocks report Full.
func stoneStage(b Block) StoneStage {
	if s, ok := b.(*Stone); ok {
		return s.Stage()
	}
	return StoneFull
}
