package core

// Rocket clears its row, its column, or both when popped.
type Rocket struct {
	blockBase
	orientation Orientation
}

// Orientation returns the sweep direction.
func (r *Rocket) Orientation() Orientation {
	return r.orientation
}

func (r *Rocket) Highlight() {
	if r.state.Popped() {
		return
	}
	r.state |= FlagHighlighted
	r.pose.Armed = true
}

func (r *Rocket) Dehighlight() {
	r.state &^= FlagHighlighted | FlagSelected
	if r.released {
		r.fault("dehighlight", ErrReleased)
		return
	}
	r.pose.Scale = r.baseline.Scale
	r.pose.Rotation = 0
	r.pose.Shaking = false
	r.pose.Armed = false
	r.sortingOrder = sortingIdle
}

func (r *Rocket) Select() {
	if r.state.Popped() {
		return
	}
	r.blockBase.Select()
	r.pose.Armed = true
}

func (r *Rocket) Deselect() {
	if r.state.Popped() {
		return
	}
	r.state = (r.state | FlagHighlighted) &^ FlagSelected
	r.pose.Scale = r.baseline.Scale
	r.pose.Rotation = 0
	r.pose.Shaking = false
	r.pose.Armed = true
	r.sortingOrder = sortingDeselected
}

func (r *Rocket) Pop() {
	r.pop(nil)
}

func (r *Rocket) PopAndReplace(d Descriptor) {
	r.pop(&d)
}

func (r *Rocket) Replace(d Descriptor, playAnimation, increaseScore bool) {
	r.requestReplace(d, playAnimation, increaseScore)
}

func (r *Rocket) pop(replacement *Descriptor) {
	if r.state.Popped() {
		return
	}
	r.env.svc.Sound.Play("rocket")
	r.beginPop(replacement)
	r.addScore(r.sweepScore())
	anim := Animation{Name: "rocket_" + r.orientation.String(), Ticks: r.env.tuning.Timing.RocketSweep}
	r.env.svc.Animator.Play(r.id, anim, func() {
		r.finishPop(replacement)
	})
}

func (r *Rocket) sweepScore() int {
	switch r.orientation {
	case OrientationHorizontal, OrientationVertical:
		return r.env.tuning.Score.RocketSingleAxis
	case OrientationBilinear:
		return r.env.tuning.Score.RocketBilinear
	default:
		return 0
	}
}

// AdditionalBlocksToPop returns the blocks on the rocket's sweep lines:
// row first, then column. Highlighted blocks are already being popped by
// the caller and are left out, as is the rocket itself.
func (r *Rocket) AdditionalBlocksToPop() []Block {
	if r.slot == nil {
		return nil
	}
	g := r.slot.grid

	var lines [][]*Slot
	switch r.orientation {
	case OrientationHorizontal:
		lines = [][]*Slot{g.Row(r.slot)}
	case OrientationVertical:
		lines = [][]*Slot{g.Column(r.slot)}
	case OrientationBilinear:
		lines = [][]*Slot{g.Row(r.slot), g.Column(r.slot)}
	default:
		return nil
	}

	seen := map[BlockID]bool{r.id: true}
	var out []Block
	for _, line := range lines {
		for _, s := range line {
			b := s.Block()
			if b == nil || seen[b.ID()] || b.IsHighlighted() {
				continue
			}
			seen[b.ID()] = true
			out = append(out, b)
		}
	}
	return out
}
