package core

// SimpleBlock is a plain coloured block. It pops once and glows while
// highlighted.
type SimpleBlock struct {
	blockBase
	color SimpleColor
}

// Color returns the block colour.
func (s *SimpleBlock) Color() SimpleColor {
	return s.color
}

// Highlight turns the glow on. Popped blocks ignore it.
func (s *SimpleBlock) Highlight() {
	if s.state.Popped() {
		return
	}
	s.blockBase.Highlight()
	s.pose.Glow = true
}

// Dehighlight turns the glow off. Popped blocks ignore it.
func (s *SimpleBlock) Dehighlight() {
	if s.state.Popped() {
		return
	}
	s.blockBase.Dehighlight()
}

func (s *SimpleBlock) Select() {
	if s.state.Popped() {
		return
	}
	s.blockBase.Select()
	s.pose.Glow = true
	s.pose.GlowOrder = glowSelected
}

func (s *SimpleBlock) Deselect() {
	if s.state.Popped() {
		return
	}
	s.blockBase.Deselect()
	s.pose.Glow = true
	s.pose.GlowOrder = glowDeselected
}

func (s *SimpleBlock) Pop() {
	s.pop(nil)
}

func (s *SimpleBlock) PopAndReplace(d Descriptor) {
	s.pop(&d)
}

func (s *SimpleBlock) Replace(d Descriptor, playAnimation, increaseScore bool) {
	s.requestReplace(d, playAnimation, increaseScore)
}

func (s *SimpleBlock) pop(replacement *Descriptor) {
	if s.state.Popped() {
		return
	}
	s.beginPop(replacement)
	s.pose.Glow = false
	anim := Animation{Name: s.color.String(), Ticks: s.env.tuning.Timing.SimplePop}
	s.env.svc.Animator.Play(s.id, anim, func() {
		s.finishPop(replacement)
	})
}
