package core

// Stone is an obstacle that takes several hits. Each hit advances its
// damage stage; the hit that reaches Broken also pops it.
type Stone struct {
	blockBase
	stage StoneStage
}

// Stage returns the current damage stage.
func (s *Stone) Stage() StoneStage {
	return s.stage
}

// Pop applies one hit. Every hit scores, popped stones ignore further hits.
func (s *Stone) Pop() {
	if s.state.Popped() {
		return
	}
	s.addScore(s.env.tuning.Score.StoneHit)

	switch s.stage {
	case StoneFull:
		s.setStage(StoneDamagedLittle)
		return
	case StoneDamagedLittle:
		s.setStage(StoneDamagedMore)
		return
	case StoneDamagedMore:
		s.setStage(StoneBroken)
		s.Pop()
		return
	case StoneBroken:
	}

	s.env.svc.Sound.Play("stone_break")
	s.beginPop(nil)
	s.pose.Hidden = true
	anim := Animation{Name: "stone_break", Ticks: s.env.tuning.Timing.StoneBreak}
	s.env.svc.Animator.Play(s.id, anim, func() {
		s.finishPop(nil)
	})
}

// PopAndReplace hits the stone; stones are never replaced.
func (s *Stone) PopAndReplace(Descriptor) {
	s.Pop()
}

// Replace hits the stone; stones are never replaced.
func (s *Stone) Replace(Descriptor, bool, bool) {
	s.Pop()
}

// NeighbourPopped records the hit on the slot and damages the stone.
func (s *Stone) NeighbourPopped(dir PopDirection) {
	s.blockBase.NeighbourPopped(dir)
	s.Pop()
}

func (s *Stone) setStage(stage StoneStage) {
	s.stage = stage
	s.desc = StoneOf(stage)
	s.pose.Stage = int(stage)
}
