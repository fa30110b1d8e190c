package core

import "fmt"

// Block is a piece occupying a slot. The set of implementations is closed:
// *SimpleBlock, *Rocket and *Stone.
type Block interface {
	ID() BlockID
	Descriptor() Descriptor
	Slot() *Slot
	State() StateFlags
	IsHighlighted() bool
	IsSelected() bool
	IsVisible() bool
	HasPopped() bool
	IsReleased() bool
	SortingOrder() int
	SetSortingOrder(order int)
	Pose() Pose

	Highlight()
	Dehighlight()
	Select()
	Deselect()
	Shake()
	OnInput()

	// Move relinks the block into target and animates it there.
	Move(target *Slot, ticks int)
	// MoveTo animates towards target without changing slot linkage.
	MoveTo(target *Slot, ticks int, returnToPos bool, done func())

	Pop()
	PopAndReplace(d Descriptor)
	Replace(d Descriptor, playAnimation, increaseScore bool)
	PopWithNoEffect(destroy bool)
	NeighbourPopped(dir PopDirection)
	AdditionalBlocksToPop() []Block
	EffectedBlocks() *NeighbourPopDict

	// Release removes the block from its scene. Safe to call twice.
	Release()

	base() *blockBase
}

// env is what a block needs from the engine that built it.
type env struct {
	bus    *Bus
	svc    Services
	scene  *Scene
	tuning Tuning
}

// blockBase carries the state and behaviour shared by every variant.
type blockBase struct {
	id           BlockID
	desc         Descriptor
	state        StateFlags
	slot         *Slot
	sortingOrder int
	pose         Pose
	baseline     Pose
	released     bool

	env  *env
	self Block
}

func (b *blockBase) base() *blockBase { return b }

// initialize captures the baseline presentation. The sprite frame chosen
// by the variant survives.
func (b *blockBase) initialize() {
	b.baseline = initialPose()
	b.baseline.Stage = b.pose.Stage
	b.pose = b.baseline
}

func (b *blockBase) ID() BlockID            { return b.id }
func (b *blockBase) Descriptor() Descriptor { return b.desc }
func (b *blockBase) Slot() *Slot            { return b.slot }
func (b *blockBase) State() StateFlags      { return b.state }
func (b *blockBase) IsHighlighted() bool    { return b.state.Highlighted() }
func (b *blockBase) IsSelected() bool       { return b.state.Selected() }
func (b *blockBase) IsVisible() bool        { return b.state.Visible() }
func (b *blockBase) HasPopped() bool        { return b.state.Popped() }
func (b *blockBase) IsReleased() bool       { return b.released }
func (b *blockBase) SortingOrder() int      { return b.sortingOrder }
func (b *blockBase) Pose() Pose             { return b.pose }

func (b *blockBase) SetSortingOrder(order int) {
	b.sortingOrder = order
}

// Highlight marks the block as part of the current selection.
func (b *blockBase) Highlight() {
	if b.state.Popped() {
		return
	}
	b.state.set(FlagHighlighted, true)
}

// Dehighlight clears highlight and selection and restores the baseline pose.
// A block that is already being torn down is logged, not failed.
func (b *blockBase) Dehighlight() {
	if err := b.resetPresentation(); err != nil {
		b.fault("dehighlight", err)
	}
}

func (b *blockBase) resetPresentation() error {
	b.state &^= FlagHighlighted | FlagSelected
	if b.released {
		return fmt.Errorf("reset presentation of block %d: %w", b.id, ErrReleased)
	}
	stage, hidden := b.pose.Stage, b.pose.Hidden
	b.pose = b.baseline
	b.pose.Stage, b.pose.Hidden = stage, hidden
	b.sortingOrder = sortingIdle
	return nil
}

func (b *blockBase) Select() {
	if b.state.Popped() {
		return
	}
	b.state |= FlagHighlighted | FlagSelected
	b.pose.Scale = b.baseline.Scale * selectScale
	b.pose.Shaking = true
	b.sortingOrder = sortingSelected
	b.animate(Animation{Name: "select", Ticks: b.env.tuning.Timing.Select}, nil)
}

func (b *blockBase) Deselect() {
	if b.state.Popped() {
		return
	}
	b.state = (b.state | FlagHighlighted) &^ FlagSelected
	b.pose.Scale = b.baseline.Scale
	b.pose.Shaking = false
	b.sortingOrder = sortingDeselected
}

// Shake starts the idle hint wobble.
func (b *blockBase) Shake() {
	if b.state.Popped() {
		return
	}
	b.pose.Shaking = true
}

// OnInput stops the idle hint wobble.
func (b *blockBase) OnInput() {
	b.pose.Shaking = false
	b.pose.Scale = b.baseline.Scale
}

func (b *blockBase) Move(target *Slot, ticks int) {
	if b.state.Popped() || b.released || target == nil {
		return
	}
	if b.slot != nil && b.slot.occupant == b.id {
		b.slot.occupant = 0
	}
	if other := target.Block(); other != nil && other.ID() != b.id {
		other.base().slot = nil
	}
	target.occupant = b.id
	b.slot = target
	b.state.set(FlagVisible, target.kind.ShowsBlock())
	b.animate(Animation{Name: "move", Ticks: ticks}, nil)
}

func (b *blockBase) MoveTo(target *Slot, ticks int, returnToPos bool, done func()) {
	if b.released || target == nil {
		return
	}
	b.sortingOrder--
	b.animate(Animation{Name: "move_to", Ticks: ticks}, func() {
		if returnToPos {
			b.animate(Animation{Name: "move_back", Ticks: ticks}, done)
			return
		}
		if done != nil {
			done()
		}
	})
}

func (b *blockBase) PopWithNoEffect(destroy bool) {
	if b.state.Popped() {
		return
	}
	b.state |= FlagPopped
	if err := b.vacate(); err != nil {
		b.fault("pop without effect", err)
	}
	b.addScore(b.env.tuning.Score.NoEffect)
	if destroy {
		b.finishPop(nil)
		b.self.Release()
	}
}

func (b *blockBase) NeighbourPopped(dir PopDirection) {
	if b.slot != nil {
		b.slot.NeighbourPop(dir)
	}
}

func (b *blockBase) AdditionalBlocksToPop() []Block {
	return nil
}

// EffectedBlocks returns the occupied direct neighbours, scanned right,
// left, top, bottom.
func (b *blockBase) EffectedBlocks() *NeighbourPopDict {
	dict := NewNeighbourPopDict()
	if b.slot == nil {
		return dict
	}
	for _, side := range Sides {
		n := b.slot.Neighbour(side)
		if n == nil || n.IsEmpty() {
			continue
		}
		dict.Add(n, side.Flag())
	}
	return dict
}

func (b *blockBase) Release() {
	if b.released {
		return
	}
	b.released = true
	b.env.svc.Animator.Cancel(b.id)
	if b.slot != nil && b.slot.occupant == b.id {
		b.slot.occupant = 0
	}
	b.slot = nil
	b.env.scene.remove(b.id)
}

// beginPop runs the shared head of the pop protocol: mark popped, free the
// slot, publish pop-began and score it.
func (b *blockBase) beginPop(replacement *Descriptor) {
	b.state |= FlagPopped
	if err := b.vacate(); err != nil {
		b.fault("pop", err)
	}
	b.env.bus.publishPopBegan(PopEvent{Block: b.self, Slot: b.slot, Replacement: replacement})
	b.addScore(b.env.tuning.Score.PopBegan)
}

func (b *blockBase) finishPop(replacement *Descriptor) {
	b.env.bus.publishPopFinished(PopEvent{Block: b.self, Slot: b.slot, Replacement: replacement})
}

func (b *blockBase) requestReplace(d Descriptor, playAnimation, increaseScore bool) {
	if b.state.Popped() || b.released {
		return
	}
	b.env.bus.publishReplaceRequested(ReplaceEvent{
		Block:         b.self,
		Slot:          b.slot,
		Replacement:   d,
		PlayAnimation: playAnimation,
		IncreaseScore: increaseScore,
	})
}

// vacate clears the forward reference of the slot if it still points here.
func (b *blockBase) vacate() error {
	if b.slot == nil {
		return fmt.Errorf("vacate block %d: %w", b.id, ErrNoSlot)
	}
	if b.slot.occupant == b.id {
		b.slot.Pop()
	}
	return nil
}

func (b *blockBase) addScore(amount int) {
	if amount == 0 {
		return
	}
	if err := b.env.svc.Score.IncreaseScore(amount); err != nil {
		b.fault("increase score", err, "amount", amount)
	}
}

func (b *blockBase) animate(anim Animation, done func()) {
	if anim.Ticks <= 0 && done == nil {
		return
	}
	b.env.svc.Animator.Play(b.id, anim, done)
}

func (b *blockBase) fault(op string, err error, keyvals ...any) {
	kv := append([]any{
		"block", b.id,
		"descriptor", b.desc,
		"state", b.state,
		"slot", b.slot,
	}, keyvals...)
	b.env.svc.fault(op+" failed", err, kv...)
}
