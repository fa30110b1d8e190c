package core

import (
	"fmt"
)

// Options configures a new Engine.
type Options struct {
	Width    int
	Height   int
	Services Services
	Tuning   Tuning // zero value means DefaultTuning
}

// Engine ties one game together: the scene arena, the grid, the factory,
// the notification bus and the collaborators. Board state changes only
// through Place, Move, Pop and Replace.
type Engine struct {
	scene   *Scene
	grid    *Grid
	bus     *Bus
	factory *Factory
	svc     Services
	tuning  Tuning
	score   *scoreTally

	unsubscribe []func()
}

// NewEngine creates an empty board of the given size.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("blockpop: invalid board size %dx%d", opts.Width, opts.Height)
	}
	tuning := opts.Tuning
	if tuning == (Tuning{}) {
		tuning = DefaultTuning()
	}

	svc := opts.Services.withDefaults()
	tally := &scoreTally{inner: svc.Score}
	svc.Score = tally

	scene := NewScene()
	bus := NewBus()
	factory, err := NewFactory(scene, bus, svc, tuning)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		scene:   scene,
		grid:    NewGrid(opts.Width, opts.Height, scene),
		bus:     bus,
		factory: factory,
		svc:     svc,
		tuning:  tuning,
		score:   tally,
	}
	e.unsubscribe = append(e.unsubscribe,
		bus.OnPopFinished(e.onPopFinished),
		bus.OnReplaceRequested(e.onReplaceRequested),
	)
	return e, nil
}

// Close detaches the engine's own subscriptions.
func (e *Engine) Close() {
	for _, fn := range e.unsubscribe {
		fn()
	}
	e.unsubscribe = nil
}

func (e *Engine) Scene() *Scene      { return e.scene }
func (e *Engine) Grid() *Grid        { return e.grid }
func (e *Engine) Bus() *Bus          { return e.bus }
func (e *Engine) Factory() *Factory  { return e.factory }
func (e *Engine) Services() Services { return e.svc }
func (e *Engine) Tuning() Tuning     { return e.tuning }
func (e *Engine) Animator() Animator { return e.svc.Animator }

// Score returns the total score that went through the engine.
func (e *Engine) Score() int {
	return e.score.total
}

// BlockAt returns the block occupying c, or nil.
func (e *Engine) BlockAt(c Coord) Block {
	s := e.grid.At(c)
	if s == nil {
		return nil
	}
	return s.Block()
}

// Place builds a block for d and moves it into the empty slot at c.
// None and Empty leave the slot untouched and return a nil block.
func (e *Engine) Place(c Coord, d Descriptor) (Block, error) {
	s := e.grid.At(c)
	if s == nil {
		return nil, fmt.Errorf("blockpop: place %s at %s: %w", d, c, ErrOutOfBounds)
	}
	if !s.IsEmpty() {
		return nil, fmt.Errorf("blockpop: place %s at %s: %w", d, c, ErrOccupied)
	}
	b, err := e.factory.Make(d)
	if err != nil || b == nil {
		return nil, err
	}
	b.Move(s, 0)
	return b, nil
}

// Swap exchanges the blocks at a and b through two moves.
func (e *Engine) Swap(a, b Coord) error {
	sa, sb := e.grid.At(a), e.grid.At(b)
	if sa == nil || sb == nil {
		return fmt.Errorf("blockpop: swap %s and %s: %w", a, b, ErrOutOfBounds)
	}
	ba, bb := sa.Block(), sb.Block()
	if ba == nil || bb == nil {
		return fmt.Errorf("blockpop: swap %s and %s: %w", a, b, ErrNoBlock)
	}
	ticks := e.tuning.Timing.Move
	ba.Move(sb, ticks)
	bb.Move(sa, ticks)
	return nil
}

// PopAt resolves a pop of the block at c.
func (e *Engine) PopAt(c Coord) (CascadeReport, error) {
	b := e.BlockAt(c)
	if b == nil {
		return CascadeReport{}, fmt.Errorf("blockpop: pop %s: %w", c, ErrNoBlock)
	}
	return e.Resolve(b), nil
}

// PopAndReplaceAt resolves a pop of the block at c and refills its slot with
// d once the pop animation completes. d is validated up front.
func (e *Engine) PopAndReplaceAt(c Coord, d Descriptor) (CascadeReport, error) {
	if err := e.factory.Validate(d); err != nil {
		return CascadeReport{}, err
	}
	b := e.BlockAt(c)
	if b == nil {
		return CascadeReport{}, fmt.Errorf("blockpop: pop %s: %w", c, ErrNoBlock)
	}
	return e.ResolveWith([]PopRequest{{Block: b, Replacement: &d}}), nil
}

// Advance moves the animator one tick forward.
func (e *Engine) Advance() {
	e.svc.Animator.Advance()
}

// Settle advances until no animation runs or maxTicks is reached and
// returns the number of ticks used.
func (e *Engine) Settle(maxTicks int) int {
	n := 0
	for n < maxTicks && e.svc.Animator.Busy() {
		e.svc.Animator.Advance()
		n++
	}
	return n
}

func (e *Engine) onPopFinished(ev PopEvent) {
	slot := ev.Slot
	ev.Block.Release()
	if ev.Replacement == nil || slot == nil {
		return
	}
	if !slot.IsEmpty() {
		e.svc.Logger.Warn("replacement slot taken", "slot", slot, "replacement", *ev.Replacement)
		return
	}
	nb, err := e.factory.Make(*ev.Replacement)
	if err != nil {
		e.svc.fault("refill failed", err, "slot", slot)
		return
	}
	if nb != nil {
		nb.Move(slot, 0)
	}
}

func (e *Engine) onReplaceRequested(ev ReplaceEvent) {
	slot := ev.Slot
	if slot == nil || slot.Block() != ev.Block {
		e.svc.Logger.Warn("replace of unplaced block ignored", "block", ev.Block.ID(), "slot", slot)
		return
	}
	nb, err := e.factory.Make(ev.Replacement)
	if err != nil {
		e.svc.fault("replace failed", err, "block", ev.Block.ID(), "slot", slot)
		return
	}
	ev.Block.Release()
	if nb != nil {
		nb.Move(slot, 0)
		if ev.PlayAnimation {
			e.svc.Animator.Play(nb.ID(), Animation{Name: "replace", Ticks: e.tuning.Timing.Replace}, nil)
		}
	}
	if ev.IncreaseScore {
		if err := e.svc.Score.IncreaseScore(e.tuning.Score.Replace); err != nil {
			e.svc.fault("increase score failed", err, "amount", e.tuning.Score.Replace)
		}
	}
}
