package core

import "slices"

// PopEvent is published when a block starts and when it finishes popping.
// Slot is the slot the block occupied; Replacement is set for
// pop-and-replace, asking for the slot to be refilled once the pop ends.
type PopEvent struct {
	Block       Block
	Slot        *Slot
	Replacement *Descriptor
}

// ReplaceEvent asks for a block to be swapped in place for a new one.
type ReplaceEvent struct {
	Block         Block
	Slot          *Slot
	Replacement   Descriptor
	PlayAnimation bool
	IncreaseScore bool
}

// EventKind identifies a notification channel on the Bus.
type EventKind uint8

const (
	EventPopBegan EventKind = iota
	EventPopFinished
	EventReplaceRequested
)

func (k EventKind) String() string {
	switch k {
	case EventPopBegan:
		return "pop_began"
	case EventPopFinished:
		return "pop_finished"
	case EventReplaceRequested:
		return "replace_requested"
	default:
		return "unknown"
	}
}

// BusStats counts published notifications per kind.
type BusStats struct {
	PopBegan         int
	PopFinished      int
	ReplaceRequested int
}

// Bus is the notification hub of one engine. Dispatch is synchronous and
// in subscription order, on the publisher's goroutine.
type Bus struct {
	popBegan         handlers[PopEvent]
	popFinished      handlers[PopEvent]
	replaceRequested handlers[ReplaceEvent]
	stats            BusStats
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// OnPopBegan subscribes to pop-began. The returned func unsubscribes.
func (b *Bus) OnPopBegan(fn func(PopEvent)) func() {
	return b.popBegan.add(fn)
}

// OnPopFinished subscribes to pop-finished. The returned func unsubscribes.
func (b *Bus) OnPopFinished(fn func(PopEvent)) func() {
	return b.popFinished.add(fn)
}

// OnReplaceRequested subscribes to replace-requested. The returned func unsubscribes.
func (b *Bus) OnReplaceRequested(fn func(ReplaceEvent)) func() {
	return b.replaceRequested.add(fn)
}

// Stats returns how many notifications of each kind were published.
func (b *Bus) Stats() BusStats {
	return b.stats
}

func (b *Bus) publishPopBegan(e PopEvent) {
	b.stats.PopBegan++
	b.popBegan.emit(e)
}

func (b *Bus) publishPopFinished(e PopEvent) {
	b.stats.PopFinished++
	b.popFinished.emit(e)
}

func (b *Bus) publishReplaceRequested(e ReplaceEvent) {
	b.stats.ReplaceRequested++
	b.replaceRequested.emit(e)
}

type handler[E any] struct {
	id int
	fn func(E)
}

type handlers[E any] struct {
	next int
	list []handler[E]
}

func (h *handlers[E]) add(fn func(E)) func() {
	h.next++
	id := h.next
	h.list = append(h.list, handler[E]{id: id, fn: fn})
	return func() {
		h.list = slices.DeleteFunc(h.list, func(x handler[E]) bool { return x.id == id })
	}
}

func (h *handlers[E]) emit(e E) {
	// Handlers may unsubscribe while we iterate.
	for _, x := range slices.Clone(h.list) {
		x.fn(e)
	}
}
