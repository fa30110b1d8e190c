package core

import "testing"

// recorder collects bus notifications in publish order.
type recorder struct {
	began    []PopEvent
	finished []PopEvent
	replaced []ReplaceEvent
}

func record(bus *Bus) *recorder {
	r := &recorder{}
	bus.OnPopBegan(func(e PopEvent) { r.began = append(r.began, e) })
	bus.OnPopFinished(func(e PopEvent) { r.finished = append(r.finished, e) })
	bus.OnReplaceRequested(func(e ReplaceEvent) { r.replaced = append(r.replaced, e) })
	return r
}

func newTestEngine(t *testing.T, w, h int) *Engine {
	t.Helper()
	e, err := NewEngine(Options{Width: w, Height: h})
	if err != nil {
		t.Fatalf("NewEngine(%d, %d) error: %v", w, h, err)
	}
	t.Cleanup(e.Close)
	return e
}

func place(t *testing.T, e *Engine, x, y int, d Descriptor) Block {
	t.Helper()
	b, err := e.Place(C(x, y), d)
	if err != nil {
		t.Fatalf("Place(%d, %d, %s) error: %v", x, y, d, err)
	}
	return b
}

func ids(blocks []Block) []BlockID {
	out := make([]BlockID, len(blocks))
	for i, b := range blocks {
		out[i] = b.ID()
	}
	return out
}

func sameIDs(a, b []BlockID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
