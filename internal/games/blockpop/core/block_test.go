package core

import (
	"errors"
	"testing"
)

func TestSelectionStates(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	b := place(t, e, 0, 0, SimpleOf(ColorRed))

	b.Highlight()
	if !b.IsHighlighted() || b.IsSelected() {
		t.Fatalf("after Highlight state = %v", b.State())
	}
	if !b.Pose().Glow {
		t.Error("highlighted simple block should glow")
	}

	b.Select()
	if !b.IsHighlighted() || !b.IsSelected() {
		t.Fatalf("after Select state = %v", b.State())
	}
	if b.SortingOrder() != sortingSelected || b.Pose().Scale != selectScale || b.Pose().GlowOrder != glowSelected {
		t.Errorf("selected pose = %+v, order %d", b.Pose(), b.SortingOrder())
	}

	b.Deselect()
	if !b.IsHighlighted() || b.IsSelected() {
		t.Fatalf("after Deselect state = %v", b.State())
	}
	if b.SortingOrder() != sortingDeselected || b.Pose().GlowOrder != glowDeselected || b.Pose().Scale != 1 {
		t.Errorf("deselected pose = %+v, order %d", b.Pose(), b.SortingOrder())
	}

	b.Dehighlight()
	if b.IsHighlighted() || b.IsSelected() {
		t.Fatalf("after Dehighlight state = %v", b.State())
	}
	if b.Pose() != initialPose() || b.SortingOrder() != sortingIdle {
		t.Errorf("dehighlighted pose = %+v, order %d", b.Pose(), b.SortingOrder())
	}
}

func TestPoppedBlockIgnoresSelection(t *testing.T) {
	e := newTestEngine(t, 2, 1)
	b := place(t, e, 0, 0, SimpleOf(ColorGreen))

	b.Pop()
	b.Highlight()
	b.Select()
	b.Move(e.Grid().At(C(1, 0)), 4)

	if b.IsHighlighted() || b.IsSelected() {
		t.Errorf("popped block state = %v, expected popped only", b.State())
	}
	if !e.Grid().At(C(1, 0)).IsEmpty() {
		t.Error("popped block must not move")
	}
}

func TestPoppedBlockIgnoresDeselect(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
	}{
		{"simple", SimpleOf(ColorRed)},
		{"rocket", RocketOf(OrientationHorizontal)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 3, 1)
			b := place(t, e, 1, 0, tt.d)

			b.Pop()
			b.Deselect()

			if b.IsHighlighted() || b.IsSelected() {
				t.Errorf("popped block state = %v, expected no highlight after Deselect", b.State())
			}
			if !b.HasPopped() {
				t.Error("block should stay popped")
			}
		})
	}
}

func TestMoveKeepsLinksConsistent(t *testing.T) {
	e := newTestEngine(t, 3, 1)
	g := e.Grid()
	b := place(t, e, 0, 0, SimpleOf(ColorBlue))

	b.Move(g.At(C(2, 0)), 5)

	if !g.At(C(0, 0)).IsEmpty() {
		t.Error("old slot should be empty after Move")
	}
	if g.At(C(2, 0)).Block() != b || b.Slot() != g.At(C(2, 0)) {
		t.Error("new slot and block should reference each other")
	}
	if err := g.CheckLinks(); err != nil {
		t.Errorf("CheckLinks: %v", err)
	}

	b.Move(nil, 5)
	if b.Slot() != g.At(C(2, 0)) {
		t.Error("Move(nil) should be a no-op")
	}
}

func TestSwapKeepsLinksConsistent(t *testing.T) {
	e := newTestEngine(t, 2, 2)
	a := place(t, e, 0, 0, SimpleOf(ColorRed))
	b := place(t, e, 1, 1, SimpleOf(ColorYellow))

	if err := e.Swap(C(0, 0), C(1, 1)); err != nil {
		t.Fatalf("Swap error: %v", err)
	}

	if e.BlockAt(C(0, 0)) != b || e.BlockAt(C(1, 1)) != a {
		t.Error("blocks should have exchanged slots")
	}
	if err := e.Grid().CheckLinks(); err != nil {
		t.Errorf("CheckLinks: %v", err)
	}

	if err := e.Swap(C(0, 0), C(1, 0)); !errors.Is(err, ErrNoBlock) {
		t.Errorf("Swap with empty slot = %v, expected ErrNoBlock", err)
	}
}

func TestMoveDisplacesOccupant(t *testing.T) {
	e := newTestEngine(t, 2, 1)
	a := place(t, e, 0, 0, SimpleOf(ColorRed))
	b := place(t, e, 1, 0, SimpleOf(ColorBlue))

	a.Move(e.Grid().At(C(1, 0)), 0)

	if b.Slot() != nil {
		t.Error("displaced block should lose its slot")
	}
	if err := e.Grid().CheckLinks(); err != nil {
		t.Errorf("CheckLinks: %v", err)
	}
}

func TestDehighlightReleasedBlockIsAbsorbed(t *testing.T) {
	var reported []error
	e, err := NewEngine(Options{
		Width:  1,
		Height: 1,
		Services: Services{
			Reporter: ErrorReporterFunc(func(err error) { reported = append(reported, err) }),
		},
	})
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	defer e.Close()

	b := place(t, e, 0, 0, SimpleOf(ColorRed))
	b.Select()
	b.Release()
	b.Dehighlight()

	if b.IsHighlighted() || b.IsSelected() {
		t.Errorf("flags should be cleared even on a released block, got %v", b.State())
	}
	if len(reported) != 1 || !errors.Is(reported[0], ErrReleased) {
		t.Errorf("reported = %v, expected one ErrReleased", reported)
	}
}

func TestPopLeavesBackReferenceUntilRelease(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	slot := e.Grid().At(C(0, 0))
	b := place(t, e, 0, 0, SimpleOf(ColorPurple))

	b.Pop()

	if !slot.IsEmpty() {
		t.Error("slot should be empty once pop begins")
	}
	if b.Slot() != slot {
		t.Error("popping block keeps its slot until released")
	}

	e.Settle(100)

	if !b.IsReleased() || b.Slot() != nil {
		t.Error("block should be released after pop finished")
	}
	if e.Scene().Len() != 0 {
		t.Errorf("scene has %d blocks, expected 0", e.Scene().Len())
	}
}

func TestLatePopFinishKeepsNewOccupant(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	old := place(t, e, 0, 0, SimpleOf(ColorRed))

	old.Pop()
	fresh := place(t, e, 0, 0, SimpleOf(ColorBlue))
	e.Settle(100)

	if e.BlockAt(C(0, 0)) != fresh {
		t.Fatal("releasing the popped block must not clear the new occupant")
	}
	if err := e.Grid().CheckLinks(); err != nil {
		t.Errorf("CheckLinks: %v", err)
	}
}

func TestPopWithNoEffect(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	rec := record(e.Bus())
	b := place(t, e, 0, 0, SimpleOf(ColorRed))

	b.PopWithNoEffect(true)

	if len(rec.began) != 0 {
		t.Errorf("silent pop published %d pop-began", len(rec.began))
	}
	if len(rec.finished) != 1 {
		t.Errorf("pop-finished = %d, expected 1", len(rec.finished))
	}
	if !b.HasPopped() || !b.IsReleased() {
		t.Errorf("block should be popped and released, state %v", b.State())
	}
	if e.Score() != DefaultTuning().Score.NoEffect {
		t.Errorf("Score() = %d, expected %d", e.Score(), DefaultTuning().Score.NoEffect)
	}
}

func TestPopWithoutSlotIsForcedPopped(t *testing.T) {
	var reported []error
	e, err := NewEngine(Options{
		Width:    1,
		Height:   1,
		Services: Services{Reporter: ErrorReporterFunc(func(err error) { reported = append(reported, err) })},
	})
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	defer e.Close()

	b := e.Factory().MustMake(SimpleOf(ColorRed))
	b.PopWithNoEffect(false)

	if !b.HasPopped() {
		t.Error("block should be popped despite the fault")
	}
	if len(reported) != 1 || !errors.Is(reported[0], ErrNoSlot) {
		t.Errorf("reported = %v, expected one ErrNoSlot", reported)
	}
}

func TestMoveToDoesNotRelink(t *testing.T) {
	e := newTestEngine(t, 2, 1)
	b := place(t, e, 0, 0, SimpleOf(ColorRed))
	done := false

	b.MoveTo(e.Grid().At(C(1, 0)), 2, true, func() { done = true })
	e.Settle(100)

	if !done {
		t.Error("MoveTo callback should run after the animation")
	}
	if b.Slot().Coord() != C(0, 0) || !e.Grid().At(C(1, 0)).IsEmpty() {
		t.Error("MoveTo must not change slot linkage")
	}
	if b.SortingOrder() != -1 {
		t.Errorf("SortingOrder() = %d, expected -1", b.SortingOrder())
	}
}

func TestShakeAndInput(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	b := place(t, e, 0, 0, SimpleOf(ColorRed))

	b.Shake()
	if !b.Pose().Shaking {
		t.Error("Shake should start the wobble")
	}
	b.OnInput()
	if b.Pose().Shaking {
		t.Error("OnInput should stop the wobble")
	}
}
