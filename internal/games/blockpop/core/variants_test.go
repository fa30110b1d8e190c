package core

import "testing"

func TestDoublePopPublishesOnce(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
	}{
		{"simple", SimpleOf(ColorRed)},
		{"rocket", RocketOf(OrientationHorizontal)},
		{"stone", StoneOf(StoneDamagedMore)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 1, 1)
			rec := record(e.Bus())
			b := place(t, e, 0, 0, tt.d)

			b.Pop()
			b.Pop()
			e.Settle(100)

			if len(rec.began) != 1 || len(rec.finished) != 1 {
				t.Errorf("began=%d finished=%d, expected 1 and 1", len(rec.began), len(rec.finished))
			}
			if rec.began[0].Block != b {
				t.Error("pop-began should carry the popped block")
			}
		})
	}
}

func TestSimplePopScoresAndAnimates(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	b := place(t, e, 0, 0, SimpleOf(ColorYellow))

	b.Pop()

	tl := e.Animator().(*Timeline)
	track, ok := tl.ActiveFor(b.ID())
	if !ok || track.Anim.Name != "yellow" {
		t.Errorf("active animation = %+v, %v; expected yellow", track, ok)
	}
	if e.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", e.Score())
	}
}

func TestSimplePopAndReplaceRefills(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	rec := record(e.Bus())
	b := place(t, e, 0, 0, SimpleOf(ColorRed))

	b.PopAndReplace(RocketOf(OrientationVertical))

	if rec.began[0].Replacement == nil || *rec.began[0].Replacement != RocketOf(OrientationVertical) {
		t.Fatal("pop-began should carry the replacement")
	}
	if e.BlockAt(C(0, 0)) != nil {
		t.Fatal("slot should be empty while the pop plays")
	}

	e.Settle(100)

	r, ok := e.BlockAt(C(0, 0)).(*Rocket)
	if !ok || r.Orientation() != OrientationVertical {
		t.Fatalf("slot holds %v, expected a vertical rocket", e.BlockAt(C(0, 0)))
	}
	if !r.IsVisible() {
		t.Error("refilled block should be visible")
	}
}

func TestReplaceRequest(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	rec := record(e.Bus())
	b := place(t, e, 0, 0, SimpleOf(ColorRed))

	b.Replace(SimpleOf(ColorBlue), true, true)

	if len(rec.replaced) != 1 {
		t.Fatalf("replace-requested = %d, expected 1", len(rec.replaced))
	}
	nb, ok := e.BlockAt(C(0, 0)).(*SimpleBlock)
	if !ok || nb.Color() != ColorBlue {
		t.Fatalf("slot holds %v, expected blue simple block", e.BlockAt(C(0, 0)))
	}
	if !b.IsReleased() {
		t.Error("replaced block should be released")
	}
	if e.Score() != DefaultTuning().Score.Replace {
		t.Errorf("Score() = %d, expected %d", e.Score(), DefaultTuning().Score.Replace)
	}
}

func TestRocketAdditionalBlocksHorizontal(t *testing.T) {
	e := newTestEngine(t, 5, 1)
	var others []Block
	for x, c := range []SimpleColor{ColorRed, ColorGreen, ColorNone, ColorBlue, ColorYellow} {
		if x == 2 {
			continue
		}
		others = append(others, place(t, e, x, 0, SimpleOf(c)))
	}
	r := place(t, e, 2, 0, RocketOf(OrientationHorizontal))

	got := r.AdditionalBlocksToPop()
	if !sameIDs(ids(got), ids(others)) {
		t.Fatalf("AdditionalBlocksToPop = %v, expected %v", ids(got), ids(others))
	}

	others[1].Highlight()
	got = r.AdditionalBlocksToPop()
	if len(got) != 3 {
		t.Errorf("highlighted blocks should be skipped, got %d", len(got))
	}
}

func TestRocketAdditionalBlocksBilinear(t *testing.T) {
	e := newTestEngine(t, 3, 3)
	left := place(t, e, 0, 1, SimpleOf(ColorRed))
	right := place(t, e, 2, 1, SimpleOf(ColorRed))
	top := place(t, e, 1, 0, SimpleOf(ColorRed))
	bottom := place(t, e, 1, 2, SimpleOf(ColorRed))
	place(t, e, 0, 0, SimpleOf(ColorBlue)) // off the cross
	r := place(t, e, 1, 1, RocketOf(OrientationBilinear))

	got := r.AdditionalBlocksToPop()
	want := ids([]Block{left, right, top, bottom})
	if !sameIDs(ids(got), want) {
		t.Errorf("AdditionalBlocksToPop = %v, expected %v", ids(got), want)
	}

	v := e.Factory().MustMake(RocketOf(OrientationVertical))
	if v.AdditionalBlocksToPop() != nil {
		t.Error("unplaced rocket should sweep nothing")
	}
}

func TestRocketScore(t *testing.T) {
	tests := []struct {
		o    Orientation
		want int
	}{
		{OrientationHorizontal, 61},
		{OrientationVertical, 61},
		{OrientationBilinear, 111},
	}

	for _, tt := range tests {
		e := newTestEngine(t, 1, 1)
		r := place(t, e, 0, 0, RocketOf(tt.o))
		r.Pop()
		if e.Score() != tt.want {
			t.Errorf("%v rocket score = %d, expected %d", tt.o, e.Score(), tt.want)
		}
	}
}

func TestRocketPresentation(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	r := place(t, e, 0, 0, RocketOf(OrientationHorizontal))

	r.Highlight()
	if !r.Pose().Armed || !r.IsHighlighted() {
		t.Error("highlighted rocket should be armed")
	}
	r.Select()
	r.Deselect()
	if r.SortingOrder() != sortingDeselected || r.IsSelected() {
		t.Errorf("deselected rocket order = %d, state %v", r.SortingOrder(), r.State())
	}
	r.Dehighlight()
	if r.Pose().Armed || r.IsHighlighted() || r.SortingOrder() != sortingIdle {
		t.Errorf("dehighlighted rocket pose = %+v, state %v", r.Pose(), r.State())
	}
}

func TestStoneDamageSequence(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	rec := record(e.Bus())
	s := place(t, e, 0, 0, StoneOf(StoneFull)).(*Stone)
	hit := DefaultTuning().Score.StoneHit

	s.Pop()
	if s.Stage() != StoneDamagedLittle || s.HasPopped() || e.Score() != hit {
		t.Fatalf("after 1 pop: stage %v popped %v score %d", s.Stage(), s.HasPopped(), e.Score())
	}
	s.Pop()
	if s.Stage() != StoneDamagedMore || s.HasPopped() || e.Score() != 2*hit {
		t.Fatalf("after 2 pops: stage %v popped %v score %d", s.Stage(), s.HasPopped(), e.Score())
	}
	if len(rec.began) != 0 {
		t.Fatal("damage alone must not publish pop-began")
	}

	s.Pop()
	if s.Stage() != StoneBroken || !s.HasPopped() {
		t.Fatalf("after 3 pops: stage %v popped %v", s.Stage(), s.HasPopped())
	}
	// Third call scores itself and the recursive terminal pop, plus pop-began.
	if want := 4*hit + 1; e.Score() != want {
		t.Errorf("Score() = %d, expected %d", e.Score(), want)
	}
	if !s.Pose().Hidden || s.Pose().Stage != int(StoneBroken) {
		t.Errorf("broken stone pose = %+v", s.Pose())
	}

	before := e.Score()
	s.Pop()
	if e.Score() != before {
		t.Error("popped stone must not score again")
	}
}

func TestStoneReplaceActsAsHit(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	rec := record(e.Bus())
	s := place(t, e, 0, 0, StoneOf(StoneFull)).(*Stone)

	s.Replace(SimpleOf(ColorRed), true, true)
	s.PopAndReplace(SimpleOf(ColorRed))

	if s.Stage() != StoneDamagedMore {
		t.Errorf("Stage() = %v, expected damaged_more", s.Stage())
	}
	if len(rec.replaced) != 0 {
		t.Error("stones never request replacement")
	}
}

func TestStoneDehighlightKeepsSprite(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	s := place(t, e, 0, 0, StoneOf(StoneDamagedLittle))

	if s.Pose().Stage != int(StoneDamagedLittle) {
		t.Fatalf("initial sprite stage = %d", s.Pose().Stage)
	}
	s.Highlight()
	s.Dehighlight()
	if s.Pose().Stage != int(StoneDamagedLittle) {
		t.Errorf("sprite stage after dehighlight = %d", s.Pose().Stage)
	}
}
