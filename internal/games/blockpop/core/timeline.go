package core

// Track is one running animation on a Timeline.
type Track struct {
	Owner   BlockID
	Anim    Animation
	Elapsed int

	done      func()
	cancelled bool
}

// Progress returns completion in [0, 1].
func (t Track) Progress() float64 {
	if t.Anim.Ticks <= 0 {
		return 1
	}
	p := float64(t.Elapsed) / float64(t.Anim.Ticks)
	if p > 1 {
		return 1
	}
	return p
}

// Timeline is a tick-driven Animator. Each Advance moves every track one
// tick forward; tracks that reach their length complete in the order they
// were started. A zero-length track completes on the next Advance.
type Timeline struct {
	tracks  []*Track
	pending []*Track // finished this tick, callbacks not yet run
	ticks   uint64
}

// NewTimeline creates an idle timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Play starts an animation for owner. done may be nil.
func (t *Timeline) Play(owner BlockID, anim Animation, done func()) {
	t.tracks = append(t.tracks, &Track{Owner: owner, Anim: anim, done: done})
}

// Cancel drops every track of owner without running its callback.
func (t *Timeline) Cancel(owner BlockID) {
	for _, tr := range t.pending {
		if tr.Owner == owner {
			tr.cancelled = true
		}
	}
	kept := t.tracks[:0]
	for _, tr := range t.tracks {
		if tr.Owner == owner {
			tr.cancelled = true
			continue
		}
		kept = append(kept, tr)
	}
	for i := len(kept); i < len(t.tracks); i++ {
		t.tracks[i] = nil
	}
	t.tracks = kept
}

// Advance moves time forward by one tick and fires finished callbacks.
// Callbacks may start or cancel tracks; new tracks begin on the next tick.
func (t *Timeline) Advance() {
	t.ticks++

	current := t.tracks
	t.tracks = nil

	var finished []*Track
	for _, tr := range current {
		tr.Elapsed++
		if tr.Elapsed >= tr.Anim.Ticks {
			finished = append(finished, tr)
			continue
		}
		t.tracks = append(t.tracks, tr)
	}

	t.pending = finished
	for _, tr := range finished {
		if tr.cancelled || tr.done == nil {
			continue
		}
		tr.done()
	}
	t.pending = nil
}

// Busy reports whether any track is running.
func (t *Timeline) Busy() bool {
	return len(t.tracks) > 0
}

// Ticks returns how many times Advance has run.
func (t *Timeline) Ticks() uint64 {
	return t.ticks
}

// Active returns a snapshot of the running tracks.
func (t *Timeline) Active() []Track {
	out := make([]Track, 0, len(t.tracks))
	for _, tr := range t.tracks {
		out = append(out, *tr)
	}
	return out
}

// ActiveFor returns the first running track of owner, if any.
func (t *Timeline) ActiveFor(owner BlockID) (Track, bool) {
	for _, tr := range t.tracks {
		if tr.Owner == owner {
			return *tr, true
		}
	}
	return Track{}, false
}
