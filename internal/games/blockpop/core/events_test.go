package core

import "testing"

func TestBusDispatchOrderAndUnsubscribe(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.OnPopBegan(func(PopEvent) { calls = append(calls, "first") })
	stop := bus.OnPopBegan(func(PopEvent) { calls = append(calls, "second") })
	bus.OnPopBegan(func(PopEvent) { calls = append(calls, "third") })

	bus.publishPopBegan(PopEvent{})
	stop()
	bus.publishPopBegan(PopEvent{})

	want := []string{"first", "second", "third", "first", "third"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, expected %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, expected %q", i, calls[i], want[i])
		}
	}
	if bus.Stats().PopBegan != 2 {
		t.Errorf("Stats().PopBegan = %d, expected 2", bus.Stats().PopBegan)
	}
}

func TestBusUnsubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()
	count := 0

	var stop func()
	stop = bus.OnPopFinished(func(PopEvent) {
		count++
		stop()
	})

	bus.publishPopFinished(PopEvent{})
	bus.publishPopFinished(PopEvent{})

	if count != 1 {
		t.Errorf("handler ran %d times, expected 1", count)
	}
}

func TestEventKindString(t *testing.T) {
	if EventReplaceRequested.String() != "replace_requested" {
		t.Errorf("String() = %q", EventReplaceRequested.String())
	}
}
