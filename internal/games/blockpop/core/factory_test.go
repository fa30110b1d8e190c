package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFactoryMake(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	f := e.Factory()

	tests := []struct {
		d    Descriptor
		kind string
	}{
		{SimpleOf(ColorRed), "simple"},
		{SimpleOf(ColorNone), "simple"},
		{RocketOf(OrientationBilinear), "rocket"},
		{StoneOf(StoneDamagedMore), "stone"},
	}

	for _, tt := range tests {
		b, err := f.Make(tt.d)
		if err != nil {
			t.Errorf("Make(%v) error: %v", tt.d, err)
			continue
		}
		var kind string
		switch b.(type) {
		case *SimpleBlock:
			kind = "simple"
		case *Rocket:
			kind = "rocket"
		case *Stone:
			kind = "stone"
		}
		if kind != tt.kind {
			t.Errorf("Make(%v) built %s, expected %s", tt.d, kind, tt.kind)
		}
		if b.Descriptor() != tt.d || b.Slot() != nil || b.State() != 0 {
			t.Errorf("Make(%v) = desc %v slot %v state %v", tt.d, b.Descriptor(), b.Slot(), b.State())
		}
		if _, ok := e.Scene().Lookup(b.ID()); !ok {
			t.Errorf("Make(%v) block not attached to scene", tt.d)
		}
	}
}

func TestFactoryNoInstance(t *testing.T) {
	e := newTestEngine(t, 1, 1)

	for _, d := range []Descriptor{NoBlock, EmptyBlock} {
		b, err := e.Factory().Make(d)
		if b != nil || err != nil {
			t.Errorf("Make(%v) = %v, %v; expected nil, nil", d, b, err)
		}
	}
	if e.Scene().Len() != 0 {
		t.Errorf("scene has %d blocks, expected 0", e.Scene().Len())
	}
}

func TestFactoryRejectsUnknownSubtypes(t *testing.T) {
	e := newTestEngine(t, 1, 1)

	bad := []Descriptor{
		StoneOf(StoneBroken),
		{Category: CategorySimple, Subtype: 42},
		{Category: CategoryRocket, Subtype: 9},
		{Category: Category(17), Subtype: 0},
	}
	for _, d := range bad {
		_, err := e.Factory().Make(d)
		var de *DescriptorError
		if !errors.As(err, &de) || !errors.Is(err, ErrUnknownSubtype) {
			t.Errorf("Make(%v) error = %v, expected DescriptorError", d, err)
		}
		if err := e.Factory().Validate(d); err == nil {
			t.Errorf("Validate(%v) should fail", d)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("MustMake should panic on a bad descriptor")
		}
	}()
	e.Factory().MustMake(StoneOf(StoneBroken))
}

func TestFactoryRejectsSecondInstance(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	scene := NewScene()
	first, err := NewFactory(scene, NewBus(), Services{Logger: logger}, DefaultTuning())
	if err != nil {
		t.Fatalf("first NewFactory error: %v", err)
	}

	second, err := NewFactory(scene, NewBus(), Services{Logger: logger}, DefaultTuning())
	if !errors.Is(err, ErrFactoryExists) || second != nil {
		t.Fatalf("second NewFactory = %v, %v; expected ErrFactoryExists", second, err)
	}
	if scene.Factory() != first {
		t.Error("first factory must stay attached")
	}
	if !strings.Contains(buf.String(), "rejecting second block factory") {
		t.Errorf("rejection not logged, log = %q", buf.String())
	}
}

func TestFactoryDuplicatePrototypePanics(t *testing.T) {
	e := newTestEngine(t, 1, 1)

	defer func() {
		if recover() == nil {
			t.Error("register should panic on a duplicate descriptor")
		}
	}()
	e.Factory().register(SimpleOf(ColorRed), func(base blockBase) Block {
		return &SimpleBlock{blockBase: base}
	})
}
