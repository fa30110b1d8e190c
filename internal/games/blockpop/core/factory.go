package core

import "fmt"

// prototype builds a variant around a prepared base.
type prototype func(base blockBase) Block

// Factory turns descriptors into blocks attached to a scene. A scene
// accepts exactly one factory.
type Factory struct {
	scene      *Scene
	env        *env
	prototypes map[Descriptor]prototype
}

// NewFactory creates the factory of scene. A second call for the same scene
// is rejected: the attempt is logged and ErrFactoryExists returned, and the
// first factory stays in place.
func NewFactory(scene *Scene, bus *Bus, svc Services, tuning Tuning) (*Factory, error) {
	svc = svc.withDefaults()
	if scene.factory != nil {
		svc.Logger.Error("rejecting second block factory", "blocks", scene.Len())
		return nil, ErrFactoryExists
	}

	f := &Factory{
		scene: scene,
		env: &env{
			bus:    bus,
			svc:    svc,
			scene:  scene,
			tuning: tuning,
		},
		prototypes: make(map[Descriptor]prototype),
	}
	f.registerDefaults()
	scene.factory = f
	return f, nil
}

// register adds a prototype. Panics if the descriptor is already taken.
func (f *Factory) register(d Descriptor, p prototype) {
	if _, exists := f.prototypes[d]; exists {
		panic(fmt.Sprintf("blockpop: prototype %s already registered", d))
	}
	f.prototypes[d] = p
}

func (f *Factory) registerDefaults() {
	for c := ColorNone; c <= ColorPurple; c++ {
		color := c
		f.register(SimpleOf(color), func(base blockBase) Block {
			return &SimpleBlock{blockBase: base, color: color}
		})
	}
	for o := OrientationNone; o <= OrientationBilinear; o++ {
		orientation := o
		f.register(RocketOf(orientation), func(base blockBase) Block {
			return &Rocket{blockBase: base, orientation: orientation}
		})
	}
	// A broken stone is a terminal state, never a starting one.
	for st := StoneFull; st <= StoneDamagedMore; st++ {
		stage := st
		f.register(StoneOf(stage), func(base blockBase) Block {
			s := &Stone{blockBase: base, stage: stage}
			s.pose.Stage = int(stage)
			return s
		})
	}
}

// Validate reports whether d can be built. None and Empty are valid.
func (f *Factory) Validate(d Descriptor) error {
	if !d.Instantiable() {
		return nil
	}
	if _, ok := f.prototypes[d]; !ok {
		return &DescriptorError{Descriptor: d, Err: ErrUnknownSubtype}
	}
	return nil
}

// Make builds a fresh, unplaced block for d. None and Empty yield (nil, nil).
// An unknown category or subtype is a configuration error.
func (f *Factory) Make(d Descriptor) (Block, error) {
	if !d.Instantiable() {
		return nil, nil
	}
	proto, ok := f.prototypes[d]
	if !ok {
		return nil, &DescriptorError{Descriptor: d, Err: ErrUnknownSubtype}
	}

	b := proto(blockBase{
		id:   f.scene.allocate(),
		desc: d,
		env:  f.env,
	})
	base := b.base()
	base.self = b
	base.initialize()
	f.scene.attach(b)
	return b, nil
}

// MustMake is like Make but panics on error.
func (f *Factory) MustMake(d Descriptor) Block {
	b, err := f.Make(d)
	if err != nil {
		panic(err)
	}
	return b
}
