package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDescriptor is returned when descriptor text cannot be parsed.
	ErrInvalidDescriptor = errors.New("blockpop: invalid descriptor")
	// ErrUnknownSubtype is returned when no block can be built for a descriptor.
	ErrUnknownSubtype = errors.New("blockpop: unknown block subtype")
	// ErrFactoryExists is returned when a second factory is attached to a scene.
	ErrFactoryExists = errors.New("blockpop: block factory already attached")

	ErrNoSlot      = errors.New("blockpop: block has no slot")
	ErrReleased    = errors.New("blockpop: block released")
	ErrNoBlock     = errors.New("blockpop: no block at coordinate")
	ErrOutOfBounds = errors.New("blockpop: coordinate has no slot")
	ErrOccupied    = errors.New("blockpop: slot occupied")
)

// DescriptorError reports a descriptor the factory cannot build.
// It is a configuration error and is never absorbed.
type DescriptorError struct {
	Descriptor Descriptor
	Err        error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("blockpop: descriptor %s: %v", e.Descriptor, e.Err)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}
