package scene

import "errors"

var (
	// ErrNotYetAvailable means the platform has not produced the buffer for
	// this frame yet. Callers treat it as "no signal" for the frame.
	ErrNotYetAvailable = errors.New("scene: buffer not yet available")

	// ErrEmptyBuffer is returned for zero-sized images.
	ErrEmptyBuffer = errors.New("scene: empty buffer")

	// ErrMalformedBuffer is returned when a buffer is shorter than its
	// declared resolution.
	ErrMalformedBuffer = errors.New("scene: malformed buffer")

	// ErrUnknownProbe is returned for probe identifiers outside the 3x4 grid.
	ErrUnknownProbe = errors.New("scene: unknown probe identifier")
)
