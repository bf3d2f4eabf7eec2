package lightcurve

import "errors"

var (
	// ErrNoSegment indicates an append without a segment.
	ErrNoSegment = errors.New("lightcurve: no segment")
	// ErrIdentityMismatch indicates a segment from a different star.
	ErrIdentityMismatch = errors.New("lightcurve: segment star does not match")
	// ErrCadenceMismatch indicates a segment with a different sampling mode.
	ErrCadenceMismatch = errors.New("lightcurve: segment cadence does not match")
)
