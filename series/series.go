package series

import (
	"errors"
	"slices"
)

var (
	// ErrLengthMismatch indicates flux, timestamp, and error arrays of
	// unequal length.
	ErrLengthMismatch = errors.New("series: flux, timestamp, and error arrays must have equal length")
	// ErrTooShort indicates an operation that needs at least two samples.
	ErrTooShort = errors.New("series: at least two samples required")
)

// Buffer holds the concatenated samples of all ingested segments, in append
// order. The three arrays are always equal length and index-aligned: sample i
// of flux, timestamp, and flux error refers to one observation.
//
// A Buffer is owned by exactly one light curve and is not safe for concurrent
// use.
type Buffer struct {
	flux    []float64
	ts      []float64
	fluxErr []float64
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append concatenates one segment's arrays onto the buffer end-to-end,
// preserving ingestion order. No reordering or deduplication by timestamp is
// performed. The inputs are copied; the buffer never aliases caller memory.
//
// Append fails with ErrLengthMismatch, leaving the buffer untouched, if the
// three slices disagree in length.
func (b *Buffer) Append(flux, ts, fluxErr []float64) error {
	if len(flux) != len(ts) || len(flux) != len(fluxErr) {
		return ErrLengthMismatch
	}

	b.flux = append(b.flux, flux...)
	b.ts = append(b.ts, ts...)
	b.fluxErr = append(b.fluxErr, fluxErr...)

	return nil
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.flux)
}

// Flux returns the underlying flux slice. Callers may replace values in
// place but must not grow or shrink the slice.
func (b *Buffer) Flux() []float64 {
	return b.flux
}

// Time returns the underlying timestamp slice, in seconds.
func (b *Buffer) Time() []float64 {
	return b.ts
}

// FluxErr returns the underlying flux-error slice.
func (b *Buffer) FluxErr() []float64 {
	return b.fluxErr
}

// CopyFlux returns a copy of the flux slice.
func (b *Buffer) CopyFlux() []float64 {
	return slices.Clone(b.flux)
}

// Interval returns the sample separation, computed from the first two
// timestamps only. This assumes uniform sampling across the whole buffer;
// merging segments of differing cadence silently invalidates the result (see
// MedianInterval). Fails with ErrTooShort on fewer than two samples.
func (b *Buffer) Interval() (float64, error) {
	if len(b.ts) < 2 {
		return 0, ErrTooShort
	}

	return b.ts[1] - b.ts[0], nil
}

// Frequency returns the sampling frequency, the reciprocal of Interval.
func (b *Buffer) Frequency() (float64, error) {
	dt, err := b.Interval()
	if err != nil {
		return 0, err
	}

	return 1 / dt, nil
}

// MedianInterval returns the median of the consecutive timestamp
// differences. Unlike Interval it stays meaningful when the buffer mixes
// cadences or contains timing glitches; it is a diagnostic accessor and is
// never substituted for Interval implicitly.
func (b *Buffer) MedianInterval() (float64, error) {
	if len(b.ts) < 2 {
		return 0, ErrTooShort
	}

	diffs := make([]float64, len(b.ts)-1)
	for i := range diffs {
		diffs[i] = b.ts[i+1] - b.ts[i]
	}

	slices.Sort(diffs)

	n := len(diffs)
	if n%2 == 0 {
		return (diffs[n/2-1] + diffs[n/2]) / 2, nil
	}

	return diffs[n/2], nil
}
