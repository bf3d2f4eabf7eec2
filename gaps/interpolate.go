package gaps

import "errors"

// ErrNoValidSamples is returned when interpolation has no valid sample to
// draw values from.
var ErrNoValidSamples = errors.New("gaps: no valid samples to interpolate from")

// Interpolate replaces every missing (NaN) sample of flux in place with the
// linear interpolation of its nearest valid neighbors, using sample index as
// the abscissa. Missing samples before the first valid sample take the first
// valid value, and missing samples after the last valid sample take the last
// valid value. Valid samples are never modified.
//
// A slice without missing samples (including the empty slice) is left
// untouched. If every sample is missing there is nothing to interpolate from
// and ErrNoValidSamples is returned with flux unmodified.
func Interpolate(flux []float64) error {
	mask := ValidMask(flux)
	valid := mask.Count()
	if valid == uint(len(flux)) {
		return nil
	}
	if valid == 0 {
		return ErrNoValidSamples
	}

	first, _ := mask.NextSet(0)
	prev := -1
	for i := range flux {
		if mask.Test(uint(i)) {
			prev = i
			continue
		}
		next, ok := mask.NextSet(uint(i))
		switch {
		case prev < 0:
			flux[i] = flux[first]
		case !ok:
			flux[i] = flux[prev]
		default:
			t := float64(i-prev) / float64(int(next)-prev)
			flux[i] = flux[prev] + t*(flux[int(next)]-flux[prev])
		}
	}

	return nil
}
