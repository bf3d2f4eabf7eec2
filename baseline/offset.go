package baseline

import (
	"math"
	"slices"
)

// Median returns the median of x using the midpoint convention: the middle
// value for an odd number of samples, the mean of the two central values for
// an even number. It returns NaN for an empty slice. The input is not
// modified.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}

	sorted := slices.Clone(x)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}

	return sorted[mid]
}

// RemoveOffset subtracts the median of flux from every sample in place and
// returns the subtracted offset. Removing the median rather than the mean
// keeps the estimate robust against short transients riding on the series.
// A second call on the centered result subtracts its near-zero median and
// returns that instead of the original baseline, so callers run it once per
// ingest cycle.
func RemoveOffset(flux []float64) float64 {
	if len(flux) == 0 {
		return 0
	}

	dc := Median(flux)
	for i := range flux {
		flux[i] -= dc
	}

	return dc
}
