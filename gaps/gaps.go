package gaps

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// ValidMask returns a bitset with one bit per sample, set where the sample is
// valid (not NaN).
func ValidMask(flux []float64) *bitset.BitSet {
	mask := bitset.New(uint(len(flux)))
	for i, v := range flux {
		if !math.IsNaN(v) {
			mask.Set(uint(i))
		}
	}

	return mask
}

// Detect reports whether flux contains a run of consecutive missing samples
// longer than maxGap. Runs are counted between valid samples only; missing
// samples before the first or after the last valid sample do not qualify,
// because no interpolation span crosses them. With fewer than two valid
// samples there is no span at all and Detect returns false. A negative
// maxGap is treated as zero.
func Detect(flux []float64, maxGap int) bool {
	if maxGap < 0 {
		maxGap = 0
	}
	mask := ValidMask(flux)

	prev, ok := mask.NextSet(0)
	if !ok {
		return false
	}
	for {
		next, ok := mask.NextSet(prev + 1)
		if !ok {
			return false
		}
		if int(next-prev)-1 > maxGap {
			return true
		}
		prev = next
	}
}
