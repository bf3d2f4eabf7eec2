package baseline

import "fmt"

// RunningMedianFit computes the running-median baseline of flux: for each
// sample, the median of every sample whose timestamp lies strictly within
// half the window width dt of its own. Membership is decided by timestamp
// distance alone, so irregular spacing and repeated timestamps are handled
// naturally; dt shares the unit of ts. Each window contains at least the
// sample itself, so the baseline is defined everywhere.
func RunningMedianFit(flux, ts []float64, dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: running-median width %v must be positive", ErrInvalidWindow, dt)
	}
	if len(flux) != len(ts) {
		return nil, fmt.Errorf("baseline: flux and timestamp lengths differ: %d != %d", len(flux), len(ts))
	}

	half := dt / 2
	fit := make([]float64, len(flux))
	members := make([]float64, 0, 64)
	for i, t := range ts {
		members = members[:0]
		for j, u := range ts {
			if u > t-half && u < t+half {
				members = append(members, flux[j])
			}
		}
		fit[i] = Median(members)
	}

	return fit, nil
}
