package baseline

import "errors"

// ErrInvalidWindow is returned when a detrend window cannot produce a fit: a
// Savitzky-Golay length that is even, not positive, too short for the
// polynomial order, or longer than the series, or a running-median time
// window that is not positive.
var ErrInvalidWindow = errors.New("baseline: invalid detrend window")
