// Package gaps detects and repairs missing samples in flux arrays. A sample
// is missing when its value is NaN. Detection reports whether any run of
// consecutive missing samples exceeds a tolerance; Interpolate fills missing
// samples by piecewise-linear interpolation against the nearest valid
// neighbors in index space.
package gaps
