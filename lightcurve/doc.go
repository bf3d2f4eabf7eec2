// Package lightcurve assembles Kepler photometry into an analysis-ready
// series. Appending a segment runs a fixed pipeline: the samples join the
// buffer, runs of missing samples are checked against a tolerance, NaNs are
// filled by linear interpolation, and the median offset is subtracted. A
// Savitzky-Golay or running-median baseline can then be removed on top,
// either automatically per append or on demand, to flatten slow stellar
// variability before transient searches.
package lightcurve
