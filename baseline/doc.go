// Package baseline estimates and removes the slowly varying part of a flux
// series. RemoveOffset centers a series on its median. SavGol fits a
// least-squares local polynomial baseline (Savitzky-Golay), and
// RunningMedianFit computes a running-median baseline over a sliding time
// window. Subtracting either baseline flattens long-timescale variability
// while leaving short transients in place.
package baseline
