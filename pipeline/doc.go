// Package pipeline assembles light curves for many stars concurrently. Each
// star is one unit of work: its quarter files are located, read, and
// appended sequentially into a fresh Lightcurve, while stars fan out across
// a bounded worker pool. Curves never cross goroutines mid-build, which
// keeps the single-writer rule of the underlying buffers trivial.
package pipeline
