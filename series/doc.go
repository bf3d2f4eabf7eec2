// Package series provides the append-only sample buffer backing a light
// curve: three index-aligned float64 arrays for flux, timestamp, and flux
// error. Transform packages accept raw []float64; Buffer keeps the three
// arrays aligned as segments are ingested.
package series
