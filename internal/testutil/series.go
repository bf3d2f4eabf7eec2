package testutil

import (
	"math"
	"math/rand"
)

// Timestamps returns n timestamps starting at start and spaced dt apart.
func Timestamps(start, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + dt*float64(i)
	}
	return out
}

// Ramp returns n samples of a linear ramp beginning at start with the given
// per-sample step.
func Ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// DC returns n samples of a constant signal.
func DC(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// WithNaNs returns a copy of x with the samples at the given indices
// replaced by NaN.
func WithNaNs(x []float64, at ...int) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for _, i := range at {
		out[i] = math.NaN()
	}
	return out
}

// WithNaNRun returns a copy of x with a run of n consecutive samples
// starting at start replaced by NaN.
func WithNaNRun(x []float64, start, n int) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for i := start; i < start+n && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}
