package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrTooShort indicates a signal with fewer than two samples.
	ErrTooShort = errors.New("spectrum: at least two samples required")
	// ErrInvalidRate indicates a non-positive sample rate.
	ErrInvalidRate = errors.New("spectrum: sample rate must be positive")
)

// Window selects the taper applied before the transform.
type Window int

const (
	// WindowBoxcar applies no taper.
	WindowBoxcar Window = iota
	// WindowHann applies a Hann taper, trading resolution for less leakage.
	WindowHann
)

type config struct {
	window Window
}

func defaultConfig() config {
	return config{window: WindowBoxcar}
}

// Option configures the estimate.
type Option func(*config)

// WithWindow selects the taper applied before the transform.
func WithWindow(w Window) Option {
	return func(cfg *config) {
		cfg.window = w
	}
}

// PSD estimates the one-sided power spectral density of signal sampled at
// sampleRate hertz. The signal is zero-padded to the next power of two, so
// the result holds fftSize/2+1 bins from DC to the Nyquist frequency; every
// interior bin carries the power of its negative-frequency twin. PSD returns
// the density and the frequency of each bin in hertz.
func PSD(signal []float64, sampleRate float64, opts ...Option) (psd, freqs []float64, err error) {
	if len(signal) < 2 {
		return nil, nil, ErrTooShort
	}
	if sampleRate <= 0 {
		return nil, nil, ErrInvalidRate
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(signal)
	fftSize := nextPowerOf2(n)

	coeffs := windowCoeffs(cfg.window, n)
	sumSq := float64(n)
	if coeffs != nil {
		sumSq = 0
		for _, w := range coeffs {
			sumSq += w * w
		}
	}

	in := make([]complex128, fftSize)
	for i, v := range signal {
		w := 1.0
		if coeffs != nil {
			w = coeffs[i]
		}
		in[i] = complex(v*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: create fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("spectrum: forward transform: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	psd = make([]float64, bins)
	vecmath.Power(psd, re, im)

	scale := 1 / (sampleRate * sumSq)
	binWidth := sampleRate / float64(fftSize)
	freqs = make([]float64, bins)
	for k := range psd {
		psd[k] *= scale
		if k > 0 && k < bins-1 {
			psd[k] *= 2
		}
		freqs[k] = float64(k) * binWidth
	}

	return psd, freqs, nil
}

func windowCoeffs(w Window, n int) []float64 {
	if w != WindowHann {
		return nil
	}
	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1
		return coeffs
	}
	for i := range coeffs {
		coeffs[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return coeffs
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
