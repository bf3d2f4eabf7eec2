package baseline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// SavGol is a Savitzky-Golay smoothing filter: a least-squares polynomial fit
// over a sliding window, collapsed into a fixed convolution kernel. The
// kernel depends only on the window length and polynomial order, so one
// SavGol can fit any number of series.
type SavGol struct {
	window int
	order  int
	kernel []float64
}

// NewSavGol designs a smoothing filter with the given window length (odd
// sample count) and polynomial order. The window must hold at least order+2
// samples, so the smallest usable window is 3.
func NewSavGol(window, order int) (*SavGol, error) {
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("%w: length %d must be positive and odd", ErrInvalidWindow, window)
	}
	if order < 0 || window < order+2 {
		return nil, fmt.Errorf("%w: length %d too short for polynomial order %d", ErrInvalidWindow, window, order)
	}

	kernel, err := smoothingKernel(window, order)
	if err != nil {
		return nil, err
	}

	return &SavGol{window: window, order: order, kernel: kernel}, nil
}

// Window returns the window length in samples.
func (s *SavGol) Window() int { return s.window }

// Order returns the polynomial order.
func (s *SavGol) Order() int { return s.order }

// Fit returns the smoothed baseline of flux: each output sample is the
// least-squares polynomial fit over the window centered on it. The series is
// extended at both ends with mirrored values so the baseline has the same
// length as the input. Fails when the series is shorter than the window.
func (s *SavGol) Fit(flux []float64) ([]float64, error) {
	if len(flux) < s.window {
		return nil, fmt.Errorf("%w: length %d exceeds the %d-sample series", ErrInvalidWindow, s.window, len(flux))
	}

	n := len(flux)
	half := s.window / 2
	padded := make([]float64, n+2*half)
	copy(padded[half:], flux)
	for k := range half {
		padded[k] = flux[0] - math.Abs(flux[half-k]-flux[0])
		padded[half+n+k] = flux[n-1] + math.Abs(flux[n-2-k]-flux[n-1])
	}

	fit := make([]float64, n)
	for i := range fit {
		win := padded[i : i+s.window]
		var acc float64
		for k, c := range s.kernel {
			acc += c * win[k]
		}
		fit[i] = acc
	}

	return fit, nil
}

// Detrend subtracts the fitted baseline from flux and returns the detrended
// series along with the baseline itself. The input is not modified.
func (s *SavGol) Detrend(flux []float64) (detrended, fit []float64, err error) {
	fit, err = s.Fit(flux)
	if err != nil {
		return nil, nil, err
	}

	detrended = make([]float64, len(flux))
	vecmath.ScaleBlock(detrended, fit, -1)
	vecmath.AddBlockInPlace(detrended, flux)

	return detrended, fit, nil
}

// smoothingKernel solves the normal equations of the least-squares polynomial
// fit on the stencil -half..half and evaluates the resulting coefficient
// vector back onto the stencil. Applying the kernel as a dot product yields
// the fitted polynomial's value at the window center.
func smoothingKernel(window, order int) ([]float64, error) {
	half := window / 2
	dim := order + 1

	g := mat.NewSymDense(dim, nil)
	for j := 0; j < dim; j++ {
		for k := j; k < dim; k++ {
			var s float64
			for m := -half; m <= half; m++ {
				s += math.Pow(float64(m), float64(j+k))
			}
			g.SetSym(j, k, s)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(g) {
		return nil, fmt.Errorf("%w: normal equations singular for length %d order %d", ErrInvalidWindow, window, order)
	}

	rhs := mat.NewVecDense(dim, nil)
	rhs.SetVec(0, 1)
	var coeffs mat.VecDense
	if err := chol.SolveVecTo(&coeffs, rhs); err != nil {
		return nil, fmt.Errorf("baseline: solve normal equations: %w", err)
	}

	kernel := make([]float64, window)
	for m := -half; m <= half; m++ {
		x := float64(m)
		var v float64
		for j := order; j >= 0; j-- {
			v = v*x + coeffs.AtVec(j)
		}
		kernel[m+half] = v
	}

	return kernel, nil
}
