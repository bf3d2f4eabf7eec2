package baseline

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-lightcurve/internal/testutil"
)

func TestNewSavGolValidation(t *testing.T) {
	cases := []struct {
		name          string
		window, order int
	}{
		{"even window", 4, 2},
		{"zero window", 0, 0},
		{"window of one", 1, 0},
		{"negative order", 5, -1},
		{"order too high", 5, 5},
		{"order needs larger window", 5, 4},
	}
	for _, tc := range cases {
		if _, err := NewSavGol(tc.window, tc.order); !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("%s: NewSavGol(%d, %d) returned %v, want ErrInvalidWindow",
				tc.name, tc.window, tc.order, err)
		}
	}
}

func TestQuadraticKernel(t *testing.T) {
	// The 5-point quadratic smoothing kernel is (-3, 12, 17, 12, -3)/35.
	s, err := NewSavGol(5, 2)
	if err != nil {
		t.Fatalf("NewSavGol returned %v", err)
	}
	want := []float64{-3.0 / 35, 12.0 / 35, 17.0 / 35, 12.0 / 35, -3.0 / 35}
	testutil.RequireSliceNearlyEqual(t, s.kernel, want, 1e-12)
}

func TestKernelOrderParity(t *testing.T) {
	// On a symmetric stencil the cubic fit adds nothing to the smoothed
	// center value, so orders 2 and 3 share a kernel.
	quad, err := NewSavGol(7, 2)
	if err != nil {
		t.Fatalf("NewSavGol(7, 2) returned %v", err)
	}
	cubic, err := NewSavGol(7, 3)
	if err != nil {
		t.Fatalf("NewSavGol(7, 3) returned %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, cubic.kernel, quad.kernel, 1e-9)
}

func TestFitReproducesLine(t *testing.T) {
	// The mirrored end extension continues a straight line exactly, so the
	// fitted baseline matches the input everywhere including the edges.
	flux := testutil.Ramp(10, 0.5, 40)
	s, err := NewSavGol(9, 2)
	if err != nil {
		t.Fatalf("NewSavGol returned %v", err)
	}
	fit, err := s.Fit(flux)
	if err != nil {
		t.Fatalf("Fit returned %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, fit, flux, 1e-9)
}

func TestFitConstant(t *testing.T) {
	flux := testutil.DC(7, 21)
	s, err := NewSavGol(5, 3)
	if err != nil {
		t.Fatalf("NewSavGol returned %v", err)
	}
	fit, err := s.Fit(flux)
	if err != nil {
		t.Fatalf("Fit returned %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, fit, flux, 1e-12)
}

func TestFitSeriesTooShort(t *testing.T) {
	s, err := NewSavGol(5, 2)
	if err != nil {
		t.Fatalf("NewSavGol returned %v", err)
	}
	if _, err := s.Fit([]float64{1, 2, 3}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("Fit returned %v, want ErrInvalidWindow", err)
	}
}

func TestDetrendSubtractsFit(t *testing.T) {
	flux := testutil.Ramp(100, -2, 30)
	s, err := NewSavGol(7, 1)
	if err != nil {
		t.Fatalf("NewSavGol returned %v", err)
	}
	detrended, fit, err := s.Detrend(flux)
	if err != nil {
		t.Fatalf("Detrend returned %v", err)
	}

	sum := make([]float64, len(flux))
	for i := range sum {
		sum[i] = detrended[i] + fit[i]
	}
	testutil.RequireSliceNearlyEqual(t, sum, flux, 1e-9)
	testutil.RequireSliceNearlyEqual(t, detrended, make([]float64, len(flux)), 1e-9)
}

func TestDetrendKeepsInput(t *testing.T) {
	flux := testutil.Ramp(0, 1, 20)
	orig := testutil.Ramp(0, 1, 20)
	s, err := NewSavGol(5, 2)
	if err != nil {
		t.Fatalf("NewSavGol returned %v", err)
	}
	if _, _, err := s.Detrend(flux); err != nil {
		t.Fatalf("Detrend returned %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, flux, orig, 0)
}
