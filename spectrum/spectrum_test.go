package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lightcurve/internal/testutil"
)

func TestPSDDC(t *testing.T) {
	// A constant signal concentrates all power in the DC bin:
	// |X[0]|^2 / (fs * n) = n^2 / n = n.
	psd, freqs, err := PSD(testutil.DC(1, 4), 1)
	if err != nil {
		t.Fatalf("PSD returned %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, psd, []float64{4, 0, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, freqs, []float64{0, 0.25, 0.5}, 1e-12)
}

func TestPSDSinePower(t *testing.T) {
	// A unit sine on an exact bin has variance 1/2; integrating the density
	// over the bin width must recover it, so the bin holds 0.5/binWidth.
	fs := 8.0
	signal := testutil.DeterministicSine(2, fs, 1, 8)
	psd, freqs, err := PSD(signal, fs)
	if err != nil {
		t.Fatalf("PSD returned %v", err)
	}

	binWidth := fs / 8
	for k := range psd {
		want := 0.0
		if k == 2 {
			want = 0.5 / binWidth
		}
		if math.Abs(psd[k]-want) > 1e-9 {
			t.Fatalf("psd[%d] = %v, want %v", k, psd[k], want)
		}
	}
	if freqs[2] != 2 {
		t.Fatalf("freqs[2] = %v, want 2", freqs[2])
	}
}

func TestPSDZeroPads(t *testing.T) {
	// Six samples transform at size eight, giving five one-sided bins up to
	// the Nyquist frequency.
	fs := 2.0
	psd, freqs, err := PSD(testutil.DeterministicNoise(42, 1, 6), fs)
	if err != nil {
		t.Fatalf("PSD returned %v", err)
	}
	if len(psd) != 5 || len(freqs) != 5 {
		t.Fatalf("got %d/%d bins, want 5", len(psd), len(freqs))
	}
	if freqs[4] != 1 {
		t.Fatalf("freqs[4] = %v, want Nyquist 1", freqs[4])
	}
	testutil.RequireFinite(t, psd)
}

func TestPSDHannDC(t *testing.T) {
	// With a Hann taper the DC bin of a constant signal is (sum w)^2 / (fs * sum w^2).
	psd, _, err := PSD(testutil.DC(1, 4), 1, WithWindow(WindowHann))
	if err != nil {
		t.Fatalf("PSD returned %v", err)
	}
	if math.Abs(psd[0]-2.0) > 1e-12 {
		t.Fatalf("psd[0] = %v, want 2", psd[0])
	}
}

func TestPSDValidation(t *testing.T) {
	if _, _, err := PSD([]float64{1}, 1); !errors.Is(err, ErrTooShort) {
		t.Fatalf("PSD(one sample) returned %v, want ErrTooShort", err)
	}
	if _, _, err := PSD([]float64{1, 2}, 0); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("PSD(rate 0) returned %v, want ErrInvalidRate", err)
	}
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 8: 8, 9: 16, 4400: 8192}
	for in, want := range cases {
		if got := nextPowerOf2(in); got != want {
			t.Fatalf("nextPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}
