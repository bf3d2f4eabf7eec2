package gaps

import (
	"math"
	"testing"
)

var nan = math.NaN()

func TestValidMask(t *testing.T) {
	mask := ValidMask([]float64{1, nan, 3, nan, nan, 6})
	want := []bool{true, false, true, false, false, true}
	for i, w := range want {
		if mask.Test(uint(i)) != w {
			t.Fatalf("mask bit %d = %v, want %v", i, mask.Test(uint(i)), w)
		}
	}
	if mask.Count() != 3 {
		t.Fatalf("mask.Count() = %d, want 3", mask.Count())
	}
}

func TestDetectWithinTolerance(t *testing.T) {
	// Single missing sample between valid neighbors: run of 1, tolerance 1.
	if Detect([]float64{1, nan, 3, 4}, 1) {
		t.Fatal("Detect = true for a run within tolerance")
	}
}

func TestDetectExceedsTolerance(t *testing.T) {
	// Run of 2 missing samples exceeds tolerance 1.
	if !Detect([]float64{1, nan, nan, 4}, 1) {
		t.Fatal("Detect = false for a run of 2 with tolerance 1")
	}
	if Detect([]float64{1, nan, nan, 4}, 2) {
		t.Fatal("Detect = true for a run of 2 with tolerance 2")
	}
}

func TestDetectZeroTolerance(t *testing.T) {
	if !Detect([]float64{1, nan, 3}, 0) {
		t.Fatal("Detect = false for a single missing sample with tolerance 0")
	}
	if Detect([]float64{1, 2, 3}, 0) {
		t.Fatal("Detect = true for a fully valid series")
	}
}

func TestDetectNegativeTolerance(t *testing.T) {
	// A negative tolerance clamps to zero instead of flagging valid data.
	if Detect([]float64{1, 2, 3}, -1) {
		t.Fatal("Detect = true for a fully valid series with negative tolerance")
	}
	if !Detect([]float64{1, nan, 3}, -1) {
		t.Fatal("Detect = false for a missing sample with negative tolerance")
	}
}

func TestDetectEdgeRunsIgnored(t *testing.T) {
	// Leading and trailing runs are not bracketed by valid samples.
	if Detect([]float64{nan, nan, nan, 4, 5}, 1) {
		t.Fatal("Detect = true for a leading run")
	}
	if Detect([]float64{1, 2, nan, nan, nan}, 1) {
		t.Fatal("Detect = true for a trailing run")
	}
}

func TestDetectDegenerate(t *testing.T) {
	if Detect(nil, 1) {
		t.Fatal("Detect = true for empty input")
	}
	if Detect([]float64{nan, nan}, 0) {
		t.Fatal("Detect = true with no valid samples")
	}
	if Detect([]float64{nan, 7, nan}, 0) {
		t.Fatal("Detect = true with a single valid sample")
	}
}

func TestInterpolateInterior(t *testing.T) {
	flux := []float64{0, nan, 2, nan, nan, 5}
	if err := Interpolate(flux); err != nil {
		t.Fatalf("Interpolate returned %v", err)
	}
	want := []float64{0, 1, 2, 3, 4, 5}
	for i := range want {
		if math.Abs(flux[i]-want[i]) > 1e-12 {
			t.Fatalf("flux[%d] = %v, want %v", i, flux[i], want[i])
		}
	}
}

func TestInterpolateClampsEdges(t *testing.T) {
	flux := []float64{nan, nan, 3, 4, nan}
	if err := Interpolate(flux); err != nil {
		t.Fatalf("Interpolate returned %v", err)
	}
	want := []float64{3, 3, 3, 4, 4}
	for i := range want {
		if flux[i] != want[i] {
			t.Fatalf("flux[%d] = %v, want %v", i, flux[i], want[i])
		}
	}
}

func TestInterpolateSingleValid(t *testing.T) {
	flux := []float64{nan, 7, nan, nan}
	if err := Interpolate(flux); err != nil {
		t.Fatalf("Interpolate returned %v", err)
	}
	for i, v := range flux {
		if v != 7 {
			t.Fatalf("flux[%d] = %v, want 7", i, v)
		}
	}
}

func TestInterpolateKeepsValidSamples(t *testing.T) {
	flux := []float64{1.5, nan, -2.25, 8}
	if err := Interpolate(flux); err != nil {
		t.Fatalf("Interpolate returned %v", err)
	}
	if flux[0] != 1.5 || flux[2] != -2.25 || flux[3] != 8 {
		t.Fatalf("valid samples changed: %v", flux)
	}
}

func TestInterpolateNoMissing(t *testing.T) {
	flux := []float64{1, 2, 3}
	if err := Interpolate(flux); err != nil {
		t.Fatalf("Interpolate returned %v", err)
	}
	if err := Interpolate(nil); err != nil {
		t.Fatalf("Interpolate(nil) returned %v", err)
	}
}

func TestInterpolateClearsGaps(t *testing.T) {
	flux := []float64{1, nan, nan, nan, 5, nan, 7}
	if !Detect(flux, 1) {
		t.Fatal("Detect = false before interpolation")
	}
	if err := Interpolate(flux); err != nil {
		t.Fatalf("Interpolate returned %v", err)
	}
	if Detect(flux, 0) {
		t.Fatal("Detect = true after interpolation filled every sample")
	}
}

func TestInterpolateAllMissing(t *testing.T) {
	flux := []float64{nan, nan, nan}
	if err := Interpolate(flux); err != ErrNoValidSamples {
		t.Fatalf("Interpolate returned %v, want ErrNoValidSamples", err)
	}
	for i, v := range flux {
		if !math.IsNaN(v) {
			t.Fatalf("flux[%d] = %v, want NaN left in place", i, v)
		}
	}
}
