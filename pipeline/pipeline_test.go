package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lightcurve/internal/testutil"
	"github.com/cwbudde/algo-lightcurve/kepler"
	"github.com/cwbudde/algo-lightcurve/lightcurve"
)

// writeQuarter drops a synthetic long-cadence quarter file into the archive
// layout under root.
func writeQuarter(t *testing.T, root string, kic, quarter int, times, flux, fluxErr []float64) {
	t.Helper()
	raw := testutil.BuildFITS(kic, "long cadence", quarter, len(times),
		testutil.PhotometryColumns(times, flux, fluxErr))
	dir := filepath.Join(root, fmt.Sprintf("Q%d_public", quarter))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	name := fmt.Sprintf("kplr%09d-20093501555%02d_llc.fits", kic, quarter)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
}

func TestRunBuildsCurves(t *testing.T) {
	root := t.TempDir()
	writeQuarter(t, root, 111, 1,
		[]float64{100, 101, 102, 103},
		[]float64{10, math.NaN(), 12, 13},
		[]float64{1, 1, 1, 1})
	writeQuarter(t, root, 111, 2,
		[]float64{104, 105, 106, 107},
		[]float64{14, 15, 16, 17},
		[]float64{1, 1, 1, 1})
	writeQuarter(t, root, 222, 1,
		[]float64{100, 101, 102},
		[]float64{5, 6, 7},
		[]float64{1, 1, 1})

	b, err := New(kepler.NewLoader(root), WithWorkers(2), WithQuarters("1-2"))
	require.NoError(t, err)
	curves, err := b.Run(context.Background(), []int{111, 222})
	require.NoError(t, err)
	require.Len(t, curves, 2)

	first := curves[0]
	require.NotNil(t, first)
	assert.Equal(t, 111, first.KeplerID())
	assert.Equal(t, "12", first.Quarters(), "quarters concatenate in append order")
	assert.Equal(t, 8, first.Len())
	for i, v := range first.Flux() {
		assert.False(t, math.IsNaN(v), "flux[%d] still NaN after pipeline", i)
	}
	assert.NotZero(t, first.DCOffset())

	second := curves[1]
	require.NotNil(t, second)
	assert.Equal(t, 222, second.KeplerID())
	assert.Equal(t, 3, second.Len())
}

func TestRunMissingStarYieldsNil(t *testing.T) {
	root := t.TempDir()
	writeQuarter(t, root, 111, 1,
		[]float64{100, 101}, []float64{1, 2}, []float64{1, 1})

	b, err := New(kepler.NewLoader(root))
	require.NoError(t, err)
	curves, err := b.Run(context.Background(), []int{111, 999})
	require.NoError(t, err)
	require.Len(t, curves, 2)
	assert.NotNil(t, curves[0])
	assert.Nil(t, curves[1], "a star without files must not abort the batch")
}

func TestRunAppliesCurveOptions(t *testing.T) {
	root := t.TempDir()
	writeQuarter(t, root, 111, 1,
		[]float64{100, 101, 102, 103, 104, 105, 106, 107},
		[]float64{10, 11, 12, 13, 14, 15, 16, 17},
		[]float64{1, 1, 1, 1, 1, 1, 1, 1})

	b, err := New(kepler.NewLoader(root),
		WithCurveOptions(lightcurve.WithDetrend(5, 2)))
	require.NoError(t, err)
	curves, err := b.Run(context.Background(), []int{111})
	require.NoError(t, err)

	require.NotNil(t, curves[0])
	assert.Equal(t, lightcurve.DetrendSavGol, curves[0].Mode())
	assert.Len(t, curves[0].Baseline(), 8)
}

func TestRunPropagatesReadError(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Q1_public")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "kplr000000333-2009350155501_llc.fits"),
		[]byte("not a fits file"), 0o644))

	b, err := New(kepler.NewLoader(root))
	require.NoError(t, err)
	_, err = b.Run(context.Background(), []int{333})
	require.Error(t, err)
	assert.ErrorContains(t, err, "KIC 333")
}

func TestRunHonorsContext(t *testing.T) {
	root := t.TempDir()
	writeQuarter(t, root, 111, 1,
		[]float64{100, 101}, []float64{1, 2}, []float64{1, 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := New(kepler.NewLoader(root))
	require.NoError(t, err)
	_, err = b.Run(ctx, []int{111})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(kepler.NewLoader(t.TempDir()),
		WithCurveOptions(lightcurve.WithDetrend(4, 2)))
	assert.Error(t, err, "even detrend window must fail at build time")
}
