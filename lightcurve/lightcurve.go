package lightcurve

import (
	"fmt"

	"github.com/cwbudde/algo-lightcurve/baseline"
	"github.com/cwbudde/algo-lightcurve/gaps"
	"github.com/cwbudde/algo-lightcurve/kepler"
	"github.com/cwbudde/algo-lightcurve/series"
	"github.com/cwbudde/algo-lightcurve/spectrum"
	"github.com/cwbudde/algo-vecmath"
)

// DetrendMode records which baseline strategy was applied last.
type DetrendMode int

const (
	DetrendNone DetrendMode = iota
	DetrendSavGol
	DetrendRunningMedian
)

// String returns "none", "savitzky-golay" or "running-median".
func (m DetrendMode) String() string {
	switch m {
	case DetrendSavGol:
		return "savitzky-golay"
	case DetrendRunningMedian:
		return "running-median"
	}
	return "none"
}

// Lightcurve accumulates the photometry of one star across quarters and
// keeps it analysis-ready. All methods must be called from a single
// goroutine; process stars concurrently, not appends to one curve.
type Lightcurve struct {
	buf *series.Buffer

	initialized bool
	id          int
	cadence     kepler.Cadence
	quarters    string

	maxGap  int
	hasGaps bool
	dc      float64

	auto      *baseline.SavGol
	autoWidth float64

	mode        DetrendMode
	window      int
	order       int
	medianWidth float64
	fit         []float64
	centered    []float64
}

// New returns an empty light curve. Identity and cadence are adopted from
// the first appended segment.
func New(opts ...Option) (*Lightcurve, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	lc := &Lightcurve{buf: series.New(), maxGap: cfg.maxGap}
	switch cfg.mode {
	case DetrendSavGol:
		s, err := baseline.NewSavGol(cfg.window, cfg.order)
		if err != nil {
			return nil, fmt.Errorf("lightcurve: %w", err)
		}
		lc.auto = s
	case DetrendRunningMedian:
		if cfg.width <= 0 {
			return nil, fmt.Errorf("lightcurve: running median width %v must be positive: %w",
				cfg.width, baseline.ErrInvalidWindow)
		}
		lc.autoWidth = cfg.width
	}
	return lc, nil
}

// FromSegment returns a light curve seeded with one segment.
func FromSegment(seg *kepler.Segment, opts ...Option) (*Lightcurve, error) {
	lc, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := lc.Append(seg); err != nil {
		return nil, err
	}
	return lc, nil
}

// Append runs one segment through the ingest pipeline: the samples join the
// buffer, the gap flag is recomputed over the whole series, missing samples
// are interpolated, the median offset is subtracted, and any automatic
// detrend configured at construction is reapplied. Every check that can
// fail runs before the buffer is touched, so a failed append leaves the
// curve exactly as it was.
func (lc *Lightcurve) Append(seg *kepler.Segment) error {
	if seg == nil {
		return ErrNoSegment
	}
	if len(seg.Flux) != len(seg.Time) || len(seg.Flux) != len(seg.FluxErr) {
		return fmt.Errorf("lightcurve: append segment: %w", series.ErrLengthMismatch)
	}
	if lc.initialized {
		if seg.KeplerID != lc.id {
			return fmt.Errorf("%w: segment KIC %d, curve KIC %d", ErrIdentityMismatch, seg.KeplerID, lc.id)
		}
		if seg.Cadence != lc.cadence {
			return fmt.Errorf("%w: segment %s, curve %s", ErrCadenceMismatch, seg.Cadence, lc.cadence)
		}
	}
	if lc.buf.Len() == 0 && len(seg.Flux) > 0 && !gaps.ValidMask(seg.Flux).Any() {
		return fmt.Errorf("lightcurve: append segment: %w", gaps.ErrNoValidSamples)
	}
	if lc.auto != nil && lc.buf.Len()+len(seg.Flux) < lc.auto.Window() {
		return fmt.Errorf("lightcurve: auto detrend %d-sample window on %d samples: %w",
			lc.auto.Window(), lc.buf.Len()+len(seg.Flux), baseline.ErrInvalidWindow)
	}

	if err := lc.buf.Append(seg.Flux, seg.Time, seg.FluxErr); err != nil {
		return fmt.Errorf("lightcurve: append segment: %w", err)
	}
	if !lc.initialized {
		lc.id = seg.KeplerID
		lc.cadence = seg.Cadence
		lc.initialized = true
	}
	lc.quarters += seg.Quarter

	flux := lc.buf.Flux()
	lc.hasGaps = gaps.Detect(flux, lc.maxGap)
	if err := gaps.Interpolate(flux); err != nil {
		// Cannot happen: an append that would leave the buffer without a
		// valid sample is rejected above.
		return fmt.Errorf("lightcurve: interpolate: %w", err)
	}
	lc.dc = baseline.RemoveOffset(flux)
	lc.centered = lc.buf.CopyFlux()

	switch {
	case lc.auto != nil:
		return lc.applySavGol(lc.auto)
	case lc.autoWidth > 0:
		return lc.RunningMedian(lc.autoWidth)
	}

	// Ingesting new samples rebuilds the series, so a manually subtracted
	// baseline is gone until the caller detrends again.
	lc.mode = DetrendNone
	lc.window = 0
	lc.order = 0
	lc.medianWidth = 0
	lc.fit = nil
	return nil
}

// Detrend fits a Savitzky-Golay baseline and replaces the flux with the
// residual. The fit always works from the offset-corrected, undetrended
// series, so repeated calls and strategy switches replace rather than stack:
// a previously subtracted baseline is discarded first.
func (lc *Lightcurve) Detrend(window, order int) error {
	s, err := baseline.NewSavGol(window, order)
	if err != nil {
		return fmt.Errorf("lightcurve: detrend: %w", err)
	}
	return lc.applySavGol(s)
}

// RunningMedian subtracts a running-median baseline computed over a sliding
// time window of width dt, in the timestamp unit (seconds for Kepler data).
// Like Detrend it works from the offset-corrected series, so the two
// strategies replace one another rather than stack.
func (lc *Lightcurve) RunningMedian(dt float64) error {
	fit, err := baseline.RunningMedianFit(lc.centered, lc.buf.Time(), dt)
	if err != nil {
		return fmt.Errorf("lightcurve: running median: %w", err)
	}

	flux := lc.buf.Flux()
	vecmath.ScaleBlock(flux, fit, -1)
	vecmath.AddBlockInPlace(flux, lc.centered)
	lc.mode = DetrendRunningMedian
	lc.window = 0
	lc.order = 0
	lc.medianWidth = dt
	lc.fit = fit
	return nil
}

func (lc *Lightcurve) applySavGol(s *baseline.SavGol) error {
	detrended, fit, err := s.Detrend(lc.centered)
	if err != nil {
		return fmt.Errorf("lightcurve: detrend: %w", err)
	}

	copy(lc.buf.Flux(), detrended)
	lc.mode = DetrendSavGol
	lc.window = s.Window()
	lc.order = s.Order()
	lc.medianWidth = 0
	lc.fit = fit
	return nil
}

// PSD estimates the one-sided power spectral density of the flux, assuming
// uniform sampling at the buffer's cadence. It returns the density and the
// frequency of each bin in hertz.
func (lc *Lightcurve) PSD() (psd, freqs []float64, err error) {
	fs, err := lc.buf.Frequency()
	if err != nil {
		return nil, nil, fmt.Errorf("lightcurve: psd: %w", err)
	}
	psd, freqs, err = spectrum.PSD(lc.buf.Flux(), fs)
	if err != nil {
		return nil, nil, fmt.Errorf("lightcurve: psd: %w", err)
	}
	return psd, freqs, nil
}

// Len returns the number of samples in the curve.
func (lc *Lightcurve) Len() int { return lc.buf.Len() }

// Flux returns the live flux array after all pipeline stages.
func (lc *Lightcurve) Flux() []float64 { return lc.buf.Flux() }

// Time returns the live timestamp array, in seconds.
func (lc *Lightcurve) Time() []float64 { return lc.buf.Time() }

// FluxErr returns the live flux uncertainty array.
func (lc *Lightcurve) FluxErr() []float64 { return lc.buf.FluxErr() }

// Centered returns the flux as it stood after the most recent offset
// removal, before any baseline subtraction. Treat it as read-only.
func (lc *Lightcurve) Centered() []float64 { return lc.centered }

// Baseline returns the most recently subtracted baseline fit, or nil when no
// detrend has run.
func (lc *Lightcurve) Baseline() []float64 { return lc.fit }

// Mode reports which baseline strategy was applied last.
func (lc *Lightcurve) Mode() DetrendMode { return lc.mode }

// Window returns the window length of the last Savitzky-Golay pass, or 0.
func (lc *Lightcurve) Window() int { return lc.window }

// Order returns the polynomial order of the last Savitzky-Golay pass.
func (lc *Lightcurve) Order() int { return lc.order }

// MedianWidth returns the time window of the last running-median pass, or 0.
func (lc *Lightcurve) MedianWidth() float64 { return lc.medianWidth }

// KeplerID returns the star's KIC number.
func (lc *Lightcurve) KeplerID() int { return lc.id }

// Cadence returns the sampling mode adopted from the first segment.
func (lc *Lightcurve) Cadence() kepler.Cadence { return lc.cadence }

// Quarters returns the concatenated quarter labels in append order.
func (lc *Lightcurve) Quarters() string { return lc.quarters }

// HasGaps reports whether the latest append found a run of missing samples
// longer than the configured tolerance.
func (lc *Lightcurve) HasGaps() bool { return lc.hasGaps }

// DCOffset returns the offset subtracted by the most recent append.
func (lc *Lightcurve) DCOffset() float64 { return lc.dc }

// Interval returns the sampling interval in seconds.
func (lc *Lightcurve) Interval() (float64, error) { return lc.buf.Interval() }

// Frequency returns the sampling frequency in hertz.
func (lc *Lightcurve) Frequency() (float64, error) { return lc.buf.Frequency() }

// Identity returns a compact tag of the curve's length and cadence, useful
// for matching cached analysis products to the data they were built from.
func (lc *Lightcurve) Identity() string {
	return fmt.Sprintf("lc_len_%d_cad_%s", lc.buf.Len(), lc.cadence)
}

// String identifies the curve's star.
func (lc *Lightcurve) String() string {
	return fmt.Sprintf("<Lightcurve for KIC %d>", lc.id)
}
