package lightcurve

type config struct {
	maxGap int
	mode   DetrendMode
	window int
	order  int
	width  float64
}

func defaultConfig() config {
	return config{maxGap: 1}
}

// Option configures a Lightcurve.
type Option func(*config)

// WithMaxGap sets the longest run of consecutive missing samples tolerated
// before the curve is flagged gappy.
func WithMaxGap(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.maxGap = n
		}
	}
}

// WithDetrend makes every append finish by subtracting a Savitzky-Golay
// baseline with the given window length and polynomial order. The automatic
// strategies are exclusive; the last one configured wins.
func WithDetrend(window, order int) Option {
	return func(cfg *config) {
		cfg.mode = DetrendSavGol
		cfg.window = window
		cfg.order = order
	}
}

// WithRunningMedian makes every append finish by subtracting a running-median
// baseline computed over a sliding time window of the given width, in the
// timestamp unit. The automatic strategies are exclusive; the last one
// configured wins.
func WithRunningMedian(width float64) Option {
	return func(cfg *config) {
		cfg.mode = DetrendRunningMedian
		cfg.width = width
	}
}
