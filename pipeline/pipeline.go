package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-lightcurve/kepler"
	"github.com/cwbudde/algo-lightcurve/lightcurve"
)

type config struct {
	workers   int
	cadence   kepler.Cadence
	quarters  string
	curveOpts []lightcurve.Option
	logger    *zap.Logger
}

func defaultConfig() config {
	return config{
		workers:  runtime.GOMAXPROCS(0),
		cadence:  kepler.CadenceLong,
		quarters: "1-9",
		logger:   zap.NewNop(),
	}
}

// Option configures a Builder.
type Option func(*config)

// WithWorkers bounds how many stars are processed at once.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithCadence selects the sampling mode to load.
func WithCadence(c kepler.Cadence) Option {
	return func(cfg *config) {
		cfg.cadence = c
	}
}

// WithQuarters sets the quarter range passed to the loader.
func WithQuarters(q string) Option {
	return func(cfg *config) {
		if q != "" {
			cfg.quarters = q
		}
	}
}

// WithCurveOptions forwards options to every constructed light curve.
func WithCurveOptions(opts ...lightcurve.Option) Option {
	return func(cfg *config) {
		cfg.curveOpts = append(cfg.curveOpts, opts...)
	}
}

// WithLogger sets the pipeline logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// Builder assembles light curves from the archive files of many stars.
type Builder struct {
	loader *kepler.Loader
	cfg    config
}

// New returns a Builder reading through loader.
func New(loader *kepler.Loader, opts ...Option) (*Builder, error) {
	if loader == nil {
		return nil, errors.New("pipeline: no loader")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Surface bad curve options here rather than once per star.
	if _, err := lightcurve.New(cfg.curveOpts...); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &Builder{loader: loader, cfg: cfg}, nil
}

// Run builds one light curve per star, indexed like kics. A star with no
// files in the quarter range yields a nil entry and a warning; any harder
// failure cancels the remaining work and is returned.
func (b *Builder) Run(ctx context.Context, kics []int) ([]*lightcurve.Lightcurve, error) {
	curves := make([]*lightcurve.Lightcurve, len(kics))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.workers)
	for i, kic := range kics {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			curve, err := b.buildOne(kic)
			if err != nil {
				return err
			}
			curves[i] = curve
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return curves, nil
}

func (b *Builder) buildOne(kic int) (*lightcurve.Lightcurve, error) {
	log := b.cfg.logger.With(zap.Int("kic", kic))

	paths, err := b.loader.Find(kic, b.cfg.cadence, b.cfg.quarters)
	if err != nil {
		return nil, fmt.Errorf("pipeline: KIC %d: %w", kic, err)
	}
	if len(paths) == 0 {
		log.Warn("no light curve files in range", zap.String("quarters", b.cfg.quarters))
		return nil, nil
	}

	curve, err := lightcurve.New(b.cfg.curveOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: KIC %d: %w", kic, err)
	}
	for _, path := range paths {
		seg, err := kepler.ReadSegment(path)
		if err != nil {
			return nil, fmt.Errorf("pipeline: KIC %d: %w", kic, err)
		}
		if err := curve.Append(seg); err != nil {
			return nil, fmt.Errorf("pipeline: KIC %d: append %s: %w", kic, filepath.Base(path), err)
		}
		log.Debug("appended segment",
			zap.String("quarter", seg.Quarter),
			zap.Int("samples", seg.Len()))
	}

	log.Info("light curve assembled",
		zap.Int("samples", curve.Len()),
		zap.String("quarters", curve.Quarters()),
		zap.Bool("gappy", curve.HasGaps()))
	return curve, nil
}
