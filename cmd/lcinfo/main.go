// Command lcinfo assembles Kepler light curves and prints a per-star summary.
//
// Usage:
//
//	lcinfo [flags] KIC [KIC ...]
//
// Stars are named by KIC number. The data root comes from -root, the
// KPLR_ROOT environment variable, or a config file; quarter files are
// expected under <root>/Q<n>_public.
//
// Examples:
//
//	lcinfo -root /archive/kepler 757450
//	lcinfo -quarters 1-3 -detrend 757450 893233
//	lcinfo -median 86400 757450
//	lcinfo -config lightcurve.yaml -cadence short 757450
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lightcurve/internal/config"
	"github.com/cwbudde/algo-lightcurve/internal/logging"
	"github.com/cwbudde/algo-lightcurve/kepler"
	"github.com/cwbudde/algo-lightcurve/lightcurve"
	"github.com/cwbudde/algo-lightcurve/pipeline"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	root := flag.String("root", "", "data root holding the Q<n>_public directories")
	cadence := flag.String("cadence", "", "sampling mode: long or short")
	quarters := flag.String("quarters", "", "quarter range, e.g. 1-9 or 2")
	maxGap := flag.Int("max-gap", -1, "longest tolerated run of missing samples")
	detrend := flag.Bool("detrend", false, "subtract a Savitzky-Golay baseline per append")
	window := flag.Int("window", 0, "detrend window length in samples (odd)")
	order := flag.Int("order", 0, "detrend polynomial order")
	median := flag.Float64("median", 0, "subtract a running-median baseline over this time window in seconds")
	workers := flag.Int("workers", 0, "stars processed concurrently (0 = one per CPU)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lcinfo [flags] KIC [KIC ...]\n\n")
		fmt.Fprintf(os.Stderr, "Assembles Kepler light curves and prints a per-star summary.\n")
		fmt.Fprintf(os.Stderr, "Flags override the config file and environment.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lcinfo -root /archive/kepler 757450\n")
		fmt.Fprintf(os.Stderr, "  lcinfo -quarters 1-3 -detrend 757450 893233\n")
		fmt.Fprintf(os.Stderr, "  lcinfo -median 86400 757450\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		die(err)
	}
	if *root != "" {
		cfg.DataRoot = *root
	}
	if *cadence != "" {
		cfg.Cadence = *cadence
	}
	if *quarters != "" {
		cfg.Quarters = *quarters
	}
	if *maxGap >= 0 {
		cfg.MaxGap = *maxGap
	}
	if *detrend {
		cfg.Detrend.Enabled = true
		cfg.Detrend.Method = "savgol"
	}
	if *window > 0 {
		cfg.Detrend.Window = *window
	}
	if *order > 0 {
		cfg.Detrend.Order = *order
	}
	if *median > 0 {
		cfg.Detrend.Enabled = true
		cfg.Detrend.Method = "running-median"
		cfg.Detrend.Width = *median
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		die(err)
	}

	kics := make([]int, 0, flag.NArg())
	for _, arg := range flag.Args() {
		kic, err := strconv.Atoi(arg)
		if err != nil {
			die(fmt.Errorf("invalid KIC %q", arg))
		}
		kics = append(kics, kic)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, DevMode: cfg.Log.DevMode})
	if err != nil {
		die(err)
	}
	defer func() { _ = logger.Sync() }()

	cad, err := kepler.ParseCadence(cfg.Cadence)
	if err != nil {
		die(err)
	}
	curveOpts := []lightcurve.Option{lightcurve.WithMaxGap(cfg.MaxGap)}
	if cfg.Detrend.Enabled {
		switch cfg.Detrend.Method {
		case "running-median":
			curveOpts = append(curveOpts, lightcurve.WithRunningMedian(cfg.Detrend.Width))
		default:
			curveOpts = append(curveOpts, lightcurve.WithDetrend(cfg.Detrend.Window, cfg.Detrend.Order))
		}
	}

	b, err := pipeline.New(kepler.NewLoader(cfg.DataRoot),
		pipeline.WithCadence(cad),
		pipeline.WithQuarters(cfg.Quarters),
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithCurveOptions(curveOpts...),
		pipeline.WithLogger(logger),
	)
	if err != nil {
		die(err)
	}

	curves, err := b.Run(context.Background(), kics)
	if err != nil {
		logger.Error("batch failed", zap.Error(err))
		die(err)
	}

	printSummary(kics, curves)
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func printSummary(kics []int, curves []*lightcurve.Lightcurve) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "KIC\tQuarters\tSamples\tCadence\tDt [s]\tGappy\tDC Offset\tMean\tStd Dev\tDetrend\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "---\t--------\t-------\t-------\t------\t-----\t---------\t----\t-------\t-------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for i, lc := range curves {
		if lc == nil {
			if _, err := fmt.Fprintf(tw, "%d\t-\t0\t-\t-\t-\t-\t-\t-\t-\n", kics[i]); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
				return
			}
			continue
		}

		dt := "-"
		if v, err := lc.Interval(); err == nil {
			dt = fmt.Sprintf("%.1f", v)
		}
		flux := lc.Flux()
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%t\t%.4g\t%.4g\t%.4g\t%s\n",
			lc.KeplerID(),
			lc.Quarters(),
			lc.Len(),
			lc.Cadence(),
			dt,
			lc.HasGaps(),
			lc.DCOffset(),
			stat.Mean(flux, nil),
			stat.StdDev(flux, nil),
			lc.Mode(),
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
