// Command heron evaluates a pre-trained gravitational-waveform
// surrogate at a point in parameter space and writes the predicted
// strain (with its standard deviation) as CSV.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/heron-ml/heron/internal/config"
	"github.com/heron-ml/heron/internal/surrogate"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "configuration file")
		massRatio  = flag.Float64("mass-ratio", 1.0, "binary mass ratio")
		spin1x     = flag.Float64("spin1x", 0, "x spin component, first body")
		spin1y     = flag.Float64("spin1y", 0, "y spin component, first body")
		spin1z     = flag.Float64("spin1z", 0, "z spin component, first body")
		spin2x     = flag.Float64("spin2x", 0, "x spin component, second body")
		spin2y     = flag.Float64("spin2y", 0, "y spin component, second body")
		spin2z     = flag.Float64("spin2z", 0, "z spin component, second body")
		tMin       = flag.Float64("t-min", -2, "start of the time axis")
		tMax       = flag.Float64("t-max", 2, "end of the time axis")
		tSteps     = flag.Int("t-steps", 1000, "number of time samples")
		samples    = flag.Int("samples", 0, "also draw this many posterior sample paths")
		out        = flag.String("out", "", "output file; empty writes to stdout")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heron: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heron: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	model, err := surrogate.New(surrogate.Config{
		DataPath:  cfg.Model.Data,
		StatePath: cfg.Model.State,
		Seed:      cfg.Model.Seed,
	})
	if err != nil {
		logger.Fatal("failed to build surrogate", zap.Error(err))
	}
	logger.Info("surrogate ready",
		zap.String("data", cfg.Model.Data),
		zap.String("state", cfg.Model.State))

	if *tSteps < 2 {
		logger.Fatal("t-steps must be at least 2", zap.Int("t_steps", *tSteps))
	}
	times := make([]float64, *tSteps)
	step := (*tMax - *tMin) / float64(*tSteps-1)
	for i := range times {
		times[i] = *tMin + float64(i)*step
	}
	p := surrogate.Params{
		"mass ratio": *massRatio,
		"spin 1x":    *spin1x,
		"spin 1y":    *spin1y,
		"spin 1z":    *spin1z,
		"spin 2x":    *spin2x,
		"spin 2y":    *spin2y,
		"spin 2z":    *spin2z,
	}

	mean, variance, err := model.TimeDomainWaveform(p, times)
	if err != nil {
		logger.Fatal("failed to evaluate waveform", zap.Error(err))
	}

	var paths [][]float64
	if *samples > 0 {
		paths, err = model.Distribution(times, p, *samples)
		if err != nil {
			logger.Fatal("failed to draw sample paths", zap.Error(err))
		}
	}

	w := os.Stdout
	if *out != "" {
		w, err = os.Create(*out)
		if err != nil {
			logger.Fatal("failed to create output file", zap.Error(err))
		}
	}

	fmt.Fprint(w, "time,strain,sigma")
	for i := range paths {
		fmt.Fprintf(w, ",sample%d", i)
	}
	fmt.Fprintln(w)
	for i, t := range times {
		fmt.Fprintf(w, "%g,%g,%g", t, mean[i], math.Sqrt(variance[i]))
		for _, path := range paths {
			fmt.Fprintf(w, ",%g", path[i])
		}
		fmt.Fprintln(w)
	}
	if *out != "" {
		if err := w.Close(); err != nil {
			logger.Fatal("failed to write output file", zap.Error(err))
		}
	}

	logger.Info("waveform written",
		zap.Int("points", len(times)),
		zap.Int("samples", len(paths)))
}

// newLogger builds the process logger: console to stderr, optionally
// teed into a size-rotated file.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
	sink := zapcore.Lock(os.Stderr)
	core := zapcore.NewCore(encoder, sink, level)
	if cfg.Log.File != "" {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		})
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			rotated,
			level,
		)
		core = zapcore.NewTee(core, fileCore)
	}
	return zap.New(core), nil
}
