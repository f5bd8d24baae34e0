package main

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/hayeah/gather"
	"github.com/hayeah/gather/internal/metrics"
)

// tiktokenModel selects the encoding used by --token-estimator=tiktoken.
const tiktokenModel = "gpt-3.5-turbo"

// ProvideConfig loads the config file named by --config over the defaults.
func ProvideConfig(args *Args) (*gather.Config, error) {
	return gather.LoadConfig(args.Config)
}

func ProvideLogger(args *Args) *slog.Logger {
	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func ProvideReporter(stdout io.Writer) *gather.Reporter {
	return gather.NewReporter(stdout)
}

// ProvideCounter picks the token counter. A tiktoken encoding that cannot be
// loaded falls back to the simple estimate.
func ProvideCounter(args *Args, logger *slog.Logger) (metrics.Counter, error) {
	counter, err := metrics.NewCounter(args.TokenEstimator, tiktokenModel)
	if err != nil && args.TokenEstimator == "tiktoken" {
		logger.Warn("falling back to simple token estimate", "err", err)
		return metrics.SimpleCounter{}, nil
	}
	return counter, err
}

// ProvideMetrics constructs OutputMetrics with the given counter.
func ProvideMetrics(counter metrics.Counter) *metrics.OutputMetrics {
	return metrics.NewOutputMetrics(counter, runtime.NumCPU())
}
