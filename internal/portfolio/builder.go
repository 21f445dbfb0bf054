package portfolio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// SeriesLoader loads one instrument's historical daily bars.
type SeriesLoader interface {
	Load(ctx context.Context, symbol string) (core.PriceSeries, error)
}

// BuildConfig carries the external inputs of one bundle build.
type BuildConfig struct {
	Tickers     []string
	Benchmark   string
	// BenchmarkRequired promotes a benchmark load failure from a degraded
	// benchmark field to a whole-build failure.
	BenchmarkRequired bool
	Start             time.Time
	BaseCapital       float64
	Currency          string
}

// Builder runs the example-data pipeline: load each instrument's archive,
// align calendars, price the equal-dollar allocation, aggregate portfolio
// bars and derive the snapshots. All intermediates are locally scoped to one
// build and never mutated afterwards.
type Builder struct {
	loader SeriesLoader
	cfg    BuildConfig
	logger *zap.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(loader SeriesLoader, cfg BuildConfig, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{loader: loader, cfg: cfg, logger: logger}
}

// Build produces a bundle from real archive data, or an error describing the
// first fatal condition. The caller decides whether to substitute the
// fallback dataset; no stage here degrades silently.
func (b *Builder) Build(ctx context.Context) (*core.Bundle, error) {
	if len(b.cfg.Tickers) == 0 {
		return nil, core.ErrNoData
	}

	// The benchmark is independent of the instrument pipeline; fetch it
	// concurrently with the archive reads.
	type benchResult struct {
		series core.PriceSeries
		err    error
	}
	benchCh := make(chan benchResult, 1)
	if b.cfg.Benchmark != "" {
		go func() {
			s, err := b.loader.Load(ctx, b.cfg.Benchmark)
			benchCh <- benchResult{series: s, err: err}
		}()
	} else {
		benchCh <- benchResult{err: core.ErrBenchmarkUnavailable}
	}

	series := make([]core.PriceSeries, 0, len(b.cfg.Tickers))
	for _, symbol := range b.cfg.Tickers {
		s, err := b.loader.Load(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", symbol, err)
		}
		b.logger.Debug("loaded instrument archive",
			zap.String("symbol", symbol),
			zap.Int("bars", s.Len()))
		series = append(series, s)
	}

	calendar, err := Align(series, b.cfg.Start)
	if err != nil {
		return nil, err
	}
	allocDate := calendar[0]

	plan, err := Allocate(series, allocDate, b.cfg.BaseCapital)
	if err != nil {
		return nil, err
	}
	b.logger.Info("allocated example portfolio",
		zap.Time("date", allocDate),
		zap.Float64("invested", plan.Invested),
		zap.Float64("cash", plan.Cash()),
		zap.Int("calendarDays", len(calendar)))

	bars := Aggregate(series, plan, calendar)
	positions, account := Snapshot(series, plan, bars, b.cfg.Currency)

	bundle := &core.Bundle{
		Equity:    bars,
		Positions: positions,
		Account:   account,
	}

	bench := <-benchCh
	switch {
	case bench.err == nil:
		bundle.Benchmark = FilterBenchmark(bench.series, calendar)
	case b.cfg.BenchmarkRequired:
		return nil, core.WrapError(core.ErrBenchmarkUnavailable, bench.err)
	default:
		// Degrades only the benchmark field.
		if b.cfg.Benchmark != "" {
			b.logger.Warn("benchmark unavailable, serving bundle without it",
				zap.String("symbol", b.cfg.Benchmark),
				zap.Error(bench.err))
		}
	}

	return bundle, nil
}
