// Package app wires configuration, storage, the bundle pipeline and the API
// server into one runnable unit.
package app

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Ikkisovi/portifolio-dashboard/internal/api"
	"github.com/Ikkisovi/portifolio-dashboard/internal/config"
	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
	"github.com/Ikkisovi/portifolio-dashboard/internal/marketdata"
	"github.com/Ikkisovi/portifolio-dashboard/internal/metrics"
	"github.com/Ikkisovi/portifolio-dashboard/internal/portfolio"
	"github.com/Ikkisovi/portifolio-dashboard/internal/storage/archive"
)

// App is the dashboard backend: archive store, bundle cache and HTTP server.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   archive.Store
	reader  *marketdata.Reader
	cache   *portfolio.Cache
	server  *api.Server
	metrics *metrics.Registry
}

// New wires an App from validated configuration.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := newStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("creating archive store: %w", err)
	}

	reader, cache, reg, err := newCache(cfg, store, logger)
	if err != nil {
		return nil, err
	}

	server := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		MetricsPath: cfg.Metrics.Path,
	}, cache, reg, logger)

	return &App{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		reader:  reader,
		cache:   cache,
		server:  server,
		metrics: reg,
	}, nil
}

// newStore selects the archive byte store backend.
func newStore(cfg config.StorageConfig) (archive.Store, error) {
	switch cfg.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return archive.NewLocalFS(cfg.Path)
	}
}

// newCache assembles reader, builder, metrics and the memoizing cache.
func newCache(cfg *config.Config, store archive.Store, logger *zap.Logger) (*marketdata.Reader, *portfolio.Cache, *metrics.Registry, error) {
	start, err := cfg.Example.Start()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing example.start_date: %w", err)
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	reader := marketdata.NewReader(store, marketdata.Config{
		PriceScale: cfg.Example.PriceScale,
		Ext:        cfg.Example.ArchiveExt,
		MaxBadRows: cfg.Example.MaxBadRows,
	}, logger)
	if reg != nil {
		reader.SetObserver(reg)
	}

	builder := portfolio.NewBuilder(reader, portfolio.BuildConfig{
		Tickers:           cfg.Example.Tickers,
		Benchmark:         cfg.Example.Benchmark,
		BenchmarkRequired: cfg.Example.BenchmarkRequired,
		Start:             start,
		BaseCapital:       cfg.Example.BaseCapital,
		Currency:          cfg.Example.Currency,
	}, logger)

	return reader, portfolio.NewCache(builder, observerOrNil(reg), logger), reg, nil
}

// observerOrNil avoids handing the cache a typed-nil interface.
func observerOrNil(reg *metrics.Registry) portfolio.BuildObserver {
	if reg == nil {
		return nil
	}
	return reg
}

// Cache exposes the bundle cache, e.g. for the offline bundle command.
func (a *App) Cache() *portfolio.Cache {
	return a.cache
}

// ListArchives returns the sorted archive paths staged in the configured
// store.
func (a *App) ListArchives(ctx context.Context) ([]string, error) {
	paths, err := a.store.List(ctx, "")
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// missingArchives returns the configured symbols (tickers plus benchmark)
// whose archive is not staged in the store. Lookup errors count as missing.
func (a *App) missingArchives(ctx context.Context) []string {
	symbols := append([]string{}, a.cfg.Example.Tickers...)
	if a.cfg.Example.Benchmark != "" {
		symbols = append(symbols, a.cfg.Example.Benchmark)
	}

	var missing []string
	for _, symbol := range symbols {
		ok, err := a.store.Exists(ctx, a.reader.ArchivePath(symbol))
		if err != nil || !ok {
			missing = append(missing, symbol)
		}
	}
	return missing
}

// Run builds the bundle eagerly and serves until the server stops.
func (a *App) Run(ctx context.Context) error {
	// Missing archives are not fatal at startup. A missing ticker degrades
	// the build to the fallback dataset, a missing benchmark drops only the
	// benchmark series; this log line is what explains either.
	if missing := a.missingArchives(ctx); len(missing) > 0 {
		a.logger.Warn("archives not staged", zap.Strings("symbols", missing))
	}

	// Warm the cache so the first dashboard session does not pay for the
	// archive reads.
	bundle := a.cache.Get(ctx)
	a.logger.Info("example bundle ready",
		zap.Bool("fallback", bundle.Fallback),
		zap.Int("equityPoints", len(bundle.Equity)))

	return a.server.Start()
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
