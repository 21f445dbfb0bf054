package portfolio

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// State tracks the cache lifecycle: Uninitialized -> Loading -> Built or
// Fallback. Both terminal states are stable until an explicit Reset.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateBuilt         State = "built"
	StateFallback      State = "fallback"
)

// BuildObserver receives the outcome of each completed build attempt.
type BuildObserver interface {
	ObserveBuild(outcome string, seconds float64)
}

// Cache memoizes the bundle process-wide. The build runs at most once per
// process lifetime regardless of call concurrency: the first caller builds
// while holding the lock, later callers block on the same lock and then
// observe the memoized result. Every caller gets a well-formed bundle; fatal
// pipeline errors are converted here into the static fallback dataset.
type Cache struct {
	builder  *Builder
	logger   *zap.Logger
	observer BuildObserver

	mu     sync.Mutex
	state  State
	bundle *core.Bundle
}

// NewCache creates an empty cache around the builder. observer may be nil.
func NewCache(builder *Builder, observer BuildObserver, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		builder:  builder,
		logger:   logger,
		observer: observer,
		state:    StateUninitialized,
	}
}

// Get returns the memoized bundle, building it on first use. It never fails:
// a failed pipeline yields the fallback dataset instead.
func (c *Cache) Get(ctx context.Context) *core.Bundle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateBuilt || c.state == StateFallback {
		return c.bundle
	}

	c.state = StateLoading
	start := time.Now()

	bundle, err := c.builder.Build(ctx)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.logger.Warn("example bundle build failed, serving fallback dataset",
			zap.Error(err),
			zap.Float64("seconds", elapsed))
		c.bundle = FallbackBundle()
		c.state = StateFallback
		if c.observer != nil {
			c.observer.ObserveBuild("fallback", elapsed)
		}
		return c.bundle
	}

	c.logger.Info("example bundle built",
		zap.Int("equityPoints", len(bundle.Equity)),
		zap.Int("positions", len(bundle.Positions)),
		zap.Int("benchmarkPoints", len(bundle.Benchmark)),
		zap.Float64("seconds", elapsed))
	c.bundle = bundle
	c.state = StateBuilt
	if c.observer != nil {
		c.observer.ObserveBuild("built", elapsed)
	}
	return c.bundle
}

// State reports the current lifecycle state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset clears the memo so the next Get rebuilds from scratch. Test setup
// only; nothing in the serving paths calls it.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateUninitialized
	c.bundle = nil
}
