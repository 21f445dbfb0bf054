package portfolio

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

// flatSeries builds a series whose open/high/low/close all equal the given
// close per day. Handy when only closes matter.
func flatSeries(symbol string, closes map[int]float64) core.PriceSeries {
	days := make([]int, 0, len(closes))
	for d := range closes {
		days = append(days, d)
	}
	// map iteration order is random; sort for a valid series
	sort.Ints(days)

	s := core.PriceSeries{Symbol: symbol}
	for _, d := range days {
		c := closes[d]
		s.Bars = append(s.Bars, core.PriceBar{
			Symbol: symbol, Time: day(d),
			Open: c, High: c, Low: c, Close: c,
			Volume: 1000,
		})
	}
	return s
}

// mapLoader serves canned series and counts loads per symbol.
type mapLoader struct {
	mu     sync.Mutex
	series map[string]core.PriceSeries
	errs   map[string]error
	loads  map[string]int
}

func newMapLoader() *mapLoader {
	return &mapLoader{
		series: make(map[string]core.PriceSeries),
		errs:   make(map[string]error),
		loads:  make(map[string]int),
	}
}

func (m *mapLoader) add(s core.PriceSeries) *mapLoader {
	m.series[s.Symbol] = s
	return m
}

func (m *mapLoader) fail(symbol string, err error) *mapLoader {
	m.errs[symbol] = err
	return m
}

func (m *mapLoader) Load(ctx context.Context, symbol string) (core.PriceSeries, error) {
	m.mu.Lock()
	m.loads[symbol]++
	m.mu.Unlock()

	if err, ok := m.errs[symbol]; ok {
		return core.PriceSeries{}, err
	}
	s, ok := m.series[symbol]
	if !ok {
		return core.PriceSeries{}, core.ErrArchiveMissingOrMalformed
	}
	return s, nil
}

func (m *mapLoader) loadCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads[symbol]
}

func (m *mapLoader) totalLoads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.loads {
		n += c
	}
	return n
}
