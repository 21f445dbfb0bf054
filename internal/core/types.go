package core

import "time"

// PriceBar is one daily OHLCV bar for a single instrument. Prices are already
// decoded from their scaled-integer archive representation.
type PriceBar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries is an ordered run of bars for one instrument, strictly
// increasing by timestamp with no duplicates.
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int { return len(s.Bars) }

// At returns the bar at the given timestamp, if present.
func (s PriceSeries) At(t time.Time) (PriceBar, bool) {
	for _, b := range s.Bars {
		if b.Time.Equal(t) {
			return b, true
		}
	}
	return PriceBar{}, false
}

// First returns the earliest bar. The series must be non-empty.
func (s PriceSeries) First() PriceBar { return s.Bars[0] }

// Last returns the latest bar. The series must be non-empty.
func (s PriceSeries) Last() PriceBar { return s.Bars[len(s.Bars)-1] }

// AllocationPlan is the equal-dollar, buy-and-hold share allocation priced at
// the first date of the common trading calendar.
type AllocationPlan struct {
	Date        time.Time
	BaseCapital float64
	Shares      map[string]float64 // symbol -> share count, fractional allowed
	Invested    float64            // notional actually spent at the allocation date
}

// Cash returns the uninvested residual, never negative.
func (p AllocationPlan) Cash() float64 {
	if c := p.BaseCapital - p.Invested; c > 0 {
		return c
	}
	return 0
}

// PortfolioBar is one allocation-weighted aggregate bar across all tracked
// instruments. Only defined for dates present in every instrument's series.
type PortfolioBar struct {
	Time   time.Time `json:"datetime"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Position is one instrument's holding valued at the latest portfolio date.
type Position struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"averagePrice"`
	Price         float64 `json:"price"`
	Value         float64 `json:"value"`
	Unrealized    float64 `json:"unrealized"`
	UnrealizedPct float64 `json:"unrealizedPct"`
}

// Account is the latest account snapshot. Equity = Cash + Holdings at every
// reporting instant.
type Account struct {
	Currency          string            `json:"currency"`
	Cash              float64           `json:"cash"`
	Holdings          float64           `json:"holdings"`
	Equity            float64           `json:"equity"`
	RuntimeStatistics map[string]string `json:"runtimeStatistics"`
}

// BenchmarkPoint is one close of the reference instrument, filtered to the
// portfolio's calendar.
type BenchmarkPoint struct {
	Time  time.Time `json:"datetime"`
	Close float64   `json:"close"`
}

// Bundle is the complete output of the example-data builder, consumed
// verbatim by the presentation layer. Immutable once built.
type Bundle struct {
	Equity    []PortfolioBar   `json:"equity"`
	Positions []Position       `json:"positions"`
	Account   Account          `json:"account"`
	Benchmark []BenchmarkPoint `json:"benchmark"`
	Fallback  bool             `json:"fallback"`
}
