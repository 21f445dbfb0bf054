package portfolio

import (
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// Aggregate produces one portfolio bar per calendar date. Each OHLC field is
// the share-weighted sum of the corresponding per-instrument field; volume is
// the raw sum of per-instrument volumes. The calendar must be an intersection
// calendar so every lookup hits.
func Aggregate(series []core.PriceSeries, plan core.AllocationPlan, calendar []time.Time) []core.PortfolioBar {
	byTime := make([]map[time.Time]core.PriceBar, len(series))
	for i, s := range series {
		m := make(map[time.Time]core.PriceBar, len(s.Bars))
		for _, b := range s.Bars {
			m[b.Time] = b
		}
		byTime[i] = m
	}

	bars := make([]core.PortfolioBar, 0, len(calendar))
	for _, t := range calendar {
		agg := core.PortfolioBar{Time: t}
		for i, s := range series {
			bar, ok := byTime[i][t]
			if !ok {
				// Not an intersection date after all; skip the whole bar so
				// the curve never references a price that does not exist.
				agg = core.PortfolioBar{}
				break
			}
			shares := plan.Shares[s.Symbol]
			agg.Open += shares * bar.Open
			agg.High += shares * bar.High
			agg.Low += shares * bar.Low
			agg.Close += shares * bar.Close
			agg.Volume += bar.Volume
		}
		if !agg.Time.IsZero() {
			bars = append(bars, agg)
		}
	}
	return bars
}
