package portfolio

import (
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// FilterBenchmark restricts a reference instrument's series to the dates of
// the built portfolio calendar. No forward-fill: dates present on only one
// side are dropped.
func FilterBenchmark(series core.PriceSeries, calendar []time.Time) []core.BenchmarkPoint {
	wanted := make(map[time.Time]struct{}, len(calendar))
	for _, t := range calendar {
		wanted[t] = struct{}{}
	}

	points := make([]core.BenchmarkPoint, 0, len(calendar))
	for _, b := range series.Bars {
		if _, ok := wanted[b.Time]; ok {
			points = append(points, core.BenchmarkPoint{Time: b.Time, Close: b.Close})
		}
	}
	return points
}
