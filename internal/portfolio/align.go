// Package portfolio turns per-instrument daily bar series into a synthetic,
// internally consistent portfolio: an equal-dollar buy-and-hold allocation,
// an aggregated equity curve, position and account snapshots, and a filtered
// benchmark series.
package portfolio

import (
	"sort"
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// Align computes the common trading calendar: timestamps present in every
// series, restricted to start and later, in ascending order. Fewer than two
// shared dates is reported as ErrInsufficientOverlap; a buy-and-hold
// simulation needs at least an allocation date and one subsequent bar.
func Align(series []core.PriceSeries, start time.Time) ([]time.Time, error) {
	if len(series) == 0 {
		return nil, core.ErrInsufficientOverlap
	}

	counts := make(map[time.Time]int)
	for _, s := range series {
		for _, b := range s.Bars {
			if b.Time.Before(start) {
				continue
			}
			counts[b.Time]++
		}
	}

	var calendar []time.Time
	for t, n := range counts {
		if n == len(series) {
			calendar = append(calendar, t)
		}
	}
	if len(calendar) < 2 {
		return nil, core.ErrInsufficientOverlap
	}

	sort.Slice(calendar, func(i, j int) bool { return calendar[i].Before(calendar[j]) })
	return calendar, nil
}
