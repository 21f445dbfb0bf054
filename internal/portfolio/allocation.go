package portfolio

import (
	"fmt"
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// Allocate prices an equal-dollar split at the allocation date: each
// instrument receives baseCapital / N notional, converted to a fractional
// share count at that date's close. No rounding to whole shares and no
// rebalancing afterwards; the residual stays as cash.
func Allocate(series []core.PriceSeries, date time.Time, baseCapital float64) (core.AllocationPlan, error) {
	if len(series) == 0 {
		return core.AllocationPlan{}, core.ErrNoData
	}

	notional := baseCapital / float64(len(series))
	plan := core.AllocationPlan{
		Date:        date,
		BaseCapital: baseCapital,
		Shares:      make(map[string]float64, len(series)),
	}

	for _, s := range series {
		bar, ok := s.At(date)
		if !ok {
			return core.AllocationPlan{}, core.WrapError(core.ErrNoData,
				fmt.Errorf("%s has no bar at allocation date %s", s.Symbol, date.Format("2006-01-02")))
		}
		if bar.Close <= 0 {
			return core.AllocationPlan{}, core.WrapError(core.ErrNoData,
				fmt.Errorf("%s close is %v at allocation date %s", s.Symbol, bar.Close, date.Format("2006-01-02")))
		}
		shares := notional / bar.Close
		plan.Shares[s.Symbol] = shares
		plan.Invested += shares * bar.Close
	}

	return plan, nil
}
