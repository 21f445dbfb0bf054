package portfolio

import (
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// Snapshot derives per-instrument positions and the account snapshot from the
// last aggregated bar. Positions are valued at each instrument's own close on
// the last date, not the aggregated portfolio close.
func Snapshot(series []core.PriceSeries, plan core.AllocationPlan, bars []core.PortfolioBar, currency string) ([]core.Position, core.Account) {
	if len(bars) == 0 {
		return nil, core.Account{Currency: currency, RuntimeStatistics: map[string]string{}}
	}
	last := bars[len(bars)-1].Time

	positions := make([]core.Position, 0, len(series))
	holdings := 0.0
	unrealized := 0.0
	for _, s := range series {
		qty := plan.Shares[s.Symbol]
		lastBar, okLast := s.At(last)
		allocBar, okAlloc := s.At(plan.Date)
		if !okLast || !okAlloc {
			continue
		}

		value := qty * lastBar.Close
		pos := core.Position{
			Symbol:       s.Symbol,
			Quantity:     qty,
			AveragePrice: allocBar.Close,
			Price:        lastBar.Close,
			Value:        value,
			Unrealized:   qty * (lastBar.Close - allocBar.Close),
		}
		if allocBar.Close > 0 {
			pos.UnrealizedPct = (lastBar.Close - allocBar.Close) / allocBar.Close * 100
		}
		positions = append(positions, pos)
		holdings += value
		unrealized += pos.Unrealized
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })

	cash := plan.Cash()
	equity := cash + holdings
	netProfit := equity - plan.BaseCapital

	stats := map[string]string{
		"Equity":     dollars(equity),
		"Holdings":   dollars(holdings),
		"NetProfit":  dollars(netProfit),
		"Unrealized": dollars(unrealized),
		"Fees":       dollars(0),
		"Return":     percent(netProfit / plan.BaseCapital * 100),
		"Volume":     dollars(plan.Invested),
	}

	account := core.Account{
		Currency:          currency,
		Cash:              cash,
		Holdings:          holdings,
		Equity:            equity,
		RuntimeStatistics: stats,
	}
	return positions, account
}

// dollars renders a value the way the runtime-statistics consumers expect:
// comma grouped, two decimals, sign outside the currency symbol.
func dollars(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func percent(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + " %"
}
