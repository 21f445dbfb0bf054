package portfolio

import (
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// FallbackBundle returns the static placeholder bundle served when real
// archive data is missing or insufficiently overlapping. It is built from
// literals only, performs no I/O and cannot fail. Every call returns a fresh
// value so callers can never corrupt a shared copy.
func FallbackBundle() *core.Bundle {
	day := func(d int) time.Time {
		return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	bar := func(d int, o, h, l, c float64, v int64) core.PortfolioBar {
		return core.PortfolioBar{Time: day(d), Open: o, High: h, Low: l, Close: c, Volume: v}
	}

	equity := []core.PortfolioBar{
		bar(2, 100000.00, 100410.00, 99650.00, 100120.00, 4182300),
		bar(3, 100120.00, 100730.00, 99880.00, 100560.00, 3957100),
		bar(6, 100560.00, 101040.00, 100210.00, 100330.00, 4418900),
		bar(7, 100330.00, 100680.00, 99740.00, 99910.00, 4731500),
		bar(8, 99910.00, 100540.00, 99560.00, 100450.00, 4066800),
		bar(9, 100450.00, 101210.00, 100300.00, 101080.00, 3899200),
		bar(10, 101080.00, 101550.00, 100620.00, 100870.00, 4287400),
		bar(13, 100870.00, 101390.00, 100410.00, 101250.00, 3765900),
		bar(14, 101250.00, 102110.00, 101060.00, 101980.00, 4110600),
		bar(15, 101980.00, 102480.00, 101520.00, 102140.00, 4529800),
		bar(16, 102140.00, 102670.00, 101830.00, 102410.00, 3984500),
		bar(17, 102410.00, 102980.00, 102050.00, 102700.00, 4351200),
	}

	positions := []core.Position{
		{Symbol: "CDE", Quantity: 4000, AveragePrice: 6.25, Price: 6.55, Value: 26200.00, Unrealized: 1200.00, UnrealizedPct: 4.80},
		{Symbol: "MU", Quantity: 250, AveragePrice: 100.00, Price: 104.20, Value: 26050.00, Unrealized: 1050.00, UnrealizedPct: 4.20},
		{Symbol: "RKLB", Quantity: 1000, AveragePrice: 25.00, Price: 26.10, Value: 26100.00, Unrealized: 1100.00, UnrealizedPct: 4.40},
		{Symbol: "SNDK", Quantity: 500, AveragePrice: 50.00, Price: 48.70, Value: 24350.00, Unrealized: -650.00, UnrealizedPct: -2.60},
	}

	account := core.Account{
		Currency: "USD",
		Cash:     0,
		Holdings: 102700.00,
		Equity:   102700.00,
		RuntimeStatistics: map[string]string{
			"Equity":     "$102,700.00",
			"Holdings":   "$102,700.00",
			"NetProfit":  "$2,700.00",
			"Unrealized": "$2,700.00",
			"Fees":       "$0.00",
			"Return":     "2.70 %",
			"Volume":     "$100,000.00",
		},
	}

	benchmark := []core.BenchmarkPoint{
		{Time: day(2), Close: 589.49},
		{Time: day(3), Close: 592.93},
		{Time: day(6), Close: 596.28},
		{Time: day(7), Close: 589.67},
		{Time: day(8), Close: 590.62},
		{Time: day(9), Close: 591.04},
		{Time: day(10), Close: 580.49},
		{Time: day(13), Close: 581.44},
		{Time: day(14), Close: 582.26},
		{Time: day(15), Close: 592.78},
		{Time: day(16), Close: 591.65},
		{Time: day(17), Close: 597.58},
	}

	return &core.Bundle{
		Equity:    equity,
		Positions: positions,
		Account:   account,
		Benchmark: benchmark,
		Fallback:  true,
	}
}
