package portfolio

import (
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// DrawdownPoint is one equity-curve point annotated with its running peak and
// percent decline from that peak.
type DrawdownPoint struct {
	Time     time.Time `json:"datetime"`
	Close    float64   `json:"close"`
	Peak     float64   `json:"peak"`
	Drawdown float64   `json:"drawdown"`
}

// Drawdown computes the running peak-to-trough decline of an equity curve.
func Drawdown(bars []core.PortfolioBar) []DrawdownPoint {
	points := make([]DrawdownPoint, 0, len(bars))
	peak := 0.0
	for _, b := range bars {
		if b.Close > peak {
			peak = b.Close
		}
		p := DrawdownPoint{Time: b.Time, Close: b.Close, Peak: peak}
		if peak > 0 {
			p.Drawdown = (b.Close - peak) / peak * 100
		}
		points = append(points, p)
	}
	return points
}
