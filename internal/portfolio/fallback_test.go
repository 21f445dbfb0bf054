package portfolio

import (
	"math"
	"reflect"
	"testing"
)

func TestFallbackBundle_Shape(t *testing.T) {
	b := FallbackBundle()

	if !b.Fallback {
		t.Error("fallback bundle must be marked as such")
	}
	if len(b.Equity) < 10 {
		t.Errorf("expected a usable equity curve, got %d points", len(b.Equity))
	}
	if len(b.Positions) == 0 || len(b.Benchmark) == 0 {
		t.Error("positions and benchmark must be populated")
	}

	symbols := make(map[string]bool)
	for _, p := range b.Positions {
		symbols[p.Symbol] = true
	}
	for _, want := range []string{"MU", "SNDK", "CDE", "RKLB"} {
		if !symbols[want] {
			t.Errorf("missing position %s", want)
		}
	}

	for _, key := range []string{"Equity", "Holdings", "NetProfit"} {
		if _, ok := b.Account.RuntimeStatistics[key]; !ok {
			t.Errorf("missing runtime statistic %s", key)
		}
	}
}

func TestFallbackBundle_Consistency(t *testing.T) {
	b := FallbackBundle()

	if math.Abs(b.Account.Equity-(b.Account.Cash+b.Account.Holdings)) > 1e-9 {
		t.Error("equity must equal cash + holdings")
	}

	total := 0.0
	for _, p := range b.Positions {
		total += p.Value
		if math.Abs(p.Value-p.Quantity*p.Price) > 1e-6 {
			t.Errorf("%s value %v != quantity*price %v", p.Symbol, p.Value, p.Quantity*p.Price)
		}
	}
	if math.Abs(total-b.Account.Holdings) > 1e-6 {
		t.Errorf("position values sum to %v, holdings is %v", total, b.Account.Holdings)
	}

	for i := 1; i < len(b.Equity); i++ {
		if !b.Equity[i-1].Time.Before(b.Equity[i].Time) {
			t.Fatal("equity timestamps must be strictly increasing")
		}
	}
}

func TestFallbackBundle_FreshCopyPerCall(t *testing.T) {
	a, b := FallbackBundle(), FallbackBundle()
	if a == b {
		t.Error("each call should return a distinct value")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("calls must be identical in content")
	}

	a.Equity[0].Close = -1
	if reflect.DeepEqual(a, b) {
		t.Error("mutating one copy must not affect another")
	}
}
