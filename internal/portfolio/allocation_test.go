package portfolio

import (
	"errors"
	"math"
	"testing"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

func TestAllocate_EqualDollar(t *testing.T) {
	a := flatSeries("A", map[int]float64{3: 50.0, 4: 51.0})
	b := flatSeries("B", map[int]float64{3: 20.0, 4: 19.0})

	plan, err := Allocate([]core.PriceSeries{a, b}, day(3), 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := plan.Shares["A"]; math.Abs(got-1000) > 1e-9 {
		t.Errorf("A shares = %v, want 1000", got)
	}
	if got := plan.Shares["B"]; math.Abs(got-2500) > 1e-9 {
		t.Errorf("B shares = %v, want 2500", got)
	}

	if math.Abs(plan.Invested-100000) > 1e-6 {
		t.Errorf("invested = %v, want 100000", plan.Invested)
	}
	if plan.Cash() != 0 {
		t.Errorf("cash = %v, want 0", plan.Cash())
	}
	if plan.Invested > plan.BaseCapital+1e-6 {
		t.Error("invested notional must never exceed base capital")
	}
}

func TestAllocate_FractionalShares(t *testing.T) {
	a := flatSeries("A", map[int]float64{3: 333.33})

	plan, err := Allocate([]core.PriceSeries{a}, day(3), 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shares := plan.Shares["A"]
	if shares == math.Trunc(shares) {
		t.Errorf("expected fractional share count, got %v", shares)
	}
	if math.Abs(shares*333.33-100000) > 1e-6 {
		t.Errorf("leg notional = %v, want 100000", shares*333.33)
	}
}

func TestAllocate_MissingBarAtDate(t *testing.T) {
	a := flatSeries("A", map[int]float64{4: 50.0})

	_, err := Allocate([]core.PriceSeries{a}, day(3), 100000)
	if !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestAllocate_ZeroClose(t *testing.T) {
	a := flatSeries("A", map[int]float64{3: 0})

	_, err := Allocate([]core.PriceSeries{a}, day(3), 100000)
	if !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
