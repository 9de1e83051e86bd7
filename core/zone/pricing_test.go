package zone

import (
	"math"
	"testing"
	"time"

	"parking-cost/core/tariff"
	"parking-cost/internal/errors"
)

var utc = tariff.NewCalendar(time.UTC)

func hourly(cents float64) *tariff.Rule {
	return &tariff.Rule{Days: tariff.AllDays, UnitPrices: map[int]float64{3600: cents}}
}

func TestEstimatedPriceSingleUnit(t *testing.T) {
	z := &Zone{Code: "A1", Tariffs: []*tariff.Rule{hourly(100)}}
	from := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	to := from.Add(2 * time.Hour)

	estimates, err := EstimateByStrategy(z, from, to, utc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range estimates {
		if e.Cost != 200 {
			t.Errorf("%s: expected 200 cents, got %v", e.Strategy, e.Cost)
		}
		if !e.Until.Equal(from.Add(7200 * time.Second)) {
			t.Errorf("%s: expected until %s, got %s", e.Strategy, from.Add(2*time.Hour), e.Until)
		}
	}

	price, err := EstimatedPrice(z, from, to, utc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Priced || price.Cost != 200 || !price.From.Equal(from) || !price.Until.Equal(to) {
		t.Errorf("unexpected estimate: %+v", price)
	}
}

func TestEstimatedPriceWithoutPriceData(t *testing.T) {
	from := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	to := from.Add(3 * time.Hour)

	zones := map[string]*Zone{
		"no tariffs":           {Code: "X"},
		"tariff without units": {Code: "Y", Tariffs: []*tariff.Rule{{Days: tariff.AllDays}}},
	}

	for name, z := range zones {
		t.Run(name, func(t *testing.T) {
			price, err := EstimatedPrice(z, from, to, utc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if price.Priced {
				t.Error("expected estimate to be marked as unpriced")
			}
			if price.Cost != 0 || !price.Until.Equal(to) {
				t.Errorf("expected zero cost until %s, got %+v", to, price)
			}
		})
	}
}

func TestEstimatedPriceRejectsReversedSpan(t *testing.T) {
	z := &Zone{Tariffs: []*tariff.Rule{hourly(100)}}
	from := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

	_, err := EstimatedPrice(z, from, from.Add(-time.Second), utc)
	if !errors.IsType(err, errors.TypeInvalidInterval) {
		t.Fatalf("expected INVALID_INTERVAL, got %v", err)
	}
}

func TestEstimatedPricePicksCheapestStrategy(t *testing.T) {
	z := &Zone{Tariffs: []*tariff.Rule{{
		Days:       tariff.AllDays,
		UnitPrices: map[int]float64{1800: 50, 3600: 80, 86400: 500},
	}}}
	from := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	to := from.Add(2*time.Hour + 45*time.Minute)

	estimates, err := EstimateByStrategy(z, from, to, utc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[tariff.Strategy]struct {
		cost  float64
		until time.Time
	}{
		tariff.StrategyMinimum: {300, to.Add(15 * time.Minute)},
		tariff.StrategyMaximum: {500, from.Add(24 * time.Hour)},
		tariff.StrategyGreedy:  {260, to},
	}
	cheapest := math.Inf(1)
	for _, e := range estimates {
		w := want[e.Strategy]
		if e.Cost != w.cost || !e.Until.Equal(w.until) {
			t.Errorf("%s: expected %v until %s, got %v until %s", e.Strategy, w.cost, w.until, e.Cost, e.Until)
		}
		cheapest = math.Min(cheapest, e.Cost)
	}

	price, err := EstimatedPrice(z, from, to, utc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.Cost != cheapest {
		t.Errorf("expected the minimum strategy total %v, got %v", cheapest, price.Cost)
	}
	if price.Strategy != tariff.StrategyGreedy || !price.Until.Equal(to) {
		t.Errorf("expected greedy estimate until %s, got %s until %s", to, price.Strategy, price.Until)
	}
}

func TestEstimatedPriceTieKeepsEvaluationOrder(t *testing.T) {
	z := &Zone{Tariffs: []*tariff.Rule{hourly(100)}}
	from := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	to := from.Add(90 * time.Minute)

	price, err := EstimatedPrice(z, from, to, utc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.Cost != 200 {
		t.Fatalf("expected 200 cents, got %v", price.Cost)
	}
	if price.Strategy != tariff.StrategyMinimum {
		t.Errorf("expected the first strategy to win a tie, got %s", price.Strategy)
	}
	if !price.Until.Equal(to.Add(30 * time.Minute)) {
		t.Errorf("expected the paid time to overshoot by 30m, got %s", price.Until)
	}
}

func TestEstimatedPriceSumsRules(t *testing.T) {
	z := &Zone{Tariffs: []*tariff.Rule{
		{
			Days:        tariff.Weekdays,
			UnitPrices:  map[int]float64{1800: 50},
			WindowStart: tariff.Seconds(8 * 3600),
			WindowEnd:   tariff.Seconds(20 * 3600),
		},
		{
			Days:       tariff.Weekend,
			UnitPrices: map[int]float64{3600: 60},
		},
	}}
	// Friday 19:00 to Saturday 01:00
	from := time.Date(2024, time.May, 31, 19, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 1, 1, 0, 0, 0, time.UTC)

	price, err := EstimatedPrice(z, from, to, utc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.Cost != 160 {
		t.Errorf("expected 100 + 60 cents, got %v", price.Cost)
	}
	if !price.Until.Equal(to) {
		t.Errorf("expected until %s, got %s", to, price.Until)
	}
}

func TestEstimatedPriceUntilOnlyMovesForward(t *testing.T) {
	z := &Zone{Tariffs: []*tariff.Rule{
		{Days: tariff.AllDays, UnitPrices: map[int]float64{86400: 400}},
		{Days: tariff.AllDays, UnitPrices: map[int]float64{60: 2}},
	}}
	from := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)

	estimates, err := EstimateByStrategy(z, from, to, utc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range estimates {
		if e.Strategy == tariff.StrategyGreedy {
			continue
		}
		if want := from.Add(24 * time.Hour); !e.Until.Equal(want) {
			t.Errorf("%s: expected the day unit to extend until %s, got %s", e.Strategy, want, e.Until)
		}
	}
}
