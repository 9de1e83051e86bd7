package zone

import (
	"time"

	"parking-cost/core/tariff"
	"parking-cost/internal/errors"
)

// PriceEstimate is the cost of parking over a span and the span it pays for.
// Until can lie past the requested end when billing units overshoot it.
type PriceEstimate struct {
	Cost     float64         `json:"cost"`
	From     time.Time       `json:"from"`
	Until    time.Time       `json:"until"`
	Strategy tariff.Strategy `json:"strategy"`

	// Priced is false when no tariff rule could be costed. A zero Cost is
	// then "unknown", not "free".
	Priced bool `json:"priced"`
}

// StrategyEstimate is the zone total under one billing strategy
type StrategyEstimate struct {
	Strategy tariff.Strategy `json:"strategy"`
	Cost     float64         `json:"cost"`
	Until    time.Time       `json:"until"`
	Priced   bool            `json:"priced"`
}

// EstimateByStrategy prices [from, to) under every strategy, summing the cost
// of all of the zone's rules. Results are in tariff.Strategies() order.
func EstimateByStrategy(z *Zone, from, to time.Time, cal tariff.Calendar) ([]StrategyEstimate, error) {
	if to.Before(from) {
		return nil, errors.InvalidInterval(from, to)
	}

	strategies := tariff.Strategies()
	estimates := make([]StrategyEstimate, len(strategies))
	for i, s := range strategies {
		estimates[i] = StrategyEstimate{Strategy: s, Until: to}
	}

	for _, rule := range z.Tariffs {
		active, err := tariff.ActiveSeconds(rule, from, to, cal)
		if err != nil {
			return nil, err
		}

		for i := range estimates {
			covered, cost, ok := tariff.Estimate(rule, active, estimates[i].Strategy)
			if !ok {
				continue
			}
			estimates[i].Cost += cost
			estimates[i].Priced = true

			if paid := to.Add(covered - active); paid.After(estimates[i].Until) {
				estimates[i].Until = paid
			}
		}
	}

	return estimates, nil
}

// EstimatedPrice returns the cheapest strategy's estimate for parking in z
// from from until to. Equal costs resolve to the earliest strategy in
// tariff.Strategies() order.
func EstimatedPrice(z *Zone, from, to time.Time, cal tariff.Calendar) (PriceEstimate, error) {
	estimates, err := EstimateByStrategy(z, from, to, cal)
	if err != nil {
		return PriceEstimate{}, err
	}

	best := estimates[0]
	for _, e := range estimates[1:] {
		if e.Cost < best.Cost {
			best = e
		}
	}

	return PriceEstimate{
		Cost:     best.Cost,
		From:     from,
		Until:    best.Until,
		Strategy: best.Strategy,
		Priced:   best.Priced,
	}, nil
}

// EstimatedPriceUntilNow prices parking that started at since and is still
// ongoing
func EstimatedPriceUntilNow(z *Zone, since time.Time, cal tariff.Calendar) (PriceEstimate, error) {
	return EstimatedPrice(z, since, time.Now(), cal)
}
