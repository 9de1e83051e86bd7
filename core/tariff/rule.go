package tariff

import (
	"fmt"
	"sort"
	"time"
)

// SecondsPerDay bounds the daily window offsets
const SecondsPerDay = 86400

// Rule is one pricing rule of a zone: the days and daily window it applies
// to, and the billing units it charges in.
//
// FreePeriod, MinPeriod and MinAmount are carried from the dataset but do not
// take part in cost calculation.
type Rule struct {
	// Days are the weekdays the rule is active on
	Days WeekdayMask `json:"days"`

	// UnitPrices maps a billing unit length in seconds to its price in cents
	UnitPrices map[int]float64 `json:"periods"`

	// WindowStart is the offset from the start of day the rule starts at (nil = midnight)
	WindowStart *int `json:"start,omitempty"`

	// WindowEnd is the offset from the start of day the rule ends at (nil = next midnight)
	WindowEnd *int `json:"end,omitempty"`

	FreePeriod *int     `json:"free-period,omitempty"`
	MinPeriod  *int     `json:"min-period,omitempty"`
	MinAmount  *float64 `json:"min-amount,omitempty"`
}

// HasPrices reports whether the rule has any billing unit
func (r *Rule) HasPrices() bool {
	return len(r.UnitPrices) > 0
}

// UnitsAscending returns unit lengths in seconds, shortest first
func (r *Rule) UnitsAscending() []int {
	units := make([]int, 0, len(r.UnitPrices))
	for u := range r.UnitPrices {
		units = append(units, u)
	}
	sort.Ints(units)
	return units
}

// UnitsDescending returns unit lengths in seconds, longest first
func (r *Rule) UnitsDescending() []int {
	units := r.UnitsAscending()
	sort.Sort(sort.Reverse(sort.IntSlice(units)))
	return units
}

// SmallestUnit returns the shortest billing unit
func (r *Rule) SmallestUnit() (int, bool) {
	units := r.UnitsAscending()
	if len(units) == 0 {
		return 0, false
	}
	return units[0], true
}

// LargestUnit returns the longest billing unit
func (r *Rule) LargestUnit() (int, bool) {
	units := r.UnitsAscending()
	if len(units) == 0 {
		return 0, false
	}
	return units[len(units)-1], true
}

// Validate checks the structural constraints of the rule
func (r *Rule) Validate() error {
	for unit, price := range r.UnitPrices {
		if unit <= 0 {
			return fmt.Errorf("billing unit must be positive, got %d", unit)
		}
		if price < 0 {
			return fmt.Errorf("price for %ds unit must not be negative, got %v", unit, price)
		}
	}
	if r.WindowStart != nil && (*r.WindowStart < 0 || *r.WindowStart >= SecondsPerDay) {
		return fmt.Errorf("window start out of range: %d", *r.WindowStart)
	}
	if r.WindowEnd != nil && (*r.WindowEnd < 0 || *r.WindowEnd >= SecondsPerDay) {
		return fmt.Errorf("window end out of range: %d", *r.WindowEnd)
	}
	return nil
}

func (r *Rule) windowStart() time.Duration {
	if r.WindowStart == nil {
		return 0
	}
	return time.Duration(*r.WindowStart) * time.Second
}

// Seconds is a convenience for building optional rule fields
func Seconds(v int) *int {
	return &v
}

// Cents is a convenience for building optional rule amounts
func Cents(v float64) *float64 {
	return &v
}
