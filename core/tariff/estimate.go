package tariff

import (
	"fmt"
	"math"
	"time"
)

// Strategy selects how active time is converted into billing units
type Strategy int

const (
	// StrategyMinimum bills in the shortest unit only
	StrategyMinimum Strategy = iota

	// StrategyMaximum bills in the longest unit only
	StrategyMaximum

	// StrategyGreedy fits the longest units first, then tops up with one shortest unit
	StrategyGreedy
)

// Strategies returns all strategies in evaluation order
func Strategies() []Strategy {
	return []Strategy{StrategyMinimum, StrategyMaximum, StrategyGreedy}
}

// String returns the strategy name
func (s Strategy) String() string {
	switch s {
	case StrategyMinimum:
		return "minimum"
	case StrategyMaximum:
		return "maximum"
	case StrategyGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// Estimate prices active time under a strategy. It returns the time the cost
// pays for and the cost in cents; ok is false when the rule has no units.
func Estimate(rule *Rule, active time.Duration, strategy Strategy) (covered time.Duration, cost float64, ok bool) {
	if !rule.HasPrices() {
		return 0, 0, false
	}

	switch strategy {
	case StrategyMinimum, StrategyMaximum:
		unit, _ := rule.SmallestUnit()
		if strategy == StrategyMaximum {
			unit, _ = rule.LargestUnit()
		}
		length := unitDuration(unit)
		count := math.Ceil(float64(active) / float64(length))
		return time.Duration(count) * length, count * rule.UnitPrices[unit], true

	case StrategyGreedy:
		units := rule.UnitsDescending()
		remaining := active

		for _, unit := range units {
			length := unitDuration(unit)
			if length > remaining {
				continue
			}
			count := remaining / length
			cost += float64(count) * rule.UnitPrices[unit]
			remaining -= count * length
		}

		if remaining > 0 {
			smallest := units[len(units)-1]
			cost += rule.UnitPrices[smallest]
			remaining = 0
		}
		return active - remaining, cost, true
	}

	return 0, 0, false
}

func unitDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// MarshalText encodes the strategy by name
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStrategy looks a strategy up by name
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// UnmarshalText decodes a strategy name
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
