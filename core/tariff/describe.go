package tariff

import (
	"fmt"
	"strings"
	"time"

	"parking-cost/core/types"
)

// Describe renders a one-line summary of the rule, e.g.
// "Mon - Fri, 08:00 - 20:00, 30m €0.50". Only the shortest unit is listed.
func Describe(rule *Rule, currency types.Currency) string {
	parts := []string{rule.Days.String()}

	switch {
	case rule.WindowStart != nil && rule.WindowEnd != nil:
		parts = append(parts, clock(*rule.WindowStart)+" - "+clock(*rule.WindowEnd))
	case rule.WindowStart != nil:
		parts = append(parts, clock(*rule.WindowStart)+" - "+clock(SecondsPerDay))
	case rule.WindowEnd != nil:
		parts = append(parts, clock(0)+" - "+clock(*rule.WindowEnd))
	default:
		parts = append(parts, "24h")
	}

	if unit, ok := rule.SmallestUnit(); ok {
		price := types.NewMoney(rule.UnitPrices[unit], currency)
		parts = append(parts, shortDuration(unit)+" "+price.String())
	}

	return strings.Join(parts, ", ")
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/3600, (seconds%3600)/60)
}

func shortDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
