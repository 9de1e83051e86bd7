package tariff

import (
	"time"

	"parking-cost/internal/errors"
)

// ActiveSeconds returns how much of [from, to) falls on the rule's active
// days and inside its daily window. The span is walked one calendar day at a
// time; day lengths come from cal, never from a fixed 24h.
func ActiveSeconds(rule *Rule, from, to time.Time, cal Calendar) (time.Duration, error) {
	if to.Before(from) {
		return 0, errors.InvalidInterval(from, to)
	}

	var total time.Duration
	start := rule.windowStart()
	cursor := cal.StartOfDay(from)

	for cursor.Before(to) {
		next := cal.NextDay(cursor)

		if !rule.Days.Contains(cal.Weekday(cursor)) {
			cursor = next
			continue
		}

		windowFrom := later(cursor.Add(start), from)
		if !windowFrom.Before(to) {
			// Later days start even further out.
			break
		}

		windowTo := next
		if rule.WindowEnd != nil {
			windowTo = earlier(cursor.Add(time.Duration(*rule.WindowEnd)*time.Second), next)
		}

		if windowTo.Before(from) {
			cursor = next
			continue
		}

		if span := earlier(windowTo, to).Sub(windowFrom); span > 0 {
			total += span
		}
		cursor = next
	}

	return total, nil
}

func later(a, b time.Time) time.Time {
	if a.Before(b) {
		return b
	}
	return a
}

func earlier(a, b time.Time) time.Time {
	if a.After(b) {
		return b
	}
	return a
}
