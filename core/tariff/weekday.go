// Package tariff implements per-rule parking price calculation: which part of
// a time span a rule is active for, and what that active time costs.
package tariff

import (
	"strings"
	"time"
)

// WeekdayMask is a set of calendar weekdays stored in the low 7 bits
type WeekdayMask uint8

const (
	Monday WeekdayMask = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const (
	Empty    WeekdayMask = 0
	Weekdays             = Monday | Tuesday | Wednesday | Thursday | Friday
	Weekend              = Saturday | Sunday
	AllDays              = Weekdays | Weekend
)

var (
	maskOrder = [...]WeekdayMask{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
	shortDays = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// MaskFor returns the single-day mask for a time.Weekday
func MaskFor(day time.Weekday) WeekdayMask {
	if day == time.Sunday {
		return Sunday
	}
	return maskOrder[day-1]
}

// NewWeekdayMask builds a mask from the given days
func NewWeekdayMask(days ...time.Weekday) WeekdayMask {
	var m WeekdayMask
	for _, d := range days {
		m |= MaskFor(d)
	}
	return m
}

// Union returns the days in either mask
func (m WeekdayMask) Union(other WeekdayMask) WeekdayMask {
	return (m | other) & AllDays
}

// Contains reports whether the given weekday is in the mask
func (m WeekdayMask) Contains(day time.Weekday) bool {
	return m&MaskFor(day) != 0
}

// IsSuperset reports whether every day of other is also in m
func (m WeekdayMask) IsSuperset(other WeekdayMask) bool {
	return m&other == other
}

// Days lists the weekdays in the mask, Monday first
func (m WeekdayMask) Days() []time.Weekday {
	var days []time.Weekday
	for i, bit := range maskOrder {
		if m&bit != 0 {
			days = append(days, time.Weekday((i+1)%7))
		}
	}
	return days
}

// String summarises the mask the way tariff boards do, e.g. "Mon - Fri"
func (m WeekdayMask) String() string {
	switch {
	case m.IsSuperset(AllDays):
		return shortDays[0] + " - " + shortDays[6]
	case m.IsSuperset(Weekdays):
		return shortDays[0] + " - " + shortDays[4]
	case m.IsSuperset(Weekend):
		return shortDays[5] + " - " + shortDays[6]
	}

	var parts []string
	for i, bit := range maskOrder {
		if m&bit != 0 {
			parts = append(parts, shortDays[i])
		}
	}
	return strings.Join(parts, ", ")
}
