package tariff

import (
	"testing"
	"time"
)

func TestWeekdayMaskGroups(t *testing.T) {
	if AllDays != 0x7f {
		t.Fatalf("expected all days to use 7 bits, got %b", AllDays)
	}
	if Weekdays.Union(Weekend) != AllDays {
		t.Error("weekdays and weekend should make up all days")
	}
	if !AllDays.IsSuperset(Weekend) {
		t.Error("all days should be a superset of the weekend")
	}
	if Weekdays.IsSuperset(Weekend) {
		t.Error("weekdays should not contain the weekend")
	}
	if Weekdays.Contains(time.Saturday) || !Weekend.Contains(time.Sunday) {
		t.Error("weekday/weekend membership is wrong")
	}
	if Weekend.Union(WeekdayMask(0x80)) != Weekend {
		t.Error("union should drop bits outside the 7-day range")
	}
}

func TestWeekdayMaskDays(t *testing.T) {
	mask := NewWeekdayMask(time.Sunday, time.Monday, time.Wednesday)
	days := mask.Days()

	want := []time.Weekday{time.Monday, time.Wednesday, time.Sunday}
	if len(days) != len(want) {
		t.Fatalf("expected %v, got %v", want, days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], days[i])
		}
	}
}

func TestWeekdayMaskString(t *testing.T) {
	tests := []struct {
		mask WeekdayMask
		want string
	}{
		{AllDays, "Mon - Sun"},
		{Weekdays, "Mon - Fri"},
		{Weekend, "Sat - Sun"},
		{Monday | Wednesday, "Mon, Wed"},
		{Weekdays | Saturday, "Mon - Fri"},
		{Empty, ""},
	}

	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("mask %07b: expected %q, got %q", tt.mask, tt.want, got)
		}
	}
}
