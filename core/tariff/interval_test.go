package tariff

import (
	"math/rand"
	"testing"
	"time"

	"parking-cost/internal/errors"
)

var utc = NewCalendar(time.UTC)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestActiveSecondsZeroLength(t *testing.T) {
	rules := []*Rule{
		{Days: AllDays},
		{Days: Weekdays, WindowStart: Seconds(8 * 3600), WindowEnd: Seconds(20 * 3600)},
		{Days: Empty},
	}
	moment := at(2024, time.June, 3, 12, 0)

	for _, rule := range rules {
		got, err := ActiveSeconds(rule, moment, moment, utc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 0 {
			t.Errorf("expected 0 for an empty span, got %s", got)
		}
	}
}

func TestActiveSecondsRejectsReversedSpan(t *testing.T) {
	from := at(2024, time.June, 3, 12, 0)
	_, err := ActiveSeconds(&Rule{Days: AllDays}, from, from.Add(-time.Minute), utc)
	if !errors.IsType(err, errors.TypeInvalidInterval) {
		t.Fatalf("expected INVALID_INTERVAL, got %v", err)
	}
}

func TestActiveSecondsScenarios(t *testing.T) {
	daytime := &Rule{
		Days:        Weekdays,
		UnitPrices:  map[int]float64{1800: 50},
		WindowStart: Seconds(8 * 3600),
		WindowEnd:   Seconds(20 * 3600),
	}

	tests := []struct {
		name string
		rule *Rule
		from time.Time
		to   time.Time
		want time.Duration
	}{
		{
			name: "all day rule covers the whole span",
			rule: &Rule{Days: AllDays},
			from: at(2024, time.June, 3, 10, 0),
			to:   at(2024, time.June, 3, 12, 0),
			want: 2 * time.Hour,
		},
		{
			name: "weekend is fully excluded",
			rule: daytime,
			from: at(2024, time.June, 1, 9, 0), // Saturday
			to:   at(2024, time.June, 2, 9, 0),
			want: 0,
		},
		{
			name: "friday evening to monday morning",
			rule: daytime,
			from: at(2024, time.May, 31, 18, 0),
			to:   at(2024, time.June, 3, 10, 0),
			want: 4 * time.Hour,
		},
		{
			name: "span starting before the window",
			rule: daytime,
			from: at(2024, time.June, 3, 6, 0),
			to:   at(2024, time.June, 3, 9, 0),
			want: time.Hour,
		},
		{
			name: "span starting after the window ended",
			rule: daytime,
			from: at(2024, time.June, 3, 21, 0),
			to:   at(2024, time.June, 4, 9, 0),
			want: time.Hour,
		},
		{
			name: "span entirely before the window",
			rule: daytime,
			from: at(2024, time.June, 3, 5, 0),
			to:   at(2024, time.June, 3, 7, 0),
			want: 0,
		},
		{
			name: "open ended window runs to midnight",
			rule: &Rule{Days: AllDays, WindowStart: Seconds(22 * 3600)},
			from: at(2024, time.June, 3, 20, 0),
			to:   at(2024, time.June, 4, 2, 0),
			want: 2 * time.Hour,
		},
		{
			name: "window with only an end",
			rule: &Rule{Days: AllDays, WindowEnd: Seconds(6 * 3600)},
			from: at(2024, time.June, 3, 20, 0),
			to:   at(2024, time.June, 4, 8, 0),
			want: 6 * time.Hour,
		},
		{
			name: "full week of weekday windows",
			rule: daytime,
			from: at(2024, time.June, 3, 0, 0),
			to:   at(2024, time.June, 10, 0, 0),
			want: 60 * time.Hour,
		},
		{
			name: "inverted window contributes nothing",
			rule: &Rule{Days: AllDays, WindowStart: Seconds(20 * 3600), WindowEnd: Seconds(8 * 3600)},
			from: at(2024, time.June, 3, 0, 0),
			to:   at(2024, time.June, 4, 0, 0),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActiveSeconds(tt.rule, tt.from, tt.to, utc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestActiveSecondsFollowsCalendarDayLength(t *testing.T) {
	cal, err := LoadCalendar("Europe/Tallinn")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	loc := cal.Location()

	// Clocks go forward on 31 March 2024, so that day lasts 23 hours.
	from := time.Date(2024, time.March, 31, 0, 0, 0, 0, loc)
	to := time.Date(2024, time.April, 1, 0, 0, 0, 0, loc)

	got, err := ActiveSeconds(&Rule{Days: AllDays}, from, to, cal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 23*time.Hour {
		t.Errorf("expected 23h on the DST day, got %s", got)
	}

	// A window ending at 23:30 would run past the short day's midnight.
	late := &Rule{Days: AllDays, WindowEnd: Seconds(23*3600 + 1800)}
	got, err = ActiveSeconds(late, from, to.AddDate(0, 0, 1), cal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 23*time.Hour + 23*time.Hour + 30*time.Minute; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestActiveSecondsStaysWithinSpan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := at(2024, time.January, 1, 0, 0)

	for i := 0; i < 500; i++ {
		rule := &Rule{Days: WeekdayMask(rng.Intn(128))}
		if rng.Intn(2) == 0 {
			rule.WindowStart = Seconds(rng.Intn(SecondsPerDay))
		}
		if rng.Intn(2) == 0 {
			rule.WindowEnd = Seconds(rng.Intn(SecondsPerDay))
		}

		from := base.Add(time.Duration(rng.Int63n(int64(60 * 24 * time.Hour))))
		to := from.Add(time.Duration(rng.Int63n(int64(10 * 24 * time.Hour))))

		got, err := ActiveSeconds(rule, from, to, utc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got < 0 || got > to.Sub(from) {
			t.Fatalf("active time %s outside [0, %s] for rule %+v", got, to.Sub(from), rule)
		}
	}
}
