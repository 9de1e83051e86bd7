package tariff

import "time"

// Calendar supplies day boundaries and weekdays. Implementations must be
// deterministic for the duration of a call.
type Calendar interface {
	// StartOfDay returns the first instant of the day containing t
	StartOfDay(t time.Time) time.Time

	// NextDay returns the first instant of the day after the one containing t
	NextDay(t time.Time) time.Time

	// Weekday returns the weekday of the day containing t
	Weekday(t time.Time) time.Weekday
}

// LocationCalendar is a Gregorian calendar in a fixed time zone. Day lengths
// follow the zone's rules, so DST days are 23 or 25 hours long.
type LocationCalendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar for the given location (UTC if nil)
func NewCalendar(loc *time.Location) LocationCalendar {
	if loc == nil {
		loc = time.UTC
	}
	return LocationCalendar{loc: loc}
}

// LoadCalendar returns a calendar for an IANA time zone name
func LoadCalendar(name string) (LocationCalendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return LocationCalendar{}, err
	}
	return NewCalendar(loc), nil
}

// Location returns the calendar's time zone
func (c LocationCalendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c LocationCalendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location())
}

func (c LocationCalendar) NextDay(t time.Time) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, c.Location())
}

func (c LocationCalendar) Weekday(t time.Time) time.Weekday {
	return t.In(c.Location()).Weekday()
}
