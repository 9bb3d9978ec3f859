package clock

import "time"

// Clock stamps rows written to the store. Timestamps are stored as the
// human readable text the event hosts see in the sheet, in the event's
// timezone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock rendering in loc. A nil loc means UTC.
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// Fixed returns a clock frozen at t, for tests and replays.
func Fixed(t time.Time, loc *time.Location) *Clock {
	c := New(loc)
	c.now = func() time.Time { return t }
	return c
}

// Now is the current instant in the clock's location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Stamp formats the current instant.
func (c *Clock) Stamp() string {
	return Format(c.Now())
}

// Format renders t the way a Colombian Spanish locale prints date and time:
// "17/10/2026, 3:04:05 p. m.".
func Format(t time.Time) string {
	suffix := "a. m."
	if t.Hour() >= 12 {
		suffix = "p. m."
	}
	return t.Format("2/1/2006, 3:04:05") + " " + suffix
}
