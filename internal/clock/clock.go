// Package clock owns every conversion between absolute instants and the
// stall's civil timezone. Callers reason in day keys ("2006-01-02") and hour
// keys ("15") only.
package clock

import (
	"strings"
	"time"
	_ "time/tzdata" // Asia/Jakarta must resolve on minimal images

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
)

const (
	DefaultZone = "Asia/Jakarta"

	dayLayout   = "2006-01-02"
	hourLayout  = "15"
	localLayout = "2006-01-02T15:04:05"
)

type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New loads zone, falling back to a fixed UTC+7 when it is unknown.
func New(zone string) *Clock {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	return &Clock{loc: loc, now: time.Now}
}

// Fixed returns a clock that always reports t. Used by tests.
func Fixed(zone string, t time.Time) *Clock {
	c := New(zone)
	c.now = func() time.Time { return t }
	return c
}

// WithNow swaps the time source.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: now}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in UTC; storage always keeps UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

func (c *Clock) Local(t time.Time) time.Time {
	return t.In(c.loc)
}

func (c *Clock) DayKey(t time.Time) string {
	return t.In(c.loc).Format(dayLayout)
}

func (c *Clock) HourKey(t time.Time) string {
	return t.In(c.loc).Format(hourLayout)
}

func (c *Clock) StartOfDay(t time.Time) time.Time {
	l := t.In(c.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, c.loc)
}

// EndOfDay is 23:59:59.999 local time.
func (c *Clock) EndOfDay(t time.Time) time.Time {
	l := t.In(c.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, int(999*time.Millisecond), c.loc)
}

// ParseInstant accepts RFC3339 timestamps, and local date-times or bare dates
// which are read in the civil zone.
func (c *Clock) ParseInstant(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, apperr.InvalidInstant(s)
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localLayout, v, c.loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dayLayout, v, c.loc); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.InvalidInstant(s)
}

// IsWithin is day-granular: t matches when its local day lies between the
// local days of start and end, both inclusive.
func (c *Clock) IsWithin(t, start, end time.Time) bool {
	day := c.DayKey(t)
	return day >= c.DayKey(start) && day <= c.DayKey(end)
}

