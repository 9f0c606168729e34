// Package daterange turns a report request into a concrete civil-day window.
package daterange

import (
	"strings"
	"time"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
)

const ModeToday = "today"

// Request is the raw query: ?mode=today or ?start=2026-01-01&end=2026-01-31.
type Request struct {
	Mode  string `query:"mode"`
	Start string `query:"start"`
	End   string `query:"end"`
}

// Window is inclusive at day granularity; Start and End are only ever
// compared by their local day.
type Window struct {
	StartRaw string
	EndRaw   string
	Start    time.Time
	End      time.Time

	clock *clock.Clock
}

// Range is the JSON echo of a window.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Resolver struct {
	clock *clock.Clock
}

func NewResolver(c *clock.Clock) *Resolver {
	return &Resolver{clock: c}
}

// Resolve never checks start <= end; a reversed window simply matches nothing.
func (r *Resolver) Resolve(req Request) (Window, error) {
	start := strings.TrimSpace(req.Start)
	end := strings.TrimSpace(req.End)

	if req.Mode == ModeToday || (start == "" && end == "") {
		return r.Today(), nil
	}
	if end == "" {
		end = start
	}
	if start == "" {
		start = end
	}

	s, err := r.clock.ParseInstant(start)
	if err != nil {
		return Window{}, apperr.Validation("invalid start: %q", start)
	}
	e, err := r.clock.ParseInstant(end)
	if err != nil {
		return Window{}, apperr.Validation("invalid end: %q", end)
	}
	return Window{StartRaw: start, EndRaw: end, Start: s, End: e, clock: r.clock}, nil
}

// Today is the full local day containing now.
func (r *Resolver) Today() Window {
	now := r.clock.Now()
	s := r.clock.StartOfDay(now)
	e := r.clock.EndOfDay(now)
	return Window{
		StartRaw: s.Format(time.RFC3339Nano),
		EndRaw:   e.Format(time.RFC3339Nano),
		Start:    s,
		End:      e,
		clock:    r.clock,
	}
}

func (w Window) Contains(t time.Time) bool {
	return w.clock.IsWithin(t, w.Start, w.End)
}

// SingleDay reports whether both boundaries fall on the same local day.
func (w Window) SingleDay() bool {
	return w.clock.DayKey(w.Start) == w.clock.DayKey(w.End)
}

func (w Window) Range() Range {
	return Range{Start: w.StartRaw, End: w.EndRaw}
}
