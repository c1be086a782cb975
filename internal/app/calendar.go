package app

import (
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/calendar"
)

// Calendar resolves "today" in the configured zone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar creates a Calendar. A nil now uses time.Now.
func NewCalendar(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

// Now returns the current instant.
func (c *Calendar) Now() time.Time { return c.now() }

// Location returns the zone date keys are derived in.
func (c *Calendar) Location() *time.Location { return c.loc }

// Today returns today's date key.
func (c *Calendar) Today() string {
	return calendar.DateKey(c.now(), c.loc)
}

// DaysAgo returns the date key n calendar days before today.
func (c *Calendar) DaysAgo(n int) string {
	day := calendar.Day(c.now(), c.loc).AddDate(0, 0, -n)
	return calendar.DateKey(day, c.loc)
}
