// Package calendar derives document date keys from wall-clock time.
// This is part of the Functional Core - no I/O, only pure functions.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date used for document keys.
const DateLayout = "2006-01-02"

// LoadLocation resolves a configured zone name. Empty and "Local" map to time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// Day returns noon of t's calendar day in loc.
// Anchoring at noon keeps AddDate day-stepping clear of DST transitions.
func Day(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)
}

// DateKey formats t as the calendar date it falls on in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key into noon of that day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return Day(t, loc), nil
}

// PreviousDay steps a Day value back one calendar day.
func PreviousDay(day time.Time) time.Time {
	return day.AddDate(0, 0, -1)
}

// Window returns the n date keys ending at asOf inclusive, newest first.
func Window(asOf time.Time, loc *time.Location, n int) []string {
	if n <= 0 {
		return nil
	}
	keys := make([]string, 0, n)
	day := Day(asOf, loc)
	for i := 0; i < n; i++ {
		keys = append(keys, DateKey(day, loc))
		day = PreviousDay(day)
	}
	return keys
}

// DocumentPath returns the store path of a user's record for a date key.
func DocumentPath(userID, dateKey string) string {
	return fmt.Sprintf("users/%s/logs/%s", userID, dateKey)
}
