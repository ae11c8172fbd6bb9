// Package timezone resolves the IANA zone that wall-clock readings are
// interpreted in before they reach the resolver.
package timezone

import (
	"fmt"
	"time"
)

// UTC is the fallback zone.
var UTC = time.UTC

const (
	// TimezoneUTC is the UTC timezone identifier
	TimezoneUTC = "UTC"
	// TimezoneLocal selects the host's local zone.
	TimezoneLocal = "Local"
	// TimezoneAsiaShanghai is the China Standard Time timezone
	TimezoneAsiaShanghai = "Asia/Shanghai"
	// TimezoneAsiaHongKong is the Hong Kong Time timezone
	TimezoneAsiaHongKong = "Asia/Hong_Kong"
	// TimezoneAsiaTaipei is the Taipei timezone
	TimezoneAsiaTaipei = "Asia/Taipei"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Hong_Kong").
// Empty and "UTC" yield UTC; "Local" yields the host zone.
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	switch tz {
	case "", TimezoneUTC:
		return UTC, nil
	case TimezoneLocal:
		return time.Local, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// ReferenceTime returns the moment a resolution is anchored to: now when it
// is non-zero, the current time otherwise, expressed in loc.
func ReferenceTime(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = UTC
	}
	if now.IsZero() {
		now = time.Now()
	}
	return now.In(loc)
}

// ParseReference parses an optional RFC 3339 reference instant. An empty
// string yields the zero time, which ReferenceTime replaces with the clock.
func ParseReference(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference time %q: %w", s, err)
	}
	return t, nil
}

// StartOfDay returns the start of the day (00:00:00) in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = UTC
	}
	t = t.In(tz)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, tz)
}
