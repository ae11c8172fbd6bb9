package aitime

import (
	"time"

	"github.com/golang-sql/civil"
)

// Rollover resolves the AM/PM ambiguity of a same-day time: while the pair is
// dated today and lies before now, the time moves forward by 12 hours, carrying
// into the next day when it passes midnight. Pairs dated on any other day are
// returned unchanged; an explicitly past date is not the parser's to fix.
func Rollover(date civil.Date, t ClockTime, now time.Time) (civil.Date, ClockTime, bool) {
	today := civil.DateOf(now)
	if date != today {
		return date, t, false
	}

	loc := now.Location()
	at := t.on(date, loc)
	if !at.Before(now) {
		return date, t, false
	}

	hour := t.Hour
	for civil.DateOf(at) == today && at.Before(now) {
		hour += 12
		at = time.Date(date.Year, date.Month, date.Day, hour, t.Minute, t.Second, 0, loc)
	}
	return civil.DateOf(at), ClockTime{Hour: at.Hour(), Minute: at.Minute(), Second: at.Second()}, true
}

func rolloverCandidate(c Candidate, now time.Time) Candidate {
	if c.Date == nil || c.Time == nil {
		return c
	}
	d, t, rolled := Rollover(*c.Date, *c.Time, now)
	if !rolled {
		return c
	}
	c.setDate(d)
	c.Time = &t
	c.RolledOver = true
	return c
}
