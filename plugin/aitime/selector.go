package aitime

import (
	"time"

	"github.com/golang-sql/civil"
)

// Select picks the candidate the speaker most plausibly meant:
//  1. a date of today beats every other date;
//  2. otherwise the nearest upcoming date wins, and past dates only count when
//     no candidate carries a present or future date;
//  3. among candidates on the winning date, the time nearest to but not before
//     now wins, falling back to pastTimeFallback when every time is past;
//  4. date-only and time-only candidates are kept as partial results;
//  5. no candidates means nothing was found.
//
// Order of appearance breaks any remaining tie.
func Select(cands []Candidate, now time.Time) (Candidate, bool) {
	var dated, timeOnly []Candidate
	for _, c := range cands {
		switch {
		case c.Date != nil:
			dated = append(dated, c)
		case c.Time != nil:
			timeOnly = append(timeOnly, c)
		}
	}

	if len(dated) > 0 {
		target, ok := targetDate(dated, civil.DateOf(now))
		if !ok {
			return Candidate{}, false
		}
		var tied []Candidate
		for _, c := range dated {
			if *c.Date == target {
				tied = append(tied, c)
			}
		}
		return pickByTime(tied, now), true
	}
	if len(timeOnly) > 0 {
		return pickByTime(timeOnly, now), true
	}
	return Candidate{}, false
}

// targetDate returns the earliest date that is not before today. When every
// date is in the past the most recent one is used.
func targetDate(dated []Candidate, today civil.Date) (civil.Date, bool) {
	var (
		upcoming, past       civil.Date
		hasUpcoming, hasPast bool
	)
	for _, c := range dated {
		d := *c.Date
		if d.Before(today) {
			if !hasPast || d.After(past) {
				past, hasPast = d, true
			}
			continue
		}
		if !hasUpcoming || d.Before(upcoming) {
			upcoming, hasUpcoming = d, true
		}
	}
	if hasUpcoming {
		return upcoming, true
	}
	return past, hasPast
}

// pickByTime chooses among candidates that share a date (or all lack one).
// Candidates with a time are preferred over those without.
func pickByTime(tied []Candidate, now time.Time) Candidate {
	var timed []Candidate
	for _, c := range tied {
		if c.Time != nil {
			timed = append(timed, c)
		}
	}
	if len(timed) == 0 {
		return tied[0]
	}

	var (
		best   Candidate
		bestAt time.Time
		found  bool
	)
	for _, c := range timed {
		at := candidateMoment(c, now)
		if at.Before(now) {
			continue
		}
		if !found || at.Before(bestAt) {
			best, bestAt, found = c, at, true
		}
	}
	if found {
		return best
	}
	return pastTimeFallback(timed)
}

// pastTimeFallback decides the winner when every time on the chosen date is
// already past: the earliest time is taken instead of failing.
func pastTimeFallback(timed []Candidate) Candidate {
	best := timed[0]
	for _, c := range timed[1:] {
		if c.Time.seconds() < best.Time.seconds() {
			best = c
		}
	}
	return best
}

// candidateMoment places a candidate's time on its date, or on today's date for
// time-only candidates.
func candidateMoment(c Candidate, now time.Time) time.Time {
	d := civil.DateOf(now)
	if c.Date != nil {
		d = *c.Date
	}
	return c.Time.on(d, now.Location())
}
