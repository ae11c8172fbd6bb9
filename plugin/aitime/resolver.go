package aitime

import (
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

// Resolve runs the whole pipeline on a message: numeral normalization, clause
// segmentation, per-clause extraction and rollover, and candidate selection.
// now is the only clock the pipeline reads. The boolean is false when no clause
// mentions a date or a time.
func Resolve(text string, now time.Time, g Granularity) (Result, bool) {
	cands := Candidates(text, now, g)
	best, ok := Select(cands, now)
	if !ok {
		return Result{}, false
	}
	return resultFromCandidate(best, g), true
}

// Candidates returns the rollover-resolved candidate of every clause that
// mentions a date or a time, in order of appearance. A clause with a time but no
// date takes the date of the nearest preceding clause that has one.
func Candidates(text string, now time.Time, g Granularity) []Candidate {
	clauses := Segment(NormalizeNumerals(text))
	cands := make([]Candidate, 0, len(clauses))

	var lastDate *civil.Date
	for _, cl := range clauses {
		c := extractCandidate(cl, now, g)
		switch {
		case c.Date != nil:
			d := *c.Date
			lastDate = &d
		case c.Time != nil && lastDate != nil:
			c.setDate(*lastDate)
			c.InheritedDate = true
		}
		if c.IsEmpty() {
			continue
		}
		cands = append(cands, rolloverCandidate(carryPastMidnight(c, now), now))
	}
	return cands
}

// ResolveSingleClause extracts and rolls over a single clause without
// segmentation or selection, for callers that already isolated the clause.
func ResolveSingleClause(text string, now time.Time, g Granularity) (Candidate, bool) {
	normalized := strings.TrimSpace(NormalizeNumerals(text))
	c := extractCandidate(Clause{Text: normalized}, now, g)
	if c.IsEmpty() {
		return Candidate{}, false
	}
	return rolloverCandidate(carryPastMidnight(c, now), now), true
}

func extractCandidate(cl Clause, now time.Time, g Granularity) Candidate {
	c := Candidate{Clause: cl}
	if d, family, ok := ExtractDate(cl.Text, now); ok {
		c.setDate(d)
		c.DateFamily = family
	}
	if t, family, nextDay, ok := extractTime(cl.Text, g); ok {
		c.Time = &t
		c.TimeFamily = family
		c.pastMidnight = nextDay
	}
	return c
}

// carryPastMidnight moves a time that fell past midnight onto the next day of
// its date, or of today when the clause has none.
func carryPastMidnight(c Candidate, now time.Time) Candidate {
	if !c.pastMidnight {
		return c
	}
	base := civil.DateOf(now)
	if c.Date != nil {
		base = *c.Date
	}
	c.setDate(base.AddDays(1))
	c.pastMidnight = false
	return c
}
