package aitime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

// Granularity selects how a ClockTime is rendered.
type Granularity int

const (
	// GranularityMinute renders "HH:MM".
	GranularityMinute Granularity = iota
	// GranularitySecond renders "HH:MM:SS".
	GranularitySecond
)

// ParseGranularity parses "minute" / "second". The numeric forms "2" and "3"
// (number of clock components) are accepted for callers that pass a format width.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "minute", "min", "2":
		return GranularityMinute, nil
	case "second", "sec", "3":
		return GranularitySecond, nil
	default:
		return GranularityMinute, fmt.Errorf("unknown granularity %q", s)
	}
}

func (g Granularity) String() string {
	if g == GranularitySecond {
		return "second"
	}
	return "minute"
}

// ClockTime is a wall-clock reading. Hour 24 is only used as the "end of day"
// sentinel produced by midnight vocabulary and always has zero minutes and seconds.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

func newClockTime(hour, minute, second int) (ClockTime, bool) {
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return ClockTime{}, false
	}
	if hour == 24 && (minute != 0 || second != 0) {
		return ClockTime{}, false
	}
	return ClockTime{Hour: hour, Minute: minute, Second: second}, true
}

// IsMidnightEnd reports whether t is the 24:00 sentinel.
func (t ClockTime) IsMidnightEnd() bool {
	return t.Hour == 24
}

// Format renders t at the given granularity.
func (t ClockTime) Format(g Granularity) string {
	if g == GranularitySecond {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t ClockTime) String() string {
	return t.Format(GranularitySecond)
}

// truncate drops the seconds for minute granularity.
func (t ClockTime) truncate(g Granularity) ClockTime {
	if g == GranularityMinute {
		t.Second = 0
	}
	return t
}

// seconds returns the offset of t from the start of its day.
func (t ClockTime) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// on combines d and t into an instant in loc. 24:00 lands on the next day's 00:00.
func (t ClockTime) on(d civil.Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// newDate returns a calendrically valid date or false.
func newDate(year int, month time.Month, day int) (civil.Date, bool) {
	d := civil.Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}

var weekdayLabels = [...]string{
	time.Sunday:    "星期日",
	time.Monday:    "星期一",
	time.Tuesday:   "星期二",
	time.Wednesday: "星期三",
	time.Thursday:  "星期四",
	time.Friday:    "星期五",
	time.Saturday:  "星期六",
}

// WeekdayLabel returns the Chinese weekday name of d.
func WeekdayLabel(d civil.Date) string {
	return weekdayLabels[d.In(time.UTC).Weekday()]
}

// Clause is one independently parsed piece of a message.
type Clause struct {
	Text   string `json:"text"`
	Index  int    `json:"index"`
	Offset int    `json:"offset"`
}

// Candidate is the extraction result of a single clause.
type Candidate struct {
	Clause     Clause
	Date       *civil.Date
	Time       *ClockTime
	Weekday    string
	DateFamily DateFamily
	TimeFamily TimeFamily

	// InheritedDate is set when Date was carried over from an earlier clause.
	InheritedDate bool
	// RolledOver is set when the time was advanced past the current moment.
	RolledOver bool

	// pastMidnight marks a late-night time that belongs to the day after Date.
	pastMidnight bool
}

// IsEmpty reports whether the clause produced neither a date nor a time.
func (c Candidate) IsEmpty() bool {
	return c.Date == nil && c.Time == nil
}

// Result renders the candidate as a Result at granularity g.
func (c Candidate) Result(g Granularity) Result {
	return resultFromCandidate(c, g)
}

func (c *Candidate) setDate(d civil.Date) {
	c.Date = &d
	c.Weekday = WeekdayLabel(d)
}

// Result is the outcome of resolving a message.
type Result struct {
	Date        *civil.Date
	Time        *ClockTime
	Weekday     string
	Granularity Granularity
	Clause      Clause
}

func resultFromCandidate(c Candidate, g Granularity) Result {
	r := Result{
		Date:        c.Date,
		Weekday:     c.Weekday,
		Granularity: g,
		Clause:      c.Clause,
	}
	if c.Time != nil {
		t := c.Time.truncate(g)
		r.Time = &t
	}
	return r
}

// HasDate reports whether a date was resolved.
func (r Result) HasDate() bool { return r.Date != nil }

// HasTime reports whether a time was resolved.
func (r Result) HasTime() bool { return r.Time != nil }

// IsPartial reports whether only one of date and time was resolved.
func (r Result) IsPartial() bool { return r.HasDate() != r.HasTime() }

// DateString returns "YYYY-MM-DD" or "".
func (r Result) DateString() string {
	if r.Date == nil {
		return ""
	}
	return r.Date.String()
}

// TimeString returns the time at the result granularity or "".
func (r Result) TimeString() string {
	if r.Time == nil {
		return ""
	}
	return r.Time.Format(r.Granularity)
}

type resultJSON struct {
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
	Weekday string `json:"weekday,omitempty"`
	Clause  string `json:"clause,omitempty"`
}

// MarshalJSON renders the result with string date and time fields.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Date:    r.DateString(),
		Time:    r.TimeString(),
		Weekday: r.Weekday,
		Clause:  r.Clause.Text,
	})
}
