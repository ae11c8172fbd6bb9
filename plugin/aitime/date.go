package aitime

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dlclark/regexp2"
	"github.com/golang-sql/civil"
)

// DateFamily identifies which pattern family produced a date.
type DateFamily int

const (
	DateFamilyNone DateFamily = iota
	DateFamilyISO
	DateFamilyRelativeDay
	DateFamilyWeekday
	DateFamilyFullDate
	DateFamilyMonthDay
	DateFamilyDayOnly
	DateFamilyEnglish
)

var dateFamilyNames = map[DateFamily]string{
	DateFamilyNone:        "none",
	DateFamilyISO:         "iso",
	DateFamilyRelativeDay: "relative_day",
	DateFamilyWeekday:     "weekday",
	DateFamilyFullDate:    "full_date",
	DateFamilyMonthDay:    "month_day",
	DateFamilyDayOnly:     "day_only",
	DateFamilyEnglish:     "english",
}

func (f DateFamily) String() string {
	return dateFamilyNames[f]
}

// Date patterns. The look-behinds keep a pattern from starting inside a longer
// number or a date that a higher priority family already describes.
var (
	isoDatePattern       = mustCompile(`(?<!\d)(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})(?!\d)`)
	fullDatePattern      = mustCompile(`(?<!\d)(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*[日號号]?(?!\d)`)
	monthDayPattern      = mustCompile(`(?<![\d/.\-])(\d{1,2})\s*月\s*(\d{1,2})\s*[日號号]?(?!\d)`)
	slashMonthDayPattern = mustCompile(`(?<![\d/.\-:])(\d{1,2})/(\d{1,2})(?![\d/])`)
	dayOnlyPattern       = mustCompile(`(?<![\d/.\-月])(\d{1,2})\s*[日號号](?!\d)`)

	// The 上 of 早上 and 晚上 is a period of the day, not "last".
	weekdayPattern        = mustCompile(`(下下|下|(?<![早晚])上|這|这|本)?\s*(?:個|个)?\s*(?:週|周|星期|禮拜|礼拜)([1-7一二三四五六日天])`)
	englishWeekdayPattern = regexp.MustCompile(`(?i)\b(?:(next|last|this)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

// relativeDays maps relative day vocabulary to day offsets, longest entry first
// so that "大後天" is tried before "後天".
var relativeDays = []struct {
	word   string
	offset int
}{
	{"day before yesterday", -2},
	{"day after tomorrow", 2},
	{"yesterday", -1},
	{"tomorrow", 1},
	{"tonight", 0},
	{"today", 0},
	{"大前天", -3},
	{"大後天", 3},
	{"大后天", 3},
	{"昨兒個", -1},
	{"昨儿个", -1},
	{"今兒個", 0},
	{"今儿个", 0},
	{"明兒個", 1},
	{"明儿个", 1},
	{"近日內", 0},
	{"近日内", 0},
	{"前天", -2},
	{"前日", -2},
	{"昨天", -1},
	{"昨日", -1},
	{"昨兒", -1},
	{"昨儿", -1},
	{"今天", 0},
	{"今日", 0},
	{"今兒", 0},
	{"今儿", 0},
	{"本日", 0},
	{"本天", 0},
	{"這天", 0},
	{"这天", 0},
	{"近日", 0},
	{"立刻", 0},
	{"馬上", 0},
	{"马上", 0},
	{"今晚", 0},
	{"今夜", 0},
	{"今早", 0},
	{"現在", 0},
	{"现在", 0},
	{"目前", 0},
	{"明天", 1},
	{"明日", 1},
	{"明晚", 1},
	{"明早", 1},
	{"明兒", 1},
	{"明儿", 1},
	{"後天", 2},
	{"后天", 2},
	{"後日", 2},
	{"后日", 2},
}

// weekdayIndex maps weekday tokens to a Monday-based index.
var weekdayIndex = map[string]int{
	"1": 0, "一": 0, "monday": 0,
	"2": 1, "二": 1, "tuesday": 1,
	"3": 2, "三": 2, "wednesday": 2,
	"4": 3, "四": 3, "thursday": 3,
	"5": 4, "五": 4, "friday": 4,
	"6": 5, "六": 5, "saturday": 5,
	"7": 6, "日": 6, "天": 6, "sunday": 6,
}

// weekRelation is the qualifier in front of a weekday.
type weekRelation int

const (
	weekThis weekRelation = iota
	weekNext
	weekAfterNext
	weekLast
)

var weekRelations = map[string]weekRelation{
	"":     weekThis,
	"這":    weekThis,
	"这":    weekThis,
	"本":    weekThis,
	"this": weekThis,
	"下":    weekNext,
	"next": weekNext,
	"下下":   weekAfterNext,
	"上":    weekLast,
	"last": weekLast,
}

// dateMatcher is one family of the date cascade.
type dateMatcher struct {
	family DateFamily
	match  func(clause string, today civil.Date, now time.Time) (civil.Date, bool)
}

// dateCascade is tried in order; the first family that matches wins.
var dateCascade = []dateMatcher{
	{DateFamilyISO, matchISODate},
	{DateFamilyRelativeDay, matchRelativeDay},
	{DateFamilyWeekday, matchWeekday},
	{DateFamilyFullDate, matchFullDate},
	{DateFamilyMonthDay, matchMonthDay},
	{DateFamilyDayOnly, matchDayOnly},
	{DateFamilyEnglish, matchEnglishDate},
}

// ExtractDate returns the date mentioned in a normalized clause, resolved
// against now. A clause without a date mention yields false.
func ExtractDate(clause string, now time.Time) (civil.Date, DateFamily, bool) {
	today := civil.DateOf(now)
	for _, m := range dateCascade {
		if d, ok := m.match(clause, today, now); ok {
			return d, m.family, true
		}
	}
	return civil.Date{}, DateFamilyNone, false
}

func matchISODate(clause string, _ civil.Date, now time.Time) (civil.Date, bool) {
	var (
		result civil.Date
		found  bool
	)
	forEachMatch(isoDatePattern, clause, func(g []string) bool {
		year, month, day := atoi(g[1]), time.Month(atoi(g[2])), atoi(g[3])
		// Layouts dateparse does not know, such as 2024.2.29, are retried in
		// their zero-padded dash form.
		for _, raw := range []string{g[0], fmt.Sprintf("%04d-%02d-%02d", year, month, day)} {
			t, err := dateparse.ParseIn(raw, now.Location())
			if err != nil {
				continue
			}
			// dateparse may carry an overflowing day such as 2025-02-30 into March.
			if t.Year() == year && t.Month() == month && t.Day() == day {
				result, found = civil.DateOf(t), true
				return true
			}
		}
		return false
	})
	return result, found
}

func matchRelativeDay(clause string, today civil.Date, _ time.Time) (civil.Date, bool) {
	lower := strings.ToLower(clause)
	for _, rd := range relativeDays {
		if strings.Contains(lower, rd.word) {
			return today.AddDays(rd.offset), true
		}
	}
	return civil.Date{}, false
}

func matchWeekday(clause string, today civil.Date, _ time.Time) (civil.Date, bool) {
	if m, err := weekdayPattern.FindStringMatch(clause); err == nil && m != nil {
		gs := m.Groups()
		return resolveWeekday(today, weekRelations[gs[1].String()], weekdayIndex[gs[2].String()]), true
	}
	if m := englishWeekdayPattern.FindStringSubmatch(clause); m != nil {
		rel := weekRelations[strings.ToLower(m[1])]
		return resolveWeekday(today, rel, weekdayIndex[strings.ToLower(m[2])]), true
	}
	return civil.Date{}, false
}

// resolveWeekday applies a week relation to a Monday-based target weekday.
func resolveWeekday(today civil.Date, rel weekRelation, target int) civil.Date {
	current := mondayIndex(today)
	offset := target - current
	switch rel {
	case weekNext:
		// Same weekday still advances a full week.
		return today.AddDays(offset + 7)
	case weekAfterNext:
		return today.AddDays(offset + 14)
	case weekLast:
		back := (current - target + 7) % 7
		if back == 0 {
			back = 7
		}
		return today.AddDays(-back)
	default:
		// A bare or "this" weekday is today or the next one to come.
		return today.AddDays((offset + 7) % 7)
	}
}

func mondayIndex(d civil.Date) int {
	return (int(d.In(time.UTC).Weekday()) + 6) % 7
}

func matchFullDate(clause string, _ civil.Date, _ time.Time) (civil.Date, bool) {
	var (
		result civil.Date
		found  bool
	)
	forEachMatch(fullDatePattern, clause, func(g []string) bool {
		result, found = newDate(atoi(g[1]), time.Month(atoi(g[2])), atoi(g[3]))
		return found
	})
	return result, found
}

func matchMonthDay(clause string, today civil.Date, _ time.Time) (civil.Date, bool) {
	var (
		result civil.Date
		found  bool
	)
	visit := func(g []string) bool {
		result, found = upcomingMonthDay(today, time.Month(atoi(g[1])), atoi(g[2]))
		return found
	}
	forEachMatch(monthDayPattern, clause, visit)
	if !found {
		forEachMatch(slashMonthDayPattern, clause, visit)
	}
	return result, found
}

// upcomingMonthDay places month/day in the current year, or in the next year
// when that date has already passed.
func upcomingMonthDay(today civil.Date, month time.Month, day int) (civil.Date, bool) {
	d, ok := newDate(today.Year, month, day)
	if !ok {
		return civil.Date{}, false
	}
	if d.Before(today) {
		return newDate(today.Year+1, month, day)
	}
	return d, true
}

// matchDayOnly places a bare day in the current month and year. A day that has
// already passed this month stays in this month.
func matchDayOnly(clause string, today civil.Date, _ time.Time) (civil.Date, bool) {
	var (
		result civil.Date
		found  bool
	)
	forEachMatch(dayOnlyPattern, clause, func(g []string) bool {
		result, found = newDate(today.Year, today.Month, atoi(g[1]))
		return found
	})
	return result, found
}

// datePatterns are the digit-bearing date mentions; maskDates blanks them so the
// time extractor never reads a month or a day as an hour.
var datePatterns = []*regexp2.Regexp{
	isoDatePattern,
	fullDatePattern,
	monthDayPattern,
	slashMonthDayPattern,
	dayOnlyPattern,
}

func maskDates(s string) string {
	for _, re := range datePatterns {
		s = replaceAll(re, s, " ")
	}
	return replaceAll(weekdayPattern, s, " ")
}
