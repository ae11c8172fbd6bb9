package aitime

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// TimeFamily identifies which pattern family produced a time.
type TimeFamily int

const (
	TimeFamilyNone TimeFamily = iota
	TimeFamilyDayPart
	TimeFamilyHalfHour
	TimeFamilyHour
	TimeFamilyHourMinute
	TimeFamilyHourMinuteSecond
	TimeFamilyHourShortMinute
)

var timeFamilyNames = map[TimeFamily]string{
	TimeFamilyNone:             "none",
	TimeFamilyDayPart:          "day_part",
	TimeFamilyHalfHour:         "half_hour",
	TimeFamilyHour:             "hour",
	TimeFamilyHourMinute:       "hour_minute",
	TimeFamilyHourMinuteSecond: "hour_minute_second",
	TimeFamilyHourShortMinute:  "hour_short_minute",
}

func (f TimeFamily) String() string {
	return timeFamilyNames[f]
}

// dayPartTimes maps a clause consisting only of a named period of the day to
// its canonical time. The lookup is exact and case-sensitive.
var dayPartTimes = map[string]ClockTime{
	"上午": {Hour: 9},
	"早上": {Hour: 9},
	"早晨": {Hour: 9},
	"中午": {Hour: 12},
	"下午": {Hour: 13},
	"傍晚": {Hour: 17},
	"黃昏": {Hour: 17},
	"黄昏": {Hour: 17},
	"晚上": {Hour: 18},
	"凌晨": {Hour: 1},
	"清晨": {Hour: 6},
	"深夜": {Hour: 22},
	"半夜": {Hour: 24},
	"午夜": {Hour: 24},

	"morning":       {Hour: 9},
	"forenoon":      {Hour: 9},
	"noon":          {Hour: 12},
	"afternoon":     {Hour: 13},
	"dusk":          {Hour: 17},
	"evening":       {Hour: 18},
	"early morning": {Hour: 6},
	"late night":    {Hour: 22},
	"midnight":      {Hour: 24},
}

// dayPartMarker is a period word that decides the half-day offset of a bare hour.
type dayPartMarker struct {
	word   string
	offset int
	// late markers turn "12" into the 24:00 sentinel.
	late bool
}

// dayPartMarkers is ordered afternoon/evening markers first: when both kinds
// appear the clause is read as PM. Within a group longer words come first.
var dayPartMarkers = []dayPartMarker{
	{word: "下午", offset: 12},
	{word: "晚上", offset: 12, late: true},
	{word: "晚間", offset: 12, late: true},
	{word: "晚间", offset: 12, late: true},
	{word: "傍晚", offset: 12},
	{word: "黃昏", offset: 12},
	{word: "黄昏", offset: 12},
	{word: "深夜", offset: 12, late: true},
	{word: "夜裡", offset: 12, late: true},
	{word: "夜里", offset: 12, late: true},
	{word: "今晚", offset: 12, late: true},
	{word: "今夜", offset: 12, late: true},
	{word: "明晚", offset: 12, late: true},

	{word: "上午", offset: 0},
	{word: "早上", offset: 0},
	{word: "早晨", offset: 0},
	{word: "凌晨", offset: 0},
	{word: "清晨", offset: 0},
	{word: "半夜", offset: 0, late: true},
	{word: "午夜", offset: 0, late: true},
	{word: "中午", offset: 0},
	{word: "今早", offset: 0},
	{word: "明早", offset: 0},
}

// defaultHalfDayOffset applies when no marker is present: an unmarked hour is
// read as a same-day afternoon or evening time. A zero-padded "HH:MM" is
// already a 24-hour reading and never takes it.
const defaultHalfDayOffset = 12

var (
	meridiemPattern = regexp.MustCompile(`(?i)(\d)\s*([ap])\.?m\b\.?`)

	// quantityPattern blanks treatment durations and head counts, whose digits
	// would otherwise be read as hours.
	quantityPattern = mustCompile(`(?i)(?<![\d:.])\d+(?:\.\d+)?\s*(?:分鐘|分钟|小時|小时|個鐘|个钟|個小時|个小时|hours?|hrs?|minutes?|mins?|位|個人|个人|人|歲|岁)`)

	separatorReplacer = strings.NewReplacer(
		"點半", ":30", "点半", ":30", "時半", ":30", "时半", ":30",
		"點1刻", ":15", "点1刻", ":15", "點3刻", ":45", "点3刻", ":45",
		"點鐘", ":", "点钟", ":",
		"點", ":", "点", ":", "時", ":", "时", ":",
		"分", "",
		"：", ":",
	)
	repeatedSeparator = regexp.MustCompile(`:{2,}`)

	twentyFourHourPattern = mustCompile(`(?<![\d:.])\d{2}:\d{2}(?!\d)`)

	halfHourPattern        = mustCompile(`(?<![\d:./])(\d{1,2})\s*[.．]\s*(?:5|30)(?![\d:])`)
	bareHourPattern        = mustCompile(`(?<![\d:./])(\d{1,2})(?::(?!\d)|\s*$)`)
	hourMinutePattern      = mustCompile(`(?<![\d:./])(\d{1,2}):(\d{2})(?![\d:])`)
	hourMinSecPattern      = mustCompile(`(?<![\d:./])(\d{1,2}):(\d{2}):(\d{2})(?!\d)`)
	hourShortMinutePattern = mustCompile(`(?<![\d:./])(\d{1,2}):(\d)(?![\d:])`)
)

// timeMatcher is one family of the time token cascade. It returns the raw
// hour, minute and second before the half-day offset is applied.
type timeMatcher struct {
	family TimeFamily
	match  func(token string) (hour, minute, second int, ok bool)
}

var timeCascade = []timeMatcher{
	{TimeFamilyHalfHour, func(s string) (int, int, int, bool) {
		return firstHMS(halfHourPattern, s, 30)
	}},
	{TimeFamilyHour, func(s string) (int, int, int, bool) {
		return firstHMS(bareHourPattern, s, 0)
	}},
	{TimeFamilyHourMinute, func(s string) (int, int, int, bool) {
		return firstHMS(hourMinutePattern, s, 0)
	}},
	{TimeFamilyHourMinuteSecond, func(s string) (int, int, int, bool) {
		return firstHMS(hourMinSecPattern, s, 0)
	}},
	{TimeFamilyHourShortMinute, func(s string) (int, int, int, bool) {
		return firstHMS(hourShortMinutePattern, s, 0)
	}},
}

// ExtractTime returns the clock time mentioned in a normalized clause at the
// requested granularity. A late-night "12:30" comes back as 00:30; use
// extractTime to learn that it belongs to the following day.
func ExtractTime(clause string, g Granularity) (ClockTime, TimeFamily, bool) {
	t, family, _, ok := extractTime(clause, g)
	return t, family, ok
}

// extractTime is ExtractTime that also reports whether the time fell past
// midnight and so lies on the day after the clause's date.
func extractTime(clause string, g Granularity) (t ClockTime, family TimeFamily, nextDay, ok bool) {
	if t, ok := dayPartTimes[strings.TrimSpace(clause)]; ok {
		return t.truncate(g), TimeFamilyDayPart, false, true
	}

	offset, late, marked := halfDayOffset(clause)
	if !marked && hasTwentyFourHourClock(clause) {
		offset = 0
	}
	token := timeToken(clause)

	for _, m := range timeCascade {
		h, minute, sec, ok := m.match(token)
		if !ok {
			continue
		}
		hour, nextDay := applyHalfDayOffset(h, minute, offset, late)
		t, ok := newClockTime(hour, minute, sec)
		if !ok {
			continue
		}
		return t.truncate(g), m.family, nextDay, true
	}
	return ClockTime{}, TimeFamilyNone, false, false
}

// halfDayOffset inspects the clause for period markers. marked is false when
// the clause has none and the default offset was returned.
func halfDayOffset(clause string) (offset int, late, marked bool) {
	for _, m := range dayPartMarkers {
		if strings.Contains(clause, m.word) {
			return m.offset, m.late, true
		}
	}
	if m := meridiemPattern.FindStringSubmatch(clause); m != nil {
		if strings.EqualFold(m[2], "p") {
			return 12, false, true
		}
		return 0, false, true
	}
	return defaultHalfDayOffset, false, false
}

// hasTwentyFourHourClock reports whether the clause writes its time as a
// zero-padded "HH:MM" outside of any date.
func hasTwentyFourHourClock(clause string) bool {
	ok, err := twentyFourHourPattern.MatchString(maskDates(clause))
	return err == nil && ok
}

// applyHalfDayOffset shifts a raw hour by the half-day offset. A late-night
// 12 is midnight: on the hour it is the 24:00 sentinel, with minutes it is
// the early hour of the next day.
func applyHalfDayOffset(hour, minute, offset int, late bool) (int, bool) {
	switch {
	case hour >= 1 && hour <= 11:
		return hour + offset, false
	case hour == 12 && late && minute == 0:
		return 24, false
	case hour == 12 && late:
		return 0, true
	default:
		return hour, false
	}
}

// timeToken reduces a clause to a string in which hour, minute and second are
// joined by ':' separators.
func timeToken(clause string) string {
	s := maskDates(clause)
	s = replaceAll(quantityPattern, s, " ")
	for _, m := range dayPartMarkers {
		s = strings.ReplaceAll(s, m.word, " ")
	}
	s = meridiemPattern.ReplaceAllString(s, "$1 ")
	s = separatorReplacer.Replace(s)
	s = repeatedSeparator.ReplaceAllString(s, ":")
	return strings.Trim(strings.TrimSpace(s), ":")
}

// firstHMS reads the first match of re in s. A missing minute group takes
// defaultMinute; a missing second group is zero.
func firstHMS(re *regexp2.Regexp, s string, defaultMinute int) (hour, minute, second int, ok bool) {
	forEachMatch(re, s, func(g []string) bool {
		hour, minute = atoi(g[1]), defaultMinute
		if len(g) > 2 && g[2] != "" {
			minute = atoi(g[2])
		}
		if len(g) > 3 && g[3] != "" {
			second = atoi(g[3])
		}
		ok = hour >= 0 && minute >= 0 && second >= 0
		return true
	})
	return hour, minute, second, ok
}
