package aitime

import (
	"regexp"
	"strings"
)

// scheduleTableKeywords mark a request for a staff roster rather than a booking.
// A roster is looked up by day, so any resolved time is meaningless.
var scheduleTableKeywords = []string{
	"排班表", "師傅表", "师傅表", "班表", "排表",
}

// hesitationKeywords mark a message in which the speaker defers the decision.
var hesitationKeywords = []string{
	"不確定", "不确定", "再決定", "再决定", "再約", "再约",
	"先看看", "先不用", "先不要", "之後再說", "之后再说", "再說", "再说",
	"再看看", "改天", "想一下", "考慮", "考虑", "暫時不用", "暂时不用",
	"不需要", "暫緩", "暂缓", "等一下", "等下", "聯絡", "联络", "先不",
}

// replyFillers are stripped before a reply is compared, longest first so that
// "可以嗎" is removed before "可".
var replyFillers = []string{
	"可以嗎", "可以吗", "可以", "可嗎", "可吗", "行嗎", "行吗", "能嗎", "能吗",
	"可", "行", "能", "呢", "?",
}

// Weekday digits are matched because NormalizeNumerals has already run.
var (
	bareReplyWords = map[string]bool{
		"今天": true, "明天": true, "today": true, "tomorrow": true,
	}
	bareWeekdayReply   = regexp.MustCompile(`^(?:星期|禮拜|礼拜)[1-7日天]$`)
	bareNextWeekReply  = regexp.MustCompile(`^下(?:週|周)[1-7日天]$`)
	bareSlashDateReply = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
)

// IsScheduleTableQuery reports whether text asks for a roster.
func IsScheduleTableQuery(text string) bool {
	return containsAny(text, scheduleTableKeywords)
}

// IsTentative reports whether text defers the booking.
func IsTentative(text string) bool {
	return containsAny(text, hesitationKeywords)
}

// IsBareDateReply reports whether text, once filler words are dropped, consists
// only of a day reference such as "明天", "星期五", "下週二" or "11/15". Such
// replies answer an earlier question about the booking date.
func IsBareDateReply(text string) bool {
	s := NormalizeNumerals(strings.TrimSpace(text))
	for _, f := range replyFillers {
		s = strings.ReplaceAll(s, f, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return bareReplyWords[strings.ToLower(s)] ||
		bareWeekdayReply.MatchString(s) ||
		bareNextWeekReply.MatchString(s) ||
		bareSlashDateReply.MatchString(s)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
