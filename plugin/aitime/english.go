package aitime

import (
	"time"
	"unicode"

	"github.com/golang-sql/civil"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/en"
)

// englishParser only carries the relative-offset rules. Weekday and casual-day
// words are handled by the earlier families, and the clock rules are left out
// so a bare "10:00" never turns into a date.
var englishParser = newEnglishParser()

func newEnglishParser() *when.Parser {
	w := when.New(nil)
	w.Add(
		en.Deadline(rules.Override),
		en.PastTime(rules.Override),
	)
	return w
}

// matchEnglishDate handles phrases such as "in 3 days" or "2 weeks ago".
func matchEnglishDate(clause string, _ civil.Date, now time.Time) (civil.Date, bool) {
	if !hasLatinLetter(clause) {
		return civil.Date{}, false
	}
	r, err := englishParser.Parse(clause, now)
	if err != nil || r == nil {
		return civil.Date{}, false
	}
	return civil.DateOf(r.Time.In(now.Location())), true
}

func hasLatinLetter(s string) bool {
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
