package aitime

import (
	"strconv"

	"github.com/dlclark/regexp2"
)

// mustCompile compiles a pattern that needs look-around assertions, which the
// standard regexp package does not support.
func mustCompile(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.None)
}

// forEachMatch calls fn with the groups of every match of re in s, in order,
// until fn returns true.
func forEachMatch(re *regexp2.Regexp, s string, fn func(groups []string) bool) {
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		gs := m.Groups()
		groups := make([]string, len(gs))
		for i := range gs {
			groups[i] = gs[i].String()
		}
		if fn(groups) {
			return
		}
		m, err = re.FindNextMatch(m)
	}
}

// replaceAll replaces every match of re in s. On a matcher error s is returned unchanged.
func replaceAll(re *regexp2.Regexp, s, repl string) string {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// atoi parses an ASCII decimal; anything else yields -1.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
