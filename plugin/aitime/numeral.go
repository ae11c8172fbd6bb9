package aitime

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

var (
	chineseDigits = []struct {
		pattern string
		value   int
	}{
		{"零", 0}, {"〇", 0},
		{"一", 1}, {"二", 2}, {"兩", 2}, {"两", 2}, {"三", 3}, {"四", 4},
		{"五", 5}, {"六", 6}, {"七", 7}, {"八", 8}, {"九", 9},
	}

	// numeralReplacer substitutes the longest Chinese numeral at each position.
	numeralReplacer = strings.NewReplacer(numeralPairs()...)
)

// numeralPairs builds the old/new pairs for strings.NewReplacer ordered by
// pattern length, longest first. The replacer tries pairs in argument order at
// every position, so "十五" is consumed whole before "五" can match.
func numeralPairs() []string {
	type pair struct {
		pattern string
		value   int
	}
	var pairs []pair
	units := chineseDigits[2:] // 一 .. 九, skipping the zeros
	tens := []struct {
		prefix string
		value  int
	}{
		{"二十", 20}, {"兩十", 20}, {"三十", 30}, {"四十", 40}, {"五十", 50},
		{"廿", 20}, {"卅", 30}, {"十", 10},
	}
	for _, t := range tens {
		for _, u := range units {
			if u.pattern == "兩" || u.pattern == "两" {
				continue
			}
			pairs = append(pairs, pair{t.prefix + u.pattern, t.value + u.value})
		}
		pairs = append(pairs, pair{t.prefix, t.value})
	}
	for _, d := range chineseDigits {
		pairs = append(pairs, pair{d.pattern, d.value})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return utf8.RuneCountInString(pairs[i].pattern) > utf8.RuneCountInString(pairs[j].pattern)
	})

	out := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		out = append(out, p.pattern, strconv.Itoa(p.value))
	}
	return out
}

// NormalizeNumerals rewrites Chinese numerals in s to Arabic digits and folds
// full-width characters (digits, colon, slash, punctuation) to their ASCII forms.
// Everything else is left untouched. The result is a fixed point: normalizing it
// again returns it unchanged.
func NormalizeNumerals(s string) string {
	if s == "" {
		return s
	}
	return numeralReplacer.Replace(width.Fold.String(s))
}
