package aitime

import (
	"regexp"
	"strings"
)

// clauseSplitPattern matches the points where independent date/time mentions
// are separated. Longer conjunctions come first so "或者" is not split as "或".
var clauseSplitPattern = regexp.MustCompile(`或者|或是|還是|还是|抑或|或|(?i:\bor\b)|[。！？!?;；]|\r?\n`)

// Segment splits normalized text into ordered clauses. Text without any split
// point yields a single clause equal to the whole input.
func Segment(text string) []Clause {
	locs := clauseSplitPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Clause{{Text: text, Index: 0, Offset: 0}}
	}

	clauses := make([]Clause, 0, len(locs)+1)
	start := 0
	appendClause := func(end int) {
		piece := text[start:end]
		trimmed := strings.TrimSpace(piece)
		if trimmed == "" {
			return
		}
		offset := start + strings.Index(piece, trimmed)
		clauses = append(clauses, Clause{Text: trimmed, Index: len(clauses), Offset: offset})
	}
	for _, loc := range locs {
		appendClause(loc[0])
		start = loc[1]
	}
	appendClause(len(text))

	if len(clauses) == 0 {
		return []Clause{{Text: text, Index: 0, Offset: 0}}
	}
	return clauses
}
