package pathrewrite

import (
	"regexp"
	"strings"
)

// endOfPath matches the characters that terminate an embedded path. Quotes and
// the two-character sequence `\n` show up when paths are printed inside quoted
// diagnostic strings.
var endOfPath = regexp.MustCompile(`[ \n'"]|\\n`)

// suspiciousSuffixes end a relevant fragment when the boundary heuristic likely
// ran past a closing bracket or quote of the surrounding text.
var suspiciousSuffixes = []string{")", "]", "`", ","}

// Match is the result of one boundary search.
//
// Example with trigger "/home/testresults":
//
//	AA /home/testresults/RUN-X/testresults.txt BB
//	Before   "AA "
//	Relevant "/RUN-X/testresults.txt"
//	After    " BB"
type Match struct {
	Before   string
	Relevant string
	After    string
}

// Find locates the first occurrence of trigger in text and splits text around
// the path that follows it. Before + trigger + Relevant + After equals text.
func Find(text, trigger string) (Match, bool) {
	if trigger == "" {
		return Match{}, false
	}
	pos := strings.Index(text, trigger)
	if pos == -1 {
		return Match{}, false
	}

	tail := text[pos+len(trigger):]
	end := EndOfPath(tail)

	return Match{
		Before:   text[:pos],
		Relevant: tail[:end],
		After:    tail[end:],
	}, true
}

// EndOfPath returns the index of the first boundary character in path, or
// len(path) if there is none.
func EndOfPath(path string) int {
	loc := endOfPath.FindStringIndex(path)
	if loc == nil {
		return len(path)
	}
	return loc[0]
}

// Suspicious reports whether the relevant fragment ends in a character that
// suggests the boundary was misplaced.
func (m Match) Suspicious() bool {
	for _, suffix := range suspiciousSuffixes {
		if strings.HasSuffix(m.Relevant, suffix) {
			return true
		}
	}
	return false
}

// Readable is the relevant fragment as shown to users: one leading separator
// removed, "." for an empty fragment.
func (m Match) Readable() string {
	if m.Relevant == "" {
		return "."
	}
	return strings.TrimPrefix(m.Relevant, "/")
}

// Href joins base and the relevant fragment. Doubled separators are collapsed
// in two passes, which also folds the "//" after the scheme; browsers resolve
// "https:/host/x" like "https://host/x".
func (m Match) Href(base string) string {
	href := base + "/" + m.Relevant
	href = strings.ReplaceAll(href, "//", "/")
	return strings.ReplaceAll(href, "//", "/")
}
