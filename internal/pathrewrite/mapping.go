package pathrewrite

// Entry binds a tag to the trigger found in log text and the base the matched
// path is rewritten against. An empty Base de-identifies the path instead of
// linking it.
type Entry struct {
	Tag     string `json:"tag"`
	Trigger string `json:"trigger"`
	Base    string `json:"base"`
}

// Linked reports whether matches of this entry become hyperlinks.
func (e Entry) Linked() bool {
	return e.Base != ""
}

// Mapping is the ordered set of entries used to rewrite one report's logs.
// Order is priority: earlier entries win.
type Mapping struct {
	entries []Entry
}

// NewMapping copies entries, dropping those with an empty trigger and keeping
// only the first entry per tag. It returns the tags that were dropped.
func NewMapping(entries []Entry) (Mapping, []string) {
	var dropped []string
	seen := make(map[string]bool, len(entries))
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Trigger == "" || seen[e.Tag] {
			dropped = append(dropped, e.Tag)
			continue
		}
		seen[e.Tag] = true
		kept = append(kept, e)
	}
	return Mapping{entries: kept}, dropped
}

// Entries returns a copy of the mapping entries in priority order.
func (m Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries.
func (m Mapping) Len() int {
	return len(m.entries)
}
