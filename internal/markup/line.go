package markup

import (
	"io"
	"strings"
)

// Line is an ordered, append-only sequence of segments.
type Line []Segment

// AppendRaw appends text that will be escaped on serialization.
// Empty text is dropped since it serializes to nothing.
func (l *Line) AppendRaw(text string) {
	if text == "" {
		return
	}
	*l = append(*l, Raw(text))
}

// AppendMarkup appends pre-rendered HTML.
func (l *Line) AppendMarkup(html string) {
	if html == "" {
		return
	}
	*l = append(*l, Markup(html))
}

// Append appends segments, validating each one.
func (l *Line) Append(segments ...Segment) {
	for _, s := range segments {
		s.mustBeValid()
		*l = append(*l, s)
	}
}

// Extend appends all segments of other. The segments keep their kind, so raw
// text coming from a sub-line is still escaped exactly once.
func (l *Line) Extend(other Line) {
	*l = append(*l, other...)
}

// Tag wraps whatever body appends between <name params> and </name>.
// The closing fragment is appended even when body returns an error or panics.
func (l *Line) Tag(name, params string, body func(l *Line) error) (err error) {
	open := "<" + name
	if params != "" {
		open += " " + params
	}
	l.AppendMarkup(open + ">")
	defer l.AppendMarkup("</" + name + ">")

	if body == nil {
		return nil
	}
	return body(l)
}

// Len returns the number of segments.
func (l Line) Len() int {
	return len(l)
}

// WriteTo serializes the line into w.
func (l Line) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range l {
		n, err := io.WriteString(w, s.HTML())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String serializes the line. It never modifies the line, so repeated calls
// return the same result.
func (l Line) String() string {
	var sb strings.Builder
	_, _ = l.WriteTo(&sb)
	return sb.String()
}
