// Package markup holds the escape-safe text model used by every HTML page the
// report browser produces. A Line mixes raw text, which is escaped exactly once
// when serialized, with markup fragments, which are written verbatim.
package markup

import (
	"fmt"
	"html/template"
	"strings"
)

// Kind tags a Segment. The zero Kind is invalid so that an uninitialized
// Segment cannot be serialized by accident.
type Kind int

const (
	KindRaw Kind = iota + 1
	KindMarkup
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindMarkup:
		return "markup"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Segment is one fragment of a Line.
type Segment struct {
	kind Kind
	text string
}

// Raw returns a fragment that will be HTML-escaped when serialized.
func Raw(text string) Segment {
	return Segment{kind: KindRaw, text: text}
}

// Markup returns a fragment of pre-rendered HTML that is never escaped.
func Markup(html string) Segment {
	return Segment{kind: KindMarkup, text: html}
}

// FromValue converts a string (raw), a template.HTML (markup) or a Segment.
// Any other type is a programming error and panics.
func FromValue(v any) Segment {
	switch value := v.(type) {
	case Segment:
		value.mustBeValid()
		return value
	case template.HTML:
		return Markup(string(value))
	case string:
		return Raw(value)
	default:
		panic(fmt.Sprintf("markup: expected string, template.HTML or Segment, got %T", v))
	}
}

// Kind reports whether the segment is raw text or markup.
func (s Segment) Kind() Kind {
	return s.kind
}

// Text returns the unescaped content of the segment.
func (s Segment) Text() string {
	return s.text
}

// HTML returns the serialized form of the segment.
func (s Segment) HTML() string {
	s.mustBeValid()
	if s.kind == KindMarkup {
		return s.text
	}
	return Escape(s.text)
}

func (s Segment) mustBeValid() {
	if s.kind != KindRaw && s.kind != KindMarkup {
		panic(fmt.Sprintf("markup: invalid segment kind %s", s.kind))
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Escape replaces the five HTML special characters. Quotes are escaped as
// &quot; and &#x27; so that escaped text is safe inside attribute values.
func Escape(text string) string {
	return htmlEscaper.Replace(text)
}
