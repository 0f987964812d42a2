package logrender

// RenderState is the cross-line state of one render. It is created per
// document and never shared.
type RenderState struct {
	// Severity of the entry the current line belongs to.
	Severity Severity
	// LastEmitted is the severity of the last transition marker, zero before
	// the first one.
	LastEmitted Severity
	// ColorSchema of the entry the current line belongs to, empty when the
	// entry has none.
	ColorSchema string
}

// InitialColorSchema styles the lines before the first severity prefix.
const InitialColorSchema = "COLOR_INFO"

// NewRenderState returns the state before the first line.
func NewRenderState() RenderState {
	return RenderState{Severity: DefaultSeverity, ColorSchema: InitialColorSchema}
}

// Advance applies the prefix of the next line and reports whether a severity
// transition marker must be emitted before it. Continuation lines leave the
// state unchanged.
func (s *RenderState) Advance(prefix Prefix, matched bool) bool {
	if !matched {
		return false
	}
	s.Severity = prefix.Severity
	s.ColorSchema = prefix.ColorSchema
	if s.Severity == s.LastEmitted {
		return false
	}
	s.LastEmitted = s.Severity
	return true
}

// Visible reports whether the current line passes the filter floor.
func (s RenderState) Visible(floor Severity) bool {
	return s.Severity.Rank() >= floor.Rank()
}

// Class is the CSS class list of the current line's text.
func (s RenderState) Class() string {
	class := "text " + s.Severity.String()
	if s.ColorSchema != "" {
		class += " " + s.ColorSchema
	}
	return class
}
