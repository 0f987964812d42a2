package pathrewrite

import (
	"github.com/aleister1102/reportbrowser/internal/markup"
	"github.com/rs/zerolog"
)

// DefaultMaxAttempts bounds how many matches one tag may rewrite in one line.
const DefaultMaxAttempts = 4

// Rewriter turns embedded absolute paths into links or de-identified text.
// It holds no per-call state and is safe for concurrent use.
type Rewriter struct {
	mapping     Mapping
	maxAttempts int
	logger      zerolog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(r *Rewriter) {
		if n >= 1 {
			r.maxAttempts = n
		}
	}
}

// NewRewriter creates a Rewriter for mapping.
func NewRewriter(mapping Mapping, logger zerolog.Logger, opts ...Option) *Rewriter {
	r := &Rewriter{
		mapping:     mapping,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger.With().Str("component", "PathRewriter").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mapping returns the mapping the rewriter was built with.
func (r *Rewriter) Mapping() Mapping {
	return r.mapping
}

// MaxAttempts returns the per-tag bound.
func (r *Rewriter) MaxAttempts() int {
	return r.maxAttempts
}

// rewriteState is local to one Rewrite call.
type rewriteState struct {
	original string
	attempts []int
	aborted  bool
}

// Rewrite splits line into raw and link segments.
//
// Tags are tried in mapping order; the first tag whose trigger occurs in the
// remaining text wins. Text before a match can only hold triggers of
// lower-priority tags and is scanned against those; text after a match is
// scanned against all tags again.
func (r *Rewriter) Rewrite(line string) markup.Line {
	var out markup.Line
	state := &rewriteState{
		original: line,
		attempts: make([]int, len(r.mapping.entries)),
	}
	r.rewriteInto(&out, line, 0, state)
	return out
}

// RewriteString is Rewrite followed by serialization.
func (r *Rewriter) RewriteString(line string) string {
	return r.Rewrite(line).String()
}

func (r *Rewriter) rewriteInto(out *markup.Line, text string, first int, state *rewriteState) {
	rest := text
	for rest != "" && !state.aborted {
		idx, match, ok := r.firstMatch(rest, first)
		if !ok {
			break
		}

		entry := r.mapping.entries[idx]
		if state.attempts[idx] >= r.maxAttempts {
			state.aborted = true
			r.logger.Error().
				Str("tag", entry.Tag).
				Int("max_attempts", r.maxAttempts).
				Str("line", state.original).
				Str("remaining", rest).
				Msg("Too many path matches in one line, leaving the rest unrewritten")
			break
		}
		state.attempts[idx]++

		if match.Suspicious() {
			r.logger.Warn().
				Str("tag", entry.Tag).
				Str("relevant", match.Relevant).
				Msg("Path boundary may be misplaced")
		}

		r.rewriteInto(out, match.Before, idx+1, state)
		if state.aborted {
			rest = entry.Trigger + match.Relevant + match.After
			break
		}
		r.appendReplacement(out, entry, match)
		rest = match.After
	}
	out.AppendRaw(rest)
}

// firstMatch returns the first entry, starting at index first, whose trigger
// occurs in text.
func (r *Rewriter) firstMatch(text string, first int) (int, Match, bool) {
	for idx := first; idx < len(r.mapping.entries); idx++ {
		if match, ok := Find(text, r.mapping.entries[idx].Trigger); ok {
			return idx, match, true
		}
	}
	return 0, Match{}, false
}

func (r *Rewriter) appendReplacement(out *markup.Line, entry Entry, match Match) {
	if !entry.Linked() {
		out.AppendRaw(trimLeadingSeparators(match.Relevant))
		return
	}
	params := `href="` + markup.Escape(match.Href(entry.Base)) + `"`
	_ = out.Tag("a", params, func(l *markup.Line) error {
		l.AppendRaw(match.Readable())
		return nil
	})
}

func trimLeadingSeparators(path string) string {
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	return path
}
