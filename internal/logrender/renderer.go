package logrender

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/markup"
	"github.com/aleister1102/reportbrowser/internal/pathrewrite"
	"github.com/aleister1102/reportbrowser/internal/sidecar"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// LogFilePrefix marks files rendered by this package.
	LogFilePrefix = "logger_"
	// DefaultLogFile is the most detailed log of a run; requests for any other
	// logger_*.log in the same directory are served from it.
	DefaultLogFile = "logger_10_debug.log"

	colorSchemaMarker = "[COLOR_INFO]"
	templateName      = "log.html.tmpl"
)

// IsLogFile reports whether name is a log file this package renders.
func IsLogFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), LogFilePrefix)
}

// Request describes one render.
type Request struct {
	// LogFile is the file on disk.
	LogFile string
	// URLPath is the path the page is served under. The back-to-directory
	// link is derived from it.
	URLPath string
	// Severity is the filter floor.
	Severity Severity
}

// Stats summarizes a render for logging.
type Stats struct {
	Lines       int
	Emitted     int
	Transitions int
}

// Document is a rendered page.
type Document struct {
	HTML   string
	Report string
	Stats  Stats
}

type pageData struct {
	Path              string
	DirectoryURL      string
	Severity          string
	SeverityLinks     template.HTML
	ColorSchemaActive bool
	BaseCSS           template.CSS
	LineCSS           template.CSS
	Lines             []template.HTML
}

// Renderer renders log files. It is safe for concurrent use; every render
// owns its RenderState.
type Renderer struct {
	resolver    *sidecar.Resolver
	fileManager *common.FileManager
	maxLogSize  int64
	page        *template.Template
	baseCSS     template.CSS
	normalCSS   template.CSS
	colorCSS    template.CSS
	logger      zerolog.Logger
}

// NewRenderer parses the embedded page template and stylesheets.
// maxLogSize of zero disables the size limit.
func NewRenderer(resolver *sidecar.Resolver, fileManager *common.FileManager, maxLogSize int64, logger zerolog.Logger) (*Renderer, error) {
	r := &Renderer{
		resolver:    resolver,
		fileManager: fileManager,
		maxLogSize:  maxLogSize,
		logger:      logger.With().Str("component", "LogRenderer").Logger(),
	}

	content, err := templatesFS.ReadFile("templates/" + templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded log template: %w", err)
	}
	r.page, err = template.New(templateName).Parse(strings.ReplaceAll(string(content), "\r\n", "\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded log template: %w", err)
	}

	for name, dst := range map[string]*template.CSS{
		"assets/log.css":          &r.baseCSS,
		"assets/lines_normal.css": &r.normalCSS,
		"assets/lines_color.css":  &r.colorCSS,
	} {
		data, err := assetsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded asset %s: %w", name, err)
		}
		*dst = template.CSS(data)
	}

	return r, nil
}

// Render reads req.LogFile, resolves the sidecar of its report and renders the
// page. A missing or broken sidecar fails the render.
func (r *Renderer) Render(ctx context.Context, req Request) (*Document, error) {
	renderID := uuid.NewString()
	logger := r.logger.With().Str("render_id", renderID).Str("file", req.LogFile).Logger()

	rewriter, report, err := r.resolver.Rewriter(req.LogFile)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot resolve path mapping")
		return nil, err
	}

	opts := common.DefaultFileReadOptions()
	opts.MaxSize = r.maxLogSize
	opts.Context = ctx
	data, err := r.fileManager.ReadFile(req.LogFile, opts)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot read log file")
		return nil, err
	}

	doc, err := r.RenderText(string(data), rewriter, req)
	if err != nil {
		return nil, err
	}
	doc.Report = report.Name

	logger.Debug().
		Str("report", report.Name).
		Str("severity", req.Severity.String()).
		Int("lines", doc.Stats.Lines).
		Int("emitted", doc.Stats.Emitted).
		Int("transitions", doc.Stats.Transitions).
		Msg("Rendered log file")
	return doc, nil
}

// RenderText renders already loaded log text with rewriter.
func (r *Renderer) RenderText(text string, rewriter *pathrewrite.Rewriter, req Request) (*Document, error) {
	floor := req.Severity
	if !floor.Valid() {
		floor = DefaultSeverity
	}

	colorActive := strings.Contains(text, colorSchemaMarker)
	data := pageData{
		Path:              req.URLPath,
		DirectoryURL:      directoryURL(req.URLPath),
		Severity:          floor.String(),
		SeverityLinks:     template.HTML(severityLinks(floor, 0).String()),
		ColorSchemaActive: colorActive,
		BaseCSS:           r.baseCSS,
		LineCSS:           r.normalCSS,
	}
	if colorActive {
		data.LineCSS = r.colorCSS
	}

	var stats Stats
	state := NewRenderState()
	for i, raw := range splitLines(text) {
		number := i + 1
		stats.Lines++

		line, transition := renderLine(&state, raw, number, floor, rewriter)
		if transition {
			stats.Transitions++
		}
		if !state.Visible(floor) {
			continue
		}
		stats.Emitted++
		data.Lines = append(data.Lines, template.HTML(line.String()))
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute log template: %w", err)
	}
	return &Document{HTML: buf.String(), Stats: stats}, nil
}

// renderLine advances state by one line and builds its markup. The markup is
// built even when the line is filtered out.
func renderLine(state *RenderState, raw string, number int, floor Severity, rewriter *pathrewrite.Rewriter) (markup.Line, bool) {
	prefix, matched := ParsePrefix(raw)
	payload := raw
	if matched {
		payload = prefix.Payload
	}
	transition := state.Advance(prefix, matched)

	var line markup.Line
	_ = line.Tag("div", fmt.Sprintf(`class="line" id="line%d"`, number), func(l *markup.Line) error {
		if transition {
			_ = l.Tag("span", fmt.Sprintf(`class="transition" title="%s"`, state.Severity), func(l *markup.Line) error {
				l.Extend(severityLinks(floor, number))
				return nil
			})
		}
		return l.Tag("span", `class="`+state.Class()+`"`, func(l *markup.Line) error {
			l.Extend(rewriter.Rewrite(payload))
			return nil
		})
	})
	return line, transition
}

// severityLinks builds the "-" link raising the floor and the "+" link
// lowering it, anchored at line number. Links past either end are omitted.
func severityLinks(floor Severity, number int) markup.Line {
	var line markup.Line
	severityLink(&line, floor+1, number, "-")
	severityLink(&line, floor-1, number, "+")
	return line
}

func severityLink(line *markup.Line, target Severity, number int, label string) {
	if !target.Valid() {
		return
	}
	params := fmt.Sprintf(`class="severity" title="%s" href="?severity=%s#line%d"`, target, target, number)
	_ = line.Tag("a", params, func(l *markup.Line) error {
		l.AppendRaw(label)
		return nil
	})
}

// directoryURL is urlPath up to its last separator.
func directoryURL(urlPath string) string {
	idx := strings.LastIndex(urlPath, "/")
	if idx < 0 {
		return ""
	}
	return urlPath[:idx]
}

// splitLines splits on any line ending and drops trailing whitespace of each
// line. A final line ending does not start an empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}

// taskReportFiles are hidden from listings together with the other logs when
// the default log file is present.
var taskReportFiles = map[string]bool{"task_report.md": true, "task_report.txt": true}

// PruneLogFiles drops the log files a listing does not need to show: when
// DefaultLogFile is among names, every other log file and the task report
// duplicates are removed, since the rendered log covers them. Otherwise names
// is returned unchanged.
func PruneLogFiles(names []string) []string {
	found := false
	for _, name := range names {
		if name == DefaultLogFile {
			found = true
			break
		}
	}
	if !found {
		return names
	}

	kept := make([]string, 0, len(names))
	for _, name := range names {
		if name != DefaultLogFile && (IsLogFile(name) || taskReportFiles[name]) {
			continue
		}
		kept = append(kept, name)
	}
	return kept
}
