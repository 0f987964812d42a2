package sidecar

import (
	"path/filepath"
	"strings"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/pathrewrite"
	"github.com/rs/zerolog"
)

// ReportPlaceholder in a base URL template is replaced by the report directory name.
const ReportPlaceholder = "{report}"

// maxContextSize caps the sidecar read; context.json is a few hundred bytes.
const maxContextSize = 1024 * 1024

// BaseURL is one tag to base URL template binding supplied by configuration.
type BaseURL struct {
	Tag      string
	Template string
}

// Report is a resolved test report: its directory and decoded sidecar.
type Report struct {
	Name      string
	Directory string
	Context   *Context
}

// Resolver finds the report owning a file and builds its path mapping.
// It is created once and only read afterwards.
type Resolver struct {
	reportsDir  string
	baseURLs    []BaseURL
	maxAttempts int
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewResolver creates a Resolver for the reports root directory.
func NewResolver(reportsDir string, baseURLs []BaseURL, maxAttempts int, fileManager *common.FileManager, logger zerolog.Logger) *Resolver {
	return &Resolver{
		reportsDir:  filepath.Clean(reportsDir),
		baseURLs:    baseURLs,
		maxAttempts: maxAttempts,
		fileManager: fileManager,
		logger:      logger.With().Str("component", "SidecarResolver").Logger(),
	}
}

// ReportsDir returns the reports root.
func (r *Resolver) ReportsDir() string {
	return r.reportsDir
}

// ReportDirectory returns the report directory a file belongs to: the first
// path component below the reports root.
func (r *Resolver) ReportDirectory(file string) (string, error) {
	rel, err := filepath.Rel(r.reportsDir, filepath.Clean(file))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", common.NewNotFoundError("report for file", file)
	}
	name := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	dir := filepath.Join(r.reportsDir, name)

	info, err := r.fileManager.GetFileInfo(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir {
		return "", common.NewNotFoundError("report directory", dir)
	}
	return dir, nil
}

// LoadReport resolves and reads the sidecar of the report owning file.
// A missing, unreadable or malformed sidecar is a configuration error.
func (r *Resolver) LoadReport(file string) (*Report, error) {
	dir, err := r.ReportDirectory(file)
	if err != nil {
		return nil, err
	}

	contextFile := filepath.Join(dir, DirectoryNameTestResults, FileNameContext)
	opts := common.DefaultFileReadOptions()
	opts.MaxSize = maxContextSize
	data, err := r.fileManager.ReadFile(contextFile, opts)
	if err != nil {
		return nil, common.WrapConfigurationError(err, contextFile, "cannot read sidecar")
	}

	ctx, err := ParseContext(data)
	if err != nil {
		return nil, common.WrapConfigurationError(err, contextFile, "invalid sidecar")
	}

	r.logger.Debug().
		Str("report", filepath.Base(dir)).
		Int("directories", len(ctx.Directories)).
		Msg("Loaded sidecar")

	return &Report{Name: filepath.Base(dir), Directory: dir, Context: ctx}, nil
}

// Mapping combines the report's directories with the configured base URLs.
// Tags without a base URL are de-identified.
func (r *Resolver) Mapping(report *Report) pathrewrite.Mapping {
	entries := make([]pathrewrite.Entry, 0, len(report.Context.Directories))
	for _, dir := range report.Context.Directories {
		entries = append(entries, pathrewrite.Entry{
			Tag:     dir.Key,
			Trigger: dir.Value,
			Base:    r.baseURL(dir.Key, report.Name),
		})
	}

	mapping, dropped := pathrewrite.NewMapping(entries)
	if len(dropped) > 0 {
		r.logger.Warn().
			Str("report", report.Name).
			Strs("tags", dropped).
			Msg("Ignoring sidecar directories with empty or duplicate tags")
	}
	return mapping
}

// Rewriter loads the report owning file and returns its path rewriter.
func (r *Resolver) Rewriter(file string) (*pathrewrite.Rewriter, *Report, error) {
	report, err := r.LoadReport(file)
	if err != nil {
		return nil, nil, err
	}
	rewriter := pathrewrite.NewRewriter(r.Mapping(report), r.logger, pathrewrite.WithMaxAttempts(r.maxAttempts))
	return rewriter, report, nil
}

func (r *Resolver) baseURL(tag, reportName string) string {
	for _, b := range r.baseURLs {
		if b.Tag == tag {
			return strings.ReplaceAll(b.Template, ReportPlaceholder, reportName)
		}
	}
	return ""
}
