package sidecar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/pathrewrite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContext = `{
  "directories": {"R": "/home/testresults", "T": "/home/worktree/micropython", "X": ""},
  "git_ref": {}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	root := t.TempDir()
	logger := zerolog.Nop()
	resolver := NewResolver(root, []BaseURL{
		{Tag: "R", Template: "/{report}/testresults/"},
		{Tag: "T", Template: ""},
	}, pathrewrite.DefaultMaxAttempts, common.NewFileManager(logger), logger)
	return resolver, root
}

func TestResolver_ReportDirectory(t *testing.T) {
	resolver, root := newTestResolver(t)
	logfile := filepath.Join(root, "run_1", "testresults", "RUN-A", "logger_10_debug.log")
	writeFile(t, logfile, "x")

	dir, err := resolver.ReportDirectory(logfile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "run_1"), dir)

	_, err = resolver.ReportDirectory(filepath.Join(filepath.Dir(root), "elsewhere.log"))
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = resolver.ReportDirectory(root)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = resolver.ReportDirectory(filepath.Join(root, "missing", "a.log"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestResolver_Rewriter(t *testing.T) {
	resolver, root := newTestResolver(t)
	logfile := filepath.Join(root, "run_1", "testresults", "logger_10_debug.log")
	writeFile(t, logfile, "x")
	writeFile(t, filepath.Join(root, "run_1", "testresults", "context.json"), testContext)

	rewriter, report, err := resolver.Rewriter(logfile)
	require.NoError(t, err)
	assert.Equal(t, "run_1", report.Name)

	assert.Equal(t, []pathrewrite.Entry{
		{Tag: "R", Trigger: "/home/testresults", Base: "/run_1/testresults/"},
		{Tag: "T", Trigger: "/home/worktree/micropython", Base: ""},
	}, rewriter.Mapping().Entries())

	got := rewriter.RewriteString("/home/testresults/RUN-A/x.txt /home/worktree/micropython/y.py")
	assert.Equal(t, `<a href="/run_1/testresults/RUN-A/x.txt">RUN-A/x.txt</a> y.py`, got)
}

func TestResolver_MissingSidecarIsConfigurationError(t *testing.T) {
	resolver, root := newTestResolver(t)
	logfile := filepath.Join(root, "run_2", "logger_10_debug.log")
	writeFile(t, logfile, "x")

	_, _, err := resolver.Rewriter(logfile)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

func TestResolver_MalformedSidecarIsConfigurationError(t *testing.T) {
	resolver, root := newTestResolver(t)
	logfile := filepath.Join(root, "run_3", "logger_10_debug.log")
	writeFile(t, logfile, "x")
	writeFile(t, filepath.Join(root, "run_3", "testresults", "context.json"), `{"directories": `)

	_, err := resolver.LoadReport(logfile)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}
