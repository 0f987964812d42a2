package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupReports creates a reports directory with one report and a config file pointing at it
func setupReports(t *testing.T) (configPath, logfile string) {
	t.Helper()
	root := t.TempDir()
	reports := filepath.Join(root, "reports")

	logfile = filepath.Join(reports, "run_1", "testresults", "logger_10_debug.log")
	writeFile(t, logfile, "INFO - start /home/testresults/a.txt\nDEBUG - detail\nERROR - failed\n")
	writeFile(t, filepath.Join(reports, "run_1", "testresults", "context.json"),
		`{"directories": {"R": "/home/testresults"}, "git_ref": {}}`)

	configPath = filepath.Join(root, "config.yaml")
	writeFile(t, configPath, "reports_config:\n  directory: "+reports+"\nlog_config:\n  log_level: error\n")
	return configPath, logfile
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	configPath, _ := setupReports(t)

	out, err := runCmd(t, "check", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "configuration OK")
	assert.Contains(t, out, "base url R: /{report}/testresults/")
	assert.Contains(t, out, "base url T: (de-identified)")
}

func TestCheckCommand_MissingReportsDirectory(t *testing.T) {
	configPath, _ := setupReports(t)

	_, err := runCmd(t, "check", "--config", configPath, "--reports", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	configPath, logfile := setupReports(t)

	t.Run("stdout", func(t *testing.T) {
		out, err := runCmd(t, "render", logfile, "--config", configPath, "--severity", "DEBUG")
		require.NoError(t, err)
		assert.Contains(t, out, `href="/run_1/testresults/a.txt"`)
		assert.Contains(t, out, "detail")
		assert.Contains(t, out, "failed")
	})

	t.Run("filtered to file", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "out.html")
		_, err := runCmd(t, "render", logfile, "--config", configPath, "--severity", "ERROR", "-o", output)
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "failed")
		assert.NotContains(t, string(data), "detail")
	})

	t.Run("invalid severity", func(t *testing.T) {
		_, err := runCmd(t, "render", logfile, "--config", configPath, "--severity", "LOUD")
		assert.Error(t, err)
	})

	t.Run("outside reports directory", func(t *testing.T) {
		stray := filepath.Join(t.TempDir(), "logger_10_debug.log")
		writeFile(t, stray, "INFO - x\n")
		_, err := runCmd(t, "render", stray, "--config", configPath)
		assert.Error(t, err)
	})
}

func TestDefaultURLPath(t *testing.T) {
	root := t.TempDir()
	got := defaultURLPath(root, filepath.Join(root, "run_1", "testresults", "logger_10_debug.log"))
	assert.Equal(t, "/run_1/testresults/logger_10_debug.log", got)
}

func TestWriteOutput(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput("", &buf, "<p>x</p>"))
		assert.Equal(t, "<p>x</p>", buf.String())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.html")
		require.NoError(t, writeOutput(path, nil, "<p>x</p>"))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>", string(data))
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.html")
		assert.Error(t, writeOutput(path, nil, "<p>x</p>"))
	})

	t.Run("directory as output", func(t *testing.T) {
		assert.Error(t, writeOutput(t.TempDir(), nil, "<p>x</p>"))
	})
}
