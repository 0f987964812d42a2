package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultServerPort, cfg.ServerConfig.Port)
	assert.Equal(t, DefaultReportsDirectory, cfg.ReportsConfig.Directory)
	assert.Equal(t, DefaultRenderSeverity, cfg.RenderConfig.DefaultSeverity)
	assert.Equal(t, DefaultRenderMaxRewriteAttempts, cfg.RenderConfig.MaxRewriteAttempts)
	assert.Equal(t, []BaseURLConfig{
		{Tag: "R", Template: "/{report}/testresults/"},
		{Tag: "T", Template: ""},
	}, cfg.RenderConfig.BaseURLs)
	assert.NotEmpty(t, cfg.RenderConfig.ListingStyles)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv(EnvConfigPath, "")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.ServerConfig.Port)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"server_config": {"port": 9001},
		"log_config": {"log_level": "debug"},
		"render_config": {
			"base_urls": [{"tag": "R", "template": "https://ci.example.org/{report}/"}]
		}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.ServerConfig.Port)
	assert.Equal(t, DefaultServerReadTimeoutSecs, cfg.ServerConfig.ReadTimeoutSecs)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, []BaseURLConfig{{Tag: "R", Template: "https://ci.example.org/{report}/"}}, cfg.RenderConfig.BaseURLs)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
reports_config:
  directory: /srv/reports
render_config:
  default_severity: WARNING
  listing_styles:
    - pattern: '\.log$'
      style: black
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "/srv/reports", cfg.ReportsConfig.Directory)
	assert.Equal(t, "WARNING", cfg.RenderConfig.DefaultSeverity)
	assert.Equal(t, []ListingStyleConfig{{Pattern: `\.log$`, Style: "black"}}, cfg.RenderConfig.ListingStyles)
	assert.Equal(t, NewDefaultBaseURLs(), cfg.RenderConfig.BaseURLs)
}

func TestLoadGlobalConfig_InvalidContent(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"server_config": `), 0644))

	_, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config content")
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server_config:\n  port: 9001\n"), 0644))

	t.Setenv("REPORTBROWSER_SERVER_CONFIG__PORT", "9100")
	t.Setenv("REPORTBROWSER_REPORTS_CONFIG__DIRECTORY", "/data/reports")
	t.Setenv("REPORTBROWSER_RENDER_CONFIG__MAX_REWRITE_ATTEMPTS", "8")

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.ServerConfig.Port)
	assert.Equal(t, "/data/reports", cfg.ReportsConfig.Directory)
	assert.Equal(t, 8, cfg.RenderConfig.MaxRewriteAttempts)
	assert.Equal(t, DefaultServerIdleTimeoutSecs, cfg.ServerConfig.IdleTimeoutSecs)
	assert.Equal(t, NewDefaultBaseURLs(), cfg.RenderConfig.BaseURLs)
}

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv(EnvConfigPath, "")

	assert.Equal(t, "explicit.yaml", GetConfigPath("explicit.yaml"))

	t.Setenv(EnvConfigPath, "/etc/reportbrowser.yaml")
	assert.Equal(t, "/etc/reportbrowser.yaml", GetConfigPath(""))

	t.Setenv(EnvConfigPath, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(dir, "config.json"), GetConfigPath(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigPath(""))
}
