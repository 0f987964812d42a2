package config

import (
	"testing"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/stretchr/testify/assert"
)

func validConfig(t *testing.T) *GlobalConfig {
	t.Helper()
	cfg := NewDefaultGlobalConfig()
	cfg.ReportsConfig.Directory = t.TempDir()
	return cfg
}

func TestValidateConfig_Defaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig(t)))
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *GlobalConfig)
		rule   string
	}{
		{
			name:   "missing reports directory",
			mutate: func(cfg *GlobalConfig) { cfg.ReportsConfig.Directory = "" },
			rule:   "required",
		},
		{
			name:   "reports directory does not exist",
			mutate: func(cfg *GlobalConfig) { cfg.ReportsConfig.Directory = "/nonexistent/reports" },
			rule:   "dirpath",
		},
		{
			name:   "port out of range",
			mutate: func(cfg *GlobalConfig) { cfg.ServerConfig.Port = 70000 },
			rule:   "max",
		},
		{
			name:   "unknown severity",
			mutate: func(cfg *GlobalConfig) { cfg.RenderConfig.DefaultSeverity = "CRITICAL" },
			rule:   "severity",
		},
		{
			name:   "zero rewrite attempts",
			mutate: func(cfg *GlobalConfig) { cfg.RenderConfig.MaxRewriteAttempts = 0 },
			rule:   "min",
		},
		{
			name: "bad listing pattern",
			mutate: func(cfg *GlobalConfig) {
				cfg.RenderConfig.ListingStyles = []ListingStyleConfig{{Pattern: "(", Style: ListingStyleGreen}}
			},
			rule: "regexp",
		},
		{
			name: "unknown listing style",
			mutate: func(cfg *GlobalConfig) {
				cfg.RenderConfig.ListingStyles = []ListingStyleConfig{{Pattern: "x", Style: "purple"}}
			},
			rule: "listingstyle",
		},
		{
			name:   "base url without tag",
			mutate: func(cfg *GlobalConfig) { cfg.RenderConfig.BaseURLs = []BaseURLConfig{{Template: "/x/"}} },
			rule:   "required",
		},
		{
			name:   "unknown log level",
			mutate: func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" },
			rule:   "loglevel",
		},
		{
			name:   "unknown log format",
			mutate: func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" },
			rule:   "logformat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := ValidateConfig(cfg)

			assert.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), "rule '"+tt.rule+"'")
		})
	}
}

func TestValidateConfig_DuplicateBaseURLTag(t *testing.T) {
	cfg := validConfig(t)
	cfg.RenderConfig.BaseURLs = append(cfg.RenderConfig.BaseURLs, BaseURLConfig{Tag: "R", Template: "/other/"})

	err := ValidateConfig(cfg)

	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), `duplicate tag "R"`)
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.ErrorIs(t, ValidateConfig(nil), common.ErrInvalidConfiguration)
}
