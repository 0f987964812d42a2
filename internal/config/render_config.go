package config

// BaseURLConfig binds a sidecar directory tag to the URL its paths are linked
// to. "{report}" in Template is replaced by the report directory name; an
// empty Template de-identifies the paths.
type BaseURLConfig struct {
	Tag      string `json:"tag" yaml:"tag" koanf:"tag" validate:"required"`
	Template string `json:"template" yaml:"template" koanf:"template"`
}

// ListingStyleConfig assigns Style to directory entries whose slash separated
// path matches Pattern.
type ListingStyleConfig struct {
	Pattern string `json:"pattern" yaml:"pattern" koanf:"pattern" validate:"required,regexp"`
	Style   string `json:"style" yaml:"style" koanf:"style" validate:"required,listingstyle"`
}

// RenderConfig configures log rendering and the directory listing
type RenderConfig struct {
	BaseURLs           []BaseURLConfig      `json:"base_urls,omitempty" yaml:"base_urls,omitempty" koanf:"base_urls" validate:"dive"`
	DefaultSeverity    string               `json:"default_severity,omitempty" yaml:"default_severity,omitempty" koanf:"default_severity" validate:"severity"`
	ListingStyles      []ListingStyleConfig `json:"listing_styles,omitempty" yaml:"listing_styles,omitempty" koanf:"listing_styles" validate:"dive"`
	MaxLogSizeMB       int                  `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty" koanf:"max_log_size_mb" validate:"min=0"`
	MaxRewriteAttempts int                  `json:"max_rewrite_attempts,omitempty" yaml:"max_rewrite_attempts,omitempty" koanf:"max_rewrite_attempts" validate:"min=1"`
}

// NewDefaultRenderConfig creates default render configuration
func NewDefaultRenderConfig() RenderConfig {
	return RenderConfig{
		BaseURLs:           NewDefaultBaseURLs(),
		DefaultSeverity:    DefaultRenderSeverity,
		ListingStyles:      NewDefaultListingStyles(),
		MaxLogSizeMB:       DefaultRenderMaxLogSizeMB,
		MaxRewriteAttempts: DefaultRenderMaxRewriteAttempts,
	}
}

// NewDefaultBaseURLs links "R" paths into the report's testresults directory
// and de-identifies "T" (worktree) paths.
func NewDefaultBaseURLs() []BaseURLConfig {
	return []BaseURLConfig{
		{Tag: "R", Template: "/{report}/testresults/"},
		{Tag: "T", Template: ""},
	}
}

// NewDefaultListingStyles returns the listing rules in priority order.
func NewDefaultListingStyles() []ListingStyleConfig {
	rules := []ListingStyleConfig{}
	add := func(style string, patterns ...string) {
		for _, p := range patterns {
			rules = append(rules, ListingStyleConfig{Pattern: p, Style: style})
		}
	}
	add(ListingStyleFirmware,
		`/mpbuild$`,
		`/mpbuild/[^/]+$`,
		`/firmware.uf2$`,
		`/firmware.spec$`,
		`/docker_stdout.txt$`,
	)
	add(ListingStyleGreen,
		`/RUN-[^/]+$`,
		`/testresults$`,
		`^github_testbed_micropython_\d+$`,
		`/logger_20_info.log$`,
	)
	add(ListingStyleBlack,
		`/journalctl.txt$`,
		`/octoprobe_summary_report.md$`,
		`/task_report.md$`,
		`/testresults.txt$`,
		`/flashing_stdout.txt$`,
	)
	return rules
}

// MaxLogSizeBytes returns MaxLogSizeMB in bytes; zero means unlimited.
func (rc RenderConfig) MaxLogSizeBytes() int64 {
	return int64(rc.MaxLogSizeMB) * 1024 * 1024
}
