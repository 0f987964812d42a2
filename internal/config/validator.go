package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/logrender"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the custom rules used by config tags
func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validation for directory path existence
	_ = validate.RegisterValidation("dirpath", func(fl validator.FieldLevel) bool {
		dirPath := fl.Field().String()
		if dirPath == "" {
			return true
		}
		info, err := os.Stat(dirPath)
		return err == nil && info.IsDir()
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		_, err := logrender.ParseSeverity(fl.Field().String())
		return err == nil
	})

	_ = validate.RegisterValidation("listingstyle", func(fl validator.FieldLevel) bool {
		return slices.Contains(ListingStyles(), fl.Field().String())
	})

	_ = validate.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})

	return validate
}

// ValidateConfig performs validation on the GlobalConfig structure.
// The returned error matches common.ErrInvalidConfiguration.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewConfigurationError("", "", "configuration is nil")
	}

	err := newValidator().Struct(cfg)
	if err == nil {
		return validateBaseURLTags(cfg.RenderConfig.BaseURLs)
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return common.WrapConfigurationError(err, "", "configuration validation error")
	}

	collector := common.NewErrorCollector()
	for _, e := range errs {
		msg := fmt.Sprintf("validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		collector.Add(errors.New(msg))
	}
	return common.WrapConfigurationError(collector.Error(), "", "configuration validation failed")
}

// validateBaseURLTags rejects a tag bound to more than one base URL
func validateBaseURLTags(baseURLs []BaseURLConfig) error {
	seen := make(map[string]bool, len(baseURLs))
	for _, b := range baseURLs {
		if seen[b.Tag] {
			return common.NewConfigurationError("render_config", "base_urls", fmt.Sprintf("duplicate tag %q", b.Tag))
		}
		seen[b.Tag] = true
	}
	return nil
}
