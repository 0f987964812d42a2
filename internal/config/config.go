package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize caps the configuration file read
const maxConfigFileSize = 10 * 1024 * 1024

// GlobalConfig contains all configuration sections for the application.
// It is loaded once at startup and passed to constructors; nothing modifies it
// afterwards.
type GlobalConfig struct {
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty" koanf:"log_config"`
	RenderConfig  RenderConfig  `json:"render_config,omitempty" yaml:"render_config,omitempty" koanf:"render_config"`
	ReportsConfig ReportsConfig `json:"reports_config,omitempty" yaml:"reports_config,omitempty" koanf:"reports_config"`
	ServerConfig  ServerConfig  `json:"server_config,omitempty" yaml:"server_config,omitempty" koanf:"server_config"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:     NewDefaultLogConfig(),
		RenderConfig:  NewDefaultRenderConfig(),
		ReportsConfig: NewDefaultReportsConfig(),
		ServerConfig:  NewDefaultServerConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations,
// then applies REPORTBROWSER_* environment overrides.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is preferred if the file extension is .yaml or .yml.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath != "" {
		fileManager := common.NewFileManager(logger)
		if !fileManager.FileExists(filePath) {
			return nil, common.NewValidationError("config_file", filePath, "config file does not exist")
		}

		data, err := loadConfigFileContent(fileManager, filePath)
		if err != nil {
			return nil, common.WrapError(err, "failed to load config file content")
		}

		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, common.WrapError(err, "failed to parse config content")
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, common.WrapError(err, "failed to apply environment overrides")
	}

	return cfg, nil
}

// loadConfigFileContent reads the config file using FileManager
func loadConfigFileContent(fileManager *common.FileManager, filePath string) ([]byte, error) {
	opts := common.DefaultFileReadOptions()
	opts.MaxSize = maxConfigFileSize

	return fileManager.ReadFile(filePath, opts)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// applyEnvOverrides overlays REPORTBROWSER_<SECTION>__<KEY> variables onto
// cfg. A double underscore separates nesting levels.
func applyEnvOverrides(cfg *GlobalConfig) error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfigPath {
			return ""
		}
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return err
	}
	if len(k.Keys()) == 0 {
		return nil
	}
	return k.Unmarshal("", cfg)
}
