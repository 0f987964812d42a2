package config

// ReportsConfig locates the test reports served by the browser. Each direct
// subdirectory of Directory is one report.
type ReportsConfig struct {
	Directory string `json:"directory,omitempty" yaml:"directory,omitempty" koanf:"directory" validate:"required,dirpath"`
}

// NewDefaultReportsConfig creates default reports configuration
func NewDefaultReportsConfig() ReportsConfig {
	return ReportsConfig{
		Directory: DefaultReportsDirectory,
	}
}
