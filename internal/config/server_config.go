package config

import "time"

// ServerConfig configures the HTTP report browser
type ServerConfig struct {
	Host                string `json:"host,omitempty" yaml:"host,omitempty" koanf:"host"`
	Port                int    `json:"port,omitempty" yaml:"port,omitempty" koanf:"port" validate:"min=1,max=65535"`
	ReadTimeoutSecs     int    `json:"read_timeout_secs,omitempty" yaml:"read_timeout_secs,omitempty" koanf:"read_timeout_secs" validate:"min=1"`
	WriteTimeoutSecs    int    `json:"write_timeout_secs,omitempty" yaml:"write_timeout_secs,omitempty" koanf:"write_timeout_secs" validate:"min=1"`
	IdleTimeoutSecs     int    `json:"idle_timeout_secs,omitempty" yaml:"idle_timeout_secs,omitempty" koanf:"idle_timeout_secs" validate:"min=1"`
	ShutdownTimeoutSecs int    `json:"shutdown_timeout_secs,omitempty" yaml:"shutdown_timeout_secs,omitempty" koanf:"shutdown_timeout_secs" validate:"min=1"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:                DefaultServerHost,
		Port:                DefaultServerPort,
		ReadTimeoutSecs:     DefaultServerReadTimeoutSecs,
		WriteTimeoutSecs:    DefaultServerWriteTimeoutSecs,
		IdleTimeoutSecs:     DefaultServerIdleTimeoutSecs,
		ShutdownTimeoutSecs: DefaultServerShutdownTimeoutSecs,
	}
}

// ReadTimeout returns the read timeout as a duration
func (sc ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(sc.ReadTimeoutSecs) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (sc ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(sc.WriteTimeoutSecs) * time.Second
}

// IdleTimeout returns the idle timeout as a duration
func (sc ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(sc.IdleTimeoutSecs) * time.Second
}

// ShutdownTimeout returns the graceful shutdown timeout as a duration
func (sc ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(sc.ShutdownTimeoutSecs) * time.Second
}
