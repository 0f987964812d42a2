package config

const (
	// Server Defaults
	DefaultServerHost                = "0.0.0.0"
	DefaultServerPort                = 8000
	DefaultServerReadTimeoutSecs     = 15
	DefaultServerWriteTimeoutSecs    = 60
	DefaultServerIdleTimeoutSecs     = 120
	DefaultServerShutdownTimeoutSecs = 10

	// Reports Defaults
	DefaultReportsDirectory = "reports"

	// Render Defaults
	DefaultRenderMaxRewriteAttempts = 4
	DefaultRenderSeverity           = "INFO"
	DefaultRenderMaxLogSizeMB       = 50

	// Listing styles; the directory listing uses them as CSS class suffixes
	ListingStyleFirmware = "firmware"
	ListingStyleGreen    = "green"
	ListingStyleBlack    = "black"
	ListingStyleGray     = "gray"
	DefaultListingStyle  = ListingStyleGray

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// EnvConfigPath names the configuration file when no flag is given
	EnvConfigPath = "REPORTBROWSER_CONFIG_PATH"
	// EnvPrefix starts every environment override, e.g.
	// REPORTBROWSER_SERVER_CONFIG__PORT=9000
	EnvPrefix = "REPORTBROWSER_"
)

// ListingStyles returns the known listing styles.
func ListingStyles() []string {
	return []string{ListingStyleFirmware, ListingStyleGreen, ListingStyleBlack, ListingStyleGray}
}
