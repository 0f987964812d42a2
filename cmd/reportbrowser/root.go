package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/config"
	"github.com/aleister1102/reportbrowser/internal/logger"
	"github.com/aleister1102/reportbrowser/internal/logrender"
	"github.com/aleister1102/reportbrowser/internal/sidecar"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by all subcommands
type rootOptions struct {
	configPath string
	reportsDir string
	logLevel   string
	envFile    string
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reportbrowser",
		Short: "Browse test reports with linked, severity filtered logs",
		Long: `reportbrowser serves a directory of test reports over HTTP.
Log files are rendered with a severity filter and absolute paths recorded
during the run are turned into links into the report.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	cmd.PersistentFlags().StringVar(&opts.reportsDir, "reports", "", "Reports directory (overrides reports_config.directory)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides log_config.log_level)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before the configuration")

	cmd.AddCommand(newServeCmd(opts), newRenderCmd(opts), newCheckCmd(opts))
	return cmd
}

// app is the wired set of components shared by the subcommands
type app struct {
	cfg         *config.GlobalConfig
	logger      zerolog.Logger
	fileManager *common.FileManager
	resolver    *sidecar.Resolver
	renderer    *logrender.Renderer
}

// loadConfig reads .env, the configuration file and flag overrides, then validates
func loadConfig(opts *rootOptions) (*config.GlobalConfig, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, common.WrapError(err, "failed to load env file")
		}
	}

	cfg, err := config.LoadGlobalConfig(opts.configPath, zerolog.Nop())
	if err != nil {
		return nil, common.WrapError(err, "could not load configuration")
	}
	if opts.reportsDir != "" {
		cfg.ReportsConfig.Directory = opts.reportsDir
	}
	if opts.logLevel != "" {
		cfg.LogConfig.LogLevel = opts.logLevel
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp loads the configuration and builds the components from it
func newApp(opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	zLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, common.WrapError(err, "could not initialize logger")
	}

	fileManager := common.NewFileManager(zLogger)

	baseURLs := make([]sidecar.BaseURL, 0, len(cfg.RenderConfig.BaseURLs))
	for _, b := range cfg.RenderConfig.BaseURLs {
		baseURLs = append(baseURLs, sidecar.BaseURL{Tag: b.Tag, Template: b.Template})
	}
	resolver := sidecar.NewResolver(cfg.ReportsConfig.Directory, baseURLs, cfg.RenderConfig.MaxRewriteAttempts, fileManager, zLogger)

	renderer, err := logrender.NewRenderer(resolver, fileManager, cfg.RenderConfig.MaxLogSizeBytes(), zLogger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:         cfg,
		logger:      zLogger,
		fileManager: fileManager,
		resolver:    resolver,
		renderer:    renderer,
	}, nil
}
