// Package server exposes the reports directory over HTTP: directory listings,
// severity filtered log pages, Markdown summaries and raw files.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/config"
	"github.com/aleister1102/reportbrowser/internal/logrender"
	"github.com/aleister1102/reportbrowser/internal/sidecar"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const (
	contextAPIPrefix = "/api/context/"
	maxMarkdownSize  = 10 * 1024 * 1024
)

// mediaTypes lists the files shown inline; everything else is downloaded.
var mediaTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".txt":   "text/plain; charset=utf-8",
	".log":   "text/plain; charset=utf-8",
	".color": "text/plain; charset=utf-8",
	".json":  "application/json",
}

// noCacheHeaders are set on log pages; their content depends on the query.
var noCacheHeaders = map[string]string{
	"Cache-Control": "no-store, no-cache, must-revalidate, max-age=0",
	"Pragma":        "no-cache",
	"Expires":       "0",
}

// Server holds the Echo app and dependencies.
type Server struct {
	echo            *echo.Echo
	cfg             config.ServerConfig
	reportsDir      string
	defaultSeverity logrender.Severity
	fileManager     *common.FileManager
	resolver        *sidecar.Resolver
	renderer        *logrender.Renderer
	listing         *ListingRenderer
	logger          zerolog.Logger
}

// New builds the Echo server and registers routes.
func New(cfg *config.GlobalConfig, resolver *sidecar.Resolver, renderer *logrender.Renderer, fileManager *common.FileManager, logger zerolog.Logger) (*Server, error) {
	serverLogger := logger.With().Str("component", "Server").Logger()

	defaultSeverity, err := logrender.ParseSeverity(cfg.RenderConfig.DefaultSeverity)
	if err != nil {
		return nil, common.WrapConfigurationError(err, "render_config", "invalid default_severity")
	}

	listing, err := NewListingRenderer(resolver.ReportsDir(), cfg.RenderConfig.ListingStyles, fileManager, logger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover(), requestID(), requestLogger(serverLogger))

	s := &Server{
		echo:            e,
		cfg:             cfg.ServerConfig,
		reportsDir:      resolver.ReportsDir(),
		defaultSeverity: defaultSeverity,
		fileManager:     fileManager,
		resolver:        resolver,
		renderer:        renderer,
		listing:         listing,
		logger:          serverLogger,
	}

	e.GET("/healthz", s.handleHealth)
	e.GET(contextAPIPrefix+"*", s.handleContext)
	e.GET("/*", s.handleBrowse)

	return s, nil
}

// Handler returns the HTTP handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	s.echo.Server.ReadTimeout = s.cfg.ReadTimeout()
	s.echo.Server.WriteTimeout = s.cfg.WriteTimeout()
	s.echo.Server.IdleTimeout = s.cfg.IdleTimeout()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", addr).Str("reports", s.reportsDir).Msg("Report browser listening")
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down report browser")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return common.WrapError(err, "graceful shutdown failed")
	}
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	return OK(c, map[string]string{"status": "ok"}, "")
}

// contextInfo is the diagnostics view of a report's sidecar.
type contextInfo struct {
	Report      string                 `json:"report"`
	Directory   string                 `json:"directory"`
	Directories sidecar.OrderedStrings `json:"directories"`
	GitRef      sidecar.OrderedStrings `json:"git_ref"`
	Mapping     []contextMappingEntry  `json:"mapping"`
}

type contextMappingEntry struct {
	Tag     string `json:"tag"`
	Trigger string `json:"trigger"`
	Base    string `json:"base"`
	Linked  bool   `json:"linked"`
}

func (s *Server) handleContext(c echo.Context) error {
	rel := strings.TrimPrefix(c.Request().URL.Path, contextAPIPrefix)
	file, err := s.fileManager.ResolveWithin(s.reportsDir, rel)
	if err != nil {
		return FromError(c, "invalid path", err)
	}

	report, err := s.resolver.LoadReport(file)
	if err != nil {
		return FromError(c, "cannot load report context", err)
	}

	info := contextInfo{
		Report:      report.Name,
		Directory:   report.Directory,
		Directories: report.Context.Directories,
		GitRef:      report.Context.GitRef,
	}
	for _, e := range s.resolver.Mapping(report).Entries() {
		info.Mapping = append(info.Mapping, contextMappingEntry{Tag: e.Tag, Trigger: e.Trigger, Base: e.Base, Linked: e.Linked()})
	}
	return OK(c, info, "")
}

// handleBrowse serves everything below the reports root
func (s *Server) handleBrowse(c echo.Context) error {
	rel := strings.Trim(c.Request().URL.Path, "/")
	target, err := s.fileManager.ResolveWithin(s.reportsDir, rel)
	if err != nil {
		return FromError(c, "invalid path", err)
	}

	info, err := s.fileManager.GetFileInfo(target)
	if err != nil {
		return FromError(c, "not found", err)
	}

	if info.IsDir {
		page, err := s.listing.Render(rel)
		if err != nil {
			return FromError(c, "cannot list directory", err)
		}
		return c.HTML(http.StatusOK, page)
	}

	ext := strings.ToLower(filepath.Ext(target))
	switch {
	case ext == ".log" && logrender.IsLogFile(target):
		return s.serveLog(c, filepath.Join(filepath.Dir(target), logrender.DefaultLogFile))
	case ext == ".md":
		return s.serveMarkdown(c, target)
	}

	if mediaType, ok := mediaTypes[ext]; ok {
		c.Response().Header().Set(echo.HeaderContentType, mediaType)
		return c.File(target)
	}
	return c.Attachment(target, filepath.Base(target))
}

// serveLog renders logfile. Any logger_*.log of a run is shown through the
// run's debug log, filtered by the requested severity.
func (s *Server) serveLog(c echo.Context, logfile string) error {
	severity := s.defaultSeverity
	if value := c.QueryParam("severity"); value != "" {
		parsed, err := logrender.ParseSeverity(value)
		if err != nil {
			return FromError(c, "invalid severity", err)
		}
		severity = parsed
	}

	doc, err := s.renderer.Render(c.Request().Context(), logrender.Request{
		LogFile:  logfile,
		URLPath:  c.Request().URL.Path,
		Severity: severity,
	})
	if err != nil {
		return FromError(c, fmt.Sprintf("cannot render %s", filepath.Base(logfile)), err)
	}

	for k, v := range noCacheHeaders {
		c.Response().Header().Set(k, v)
	}
	return c.HTML(http.StatusOK, doc.HTML)
}

func (s *Server) serveMarkdown(c echo.Context, file string) error {
	opts := common.DefaultFileReadOptions()
	opts.MaxSize = maxMarkdownSize
	opts.Context = c.Request().Context()
	source, err := s.fileManager.ReadFile(file, opts)
	if err != nil {
		return FromError(c, "cannot read markdown", err)
	}

	page, err := renderMarkdown(filepath.Base(file), source)
	if err != nil {
		return FromError(c, "failed to convert markdown", err)
	}
	return c.HTML(http.StatusOK, page)
}
