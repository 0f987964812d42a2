package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/aleister1102/reportbrowser/internal/logrender"
	"github.com/spf13/cobra"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		severity string
		urlPath  string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "render <logfile>",
		Short: "Render a log file to HTML",
		Long: `Render a log file of a report to HTML, the same way the server does.
The file must lie inside the reports directory so its context.json can be found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}

			if severity == "" {
				severity = a.cfg.RenderConfig.DefaultSeverity
			}
			sev, err := logrender.ParseSeverity(severity)
			if err != nil {
				return err
			}

			logfile, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if urlPath == "" {
				urlPath = defaultURLPath(a.resolver.ReportsDir(), logfile)
			}

			doc, err := a.renderer.Render(cmd.Context(), logrender.Request{
				LogFile:  logfile,
				URLPath:  urlPath,
				Severity: sev,
			})
			if err != nil {
				return err
			}

			if err := writeOutput(output, cmd.OutOrStdout(), doc.HTML); err != nil {
				return err
			}

			a.logger.Info().
				Str("file", logfile).
				Str("report", doc.Report).
				Int("lines", doc.Stats.Lines).
				Int("emitted", doc.Stats.Emitted).
				Msg("Rendered log file")
			return nil
		},
	}

	cmd.Flags().StringVarP(&severity, "severity", "s", "", "Minimum severity: DEBUG|INFO|WARNING|ERROR (default from render_config)")
	cmd.Flags().StringVar(&urlPath, "url", "", "URL path the page will be served under (default: the file path below the reports directory)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

// writeOutput writes html to path, or to stdout when path is empty. The close
// error is returned since it may carry the failed flush.
func writeOutput(path string, stdout io.Writer, html string) (err error) {
	if path == "" {
		_, err = io.WriteString(stdout, html)
		return common.WrapError(err, "failed to write output")
	}

	f, err := os.Create(path)
	if err != nil {
		return common.WrapError(err, "failed to create output file")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = common.WrapError(closeErr, "failed to close output file")
		}
	}()

	_, err = io.WriteString(f, html)
	return common.WrapError(err, "failed to write output")
}

// defaultURLPath is the URL the server would use for logfile
func defaultURLPath(reportsDir, logfile string) string {
	absRoot, err := filepath.Abs(reportsDir)
	if err != nil {
		return filepath.ToSlash(logfile)
	}
	rel, err := filepath.Rel(absRoot, logfile)
	if err != nil {
		return filepath.ToSlash(logfile)
	}
	return "/" + filepath.ToSlash(rel)
}
