package main

import (
	"os/signal"
	"syscall"

	"github.com/aleister1102/reportbrowser/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reports directory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			if port != 0 {
				a.cfg.ServerConfig.Port = port
			}

			srv, err := server.New(a.cfg, a.resolver, a.renderer, a.fileManager, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(ctx); err != nil {
				a.logger.Error().Err(err).Msg("Server stopped with error")
				return err
			}
			a.logger.Info().Msg("Server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides server_config.port)")
	return cmd
}
