package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "configuration OK\n")
			fmt.Fprintf(out, "reports directory: %s\n", cfg.ReportsConfig.Directory)
			fmt.Fprintf(out, "listen: %s:%d\n", cfg.ServerConfig.Host, cfg.ServerConfig.Port)
			for _, b := range cfg.RenderConfig.BaseURLs {
				target := b.Template
				if target == "" {
					target = "(de-identified)"
				}
				fmt.Fprintf(out, "base url %s: %s\n", b.Tag, target)
			}
			return nil
		},
	}
}
