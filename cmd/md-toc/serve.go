package main

import (
	"github.com/spf13/cobra"

	"github.com/Sriram-PR/md-toc/pkg/api"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the md-toc HTTP server.

The server provides:
  - GET  /health       Basic health check
  - POST /api/toc      Document with an up-to-date TOC
  - POST /api/outline  Heading outline (?format=json|yaml|tree)

Both POST endpoints accept a JSON body {"markdown": "...", ...options} or a
raw text/markdown body.`,
		Example: `  md-toc serve
  md-toc serve --addr 127.0.0.1:3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.loadConfig(cmd, "info")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.ServeAddr = addr
			}

			srv := api.NewServer(cfg, a.resolveComment(cmd, cfg), logger)
			return srv.Run(cmd.Context(), cfg.ServeAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}
