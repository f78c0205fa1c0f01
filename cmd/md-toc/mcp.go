package main

import (
	"github.com/spf13/cobra"

	"github.com/Sriram-PR/md-toc/pkg/mcp"
)

func (a *app) newMCPServerCmd() *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Start an MCP server exposing TOC tools",
		Long: `Start an MCP (Model Context Protocol) server for AI tool integration.

Available MCP Tools:
  generate_toc     Insert or update the table of contents of a document
  extract_outline  Return the heading outline of a document`,
		Example: `  # Start with stdio transport
  md-toc mcp-server

  # Start with SSE transport on port 8080
  md-toc mcp-server --transport sse --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// MCP protocol uses stdout, logs go to stderr
			cfg, logger, err := a.loadConfig(cmd, "info")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.MCPTransport = transport
			}
			if cmd.Flags().Changed("port") {
				cfg.MCPPort = port
			}

			server, err := mcp.NewServer(&mcp.ServerConfig{
				Config:    cfg,
				Comment:   a.resolveComment(cmd, cfg),
				Transport: cfg.MCPTransport,
				Port:      cfg.MCPPort,
				Version:   version,
				Logger:    logger,
				Stdin:     cmd.InOrStdin(),
				Stdout:    cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			logger.Infof("Starting MCP server (transport: %s)", cfg.MCPTransport)
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "transport type (stdio, sse)")
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port (for sse transport)")
	return cmd
}
