package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/md-toc/pkg/config"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

const serverName = "md-toc"

// ServerConfig holds configuration for the MCP server
type ServerConfig struct {
	Config    *config.Config
	Comment   string // Comment placed in generated TOCs unless a call overrides it
	Transport string // "stdio" or "sse"
	Port      int
	Version   string
	Logger    *logrus.Logger

	// Stdin and Stdout carry the stdio transport; nil means the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

const shutdownTimeout = 10 * time.Second

// Server exposes TOC generation and outline extraction as MCP tools
type Server struct {
	mcpServer *server.MCPServer
	cfg       *ServerConfig
	log       *logrus.Entry

	mu  sync.Mutex
	sse *server.SSEServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg.Config == nil {
		return nil, fmt.Errorf("%w: Config is required", utils.ErrConfigValidation)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	mcpServer := server.NewMCPServer(
		serverName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		cfg:       cfg,
		log:       cfg.Logger.WithField("component", "mcp"),
	}

	s.registerTools()

	return s, nil
}

// optionParams are the option overrides shared by every tool
func optionParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("heading_text",
			mcp.Description("Text of the TOC heading (default from configuration, usually 'Contents')"),
		),
		mcp.WithNumber("heading_level",
			mcp.Description("Level of the TOC heading, 1-6"),
		),
		mcp.WithNumber("skip_level",
			mcp.Description("Exclude headings of this level and above (0 keeps all)"),
		),
		mcp.WithNumber("max_level",
			mcp.Description("Number of heading levels to include below skip_level (0 = unlimited)"),
		),
		mcp.WithBoolean("numbered",
			mcp.Description("Prefix entries with dotted section numbers"),
		),
		mcp.WithBoolean("alt_list_char",
			mcp.Description("Use '*' instead of '-' as list bullet"),
		),
		mcp.WithBoolean("add_trailing_heading_chars",
			mcp.Description("Close the TOC heading with a matching run of '#'"),
		),
		mcp.WithString("comment",
			mcp.Description("Comment placed under the TOC heading; empty string for none"),
		),
	}
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// generate_toc - Insert or update the TOC of a document
	generateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Insert or update the table of contents of a Markdown document. Running it again on its own output changes nothing."),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("Full Markdown document text"),
		),
	}, optionParams()...)
	s.mcpServer.AddTool(mcp.NewTool("generate_toc", generateOpts...), s.handleGenerateTOC)

	// extract_outline - Return the heading outline of a document
	outlineOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Extract the heading outline of a Markdown document with anchors and line numbers"),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("Full Markdown document text"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: json (default), yaml or tree"),
			mcp.Enum("json", "yaml", "tree"),
		),
	}, optionParams()...)
	s.mcpServer.AddTool(mcp.NewTool("extract_outline", outlineOpts...), s.handleExtractOutline)

	s.log.Infof("Registered %d MCP tools", 2)
}

// Run serves the configured transport until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case "stdio":
		s.log.Info("Starting MCP server with stdio transport")
		err := server.NewStdioServer(s.mcpServer).Listen(ctx, s.cfg.Stdin, s.cfg.Stdout)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case "sse":
		return s.runSSE(ctx)
	default:
		return fmt.Errorf("%w: unknown transport: %s (supported: stdio, sse)", utils.ErrConfigValidation, s.cfg.Transport)
	}
}

func (s *Server) runSSE(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	httpServer := &http.Server{Addr: addr}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithHTTPServer(httpServer))
	httpServer.Handler = sseServer

	s.mu.Lock()
	s.sse = sseServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Starting MCP server with SSE transport on %s", addr)
		errCh <- sseServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving MCP on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

// Shutdown gracefully shuts down the server, closing open SSE sessions
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down MCP server...")
	s.mu.Lock()
	sseServer := s.sse
	s.mu.Unlock()
	if sseServer == nil {
		return nil
	}
	if err := sseServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down MCP server: %w", err)
	}
	return nil
}
