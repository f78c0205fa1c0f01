package config

import (
	"fmt"
	"runtime"

	"github.com/Sriram-PR/md-toc/pkg/toc"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// Validate checks Config fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *Config) Validate() (warnings []string, err error) {
	// HeadingText
	if c.HeadingText == "" {
		warnings = append(warnings, fmt.Sprintf("heading_text is empty, defaulting to '%s'", toc.DefaultHeadingText))
		c.HeadingText = toc.DefaultHeadingText
	}

	// HeadingLevel
	if c.HeadingLevel == 0 {
		warnings = append(warnings, fmt.Sprintf("heading_level not specified, defaulting to %d", toc.DefaultHeadingLevel))
		c.HeadingLevel = toc.DefaultHeadingLevel
	}
	if c.HeadingLevel < 1 || c.HeadingLevel > 6 {
		return warnings, fmt.Errorf("%w: heading_level must be between 1 and 6, got %d", utils.ErrConfigValidation, c.HeadingLevel)
	}

	// SkipLevel / MaxLevel
	if c.SkipLevel < 0 {
		return warnings, fmt.Errorf("%w: skip_level cannot be negative, got %d", utils.ErrConfigValidation, c.SkipLevel)
	}
	if c.MaxLevel < 0 {
		return warnings, fmt.Errorf("%w: max_level cannot be negative, got %d", utils.ErrConfigValidation, c.MaxLevel)
	}
	if c.SkipLevel >= 6 {
		warnings = append(warnings, fmt.Sprintf("skip_level %d excludes every heading level", c.SkipLevel))
	}

	// Newlines
	if c.Newlines == "" {
		warnings = append(warnings, fmt.Sprintf("newlines is empty, defaulting to '%s'", DefaultNewlines))
		c.Newlines = DefaultNewlines
	}
	format, err := ResolveNewlines(c.Newlines)
	if err != nil {
		return warnings, err
	}
	c.Newlines = format

	// Jobs
	if c.Jobs <= 0 {
		warnings = append(warnings, fmt.Sprintf("jobs should be > 0, defaulting to %d", runtime.NumCPU()))
		c.Jobs = runtime.NumCPU()
	}

	// WatchDebounce
	if c.WatchDebounce <= 0 {
		warnings = append(warnings, fmt.Sprintf("watch_debounce should be > 0, defaulting to %v", DefaultWatchDebounce))
		c.WatchDebounce = DefaultWatchDebounce
	}

	// MCP
	switch c.MCPTransport {
	case "":
		c.MCPTransport = DefaultMCPTransport
	case "stdio", "sse":
	default:
		return warnings, fmt.Errorf("%w: unknown mcp_transport '%s' (supported: stdio, sse)", utils.ErrConfigValidation, c.MCPTransport)
	}
	if c.MCPPort <= 0 || c.MCPPort > 65535 {
		warnings = append(warnings, fmt.Sprintf("mcp_port %d is invalid, defaulting to %d", c.MCPPort, DefaultMCPPort))
		c.MCPPort = DefaultMCPPort
	}

	// ServeAddr
	if c.ServeAddr == "" {
		warnings = append(warnings, fmt.Sprintf("serve_addr is empty, defaulting to '%s'", DefaultServeAddr))
		c.ServeAddr = DefaultServeAddr
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	// Remaining TOC rules (heading text shape, comment markers)
	comment := ""
	if c.Comment != nil {
		comment = *c.Comment
	}
	if err := c.TOCOptions(comment).Validate(); err != nil {
		return warnings, err
	}

	return warnings, nil
}
