// Package config loads md-toc settings from defaults, an optional YAML file
// and MDTOC_ environment variables.
package config

import (
	"runtime"
	"time"

	"github.com/Sriram-PR/md-toc/pkg/toc"
)

const (
	DefaultNewlines      = NewlinesNative
	DefaultLogLevel      = "warn"
	DefaultWatchDebounce = 200 * time.Millisecond
	DefaultMCPTransport  = "stdio"
	DefaultMCPPort       = 8080
	DefaultServeAddr     = ":8080"
	ConfigFileName       = ".md-toc"
)

// Config holds every setting a command can take from the config file
type Config struct {
	HeadingText             string `mapstructure:"heading_text" yaml:"heading_text"`
	HeadingLevel            int    `mapstructure:"heading_level" yaml:"heading_level"`
	SkipLevel               int    `mapstructure:"skip_level" yaml:"skip_level"`
	MaxLevel                int    `mapstructure:"max_level" yaml:"max_level"` // 0 = unlimited
	AddTrailingHeadingChars bool   `mapstructure:"add_trailing_heading_chars" yaml:"add_trailing_heading_chars"`
	AltListChar             bool   `mapstructure:"alt_list_char" yaml:"alt_list_char"`
	Numbered                bool   `mapstructure:"numbered" yaml:"numbered"`

	// Comment overrides the auto-generated comment; an empty string disables it.
	Comment            *string `mapstructure:"comment" yaml:"comment,omitempty"`
	CommentFullCommand bool    `mapstructure:"comment_full_command" yaml:"comment_full_command"`
	CommentDatestamp   bool    `mapstructure:"comment_datestamp" yaml:"comment_datestamp"`

	Newlines string `mapstructure:"newlines" yaml:"newlines"`

	Jobs          int           `mapstructure:"jobs" yaml:"jobs"`
	StateDir      string        `mapstructure:"state_dir" yaml:"state_dir,omitempty"` // empty = no persistent state
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`
	MCPTransport  string        `mapstructure:"mcp_transport" yaml:"mcp_transport"`
	MCPPort       int           `mapstructure:"mcp_port" yaml:"mcp_port"`
	ServeAddr     string        `mapstructure:"serve_addr" yaml:"serve_addr"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	defaults := toc.DefaultOptions()
	return Config{
		HeadingText:   defaults.HeadingText,
		HeadingLevel:  defaults.HeadingLevel,
		Newlines:      DefaultNewlines,
		Jobs:          runtime.NumCPU(),
		LogLevel:      DefaultLogLevel,
		WatchDebounce: DefaultWatchDebounce,
		MCPTransport:  DefaultMCPTransport,
		MCPPort:       DefaultMCPPort,
		ServeAddr:     DefaultServeAddr,
	}
}

// TOCOptions returns the generation options with the given, already
// resolved, comment text.
func (c *Config) TOCOptions(comment string) toc.Options {
	return toc.Options{
		HeadingText:             c.HeadingText,
		HeadingLevel:            c.HeadingLevel,
		SkipLevel:               c.SkipLevel,
		MaxLevel:                c.MaxLevel,
		AddTrailingHeadingChars: c.AddTrailingHeadingChars,
		AltListChar:             c.AltListChar,
		Numbered:                c.Numbered,
		Comment:                 comment,
	}
}
