package main

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Sriram-PR/md-toc/pkg/config"
	applog "github.com/Sriram-PR/md-toc/pkg/log"
)

// app carries the streams and flag values of one invocation
type app struct {
	prog   string
	argv   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
	status int // Exit status set by commands that succeed with a non-zero code

	flags cliFlags
}

// cliFlags holds every command-line flag value
type cliFlags struct {
	// Persistent
	cfgFile                 string
	logLevel                string
	newlines                string
	linux                   bool
	microsoft               bool
	native                  bool
	headingText             string
	headingLevel            int
	skipLevel               int
	maxLevel                int
	addTrailingHeadingChars bool
	altListChar             bool
	numbered                bool
	comment                 string
	noComment               bool
	jobs                    int
	stateDir                string

	// Root only
	output         string
	inplace        bool
	changed        bool
	diff           bool
	preCommit      bool
	completionHelp bool
	bashCompletion bool
	version        bool
}

// flagAliases maps the alternative spellings of flags to their names
var flagAliases = map[string]string{
	"in-place":                 "inplace",
	"show-changed":             "changed",
	"show-diff":                "diff",
	"line-endings":             "newlines",
	"alternate-list-character": "alt-list-char",
	"nocomment":                "no-comment",
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// loadConfig reads the configuration, applies explicit flags on top and
// validates the result. defaultLevel replaces the built-in log level for
// commands that run for a long time.
func (a *app) loadConfig(cmd *cobra.Command, defaultLevel string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(a.flags.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return a.finishConfig(cmd, cfg, defaultLevel)
}

// finishConfig applies flags to a loaded configuration, validates it and
// builds the logger it asks for
func (a *app) finishConfig(cmd *cobra.Command, cfg *config.Config, defaultLevel string) (*config.Config, *logrus.Logger, error) {
	a.applyFlags(cmd, cfg)
	if defaultLevel != "" && !cmd.Flags().Changed("loglevel") && cfg.LogLevel == config.DefaultLogLevel {
		cfg.LogLevel = defaultLevel
	}

	warnings, err := cfg.Validate()
	logger := applog.New(cfg.LogLevel, a.stderr)
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// applyFlags overrides cfg with the flags given on the command line
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := &a.flags
	fl := cmd.Flags()

	if fl.Changed("heading-text") {
		cfg.HeadingText = f.headingText
	}
	if fl.Changed("heading-level") {
		cfg.HeadingLevel = f.headingLevel
	}
	if fl.Changed("skip-level") {
		cfg.SkipLevel = f.skipLevel
	}
	if fl.Changed("max-level") {
		cfg.MaxLevel = f.maxLevel
	}
	if fl.Changed("add-trailing-heading-chars") {
		cfg.AddTrailingHeadingChars = f.addTrailingHeadingChars
	}
	if fl.Changed("alt-list-char") {
		cfg.AltListChar = f.altListChar
	}
	if fl.Changed("numbered") {
		cfg.Numbered = f.numbered
	}

	switch {
	case f.linux:
		cfg.Newlines = config.NewlinesLinux
	case f.microsoft:
		cfg.Newlines = config.NewlinesMicrosoft
	case f.native:
		cfg.Newlines = config.NewlinesNative
	case fl.Changed("newlines"):
		cfg.Newlines = f.newlines
	}

	if fl.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if fl.Changed("state-dir") {
		cfg.StateDir = f.stateDir
	}
	if fl.Changed("loglevel") {
		cfg.LogLevel = f.logLevel
	}
}

// resolveComment picks the TOC comment: an explicit flag, then the
// configured comment, then a generated one
func (a *app) resolveComment(cmd *cobra.Command, cfg *config.Config) string {
	switch {
	case a.flags.noComment:
		return ""
	case cmd.Flags().Changed("comment"):
		return a.flags.comment
	case cfg.Comment != nil:
		return *cfg.Comment
	}

	opts := config.CommentOptions{
		FullCommand: cfg.CommentFullCommand,
		Datestamp:   cfg.CommentDatestamp,
	}
	if a.flags.preCommit {
		// Static comment for hooks
		opts = config.CommentOptions{Suffix: config.PreCommitSuffix}
	}
	return config.GenerateComment(a.prog, a.argv, a.now(), opts)
}
