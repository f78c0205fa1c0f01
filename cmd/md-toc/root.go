package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sriram-PR/md-toc/pkg/config"
	"github.com/Sriram-PR/md-toc/pkg/process"
	"github.com/Sriram-PR/md-toc/pkg/toc"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

func (a *app) newRootCmd() *cobra.Command {
	f := &a.flags

	root := &cobra.Command{
		Use:   a.prog + " [flags] [INPUTFILE...]",
		Short: "Add or update a table of contents in Markdown documents",
		Long: `Add or update a table of contents in one or more GitHub-flavored Markdown documents.

The TOC is placed before the first heading and refreshed in place on later
runs. Input files default to stdin ('-'); output defaults to stdout.`,
		Example: `  md-toc README.md > README.new.md
  md-toc -I -C docs/*.md
  md-toc --pre-commit README.md
  md-toc outline -f yaml README.md`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runRoot,
	}
	root.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	root.SetGlobalNormalizationFunc(normalizeFlagName)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", utils.ErrUsage, err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&f.cfgFile, "config", "", "config file (default: ./"+config.ConfigFileName+".yaml if present)")
	pf.StringVar(&f.logLevel, "loglevel", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&f.newlines, "newlines", config.DefaultNewlines,
		fmt.Sprintf("newline format, one of %v", config.NewlineFormatNames()))
	pf.BoolVarP(&f.linux, "linux", "L", false, "same as '--newlines "+config.NewlinesLinux+"'")
	pf.BoolVarP(&f.microsoft, "microsoft", "M", false, "same as '--newlines "+config.NewlinesMicrosoft+"'")
	pf.BoolVarP(&f.native, "native", "N", false, "same as '--newlines "+config.NewlinesNative+"'")
	pf.StringVarP(&f.headingText, "heading-text", "T", toc.DefaultHeadingText, "text of heading above table of contents")
	pf.IntVarP(&f.headingLevel, "heading-level", "H", toc.DefaultHeadingLevel, "level of heading above table of contents")
	pf.IntVarP(&f.skipLevel, "skip-level", "S", 0, "number of heading levels to leave out of table of contents")
	pf.IntVarP(&f.maxLevel, "max-level", "X", 0, "maximum number of heading levels to include (0 = all)")
	pf.BoolVarP(&f.addTrailingHeadingChars, "add-trailing-heading-chars", "#", false,
		"add trailing '#' characters to the table of contents heading")
	pf.BoolVarP(&f.altListChar, "alt-list-char", "l", false, "use alternate list character ('*') for entries (default: use '-')")
	pf.BoolVarP(&f.numbered, "numbered", "n", false, "add numbering to table of contents entries")
	pf.StringVarP(&f.comment, "comment", "c", "", "comment to add near table of contents (default: auto-generated)")
	pf.BoolVar(&f.noComment, "no-comment", false, "do not add any comment to Markdown source")
	pf.IntVarP(&f.jobs, "jobs", "j", 0, "number of files processed in parallel with '--inplace' (default: CPU count)")
	pf.StringVar(&f.stateDir, "state-dir", "", "directory for the document state cache (default: no cache)")

	fl := root.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file, or '-' for stdout (default: stdout); conflicts with '--inplace'")
	fl.BoolVarP(&f.inplace, "inplace", "I", false, "write changes to input files in place")
	fl.BoolVarP(&f.changed, "changed", "C", false, "when used with '--inplace', note when a file has changed")
	fl.BoolVarP(&f.diff, "diff", "D", false, "when used with '--inplace', show differences when a file has changed")
	fl.BoolVar(&f.preCommit, "pre-commit", false, "shortcut for '--inplace --changed' with static default comment")
	fl.BoolVar(&f.completionHelp, "completion-help", false, "print instructions for enabling shell command-line autocompletion")
	fl.BoolVar(&f.bashCompletion, "bash-completion", false, "print autocompletion code for Bash-compatible shells to evaluate")
	fl.BoolVarP(&f.version, "version", "V", false, "print version and exit")

	root.MarkFlagsMutuallyExclusive("changed", "diff")
	root.MarkFlagsMutuallyExclusive("newlines", "linux", "microsoft", "native")
	root.MarkFlagsMutuallyExclusive("comment", "no-comment")

	root.AddCommand(
		a.newOutlineCmd(),
		a.newWatchCmd(),
		a.newMCPServerCmd(),
		a.newServeCmd(),
		a.newVersionCmd(),
	)
	return root
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	f := &a.flags

	if f.completionHelp {
		return a.printCompletionHelp()
	}
	if f.bashCompletion {
		return cmd.Root().GenBashCompletionV2(a.stdout, true)
	}

	if f.preCommit {
		f.inplace = true
		if !f.diff {
			f.changed = true
		}
	}

	inputs, err := a.checkArgs(args)
	if err != nil {
		return err
	}

	cfg, logger, err := a.loadConfig(cmd, "")
	if err != nil {
		return err
	}
	comment := a.resolveComment(cmd, cfg)
	processor, err := process.NewContentProcessor(cfg.TOCOptions(comment), cfg.Newlines, logger.WithField("command", "toc"))
	if err != nil {
		return err
	}

	if f.inplace {
		return a.runInPlace(cmd, cfg, logger, processor, inputs)
	}
	return a.runFilter(processor, inputs[0])
}

// checkArgs applies the rules tying input files, --output and --inplace
// together and returns the input list
func (a *app) checkArgs(args []string) ([]string, error) {
	f := &a.flags

	if f.changed && !f.inplace {
		return nil, fmt.Errorf("%w: '-C/--changed' only makes sense with '--inplace'", utils.ErrUsage)
	}
	if f.diff && !f.inplace {
		return nil, fmt.Errorf("%w: '-D/--diff' only makes sense with '--inplace'", utils.ErrUsage)
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{process.StdioName}
	}

	if f.inplace {
		if f.output != "" {
			return nil, fmt.Errorf("%w: output files do not make sense with '--inplace'", utils.ErrUsage)
		}
		for _, in := range inputs {
			if in == process.StdioName {
				return nil, fmt.Errorf("%w: reading from stdin does not make sense with '--inplace'", utils.ErrUsage)
			}
		}
		return inputs, nil
	}

	if f.output == "" {
		f.output = process.StdioName
	}
	if len(inputs) > 1 {
		return nil, fmt.Errorf("%w: to process more than one input file at a time, use '--inplace'", utils.ErrUsage)
	}
	in := process.NormalizePath(inputs[0])
	if in != process.StdioName && in == process.NormalizePath(f.output) {
		return nil, fmt.Errorf("%w: input file and output file are the same; use '--inplace' to modify files in place", utils.ErrUsage)
	}
	return inputs, nil
}

// runFilter processes a single document from a file or stdin to a file or
// stdout. Any failure ends the run.
func (a *app) runFilter(processor *process.ContentProcessor, input string) error {
	var text string
	var err error
	if input == process.StdioName {
		text, err = process.ReadInput(a.stdin, "<stdin>")
	} else {
		text, err = process.ReadFile(input)
	}
	if err != nil {
		return err
	}

	output, err := processor.ProcessText(displayName(input), text)
	if err != nil {
		return err
	}

	if a.flags.output == process.StdioName {
		if _, err := fmt.Fprint(a.stdout, output); err != nil {
			return fmt.Errorf("%w: writing output: %w", utils.ErrFilesystem, err)
		}
		return nil
	}
	return process.WriteFile(a.flags.output, output)
}

func displayName(path string) string {
	if path == process.StdioName {
		return "<stdin>"
	}
	return path
}
