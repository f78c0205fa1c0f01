package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sriram-PR/md-toc/pkg/process"
)

func (a *app) newOutlineCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "outline [FILE]",
		Short: "Print the heading outline of a document",
		Long: `Print the headings that would appear in the table of contents, with their
anchors and line numbers. An existing TOC block is left out. Reads stdin when
no file (or '-') is given.`,
		Example: `  md-toc outline README.md
  md-toc outline -f json -X 2 README.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := process.StdioName
			if len(args) == 1 {
				input = args[0]
			}

			cfg, logger, err := a.loadConfig(cmd, "")
			if err != nil {
				return err
			}
			processor, err := process.NewContentProcessor(cfg.TOCOptions(a.resolveComment(cmd, cfg)), cfg.Newlines, logger.WithField("command", "outline"))
			if err != nil {
				return err
			}

			var text string
			if input == process.StdioName {
				text, err = process.ReadInput(a.stdin, "<stdin>")
			} else {
				text, err = process.ReadFile(input)
			}
			if err != nil {
				return err
			}

			forest, err := processor.Outline(displayName(input), text)
			if err != nil {
				return err
			}

			title := ""
			if input != process.StdioName {
				title = input
			}
			out, err := process.FormatOutline(process.OutlineEntries(forest), format, title)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", process.OutlineFormatTree,
		fmt.Sprintf("output format, one of %v", process.OutlineFormats))
	return cmd
}
