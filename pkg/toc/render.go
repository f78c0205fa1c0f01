package toc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// listLinePattern matches a rendered TOC entry with either bullet and an
// optional dotted sequence number.
var listLinePattern = regexp.MustCompile(`^\s*[-*] +(?:\d+(?:\.\d+)*\.? +)?\[.*\]\(#[^\s)]*\)\s*$`)

// RenderOptions controls how a TOC block is rendered.
type RenderOptions struct {
	HeadingText             string
	HeadingLevel            int
	AddTrailingHeadingChars bool
	AltListChar             bool
	Numbered                bool
	Comment                 string
}

// Validate checks that the options produce a block the composer can find
// again on the next run.
func (o RenderOptions) Validate() error {
	if o.HeadingLevel < 1 || o.HeadingLevel > 6 {
		return fmt.Errorf("%w: heading level must be between 1 and 6, got %d", utils.ErrConfigValidation, o.HeadingLevel)
	}
	if strings.TrimSpace(o.HeadingText) == "" {
		return fmt.Errorf("%w: heading text must not be empty", utils.ErrConfigValidation)
	}
	if strings.ContainsAny(o.HeadingText, "\r\n") {
		return fmt.Errorf("%w: heading text must be a single line", utils.ErrConfigValidation)
	}
	if _, text, ok := parseATX(o.headingLine()); !ok || text != o.HeadingText {
		return fmt.Errorf("%w: heading text %q does not survive as a Markdown heading", utils.ErrConfigValidation, o.HeadingText)
	}
	if strings.ContainsAny(o.Comment, "\r\n") {
		return fmt.Errorf("%w: comment must be a single line", utils.ErrConfigValidation)
	}
	if strings.Contains(o.Comment, "-->") {
		return fmt.Errorf("%w: comment must not contain \"-->\"", utils.ErrConfigValidation)
	}
	return nil
}

func (o RenderOptions) headingLine() string {
	marker := strings.Repeat("#", o.HeadingLevel)
	line := marker + " " + o.HeadingText
	if o.AddTrailingHeadingChars {
		line += " " + marker
	}
	return line
}

func (o RenderOptions) commentLine() string {
	if o.Comment == "" {
		return ""
	}
	return "<!-- " + o.Comment + " -->"
}

// RenderTOC renders the outline forest as a TOC block. Nodes carry their
// sequence numbers from BuildOutline; Numbered only controls whether they
// are printed.
func RenderTOC(forest []*OutlineNode, opts RenderOptions) (TocBlock, error) {
	if err := opts.Validate(); err != nil {
		return TocBlock{}, err
	}

	block := TocBlock{
		HeadingLine: opts.headingLine(),
		CommentLine: opts.commentLine(),
	}
	bullet := "-"
	if opts.AltListChar {
		bullet = "*"
	}

	Walk(forest, func(n *OutlineNode, depth int) {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(bullet)
		b.WriteByte(' ')
		if opts.Numbered && n.SequenceNumber != "" {
			b.WriteString(n.SequenceNumber)
			b.WriteString(". ")
		}
		fmt.Fprintf(&b, "[%s](#%s)", n.Heading.Text, n.Heading.Anchor)
		block.ListLines = append(block.ListLines, b.String())
	})
	return block, nil
}
