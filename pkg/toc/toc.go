// Package toc generates and maintains a table of contents inside a Markdown
// document: it scans ATX headings, arranges them into an outline, renders
// the outline as a linked list and splices it into the document.
package toc

import (
	"fmt"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// HeadingRecord is one ATX heading found in a document.
type HeadingRecord struct {
	Level     int    `json:"level" yaml:"level"`
	Text      string `json:"text" yaml:"text"`
	LineIndex int    `json:"line" yaml:"line"`
	Anchor    string `json:"anchor" yaml:"anchor"`
}

// OutlineNode is a heading with the headings nested under it.
type OutlineNode struct {
	Heading        HeadingRecord
	Children       []*OutlineNode
	SequenceNumber string
}

// TocBlock is a rendered table of contents.
type TocBlock struct {
	HeadingLine string
	CommentLine string
	ListLines   []string
}

// Lines returns the block's lines in order. The comment line is omitted
// when empty.
func (b TocBlock) Lines() []string {
	lines := make([]string, 0, len(b.ListLines)+2)
	lines = append(lines, b.HeadingLine)
	if b.CommentLine != "" {
		lines = append(lines, b.CommentLine)
	}
	return append(lines, b.ListLines...)
}

// Options configures one TOC generation run.
type Options struct {
	HeadingText             string `json:"heading_text" yaml:"heading_text"`
	HeadingLevel            int    `json:"heading_level" yaml:"heading_level"`
	SkipLevel               int    `json:"skip_level" yaml:"skip_level"`
	MaxLevel                int    `json:"max_level" yaml:"max_level"`
	AddTrailingHeadingChars bool   `json:"add_trailing_heading_chars" yaml:"add_trailing_heading_chars"`
	AltListChar             bool   `json:"alt_list_char" yaml:"alt_list_char"`
	Numbered                bool   `json:"numbered" yaml:"numbered"`
	Comment                 string `json:"comment" yaml:"comment"`
}

const (
	DefaultHeadingText  = "Contents"
	DefaultHeadingLevel = 1
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		HeadingText:  DefaultHeadingText,
		HeadingLevel: DefaultHeadingLevel,
	}
}

// RenderOptions derives the renderer's view of the options.
func (o Options) RenderOptions() RenderOptions {
	return RenderOptions{
		HeadingText:             o.HeadingText,
		HeadingLevel:            o.HeadingLevel,
		AddTrailingHeadingChars: o.AddTrailingHeadingChars,
		AltListChar:             o.AltListChar,
		Numbered:                o.Numbered,
		Comment:                 o.Comment,
	}
}

// Validate reports the first invalid option as a configuration error.
func (o Options) Validate() error {
	if o.SkipLevel < 0 {
		return fmt.Errorf("%w: skip level must be >= 0, got %d", utils.ErrConfigValidation, o.SkipLevel)
	}
	if o.MaxLevel < 0 {
		return fmt.Errorf("%w: max level must be >= 0, got %d", utils.ErrConfigValidation, o.MaxLevel)
	}
	return o.RenderOptions().Validate()
}

// Generate returns text with an up-to-date TOC block. Running it again on
// its own output with the same options returns the output unchanged.
func Generate(text string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if err := checkText(text); err != nil {
		return "", err
	}

	ro := opts.RenderOptions()
	doc := newDocument(text)
	start, end, found := doc.locate(ro.HeadingLevel, ro.HeadingText, ro.commentLine())
	if !found {
		start = doc.insertionLine()
		end = start
	}

	headings, err := ScanHeadings(text, WithTOCBlock(ro.HeadingText, start, end))
	if err != nil {
		return "", err
	}
	forest, err := BuildOutline(headings, opts.SkipLevel, opts.MaxLevel, opts.Numbered)
	if err != nil {
		return "", err
	}
	block, err := RenderTOC(forest, ro)
	if err != nil {
		return "", err
	}
	return Compose(text, block), nil
}

// Outline returns the filtered outline of text without touching it. A TOC
// block left by a previous run is not part of the outline, and anchors are
// the ones Generate would link to.
func Outline(text string, opts Options) ([]*OutlineNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkText(text); err != nil {
		return nil, err
	}

	ro := opts.RenderOptions()
	doc := newDocument(text)
	start, end, found := doc.locate(ro.HeadingLevel, ro.HeadingText, ro.commentLine())
	if !found {
		start = doc.insertionLine()
		end = start
	}
	headings, err := ScanHeadings(text, WithTOCBlock(ro.HeadingText, start, end))
	if err != nil {
		return nil, err
	}
	return BuildOutline(headings, opts.SkipLevel, opts.MaxLevel, opts.Numbered)
}
