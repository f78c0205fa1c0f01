package process

import (
	"github.com/Sriram-PR/md-toc/pkg/toc"
)

// TOCRequest is one document submitted to a server together with optional
// overrides of the configured options. Nil fields keep the configured value.
type TOCRequest struct {
	Markdown                string  `json:"markdown"`
	HeadingText             *string `json:"heading_text,omitempty"`
	HeadingLevel            *int    `json:"heading_level,omitempty"`
	SkipLevel               *int    `json:"skip_level,omitempty"`
	MaxLevel                *int    `json:"max_level,omitempty"`
	AddTrailingHeadingChars *bool   `json:"add_trailing_heading_chars,omitempty"`
	AltListChar             *bool   `json:"alt_list_char,omitempty"`
	Numbered                *bool   `json:"numbered,omitempty"`
	Comment                 *string `json:"comment,omitempty"` // "" disables the comment
	Format                  string  `json:"format,omitempty"`  // Outline format, JSON by default
}

// Apply returns base with the request's overrides applied
func (r TOCRequest) Apply(base toc.Options) toc.Options {
	opts := base
	if r.HeadingText != nil {
		opts.HeadingText = *r.HeadingText
	}
	if r.HeadingLevel != nil {
		opts.HeadingLevel = *r.HeadingLevel
	}
	if r.SkipLevel != nil {
		opts.SkipLevel = *r.SkipLevel
	}
	if r.MaxLevel != nil {
		opts.MaxLevel = *r.MaxLevel
	}
	if r.AddTrailingHeadingChars != nil {
		opts.AddTrailingHeadingChars = *r.AddTrailingHeadingChars
	}
	if r.AltListChar != nil {
		opts.AltListChar = *r.AltListChar
	}
	if r.Numbered != nil {
		opts.Numbered = *r.Numbered
	}
	if r.Comment != nil {
		opts.Comment = *r.Comment
	}
	return opts
}

// OutlineFormat returns the requested outline format, JSON when unset
func (r TOCRequest) OutlineFormat() string {
	if r.Format == "" {
		return OutlineFormatJSON
	}
	return r.Format
}
