package toc

import (
	"strings"
)

// fence is an open fenced code block.
type fence struct {
	char   byte
	length int
}

// leadingSpaces returns the number of leading spaces when the line is
// indented by at most three columns; ok is false for deeper indentation,
// including a tab inside the indent.
func leadingSpaces(line string) (n int, ok bool) {
	for n < len(line) && line[n] == ' ' {
		n++
	}
	if n > 3 {
		return n, false
	}
	if n < len(line) && line[n] == '\t' {
		return n, false
	}
	return n, true
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// openFence reports whether line opens a fenced code block.
func openFence(line string) (fence, bool) {
	indent, ok := leadingSpaces(line)
	if !ok {
		return fence{}, false
	}
	rest := line[indent:]
	if rest == "" || (rest[0] != '`' && rest[0] != '~') {
		return fence{}, false
	}
	c := rest[0]
	n := runLength(rest, c)
	if n < 3 {
		return fence{}, false
	}
	if c == '`' && strings.IndexByte(rest[n:], '`') >= 0 {
		return fence{}, false
	}
	return fence{char: c, length: n}, true
}

// closedBy reports whether line closes the fence.
func (f fence) closedBy(line string) bool {
	indent, ok := leadingSpaces(line)
	if !ok {
		return false
	}
	rest := line[indent:]
	n := runLength(rest, f.char)
	return n >= f.length && strings.TrimSpace(rest[n:]) == ""
}

// classifyCode marks every line that belongs to a fenced code block,
// the fence lines included. An unclosed fence runs to the end.
func classifyCode(lines []string) []bool {
	inCode := make([]bool, len(lines))
	var current fence
	open := false
	for i, line := range lines {
		if open {
			inCode[i] = true
			if current.closedBy(line) {
				open = false
			}
			continue
		}
		if f, ok := openFence(line); ok {
			current = f
			open = true
			inCode[i] = true
		}
	}
	return inCode
}

// parseATX recognises an ATX heading line. The returned text has the
// optional closing sequence and surrounding whitespace removed and may be
// empty.
func parseATX(line string) (level int, text string, ok bool) {
	indent, ok := leadingSpaces(line)
	if !ok {
		return 0, "", false
	}
	rest := line[indent:]
	level = runLength(rest, '#')
	if level == 0 || level > 6 || len(rest) == level {
		return 0, "", false
	}
	if rest[level] != ' ' && rest[level] != '\t' {
		return 0, "", false
	}

	text = strings.Trim(rest[level:], " \t")
	trimmed := strings.TrimRight(text, "#")
	switch {
	case trimmed == "":
		text = ""
	case len(trimmed) < len(text):
		if last := trimmed[len(trimmed)-1]; last == ' ' || last == '\t' {
			text = strings.TrimRight(trimmed, " \t")
		}
	}
	return level, text, true
}

// ScanOption customises a heading scan.
type ScanOption func(*scanConfig)

type scanConfig struct {
	tocText  string
	tocStart int
	tocEnd   int
	hasTOC   bool
}

// WithTOCBlock marks lines [start, end) as the document's TOC block. Those
// lines are not scanned, and the TOC heading's anchor is reserved at start so
// that colliding document headings get the suffix they will have once the
// block is in place.
func WithTOCBlock(headingText string, start, end int) ScanOption {
	return func(c *scanConfig) {
		c.tocText = headingText
		c.tocStart = start
		c.tocEnd = end
		c.hasTOC = true
	}
}

// ScanHeadings extracts the ATX headings of a Markdown document in document
// order, skipping fenced code. It fails only when text is not a text
// document.
func ScanHeadings(text string, opts ...ScanOption) ([]HeadingRecord, error) {
	if err := checkText(text); err != nil {
		return nil, err
	}
	var cfg scanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := newDocument(text)
	slugger := NewSlugger()
	reserved := false
	reserve := func() {
		if cfg.hasTOC && !reserved {
			slugger.Slug(cfg.tocText)
			reserved = true
		}
	}

	var headings []HeadingRecord
	for i := range doc.lines {
		if cfg.hasTOC && i >= cfg.tocStart {
			reserve()
			if i < cfg.tocEnd {
				continue
			}
		}
		level, headingText, ok := doc.headingAt(i)
		if !ok {
			continue
		}
		headings = append(headings, HeadingRecord{
			Level:     level,
			Text:      headingText,
			LineIndex: i,
			Anchor:    slugger.Slug(headingText),
		})
	}
	reserve()
	return headings, nil
}
