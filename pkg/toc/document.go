package toc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

const byteOrderMark = "\ufeff"

// document is a line-oriented view of a Markdown text shared by the scanner
// and the composer. raw keeps each line with its original terminator so that
// untouched lines can be written back byte-for-byte.
type document struct {
	raw     []string
	lines   []string
	inCode  []bool
	newline string
}

func newDocument(text string) *document {
	doc := &document{newline: detectNewline(text)}
	if text == "" {
		return doc
	}

	doc.raw = strings.SplitAfter(text, "\n")
	if doc.raw[len(doc.raw)-1] == "" {
		doc.raw = doc.raw[:len(doc.raw)-1]
	}
	doc.lines = make([]string, len(doc.raw))
	for i, r := range doc.raw {
		line := strings.TrimSuffix(r, "\n")
		doc.lines[i] = strings.TrimSuffix(line, "\r")
	}
	doc.lines[0] = strings.TrimPrefix(doc.lines[0], byteOrderMark)
	doc.inCode = classifyCode(doc.lines)
	return doc
}

// detectNewline returns the first line break found in text, "\n" by default.
func detectNewline(text string) string {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// checkText rejects input that is not a text document.
func checkText(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: input is not valid UTF-8 text", utils.ErrParsing)
	}
	if i := strings.IndexByte(text, 0); i >= 0 {
		return fmt.Errorf("%w: input contains a NUL byte at offset %d", utils.ErrParsing, i)
	}
	return nil
}

// headingAt reports whether line i is an ATX heading with non-empty text
// outside fenced code.
func (d *document) headingAt(i int) (level int, text string, ok bool) {
	if d.inCode[i] {
		return 0, "", false
	}
	level, text, ok = parseATX(d.lines[i])
	if !ok || text == "" {
		return 0, "", false
	}
	return level, text, true
}

// firstHeading returns the index of the first heading line, or -1.
func (d *document) firstHeading() int {
	for i := range d.lines {
		if _, _, ok := d.headingAt(i); ok {
			return i
		}
	}
	return -1
}

// insertionLine is where a new TOC block goes when the document has none.
func (d *document) insertionLine() int {
	if i := d.firstHeading(); i >= 0 {
		return i
	}
	return 0
}

// locate finds a previously generated TOC block. It returns the half-open
// line range [start, end) covering the heading, the optional comment line
// and the list lines.
func (d *document) locate(level int, text, comment string) (start, end int, found bool) {
	for i := range d.lines {
		l, t, ok := d.headingAt(i)
		if !ok || l != level || t != text {
			continue
		}

		j := i + 1
		if j < len(d.lines) && !d.inCode[j] && isCommentLine(d.lines[j]) {
			if comment == "" || strings.TrimSpace(d.lines[j]) != comment {
				continue
			}
			j++
		}
		for j < len(d.lines) && !d.inCode[j] && listLinePattern.MatchString(d.lines[j]) {
			j++
		}
		return i, j, true
	}
	return 0, 0, false
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
