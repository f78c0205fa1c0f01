package toc

import (
	"strings"
)

// Compose places block into original. A TOC block left by a previous run
// with the same heading and comment is replaced in place; otherwise the
// block is inserted before the first heading, or at the start when there
// are no headings. Lines outside the block are kept byte-for-byte and a
// leading byte order mark stays at the start of the output. A prior block
// without a comment line counts as ours, so adding a comment for the first
// time replaces it; a block with a different comment does not, and a second
// block is inserted.
func Compose(original string, block TocBlock) string {
	doc := newDocument(original)
	nl := doc.newline

	var rendered strings.Builder
	for _, line := range block.Lines() {
		rendered.WriteString(line)
		rendered.WriteString(nl)
	}

	var out strings.Builder
	out.Grow(len(original) + rendered.Len() + 2*len(nl))
	if len(doc.raw) > 0 && strings.HasPrefix(doc.raw[0], byteOrderMark) {
		out.WriteString(byteOrderMark)
		doc.raw[0] = strings.TrimPrefix(doc.raw[0], byteOrderMark)
	}

	level, text, _ := parseATX(block.HeadingLine)
	if start, end, found := doc.locate(level, text, block.CommentLine); found {
		writeLines(&out, doc.raw[:start])
		out.WriteString(rendered.String())
		writeLines(&out, doc.raw[end:])
		return out.String()
	}

	at := doc.insertionLine()
	writeLines(&out, doc.raw[:at])
	if at > 0 && !isBlank(doc.lines[at-1]) {
		out.WriteString(nl)
	}
	out.WriteString(rendered.String())
	if at < len(doc.raw) {
		out.WriteString(nl)
		writeLines(&out, doc.raw[at:])
	}
	return out.String()
}

func writeLines(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString(line)
	}
}
