package toc

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns heading text into a GitHub-style anchor without
// de-duplication.
func Slugify(headingText string) string {
	plain := norm.NFC.String(strings.TrimSpace(plainText(headingText)))

	var b strings.Builder
	b.Grow(len(plain))
	for _, r := range strings.ToLower(plain) {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('-')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// plainText renders inline Markdown to the text a reader would see.
// Raw HTML is dropped, link and image labels are kept.
func plainText(headingText string) string {
	src := []byte("# " + headingText)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	heading, ok := doc.FirstChild().(*ast.Heading)
	if !ok {
		return headingText
	}

	var buf bytes.Buffer
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			value := util.ResolveEntityNames(node.Segment.Value(src))
			value = util.ResolveNumericReferences(value)
			buf.Write(util.UnescapePunctuations(value))
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// Slugger hands out unique anchors for one document.
type Slugger struct {
	occurrences map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{occurrences: make(map[string]int)}
}

// Slug returns the anchor for headingText, suffixed with -1, -2, ... when
// the base slug is already taken. Candidates that collide with an existing
// anchor are skipped.
func (s *Slugger) Slug(headingText string) string {
	base := Slugify(headingText)
	slug := base
	for {
		if _, taken := s.occurrences[slug]; !taken {
			break
		}
		s.occurrences[base]++
		slug = base + "-" + strconv.Itoa(s.occurrences[base])
	}
	s.occurrences[slug] = 0
	return slug
}
