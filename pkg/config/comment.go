package config

import (
	"path/filepath"
	"strings"
	"time"
)

// PreCommitSuffix is appended to the comment when running as a pre-commit hook.
const PreCommitSuffix = " pre-commit hook"

// commentSanitizer keeps argument text from ending the HTML comment or
// splitting it over several lines.
var commentSanitizer = strings.NewReplacer("-->", "--&gt;", "\r", " ", "\n", " ")

// CommentOptions selects what goes into a generated comment
type CommentOptions struct {
	FullCommand bool   // quote the whole command line instead of the program name
	Datestamp   bool   // append the UTC generation time
	Suffix      string // e.g. PreCommitSuffix
}

// GenerateComment builds the "Generated by ..." comment text. Callers
// compute it once per run and pass the result to the generator as a plain
// string.
func GenerateComment(prog string, argv []string, now time.Time, opts CommentOptions) string {
	command := filepath.Base(prog)
	if opts.FullCommand {
		command = "'" + strings.Join(append([]string{prog}, argv...), " ") + "'"
	}

	var b strings.Builder
	b.WriteString("Generated by ")
	b.WriteString(command)
	if opts.Datestamp {
		b.WriteString(" on ")
		b.WriteString(now.UTC().Format("2006-01-02T15:04:05.000000"))
		b.WriteString("Z")
	}
	b.WriteString(opts.Suffix)

	return commentSanitizer.Replace(b.String())
}
