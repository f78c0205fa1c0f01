package process

import (
	"fmt"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffContextLines is the number of unchanged lines around each hunk
const DiffContextLines = 3

// UnifiedDiff returns a unified diff between the old and new text of name,
// labelled a/<name> and b/<name>. Equal texts give an empty diff.
func UnifiedDiff(name, before, after string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: filepath.ToSlash(filepath.Join("a", name)),
		ToFile:   filepath.ToSlash(filepath.Join("b", name)),
		Context:  DiffContextLines,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("computing diff for '%s': %w", name, err)
	}
	return text, nil
}
