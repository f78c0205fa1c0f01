package config

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// Newline formats
const (
	NewlinesLinux     = "linux"
	NewlinesMicrosoft = "microsoft"
	NewlinesNative    = "native"
)

var newlineFormats = map[string]string{
	NewlinesLinux:     NewlinesLinux,
	NewlinesMicrosoft: NewlinesMicrosoft,
	NewlinesNative:    NewlinesNative,
	"dos":             NewlinesMicrosoft,
	"macos":           NewlinesLinux,
	"msft":            NewlinesMicrosoft,
	"unix":            NewlinesLinux,
	"windows":         NewlinesMicrosoft,
}

// NewlineFormatNames lists every accepted format name and alias, sorted.
func NewlineFormatNames() []string {
	names := make([]string, 0, len(newlineFormats))
	for name := range newlineFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveNewlines maps a format name or alias to linux, microsoft or native.
func ResolveNewlines(format string) (string, error) {
	canonical, ok := newlineFormats[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w: unknown newline format '%s' (choose from %s)",
			utils.ErrConfigValidation, format, strings.Join(NewlineFormatNames(), ", "))
	}
	return canonical, nil
}

// ConvertNewlines rewrites every line ending of text for a canonical format.
// native means CRLF on Windows and leaves text untouched elsewhere.
func ConvertNewlines(text, format string) string {
	if format == NewlinesNative {
		if runtime.GOOS != "windows" {
			return text
		}
		format = NewlinesMicrosoft
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if format == NewlinesMicrosoft {
		return strings.ReplaceAll(normalized, "\n", "\r\n")
	}
	return normalized
}
