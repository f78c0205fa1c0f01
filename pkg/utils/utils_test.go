package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

// --- CategorizeError Tests ---

func TestCategorizeError_NilError(t *testing.T) {
	result := CategorizeError(nil)
	if result != "None" {
		t.Errorf("CategorizeError(nil) = %q, want %q", result, "None")
	}
}

func TestCategorizeError_SentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Parsing", ErrParsing, "Content_ParsingOther"},
		{"ConfigValidation", ErrConfigValidation, "Config_Validation"},
		{"Usage", ErrUsage, "Usage"},
		{"Filesystem", ErrFilesystem, "Filesystem_Other"},
		{"Database", ErrDatabase, "Database_Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CategorizeError(tt.err)
			if result != tt.expected {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCategorizeError_WrappedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "InvalidUTF8",
			err:      fmt.Errorf("%w: input is not valid UTF-8 text", ErrParsing),
			expected: "Content_Encoding",
		},
		{
			name:     "NULByte",
			err:      fmt.Errorf("%w: input contains a NUL byte at offset 3", ErrParsing),
			expected: "Content_Binary",
		},
		{
			name:     "HeadingLevel",
			err:      fmt.Errorf("%w: heading level 7 is outside 1..6", ErrConfigValidation),
			expected: "Config_Validation",
		},
		{
			name:     "FilesystemNotExist",
			err:      fmt.Errorf("%w: read doc.md: %w", ErrFilesystem, os.ErrNotExist),
			expected: "Filesystem_NotExist",
		},
		{
			name:     "FilesystemPermission",
			err:      fmt.Errorf("%w: write doc.md: %w", ErrFilesystem, os.ErrPermission),
			expected: "Filesystem_Permission",
		},
		{
			name:     "BareNotExist",
			err:      fmt.Errorf("open doc.md: %w", os.ErrNotExist),
			expected: "Filesystem_NotExist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CategorizeError(tt.err)
			if result != tt.expected {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCategorizeError_ContextErrors(t *testing.T) {
	if got := CategorizeError(context.Canceled); got != "System_ContextCanceled" {
		t.Errorf("CategorizeError(context.Canceled) = %q", got)
	}
	if got := CategorizeError(fmt.Errorf("waiting: %w", context.DeadlineExceeded)); got != "System_ContextDeadlineExceeded" {
		t.Errorf("CategorizeError(deadline) = %q", got)
	}
}

func TestCategorizeError_Unknown(t *testing.T) {
	result := CategorizeError(errors.New("something odd"))
	if result != "Unknown" {
		t.Errorf("CategorizeError(unknown) = %q, want %q", result, "Unknown")
	}
}

// --- CalculateStringSHA256 Tests ---

func TestCalculateStringSHA256(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // SHA256 hex output
	}{
		{
			name:     "EmptyString",
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "HelloWorld",
			input:    "hello world",
			expected: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:     "SimpleText",
			input:    "test",
			expected: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateStringSHA256(tt.input)
			if result != tt.expected {
				t.Errorf("CalculateStringSHA256(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// --- WriteTree Tests ---

type testNode struct {
	label    string
	children []*testNode
}

func (n *testNode) TreeLabel() string { return n.label }

func (n *testNode) TreeChildren() []TreeNode {
	out := make([]TreeNode, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func TestWriteTree(t *testing.T) {
	roots := []TreeNode{
		&testNode{label: "Intro", children: []*testNode{
			{label: "Setup"},
			{label: "Usage", children: []*testNode{{label: "Flags"}}},
		}},
		&testNode{label: "License"},
	}

	var sb strings.Builder
	if err := WriteTree(&sb, "doc.md", roots); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}

	want := strings.Join([]string{
		"doc.md",
		"├── Intro",
		"│   ├── Setup",
		"│   └── Usage",
		"│       └── Flags",
		"└── License",
		"",
	}, "\n")
	if sb.String() != want {
		t.Errorf("WriteTree() =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestWriteTree_Empty(t *testing.T) {
	var sb strings.Builder
	if err := WriteTree(&sb, "", nil); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}
	if sb.String() != "" {
		t.Errorf("WriteTree(nil) = %q, want empty", sb.String())
	}
}
