package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/md-toc/pkg/models"
	"github.com/Sriram-PR/md-toc/pkg/orchestrate"
)

const sampleDoc = "# A\n\n## B\n\ntext\n"

type runResult struct {
	code   int
	stdout string
	stderr string
}

// run executes md-toc inside a fresh working directory
func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFilterStdinToStdout(t *testing.T) {
	workdir(t)

	res := run(t, sampleDoc, "-L")
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.Equal(t, "# Contents\n<!-- Generated by md-toc -->\n- [A](#a)\n  - [B](#b)\n\n# A\n\n## B\n\ntext\n", res.stdout)
	assert.Empty(t, res.stderr)

	// Feeding the output back changes nothing
	again := run(t, res.stdout, "-L", "-")
	require.Equal(t, orchestrate.StatusSuccess, again.code)
	assert.Equal(t, res.stdout, again.stdout)
}

func TestFilterOptions(t *testing.T) {
	workdir(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "heading options",
			args:     []string{"-L", "-T", "Index", "-H", "2", "-#", "--no-comment"},
			expected: "## Index ##\n- [A](#a)\n  - [B](#b)\n\n# A\n\n## B\n\ntext\n",
		},
		{
			name:     "numbered alternate bullets",
			args:     []string{"-L", "-n", "-l", "-c", "custom"},
			expected: "# Contents\n<!-- custom -->\n* 1. [A](#a)\n  * 1.1. [B](#b)\n\n# A\n\n## B\n\ntext\n",
		},
		{
			name:     "skip level",
			args:     []string{"-L", "-S", "1", "--nocomment"},
			expected: "# Contents\n- [B](#b)\n\n# A\n\n## B\n\ntext\n",
		},
		{
			name:     "max level",
			args:     []string{"-L", "-X", "1", "--no-comment"},
			expected: "# Contents\n- [A](#a)\n\n# A\n\n## B\n\ntext\n",
		},
		{
			name:     "microsoft newlines",
			args:     []string{"-M", "--no-comment", "-X", "1"},
			expected: "# Contents\r\n- [A](#a)\r\n\r\n# A\r\n\r\n## B\r\n\r\ntext\r\n",
		},
		{
			name:     "newline alias",
			args:     []string{"--line-endings", "dos", "--no-comment", "-X", "1"},
			expected: "# Contents\r\n- [A](#a)\r\n\r\n# A\r\n\r\n## B\r\n\r\ntext\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, sampleDoc, tt.args...)
			require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
			assert.Equal(t, tt.expected, res.stdout)
		})
	}
}

func TestFilterToOutputFile(t *testing.T) {
	dir := workdir(t)
	in := writeFile(t, dir, "in.md", sampleDoc)
	out := filepath.Join(dir, "out.md")

	res := run(t, "", "-L", "--no-comment", "-o", out, in)
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "# Contents\n- [A](#a)\n  - [B](#b)\n\n# A\n\n## B\n\ntext\n", readFile(t, out))
	assert.Equal(t, sampleDoc, readFile(t, in))
}

func TestFilterFailure(t *testing.T) {
	workdir(t)

	res := run(t, "# A\x00\n")
	assert.Equal(t, orchestrate.StatusFailure, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "NUL")

	res = run(t, "", "missing.md")
	assert.Equal(t, orchestrate.StatusFailure, res.code)
	assert.Contains(t, res.stderr, "missing.md")
}

func TestUsageErrors(t *testing.T) {
	dir := workdir(t)
	a := writeFile(t, dir, "a.md", sampleDoc)
	b := writeFile(t, dir, "b.md", sampleDoc)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"several inputs", []string{a, b}, "use '--inplace'"},
		{"same input and output", []string{"-o", a, a}, "the same"},
		{"output with inplace", []string{"-I", "-o", b, a}, "output files"},
		{"stdin with inplace", []string{"-I", "-"}, "stdin"},
		{"implicit stdin with inplace", []string{"-I"}, "stdin"},
		{"changed without inplace", []string{"-C", a}, "--changed"},
		{"diff without inplace", []string{"--show-diff", a}, "--diff"},
		{"changed and diff", []string{"-I", "-C", "-D", a}, "changed"},
		{"two newline formats", []string{"-L", "-M", a}, "linux"},
		{"comment and no comment", []string{"-c", "x", "--no-comment", a}, "comment"},
		{"unknown flag", []string{"--bogus", a}, "bogus"},
		{"bad heading level", []string{"-H", "7", a}, "heading"},
		{"negative skip level", []string{"-S", "-1", a}, "skip"},
		{"bad newline format", []string{"--newlines", "mainframe", a}, "mainframe"},
		{"comment closing marker", []string{"-c", "a --> b", a}, "-->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			assert.Equal(t, orchestrate.StatusFailure, res.code)
			assert.Contains(t, res.stderr, tt.wantMsg)
			assert.Empty(t, res.stdout)
		})
	}

	// Nothing was touched
	assert.Equal(t, sampleDoc, readFile(t, a))
	assert.Equal(t, sampleDoc, readFile(t, b))
}

func TestInPlace(t *testing.T) {
	dir := workdir(t)
	a := writeFile(t, dir, "a.md", sampleDoc)
	b := writeFile(t, dir, "b.md", "# Only\n")

	res := run(t, "", "-L", "-I", "-C", a, b)
	require.Equal(t, orchestrate.StatusChanged, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Updated "+a+"\n")
	assert.Contains(t, res.stderr, "Updated "+b+"\n")
	assert.Empty(t, res.stdout)
	assert.Equal(t, "# Contents\n<!-- Generated by md-toc -->\n- [Only](#only)\n\n# Only\n", readFile(t, b))

	// Up to date now
	res = run(t, "", "-L", "--in-place", "--show-changed", a, b)
	assert.Equal(t, orchestrate.StatusSuccess, res.code)
	assert.Empty(t, res.stderr)

	// Without -C changes are silent and the status is 0
	c := writeFile(t, dir, "c.md", "# C\n")
	res = run(t, "", "-L", "-I", c)
	assert.Equal(t, orchestrate.StatusSuccess, res.code)
	assert.Empty(t, res.stderr)
	assert.Contains(t, readFile(t, c), "- [C](#c)")
}

func TestInPlaceDiff(t *testing.T) {
	dir := workdir(t)
	a := writeFile(t, dir, "a.md", sampleDoc)

	res := run(t, "", "-L", "-I", "-D", "--no-comment", a)
	require.Equal(t, orchestrate.StatusChanged, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Updated "+a)
	assert.Contains(t, res.stdout, "--- "+filepath.ToSlash(filepath.Join("a", a))+"\n")
	assert.Contains(t, res.stdout, "+++ "+filepath.ToSlash(filepath.Join("b", a))+"\n")
	assert.Contains(t, res.stdout, "+# Contents\n")
	assert.Contains(t, res.stdout, "+  - [B](#b)\n")
}

func TestInPlaceFailureIsolation(t *testing.T) {
	dir := workdir(t)
	missing := filepath.Join(dir, "missing.md")
	good := writeFile(t, dir, "good.md", sampleDoc)

	res := run(t, "", "-L", "-I", "-C", missing, good)
	assert.Equal(t, orchestrate.StatusFailure, res.code)
	assert.Contains(t, res.stderr, "md-toc: filesystem error: reading '"+missing+"'")
	assert.Contains(t, res.stderr, "Updated "+good)
	assert.Contains(t, readFile(t, good), "- [A](#a)")
}

func TestPreCommit(t *testing.T) {
	dir := workdir(t)
	a := writeFile(t, dir, "a.md", sampleDoc)

	res := run(t, "", "-L", "--pre-commit", a)
	require.Equal(t, orchestrate.StatusChanged, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Updated "+a)
	assert.Contains(t, readFile(t, a), "<!-- Generated by md-toc pre-commit hook -->\n")

	res = run(t, "", "-L", "--pre-commit", a)
	assert.Equal(t, orchestrate.StatusSuccess, res.code)

	// --diff takes over from --changed
	b := writeFile(t, dir, "b.md", sampleDoc)
	res = run(t, "", "-L", "--pre-commit", "-D", b)
	assert.Equal(t, orchestrate.StatusChanged, res.code)
	assert.Contains(t, res.stdout, "+<!-- Generated by md-toc pre-commit hook -->\n")
}

func TestStateDir(t *testing.T) {
	dir := workdir(t)
	a := writeFile(t, dir, "a.md", sampleDoc)
	stateDir := filepath.Join(dir, "state")

	res := run(t, "", "-L", "-I", "-C", "--state-dir", stateDir, a)
	require.Equal(t, orchestrate.StatusChanged, res.code, res.stderr)
	assert.DirExists(t, stateDir)

	res = run(t, "", "-L", "-I", "-C", "--state-dir", stateDir, a)
	assert.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
}

func TestConfigFile(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, ".md-toc.yaml", "heading_text: Index\nnumbered: true\ncomment: \"\"\nnewlines: unix\n")

	res := run(t, "# A\n")
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.Equal(t, "# Index\n- 1. [A](#a)\n\n# A\n", res.stdout)

	// Flags beat the file
	res = run(t, "# A\n", "-T", "TOC", "-c", "note")
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.Equal(t, "# TOC\n<!-- note -->\n- 1. [A](#a)\n\n# A\n", res.stdout)

	// An explicit file must exist
	res = run(t, "# A\n", "--config", filepath.Join(dir, "nope.yaml"))
	assert.Equal(t, orchestrate.StatusFailure, res.code)
}

func TestEnvironmentOverrides(t *testing.T) {
	workdir(t)
	t.Setenv("MDTOC_HEADING_TEXT", "From Env")
	t.Setenv("MDTOC_NUMBERED", "true")

	res := run(t, "# A\n", "-L")
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "# From Env\n<!-- Generated by md-toc -->\n- 1. [A](#a)\n"), res.stdout)
}

func TestCommentOptionsFromConfig(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, ".md-toc.yaml", "comment_full_command: true\n")

	res := run(t, "# A\n", "-L", "-X", "1")
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "<!-- Generated by 'md-toc -L -X 1' -->\n")
}

func TestOutline(t *testing.T) {
	dir := workdir(t)
	path := writeFile(t, dir, "doc.md", "# A\n## B\n### C\n# D\n")

	res := run(t, "", "outline", path)
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.Equal(t, path+"\n├── A (#a)\n│   └── B (#b)\n│       └── C (#c)\n└── D (#d)\n", res.stdout)

	res = run(t, "# A\n## B\n", "outline", "-f", "json", "-n")
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	var entries []models.OutlineEntry
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "1", entries[0].Number)
	assert.Equal(t, "1.1", entries[0].Children[0].Number)

	res = run(t, "# A\n## B\n", "outline", "-f", "yaml", "-X", "1")
	require.Equal(t, orchestrate.StatusSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "text: A")
	assert.NotContains(t, res.stdout, "text: B")

	res = run(t, "# A\n", "outline", "-f", "xml")
	assert.Equal(t, orchestrate.StatusFailure, res.code)
	assert.Contains(t, res.stderr, "xml")
}

func TestVersion(t *testing.T) {
	workdir(t)

	for _, arg := range []string{"-V", "--version"} {
		res := run(t, "", arg)
		assert.Equal(t, orchestrate.StatusSuccess, res.code)
		assert.Equal(t, "md-toc version "+version+"\n", res.stdout)
	}

	res := run(t, "", "version")
	assert.Equal(t, orchestrate.StatusSuccess, res.code)
	assert.True(t, strings.HasPrefix(res.stdout, "md-toc version "+version+"\n"))
}

func TestCompletion(t *testing.T) {
	workdir(t)

	res := run(t, "", "--completion-help")
	assert.Equal(t, orchestrate.StatusSuccess, res.code)
	assert.Contains(t, res.stdout, `eval "$(md-toc --bash-completion)"`)

	res = run(t, "", "--bash-completion")
	assert.Equal(t, orchestrate.StatusSuccess, res.code)
	assert.Contains(t, res.stdout, "bash completion")
}
