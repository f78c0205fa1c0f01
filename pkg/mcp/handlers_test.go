package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/md-toc/pkg/config"
	"github.com/Sriram-PR/md-toc/pkg/models"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := config.DefaultConfig()
	cfg.Newlines = config.NewlinesLinux
	s, err := NewServer(&ServerConfig{
		Config:    &cfg,
		Comment:   "Generated by md-toc",
		Transport: "stdio",
		Logger:    logger,
	})
	require.NoError(t, err)
	return s
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text
}

func TestNewServerRequiresConfig(t *testing.T) {
	_, err := NewServer(&ServerConfig{})
	assert.ErrorIs(t, err, utils.ErrConfigValidation)
}

func TestHandleGenerateTOC(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		args     map[string]any
		expected string
		changed  bool
	}{
		{
			name:     "configured defaults",
			args:     map[string]any{"markdown": "# A\n## B\n"},
			expected: "# Contents\n<!-- Generated by md-toc -->\n- [A](#a)\n  - [B](#b)\n\n# A\n## B\n",
			changed:  true,
		},
		{
			name: "overrides",
			args: map[string]any{
				"markdown":      "# A\n## B\n",
				"heading_text":  "Index",
				"heading_level": float64(2),
				"numbered":      true,
				"alt_list_char": true,
				"comment":       "",
			},
			expected: "## Index\n* 1. [A](#a)\n  * 1.1. [B](#b)\n\n# A\n## B\n",
			changed:  true,
		},
		{
			name:     "already up to date",
			args:     map[string]any{"markdown": "# Contents\n<!-- Generated by md-toc -->\n- [A](#a)\n\n# A\n"},
			expected: "# Contents\n<!-- Generated by md-toc -->\n- [A](#a)\n\n# A\n",
			changed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleGenerateTOC(context.Background(), callRequest("generate_toc", tt.args))
			require.NoError(t, err)
			require.False(t, result.IsError, resultText(t, result))

			var payload struct {
				Markdown string `json:"markdown"`
				Changed  bool   `json:"changed"`
			}
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
			assert.Equal(t, tt.expected, payload.Markdown)
			assert.Equal(t, tt.changed, payload.Changed)
		})
	}
}

func TestHandleGenerateTOC_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"missing markdown", map[string]any{}, "markdown"},
		{"bad heading level", map[string]any{"markdown": "# A\n", "heading_level": float64(9)}, "heading level"},
		{"negative skip level", map[string]any{"markdown": "# A\n", "skip_level": float64(-1)}, "skip level"},
		{"not text", map[string]any{"markdown": "# A\x00\n"}, "NUL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleGenerateTOC(context.Background(), callRequest("generate_toc", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.wantMsg)
		})
	}
}

func TestHandleExtractOutline(t *testing.T) {
	s := newTestServer(t)
	doc := "# Contents\n<!-- Generated by md-toc -->\n- [A](#a)\n\n# A\n## B\n### C\n"

	t.Run("json", func(t *testing.T) {
		result, err := s.handleExtractOutline(context.Background(), callRequest("extract_outline", map[string]any{
			"markdown": doc,
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)

		var entries []models.OutlineEntry
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "A", entries[0].Text)
		assert.Equal(t, 5, entries[0].Line)
		require.Len(t, entries[0].Children, 1)
		assert.Equal(t, "b", entries[0].Children[0].Anchor)
	})

	t.Run("filtered tree", func(t *testing.T) {
		result, err := s.handleExtractOutline(context.Background(), callRequest("extract_outline", map[string]any{
			"markdown":  doc,
			"format":    "tree",
			"max_level": float64(2),
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Equal(t, "└── A (#a)\n    └── B (#b)\n", resultText(t, result))
	})

	t.Run("unknown format", func(t *testing.T) {
		result, err := s.handleExtractOutline(context.Background(), callRequest("extract_outline", map[string]any{
			"markdown": doc,
			"format":   "xml",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestTOCRequestFromArguments(t *testing.T) {
	req, err := tocRequest(callRequest("generate_toc", map[string]any{
		"markdown":  "# A\n",
		"max_level": float64(3),
		"numbered":  false,
	}))
	require.NoError(t, err)
	assert.Equal(t, "# A\n", req.Markdown)
	assert.Nil(t, req.HeadingText)
	assert.Nil(t, req.SkipLevel)
	require.NotNil(t, req.MaxLevel)
	assert.Equal(t, 3, *req.MaxLevel)
	require.NotNil(t, req.Numbered)
	assert.False(t, *req.Numbered)
}

func TestFormatJSON(t *testing.T) {
	out := formatJSON(map[string]interface{}{"changed": true})
	assert.Equal(t, "{\n  \"changed\": true\n}", out)
}
