package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

func sampleOutline() []OutlineEntry {
	return []OutlineEntry{
		{Level: 1, Text: "Intro", Anchor: "intro", Line: 1, Number: "1", Children: []OutlineEntry{
			{Level: 2, Text: "Setup", Anchor: "setup", Line: 3, Number: "1.1"},
		}},
	}
}

func TestOutlineEntry_Tree(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, utils.WriteTree(&sb, "", TreeNodes(sampleOutline())))
	assert.Equal(t, "└── 1. Intro (#intro)\n    └── 1.1. Setup (#setup)\n", sb.String())
}

func TestOutlineEntry_Serialisation(t *testing.T) {
	data, err := json.Marshal(sampleOutline())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"anchor":"setup"`)
	assert.Contains(t, string(data), `"number":"1.1"`)

	out, err := yaml.Marshal(sampleOutline())
	require.NoError(t, err)
	assert.Contains(t, string(out), "text: Intro")
	assert.Contains(t, string(out), "children:")
}

func TestOutlineEntry_OmitsEmptyNumber(t *testing.T) {
	data, err := json.Marshal(OutlineEntry{Level: 1, Text: "A", Anchor: "a", Line: 1})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "number")
	assert.NotContains(t, string(data), "children")
}
