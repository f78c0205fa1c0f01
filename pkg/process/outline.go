package process

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sriram-PR/md-toc/pkg/models"
	"github.com/Sriram-PR/md-toc/pkg/toc"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// Outline output formats
const (
	OutlineFormatTree = "tree"
	OutlineFormatJSON = "json"
	OutlineFormatYAML = "yaml"
)

// OutlineFormats lists the accepted outline formats
var OutlineFormats = []string{OutlineFormatTree, OutlineFormatJSON, OutlineFormatYAML}

// OutlineEntries converts an outline forest into its serialisable form.
// Line numbers become 1-based. Nesting is bounded by the six heading levels.
func OutlineEntries(forest []*toc.OutlineNode) []models.OutlineEntry {
	if len(forest) == 0 {
		return nil
	}
	entries := make([]models.OutlineEntry, len(forest))
	for i, n := range forest {
		entries[i] = models.OutlineEntry{
			Level:    n.Heading.Level,
			Text:     n.Heading.Text,
			Anchor:   n.Heading.Anchor,
			Line:     n.Heading.LineIndex + 1,
			Number:   n.SequenceNumber,
			Children: OutlineEntries(n.Children),
		}
	}
	return entries
}

// FormatOutline renders entries as a tree, JSON or YAML. The tree format
// starts with title when it is non-empty.
func FormatOutline(entries []models.OutlineEntry, format, title string) (string, error) {
	if entries == nil {
		entries = []models.OutlineEntry{}
	}

	switch strings.ToLower(format) {
	case OutlineFormatTree:
		var b strings.Builder
		if err := utils.WriteTree(&b, title, models.TreeNodes(entries)); err != nil {
			return "", err
		}
		return b.String(), nil
	case OutlineFormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding outline as JSON: %w", err)
		}
		return string(data) + "\n", nil
	case OutlineFormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return "", fmt.Errorf("encoding outline as YAML: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: unknown outline format '%s' (supported: %s)",
			utils.ErrUsage, format, strings.Join(OutlineFormats, ", "))
	}
}
