package models

import (
	"fmt"
	"time"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// DocumentEntry records the last processing of a document in the state store
type DocumentEntry struct {
	Status      FileStatus `json:"status"`
	Fingerprint string     `json:"fingerprint"`            // Hash of the options that produced OutputHash
	OutputHash  string     `json:"output_hash,omitempty"`  // SHA-256 of the content written (on success)
	ErrorType   string     `json:"error_type,omitempty"`   // Error category (on failure)
	ProcessedAt time.Time  `json:"processed_at,omitempty"` // Timestamp of successful processing
	LastAttempt time.Time  `json:"last_attempt"`           // Timestamp of the last processing attempt
}

// OutlineEntry is the serialisable form of one outline node
type OutlineEntry struct {
	Level    int            `json:"level" yaml:"level"`
	Text     string         `json:"text" yaml:"text"`
	Anchor   string         `json:"anchor" yaml:"anchor"`
	Line     int            `json:"line" yaml:"line"` // 1-based line number in the document
	Number   string         `json:"number,omitempty" yaml:"number,omitempty"`
	Children []OutlineEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

// TreeLabel implements utils.TreeNode
func (e OutlineEntry) TreeLabel() string {
	label := e.Text
	if e.Number != "" {
		label = e.Number + ". " + label
	}
	return fmt.Sprintf("%s (#%s)", label, e.Anchor)
}

// TreeChildren implements utils.TreeNode
func (e OutlineEntry) TreeChildren() []utils.TreeNode {
	return TreeNodes(e.Children)
}

// TreeNodes converts entries for utils.WriteTree
func TreeNodes(entries []OutlineEntry) []utils.TreeNode {
	nodes := make([]utils.TreeNode, len(entries))
	for i, e := range entries {
		nodes[i] = e
	}
	return nodes
}
