package utils

import (
	"bufio"
	"fmt"
	"io"
)

const (
	indentPrefix    = "    "
	entryPrefix     = "├── "
	lastEntryPrefix = "└── "
	verticalLine    = "│   "
)

// TreeNode is anything that can be drawn as a line in a text tree.
type TreeNode interface {
	TreeLabel() string
	TreeChildren() []TreeNode
}

// WriteTree writes roots as a box-drawing text tree, one node per line.
// An optional title line is written first when title is non-empty.
func WriteTree(w io.Writer, title string, roots []TreeNode) error {
	writer := bufio.NewWriter(w)

	if title != "" {
		if _, err := fmt.Fprintf(writer, "%s\n", title); err != nil {
			return err
		}
	}
	if err := writeTreeLevel(writer, roots, ""); err != nil {
		return err
	}
	return writer.Flush()
}

// writeTreeLevel writes one sibling list and descends into each node's children.
func writeTreeLevel(writer io.Writer, nodes []TreeNode, currentIndent string) error {
	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := entryPrefix
		if isLast {
			connector = lastEntryPrefix
		}
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", currentIndent, connector, node.TreeLabel()); err != nil {
			return err
		}

		children := node.TreeChildren()
		if len(children) == 0 {
			continue
		}
		nextIndent := currentIndent
		if isLast {
			nextIndent += indentPrefix
		} else {
			nextIndent += verticalLine
		}
		if err := writeTreeLevel(writer, children, nextIndent); err != nil {
			return err
		}
	}
	return nil
}
