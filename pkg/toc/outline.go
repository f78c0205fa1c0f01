package toc

import (
	"fmt"
	"strconv"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// Included reports whether a heading of the given level passes the
// skip/max filter. maxLevel 0 means unlimited.
func Included(level, skipLevel, maxLevel int) bool {
	if level <= skipLevel {
		return false
	}
	return maxLevel == 0 || level <= skipLevel+maxLevel
}

// BuildOutline arranges the headings that pass the level filter into a
// forest. Excluded headings are dropped; their children attach to the
// nearest included heading of lower level, or become roots.
func BuildOutline(headings []HeadingRecord, skipLevel, maxLevel int, numbered bool) ([]*OutlineNode, error) {
	if skipLevel < 0 {
		return nil, fmt.Errorf("%w: skip level must be >= 0, got %d", utils.ErrConfigValidation, skipLevel)
	}
	if maxLevel < 0 {
		return nil, fmt.Errorf("%w: max level must be >= 0, got %d", utils.ErrConfigValidation, maxLevel)
	}

	type openNode struct {
		level int
		node  *OutlineNode
	}

	var roots []*OutlineNode
	var stack []openNode
	for _, h := range headings {
		if !Included(h.Level, skipLevel, maxLevel) {
			continue
		}
		node := &OutlineNode{Heading: h}
		for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, openNode{level: h.Level, node: node})
	}

	if numbered {
		assignNumbers(roots)
	}
	return roots, nil
}

// assignNumbers gives every node a dotted sequence number by sibling position.
func assignNumbers(roots []*OutlineNode) {
	type siblings struct {
		prefix string
		nodes  []*OutlineNode
	}

	work := []siblings{{nodes: roots}}
	for len(work) > 0 {
		group := work[len(work)-1]
		work = work[:len(work)-1]
		for i, n := range group.nodes {
			n.SequenceNumber = strconv.Itoa(i + 1)
			if group.prefix != "" {
				n.SequenceNumber = group.prefix + "." + n.SequenceNumber
			}
			if len(n.Children) > 0 {
				work = append(work, siblings{prefix: n.SequenceNumber, nodes: n.Children})
			}
		}
	}
}

// Walk visits the forest depth-first in pre-order. depth is 0 for roots.
func Walk(forest []*OutlineNode, fn func(n *OutlineNode, depth int)) {
	type item struct {
		node  *OutlineNode
		depth int
	}

	stack := make([]item, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, item{node: forest[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(it.node, it.depth)
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: it.node.Children[i], depth: it.depth + 1})
		}
	}
}
