package models

import (
	"errors"
	"strings"
)

// SkipChildren can be returned by a WalkFunc to leave the children of the
// current block unvisited.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every block of a tree. depth is 0 for the root.
type WalkFunc func(b Block, depth int) error

// Walk visits b and its loaded descendants in document order.
func Walk(b Block, fn WalkFunc) error {
	return walk(b, 0, fn)
}

func walk(b Block, depth int, fn WalkFunc) error {
	if err := fn(b, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range ChildrenOf(b) {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// PlainTextTree returns the plain text of every block in the tree, one block
// per line. Blocks without text are skipped.
func PlainTextTree(b Block) string {
	var lines []string
	_ = Walk(b, func(b Block, _ int) error {
		if text := b.ToPlainText(); text != "" {
			lines = append(lines, text)
		}
		return nil
	})
	return strings.Join(lines, "\n")
}

// CountBlocks returns the number of blocks in the tree rooted at b.
func CountBlocks(b Block) int {
	n := 0
	_ = Walk(b, func(Block, int) error {
		n++
		return nil
	})
	return n
}
