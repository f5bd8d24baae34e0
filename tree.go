package gather

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type treeNode struct {
	name     string
	children []*treeNode
}

// PrintTree writes the entries under root as an indented tree with box-drawing
// connectors. The root itself is not printed. Excluded directories do not
// appear at all.
func PrintTree(w io.Writer, walker *Walker, root string) error {
	root = filepath.Clean(root)
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("error accessing %s: %w", root, err)
	}

	nodes := make(map[string]*treeNode)
	for e := range walker.Walk(root) {
		node := &treeNode{name: filepath.Base(e.Path)}
		nodes[e.Path] = node
		if e.Path == root {
			continue
		}
		if parent, ok := nodes[filepath.Dir(e.Path)]; ok {
			parent.children = append(parent.children, node)
		}
	}

	top, ok := nodes[root]
	if !ok {
		return nil
	}
	return writeTreeNode(w, top, "")
}

func writeTreeNode(w io.Writer, node *treeNode, prefix string) error {
	for i, child := range node.children {
		connector, extension := "├── ", "│   "
		if i == len(node.children)-1 {
			connector, extension = "└── ", "    "
		}
		if _, err := fmt.Fprintln(w, prefix+connector+child.name); err != nil {
			return err
		}
		if err := writeTreeNode(w, child, prefix+extension); err != nil {
			return err
		}
	}
	return nil
}
