package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/txray/txray/tree"
)

// renderTree prints t as an indented outline: one line per node, real
// leaves and groups annotated with their byte range, virtual leaves marked
// "(virtual)", and each group's children indented one level beneath it.
func renderTree(w io.Writer, t tree.Tree) {
	for _, n := range t.Roots {
		renderNode(w, n, 0)
	}
}

func renderNode(w io.Writer, n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	info := n.Information()
	preview := ""
	if info.Value != nil {
		preview = info.Value.Preview()
	}

	switch v := n.(type) {
	case tree.RealLeaf:
		fmt.Fprintf(w, "%s%s [%d:%d] %s%s\n", indent, info.Label,
			v.Location.From, v.Location.To, preview, tagSuffix(info.Tags))
	case tree.VirtualLeaf:
		fmt.Fprintf(w, "%s%s (virtual) %s%s\n", indent, info.Label,
			preview, tagSuffix(info.Tags))
	case tree.Group:
		fmt.Fprintf(w, "%s%s [%d:%d]%s\n", indent, info.Label,
			v.Location.ByteFrom, v.Location.ByteTo, tagSuffix(info.Tags))
		for _, child := range v.Children {
			renderNode(w, child, depth+1)
		}
	}
}

func tagSuffix(tags []tree.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = t.Label
	}
	return " <" + strings.Join(labels, ",") + ">"
}
