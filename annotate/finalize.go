package annotate

import (
	"strconv"

	"github.com/txray/txray/tree"
)

// Annotations runs the three finalization passes over the span's
// accumulated tree and returns the public, read-only Tree:
//
//  1. inject appendices: place every pending retroactive annotation as a
//     virtual leaf immediately before or after the real leaf whose byte
//     range it was bookmarked against;
//  2. inject paths: assign each node its position-based path from the
//     root;
//  3. bake labels: move the reserved "annotation" auxiliary-data entry
//     into Label where present, and stamp enumerated-group labels with
//     their ordinal position among their enumerated sibling groups.
func (s Span) Annotations() tree.Tree {
	withAppendices := injectAppendices(s.treeAcc, s.appendices.items)
	withPaths := injectPaths(withAppendices, nil)

	out := make([]tree.Node, len(withPaths))
	for i, n := range withPaths {
		// Every root is baked with enumeration 0: a root has no
		// parent to enumerate it among siblings, matching the
		// original implementation exactly.
		out[i] = bakeAnnotations(n, 0)
	}
	return tree.FromNodes(out)
}

func injectAppendices(nodes []tree.Node, apps []appendix) []tree.Node {
	out := make([]tree.Node, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case tree.Group:
			v.Children = injectAppendices(v.Children, apps)
			out = append(out, v)
		case tree.RealLeaf:
			from, to := v.Location.From, v.Location.To
			for _, a := range apps {
				if a.place == placeBefore && a.from == from && a.to == to {
					out = append(out, tree.VirtualLeaf{Info: a.info})
				}
			}
			out = append(out, v)
			for _, a := range apps {
				if a.place == placeAfter && a.from == from && a.to == to {
					out = append(out, tree.VirtualLeaf{Info: a.info})
				}
			}
		default:
			out = append(out, n)
		}
	}
	return out
}

func injectPaths(nodes []tree.Node, prefix []string) []tree.Node {
	out := make([]tree.Node, len(nodes))
	for i, n := range nodes {
		p := make([]string, len(prefix), len(prefix)+1)
		copy(p, prefix)
		p = append(p, strconv.Itoa(i))

		switch v := n.(type) {
		case tree.Group:
			v.NodePath = p
			v.Children = injectPaths(v.Children, p)
			out[i] = v
		case tree.RealLeaf:
			v.NodePath = p
			out[i] = v
		case tree.VirtualLeaf:
			v.NodePath = p
			out[i] = v
		}
	}
	return out
}

func bakeAnnotations(n tree.Node, enumeration int) tree.Node {
	switch v := n.(type) {
	case tree.RealLeaf:
		v.Info = bakeInformation(v.Info, enumeration, false)
		return v
	case tree.VirtualLeaf:
		v.Info = bakeInformation(v.Info, enumeration, false)
		return v
	case tree.Group:
		v.Info = bakeInformation(v.Info, enumeration, true)
		children := make([]tree.Node, len(v.Children))
		ordinal := 0
		for i, c := range v.Children {
			children[i] = bakeAnnotations(c, ordinal)
			if g, ok := c.(tree.Group); ok && g.Info.HasData("list", "enumerate") {
				ordinal++
			}
		}
		v.Children = children
		return v
	default:
		return n
	}
}

// bakeInformation replaces Label from the reserved "annotation" data key
// when present, removing that key; on groups only, absent an override, it
// stamps the enumerated-list label.
func bakeInformation(info tree.Information, enumeration int, isGroup bool) tree.Information {
	if label, ok := info.Data["annotation"]; ok {
		info = withoutAnnotationKey(info)
		info.Label = label
		return info
	}
	if isGroup && info.HasData("list", "enumerate") {
		info.Label = strconv.Itoa(enumeration)
	}
	return info
}

func withoutAnnotationKey(info tree.Information) tree.Information {
	d := make(map[string]string, len(info.Data))
	for k, v := range info.Data {
		if k == "annotation" {
			continue
		}
		d[k] = v
	}
	info.Data = d
	return info
}
