// Package tree implements the annotation tree produced by a successful
// decode: Node (Group or Leaf), Leaf (Real or Virtual), their locations,
// and the Information payload every node carries. The tree is built up as
// a side effect of parsing (see package annotate) and is read-only once
// returned to a caller.
package tree

import (
	"strconv"

	"github.com/txray/txray/value"
)

// Value and ToValue are re-exported so callers of this package rarely
// need to import package value directly just to spell Information.Value's
// type or implement automatic value derivation.
type Value = value.Value
type ToValue = value.ToValue

// Tag classifies a node, e.g. "P2WPKH" or "OP_RETURN".
type Tag struct {
	Label string
	Color *string
	Doc   *string
}

// Reference is an external citation attached to an Information.
type Reference interface {
	isReference()
}

// Www is a reference to a web page.
type Www struct{ URL string }

func (Www) isReference() {}

// Bip is a reference to a numbered Bitcoin Improvement Proposal.
type Bip struct{ Number uint16 }

func (Bip) isReference() {}

// Information is the payload carried by every node in the tree.
type Information struct {
	// Label may be overridden after parsing via the reserved Data key
	// "annotation" (see the finalization pass in package annotate).
	Label string

	// Data is auxiliary key/value data attached by datatype parsers
	// (e.g. Data["datatype"] = "uint32") and consumed during
	// finalization or by renderers.
	Data map[string]string

	Tags  []Tag
	Refs  []Reference
	Value Value

	Doc    *string
	Splain *string
}

// HasData reports whether Data[key] == value.
func (i Information) HasData(key, value string) bool {
	v, ok := i.Data[key]
	return ok && v == value
}

// LeafLocation is the half-open byte range [From, To) a real leaf occupies,
// plus its zero-based ordinal Index among real leaves in parse order.
type LeafLocation struct {
	From  int
	To    int
	Index int
}

// GroupLocation bounds the byte range and real-leaf index range of
// everything nested inside a group. Bytes are [ByteFrom, ByteTo); indices
// are [IndexFrom, IndexTo] (both inclusive).
type GroupLocation struct {
	ByteFrom  int
	ByteTo    int
	IndexFrom int
	IndexTo   int
}

// Node is a Group or a Leaf (Real or Virtual).
type Node interface {
	isNode()
	Information() Information
	Path() []string
}

// Leaf is a Node with no children: RealLeaf or VirtualLeaf.
type Leaf interface {
	Node
	isLeaf()
}

// Group is a byte range subdivided into annotated children, stored in
// parse order.
type Group struct {
	NodePath []string
	Location GroupLocation
	Info     Information
	Children []Node
}

func (Group) isNode()                    {}
func (g Group) Information() Information { return g.Info }
func (g Group) Path() []string           { return g.NodePath }

// RealLeaf is a leaf that corresponds to concrete, parsed bytes.
type RealLeaf struct {
	NodePath []string
	Location LeafLocation
	Info     Information
}

func (RealLeaf) isNode()                    {}
func (RealLeaf) isLeaf()                    {}
func (r RealLeaf) Information() Information { return r.Info }
func (r RealLeaf) Path() []string           { return r.NodePath }

// Length returns the number of bytes this leaf covers.
func (r RealLeaf) Length() int { return r.Location.To - r.Location.From }

// VirtualLeaf is a leaf computed from other data; it has no byte range.
type VirtualLeaf struct {
	NodePath []string
	Info     Information
}

func (VirtualLeaf) isNode()                    {}
func (VirtualLeaf) isLeaf()                    {}
func (v VirtualLeaf) Information() Information { return v.Info }
func (v VirtualLeaf) Path() []string           { return v.NodePath }

// Tree is the ordered sequence of root nodes produced by a successful
// decode.
type Tree struct {
	Roots []Node
}

// FromNodes wraps a slice of root nodes as a Tree.
func FromNodes(nodes []Node) Tree { return Tree{Roots: nodes} }

// Leaves returns every leaf (real and virtual) in depth-first, parse
// order.
func (t Tree) Leaves() []Leaf { return collectLeaves(t.Roots) }

// RealLeaves returns only the real leaves, in parse order.
func (t Tree) RealLeaves() []RealLeaf {
	var out []RealLeaf
	for _, l := range collectLeaves(t.Roots) {
		if r, ok := l.(RealLeaf); ok {
			out = append(out, r)
		}
	}
	return out
}

func collectLeaves(nodes []Node) []Leaf {
	var out []Leaf
	for _, n := range nodes {
		switch v := n.(type) {
		case Group:
			out = append(out, collectLeaves(v.Children)...)
		case Leaf:
			out = append(out, v)
		}
	}
	return out
}

// Select navigates to the node identified by path, a sequence of
// decimal-string child indices from the root. It returns (nil, false) for
// any path with an out-of-range or malformed component.
func (t Tree) Select(path []string) (Node, bool) {
	return selectPath(t.Roots, path)
}

func selectPath(nodes []Node, path []string) (Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	i, err := strconv.Atoi(path[0])
	if err != nil || i < 0 || i >= len(nodes) {
		return nil, false
	}
	node := nodes[i]
	rest := path[1:]
	if len(rest) == 0 {
		return node, true
	}
	g, ok := node.(Group)
	if !ok {
		return nil, false
	}
	return selectPath(g.Children, rest)
}
