package annotate

import "github.com/txray/txray/tree"

// Ann collects everything Parse needs to turn a parser's raw output into a
// tree.Information: a label, a function deriving the Value from the
// output, and the optional doc/refs/tags/splain. It is built fluently,
// e.g.:
//
//	annotate.NewAnn[uint32]("Version", annotate.Auto[uint32]()).WithDoc("...")
type Ann[T any] struct {
	Label string

	// Value computes the node's Value from the parser's output. Build it
	// with Const (input-independent) or Auto (via value.ToValue), or
	// supply any func(T) value.Value directly.
	Value func(T) tree.Value

	Doc  *string
	Refs []tree.Reference

	// Tags each independently decide, from the parser's output, whether
	// to attach a tag; nil tags are dropped.
	Tags []func(T) *tree.Tag

	// Splain, if set, computes an explanatory sentence from the output.
	Splain func(T) *string
}

// NewAnn creates an annotation with label and value generator. All
// optional fields start empty and can be populated with the With*
// methods.
func NewAnn[T any](label string, value func(T) tree.Value) Ann[T] {
	return Ann[T]{Label: label, Value: value}
}

// WithDoc attaches documentation.
func (a Ann[T]) WithDoc(doc string) Ann[T] {
	a.Doc = &doc
	return a
}

// WithWww attaches a reference to a web page. May be called repeatedly.
func (a Ann[T]) WithWww(url string) Ann[T] {
	a.Refs = append(a.Refs, tree.Www{URL: url})
	return a
}

// WithBip attaches a reference to a numbered BIP. May be called
// repeatedly.
func (a Ann[T]) WithBip(number uint16) Ann[T] {
	a.Refs = append(a.Refs, tree.Bip{Number: number})
	return a
}

// WithTag attaches a tag generator. May be called repeatedly.
func (a Ann[T]) WithTag(f func(T) *tree.Tag) Ann[T] {
	a.Tags = append(a.Tags, f)
	return a
}

// WithStaticTag attaches a tag that does not depend on the parser's
// output.
func (a Ann[T]) WithStaticTag(t tree.Tag) Ann[T] {
	return a.WithTag(func(T) *tree.Tag { return &t })
}

// WithSplain attaches a splain generator.
func (a Ann[T]) WithSplain(f func(T) *string) Ann[T] {
	a.Splain = f
	return a
}

// WithLabel overrides the label.
func (a Ann[T]) WithLabel(label string) Ann[T] {
	a.Label = label
	return a
}

func (a Ann[T]) information(out T) tree.Information {
	var value tree.Value
	if a.Value != nil {
		value = a.Value(out)
	} else {
		value = tree.Nil{}
	}
	var splain *string
	if a.Splain != nil {
		splain = a.Splain(out)
	}
	return tree.Information{
		Label:  a.Label,
		Data:   map[string]string{},
		Tags:   resolveTags(a.Tags, out),
		Refs:   a.Refs,
		Value:  value,
		Doc:    a.Doc,
		Splain: splain,
	}
}

func resolveTags[T any](fns []func(T) *tree.Tag, out T) []tree.Tag {
	var tags []tree.Tag
	for _, f := range fns {
		if f == nil {
			continue
		}
		if t := f(out); t != nil {
			tags = append(tags, *t)
		}
	}
	return tags
}

// Const returns a value function that ignores its input. It is the form of
// Ann.Value to use with Span.Insert / Span.InsertAt, since no parser
// output exists at the point a retroactive annotation is made.
func Const[T any](v tree.Value) func(T) tree.Value {
	return func(T) tree.Value { return v }
}

// ConstSplain returns a splain function that ignores its input.
func ConstSplain[T any](s string) func(T) *string {
	return func(T) *string { return &s }
}

// Auto derives the Value automatically from the parser's output via
// value.ToValue, mirroring the original's `auto::<T>()` marker.
func Auto[T tree.ToValue]() func(T) tree.Value {
	return func(t T) tree.Value { return t.ToValue() }
}

// StaticTag builds a tag generator that ignores its input.
func StaticTag[T any](t tree.Tag) func(T) *tree.Tag {
	return func(T) *tree.Tag { return &t }
}
