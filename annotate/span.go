// Package annotate implements the annotating parser framework: a
// combinator layer that, as a side effect of parsing a byte slice, builds
// an annotation tree (package tree), tracks byte offsets and real-leaf
// indices, supports retroactive (bookmarked) insertions, and produces
// virtual (computed) leaves.
//
// The cursor threaded through every combinator is Span. Span is a plain
// value type (not a pointer): every combinator takes a Span by value and
// returns a new Span by value, mirroring the original's clone-on-fork
// discipline. The one piece of state combinators must *share* rather than
// copy, the list of pending retroactive annotations ("appendices"), is
// held behind a pointer field, so every value-copy of a Span still refers
// to the same underlying list.
package annotate

import "github.com/txray/txray/tree"

// byteRange is an immutable (from, to) pair; Span never mutates one in
// place, only ever replaces the pointer, so sharing it across clones is
// safe without locking.
type byteRange struct {
	from, to int
}

type place int

const (
	placeAfter place = iota
	placeBefore
)

// appendix is a pending annotation not yet placed in the tree, produced by
// Span.Insert / Span.InsertAt. It is resolved into a VirtualLeaf during
// Span.Annotations.
type appendix struct {
	from, to int
	place    place
	info     tree.Information
}

// appendixBox is the single-owner mutable container shared by every clone
// of a Span produced during one parsing run. Because parsing is
// single-threaded and synchronous (no combinator suspends or yields), a
// lock-free shared slice is sufficient.
type appendixBox struct {
	items []appendix
}

func (b *appendixBox) push(a appendix) {
	b.items = append(b.items, a)
}

// Span is the cursor threaded through every combinator in this package.
type Span struct {
	// nextIndex is the next real-leaf index to assign.
	nextIndex int

	// nextOffset is the offset, in the original blob, of the next byte
	// to parse.
	nextOffset int

	// nextFragment is the remaining, unparsed bytes.
	nextFragment []byte

	// treeAcc holds the nodes produced by the *inner* parser of the
	// current Parse invocation; Parse resets this on entry and harvests
	// it on exit.
	treeAcc []tree.Node

	// data is per-span auxiliary data attached to the node the current
	// parser is about to produce.
	data map[string]string

	// tags are pending tags attached to the node being produced.
	tags []tree.Tag

	// lastRange is the byte range of the most recently produced node;
	// it anchors Bookmark.
	lastRange *byteRange

	// appendices is shared across every Span cloned from this one.
	appendices *appendixBox
}

// New creates a fresh Span over fragment, ready to be parsed from offset
// zero.
func New(fragment []byte) Span {
	return Span{nextFragment: fragment, appendices: &appendixBox{}}
}

// Remaining returns the bytes not yet parsed.
func (s Span) Remaining() []byte { return s.nextFragment }

// Offset returns the offset of the next byte to be parsed.
func (s Span) Offset() int { return s.nextOffset }

// advance moves the span forward by n bytes. It mirrors the original's
// Slice implementation: the offset and fragment move, the in-progress
// subtree and the last bookmark carry through untouched, but per-span
// auxiliary data and pending tags reset; they belong to whatever node
// Parse is about to close off, not to bytes consumed afterwards.
func (s Span) advance(n int) Span {
	next := s
	next.nextFragment = s.nextFragment[n:]
	next.nextOffset = s.nextOffset + n
	next.data = nil
	next.tags = nil
	return next
}

// With attaches auxiliary data key -> value to the span, to be picked up
// by the next enclosing Parse call. Datatype parsers call this directly
// (e.g. s.With("datatype", "uint32")); the With combinator is a
// convenience wrapper for composing it with an inner reader.
func (s Span) With(key, value string) Span {
	d := make(map[string]string, len(s.data)+1)
	for k, v := range s.data {
		d[k] = v
	}
	d[key] = value
	next := s
	next.data = d
	return next
}

// AddTag attaches a pending tag to the span, to be picked up by the next
// enclosing Parse call.
func (s Span) AddTag(t tree.Tag) Span {
	tags := make([]tree.Tag, len(s.tags), len(s.tags)+1)
	copy(tags, s.tags)
	tags = append(tags, t)
	next := s
	next.tags = tags
	return next
}

// Bookmark captures the span's most recently produced byte range, so a
// retroactive annotation can later be attached to it even after parsing
// has moved on.
type Bookmark struct {
	rng *byteRange
}

// Bookmark returns a bookmark for the span's current position.
func (s Span) Bookmark() Bookmark { return Bookmark{rng: s.lastRange} }

// NoValue is the marker type for annotations inserted retrospectively via
// Insert / InsertAt, where no parsed output is available to compute the
// value or splain from. Build these with Const, not a closure that reads
// its argument: there is nothing meaningful to read.
type NoValue struct{}

// InsertAt pushes a retroactive annotation at bookmark's position. It is a
// no-op if the bookmark was taken before any node was produced.
func (s Span) InsertAt(bookmark Bookmark, ann Ann[NoValue]) {
	if bookmark.rng == nil {
		return
	}
	s.appendices.push(appendix{
		from:  bookmark.rng.from,
		to:    bookmark.rng.to,
		place: placeAfter,
		info:  ann.information(NoValue{}),
	})
}

// InsertBeforeAt is the Before-placed counterpart of InsertAt: the virtual
// leaf is inserted immediately before the real leaf at bookmark's
// position instead of immediately after.
func (s Span) InsertBeforeAt(bookmark Bookmark, ann Ann[NoValue]) {
	if bookmark.rng == nil {
		return
	}
	s.appendices.push(appendix{
		from:  bookmark.rng.from,
		to:    bookmark.rng.to,
		place: placeBefore,
		info:  ann.information(NoValue{}),
	})
}

// Insert is shorthand for InsertAt(s.Bookmark(), ann).
func (s Span) Insert(ann Ann[NoValue]) {
	s.InsertAt(s.Bookmark(), ann)
}
