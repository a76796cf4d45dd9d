package annotate

import "github.com/txray/txray/tree"

// Reader parses a value of type T out of a Span, returning the advanced
// span, the value, or an error. It is the building block every primitive
// reader (package datatype) and every combinator in this file is built
// from.
type Reader[T any] func(Span) (Span, T, error)

// Success always succeeds without consuming any input, returning v. It is
// the always-succeeding unit parser Flags uses to synthesize one virtual
// sub-parse per declared bit.
func Success[T any](v T) Reader[T] {
	return func(s Span) (Span, T, error) { return s, v, nil }
}

// Parse is the heart of the framework. It runs inner, then decides
// leaf-vs-group: if inner produced no tree nodes of its own, the result is
// a real leaf over the bytes inner consumed; if inner itself called Parse
// one or more times, the result is a group whose children are those
// nodes. Either way, ann resolves the node's label/value/doc/splain/tags
// from inner's output, and the node is appended to the enclosing span's
// tree.
func Parse[T any](inner Reader[T], ann Ann[T]) Reader[T] {
	return func(s Span) (Span, T, error) {
		from := s.nextOffset
		index := s.nextIndex

		outerTree := s.treeAcc
		inputForInner := s
		inputForInner.treeAcc = nil

		s2, out, err := inner(inputForInner)
		if err != nil {
			var zero T
			return s, zero, err
		}

		to := s2.nextOffset
		info := ann.information(out)
		info.Data = mergeData(info.Data, s2.data)
		info.Tags = append(info.Tags, s2.tags...)

		var node tree.Node
		var nextIndex int

		if len(s2.treeAcc) == 0 {
			node = tree.RealLeaf{
				Location: tree.LeafLocation{From: from, To: to, Index: index},
				Info:     info,
			}
			nextIndex = s2.nextIndex + 1
		} else {
			indexTo := s2.nextIndex - 1
			if indexTo < index {
				// No real leaf was produced inside this group
				// (it contains only virtual leaves or nested
				// empty groups); avoid the underflow the
				// original leaves unguarded.
				indexTo = index
			}
			node = tree.Group{
				Location: tree.GroupLocation{
					ByteFrom:  from,
					ByteTo:    to,
					IndexFrom: index,
					IndexTo:   indexTo,
				},
				Info:     info,
				Children: s2.treeAcc,
			}
			nextIndex = s2.nextIndex
		}

		newTree := make([]tree.Node, len(outerTree), len(outerTree)+1)
		copy(newTree, outerTree)
		newTree = append(newTree, node)

		next := Span{
			nextIndex:    nextIndex,
			nextOffset:   s2.nextOffset,
			nextFragment: s2.nextFragment,
			treeAcc:      newTree,
			appendices:   s2.appendices,
			lastRange:    &byteRange{from: from, to: to},
		}
		return next, out, nil
	}
}

func mergeData(base, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// With runs inner, then attaches auxiliary data key -> value to the
// resulting span, for the next enclosing Parse call to pick up.
func With[T any](key, value string, inner Reader[T]) Reader[T] {
	return func(s Span) (Span, T, error) {
		s2, out, err := inner(s)
		if err != nil {
			return s, out, err
		}
		return s2.With(key, value), out, nil
	}
}

// Pair is the result of Alt: the primary parser's output paired with the
// alternate's.
type Pair[A, B any] struct {
	Primary   A
	Alternate B
}

// Alt runs alternate on a clone of the input (discarding its resulting
// span) and primary on the original, returning the primary's advanced
// span together with both outputs. Only primary advances the cursor; the
// two parsers render the same bytes as two views (e.g. uint32 and the raw
// four bytes). Appendices pushed by either branch still land in the final
// tree, since appendices are shared, not cloned.
func Alt[A, B any](primary Reader[A], alternate Reader[B]) Reader[Pair[A, B]] {
	return func(s Span) (Span, Pair[A, B], error) {
		clone := s
		_, altOut, err := alternate(clone)
		if err != nil {
			var zero Pair[A, B]
			return s, zero, err
		}
		s2, out, err := primary(s)
		if err != nil {
			var zero Pair[A, B]
			return s, zero, err
		}
		return s2, Pair[A, B]{Primary: out, Alternate: altOut}, nil
	}
}

// BitAnn declares one bit position and its annotation for Flags.
type BitAnn[N Bits] struct {
	Position uint
	Ann      Ann[bool]
}

// Bits is implemented by every numeric type Flags can decode.
type Bits interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Flags runs parseNum, then for each declared bit synthesizes an
// always-succeeding virtual sub-parse yielding a boolean, wrapped in
// Parse so each bit becomes a real leaf under the enclosing group. The
// numeric value itself is returned unchanged.
func Flags[N Bits](parseNum Reader[N], bits []BitAnn[N]) Reader[N] {
	return func(s Span) (Span, N, error) {
		s2, num, err := parseNum(s)
		if err != nil {
			var zero N
			return s, zero, err
		}
		numeric := uint64(num)
		cur := s2
		for _, b := range bits {
			bit := numeric&(1<<b.Position) > 0
			wrapped := Parse(Success(bit), b.Ann)
			next, _, err := wrapped(cur)
			if err != nil {
				// Success never fails; a failure here would
				// indicate a framework bug, not bad input.
				panic("annotate: Flags: synthetic bit parser failed unexpectedly")
			}
			cur = next
		}
		return cur, num, nil
	}
}

// Count reads a count with countReader, then reads exactly that many items
// with item, collecting them in order. It is the length-prefixed
// composition primitive the rest of the framework's "read a count then
// that many records" shapes (input lists, output lists, witness stacks)
// are built from.
func Count[T any](countReader Reader[uint64], item Reader[T]) Reader[[]T] {
	return func(s Span) (Span, []T, error) {
		s2, n, err := countReader(s)
		if err != nil {
			return s, nil, err
		}
		out := make([]T, 0, n)
		cur := s2
		for i := uint64(0); i < n; i++ {
			next, v, err := item(cur)
			if err != nil {
				return s, nil, err
			}
			out = append(out, v)
			cur = next
		}
		return cur, out, nil
	}
}

// ParseSlice restricts inner to exactly length bytes: inner cannot observe
// or consume bytes beyond that boundary, regardless of how much of the
// slice it actually uses. The outer span always advances by length.
func ParseSlice[T any](length int, inner Reader[T]) Reader[T] {
	return func(s Span) (Span, T, error) {
		if length < 0 || length > len(s.nextFragment) {
			var zero T
			return s, zero, ErrShortInput
		}
		sub := s
		sub.nextFragment = s.nextFragment[:length:length]
		subResult, out, err := inner(sub)
		if err != nil {
			var zero T
			return s, zero, err
		}
		next := subResult
		next.nextFragment = s.nextFragment[length:]
		next.nextOffset = s.nextOffset + length
		return next, out, nil
	}
}

// Peek runs inner but does not advance the span, regardless of success.
func Peek[T any](inner Reader[T]) Reader[T] {
	return func(s Span) (Span, T, error) {
		_, out, err := inner(s)
		return s, out, err
	}
}

// Verify runs inner, then fails unless pred holds for its output.
func Verify[T any](inner Reader[T], pred func(T) bool) Reader[T] {
	return func(s Span) (Span, T, error) {
		s2, out, err := inner(s)
		if err != nil {
			return s, out, err
		}
		if !pred(out) {
			var zero T
			return s, zero, ErrVerifyFailed
		}
		return s2, out, nil
	}
}

// Map transforms a reader's output without touching the span. Useful for
// adapting a primitive's numeric output into a richer parsed type before
// wrapping it in Parse.
func Map[A, B any](inner Reader[A], f func(A) (B, error)) Reader[B] {
	return func(s Span) (Span, B, error) {
		s2, a, err := inner(s)
		if err != nil {
			var zero B
			return s, zero, err
		}
		b, err := f(a)
		if err != nil {
			var zero B
			return s, zero, err
		}
		return s2, b, nil
	}
}
