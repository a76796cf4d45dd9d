package annotate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/txray/txray/annotate"
	"github.com/txray/txray/tree"
	"github.com/txray/txray/value"
)

func numAnn(label string) annotate.Ann[uint32] {
	return annotate.NewAnn[uint32](label, func(n uint32) tree.Value { return value.NewNum(n) })
}

func TestFixedBytesShortInput(t *testing.T) {
	s := annotate.New([]byte{0x01, 0x02})
	_, _, err := annotate.FixedBytes(3)(s)
	require.ErrorIs(t, err, annotate.ErrShortInput)
}

func TestU32LERoundTrip(t *testing.T) {
	s := annotate.New([]byte{0x01, 0x00, 0x00, 0x00, 0xff})
	next, n, err := annotate.U32LE(s)
	require.NoError(t, err)
	require.Equal(t, uint32(1), n)
	require.Equal(t, []byte{0xff}, next.Remaining())
	require.Equal(t, 4, next.Offset())
}

func TestU16BE(t *testing.T) {
	s := annotate.New([]byte{0x00, 0x2a})
	_, n, err := annotate.U16BE(s)
	require.NoError(t, err)
	require.Equal(t, uint16(42), n)
}

func TestParseProducesRealLeaf(t *testing.T) {
	s := annotate.New([]byte{0x01, 0x00, 0x00, 0x00})
	reader := annotate.Parse(annotate.U32LE, numAnn("Version"))
	next, out, err := reader(s)
	require.NoError(t, err)
	require.Equal(t, uint32(1), out)

	tr := next.Annotations()
	require.Len(t, tr.Roots, 1)
	leaf, ok := tr.Roots[0].(tree.RealLeaf)
	require.True(t, ok)
	require.Equal(t, "Version", leaf.Info.Label)
	require.Equal(t, tree.LeafLocation{From: 0, To: 4, Index: 0}, leaf.Location)
}

func TestParseProducesGroupWhenInnerParses(t *testing.T) {
	inner := func(s annotate.Span) (annotate.Span, [2]uint32, error) {
		s1, a, err := annotate.Parse(annotate.U32LE, numAnn("A"))(s)
		if err != nil {
			return s, [2]uint32{}, err
		}
		s2, b, err := annotate.Parse(annotate.U32LE, numAnn("B"))(s1)
		if err != nil {
			return s, [2]uint32{}, err
		}
		return s2, [2]uint32{a, b}, nil
	}
	groupAnn := annotate.NewAnn[[2]uint32]("Pair", func([2]uint32) tree.Value { return tree.Nil{} })
	reader := annotate.Parse(inner, groupAnn)

	s := annotate.New([]byte{1, 0, 0, 0, 2, 0, 0, 0})
	next, _, err := reader(s)
	require.NoError(t, err)

	tr := next.Annotations()
	require.Len(t, tr.Roots, 1)
	group, ok := tr.Roots[0].(tree.Group)
	require.True(t, ok)
	require.Equal(t, "Pair", group.Info.Label)
	require.Len(t, group.Children, 2)
	require.Equal(t, tree.GroupLocation{ByteFrom: 0, ByteTo: 8, IndexFrom: 0, IndexTo: 1}, group.Location)
}

func TestParseErrorLeavesSpanUnchanged(t *testing.T) {
	s := annotate.New([]byte{0x01})
	reader := annotate.Parse(annotate.U32LE, numAnn("Version"))
	next, _, err := reader(s)
	require.Error(t, err)
	require.Equal(t, s.Offset(), next.Offset())
}

func TestWithAttachesData(t *testing.T) {
	inner := annotate.With("datatype", "uint32", annotate.U32LE)
	annWithData := annotate.NewAnn[uint32]("Version", func(n uint32) tree.Value { return value.NewNum(n) })
	reader := annotate.Parse(inner, annWithData)

	s := annotate.New([]byte{1, 0, 0, 0})
	next, _, err := reader(s)
	require.NoError(t, err)
	tr := next.Annotations()
	leaf := tr.Roots[0].(tree.RealLeaf)
	require.True(t, leaf.Info.HasData("datatype", "uint32"))
}

func TestAltReturnsBothViewsWithoutDoubleAdvancing(t *testing.T) {
	s := annotate.New([]byte{0x2a, 0x00, 0x00, 0x00})
	reader := annotate.Alt(annotate.U32LE, annotate.FixedBytes(4))
	next, pair, err := reader(s)
	require.NoError(t, err)
	require.Equal(t, uint32(42), pair.Primary)
	require.Equal(t, []byte{0x2a, 0x00, 0x00, 0x00}, pair.Alternate)
	require.Equal(t, 4, next.Offset())
}

func TestFlagsProducesOneLeafPerBit(t *testing.T) {
	bits := []annotate.BitAnn[uint8]{
		{Position: 0, Ann: annotate.NewAnn[bool]("bit0", func(b bool) tree.Value { return value.NewNum(boolToInt(b)) })},
		{Position: 1, Ann: annotate.NewAnn[bool]("bit1", func(b bool) tree.Value { return value.NewNum(boolToInt(b)) })},
	}
	reader := annotate.Parse(annotate.Flags(annotate.U8, bits), annotate.NewAnn[uint8]("Flags", func(uint8) tree.Value { return tree.Nil{} }))
	s := annotate.New([]byte{0x01})
	next, num, err := reader(s)
	require.NoError(t, err)
	require.Equal(t, uint8(1), num)

	tr := next.Annotations()
	group := tr.Roots[0].(tree.Group)
	require.Len(t, group.Children, 2)
	require.Equal(t, "bit0", group.Children[0].Information().Label)
	require.Equal(t, "bit1", group.Children[1].Information().Label)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestCountReadsExactlyNItems(t *testing.T) {
	countReader := func(s annotate.Span) (annotate.Span, uint64, error) {
		next, n, err := annotate.U8(s)
		return next, uint64(n), err
	}
	reader := annotate.Count(countReader, annotate.U8)
	s := annotate.New([]byte{0x02, 0xaa, 0xbb, 0xcc})
	next, items, err := reader(s)
	require.NoError(t, err)
	require.Equal(t, []uint8{0xaa, 0xbb}, items)
	require.Equal(t, []byte{0xcc}, next.Remaining())
}

func TestCountPropagatesItemError(t *testing.T) {
	countReader := func(s annotate.Span) (annotate.Span, uint64, error) {
		next, n, err := annotate.U8(s)
		return next, uint64(n), err
	}
	reader := annotate.Count(countReader, annotate.U32LE)
	s := annotate.New([]byte{0x02, 0xaa})
	_, _, err := reader(s)
	require.Error(t, err)
}

func TestParseSliceRestrictsVisibility(t *testing.T) {
	inner := func(s annotate.Span) (annotate.Span, []byte, error) {
		return s, s.Remaining(), nil
	}
	reader := annotate.ParseSlice(2, inner)
	s := annotate.New([]byte{0x01, 0x02, 0x03, 0x04})
	next, got, err := reader(s)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, got, "inner must not see bytes past the slice boundary")
	require.Equal(t, []byte{0x03, 0x04}, next.Remaining())
}

func TestParseSliceTooLong(t *testing.T) {
	_, _, err := annotate.ParseSlice(10, annotate.FixedBytes(1))(annotate.New([]byte{0x01}))
	require.ErrorIs(t, err, annotate.ErrShortInput)
}

func TestPeekDoesNotAdvance(t *testing.T) {
	s := annotate.New([]byte{0x01, 0x00, 0x00, 0x00})
	next, n, err := annotate.Peek(annotate.U32LE)(s)
	require.NoError(t, err)
	require.Equal(t, uint32(1), n)
	require.Equal(t, 0, next.Offset())
	require.Equal(t, s.Remaining(), next.Remaining())
}

func TestVerifyRejects(t *testing.T) {
	reader := annotate.Verify(annotate.U8, func(n uint8) bool { return n == 0xff })
	_, _, err := reader(annotate.New([]byte{0x01}))
	require.ErrorIs(t, err, annotate.ErrVerifyFailed)
}

func TestVerifyAccepts(t *testing.T) {
	reader := annotate.Verify(annotate.U8, func(n uint8) bool { return n == 0x01 })
	_, n, err := reader(annotate.New([]byte{0x01}))
	require.NoError(t, err)
	require.Equal(t, uint8(1), n)
}

func TestMapTransformsOutput(t *testing.T) {
	reader := annotate.Map(annotate.U8, func(n uint8) (string, error) {
		if n == 0 {
			return "", errors.New("zero not allowed")
		}
		return "nonzero", nil
	})
	_, out, err := reader(annotate.New([]byte{0x01}))
	require.NoError(t, err)
	require.Equal(t, "nonzero", out)

	_, _, err = reader(annotate.New([]byte{0x00}))
	require.Error(t, err)
}

func TestInsertPlacesVirtualLeafAfter(t *testing.T) {
	reader := annotate.Parse(annotate.U32LE, numAnn("Bits"))
	s := annotate.New([]byte{0x01, 0x00, 0x00, 0x00})
	next, _, err := reader(s)
	require.NoError(t, err)

	next.Insert(annotate.NewAnn[annotate.NoValue]("Target", annotate.Const[annotate.NoValue](value.NewNum(99))))

	tr := next.Annotations()
	require.Len(t, tr.Roots, 2)
	require.IsType(t, tree.RealLeaf{}, tr.Roots[0])
	virtual, ok := tr.Roots[1].(tree.VirtualLeaf)
	require.True(t, ok)
	require.Equal(t, "Target", virtual.Info.Label)
}

func TestInsertBeforeAtPlacesVirtualLeafBefore(t *testing.T) {
	reader := annotate.Parse(annotate.U32LE, numAnn("Bits"))
	s := annotate.New([]byte{0x01, 0x00, 0x00, 0x00})
	next, _, err := reader(s)
	require.NoError(t, err)

	bm := next.Bookmark()
	next.InsertBeforeAt(bm, annotate.NewAnn[annotate.NoValue]("Note", annotate.Const[annotate.NoValue](tree.Nil{})))

	tr := next.Annotations()
	require.Len(t, tr.Roots, 2)
	require.IsType(t, tree.VirtualLeaf{}, tr.Roots[0])
	require.IsType(t, tree.RealLeaf{}, tr.Roots[1])
}

func TestInsertNoOpWithoutPriorNode(t *testing.T) {
	s := annotate.New([]byte{0x01})
	s.Insert(annotate.NewAnn[annotate.NoValue]("Unreachable", annotate.Const[annotate.NoValue](tree.Nil{})))
	tr := s.Annotations()
	require.Empty(t, tr.Roots)
}

func TestAnnotationLabelOverride(t *testing.T) {
	inner := func(s annotate.Span) (annotate.Span, uint8, error) {
		next, n, err := annotate.U8(s)
		if err != nil {
			return s, 0, err
		}
		return next.With("annotation", "Overridden"), n, nil
	}
	reader := annotate.Parse(inner, numAnn("Original"))
	next, _, err := reader(annotate.New([]byte{0x01}))
	require.NoError(t, err)

	tr := next.Annotations()
	leaf := tr.Roots[0].(tree.RealLeaf)
	require.Equal(t, "Overridden", leaf.Info.Label)
	_, stillPresent := leaf.Info.Data["annotation"]
	require.False(t, stillPresent)
}

func TestEnumeratedGroupLabel(t *testing.T) {
	itemAnn := annotate.NewAnn[uint8]("Item", func(uint8) tree.Value { return tree.Nil{} })
	byteAnn := annotate.NewAnn[uint8]("Byte", func(uint8) tree.Value { return tree.Nil{} })
	item := annotate.Parse(annotate.With("list", "enumerate", annotate.Parse(annotate.U8, byteAnn)), itemAnn)
	listAnn := annotate.NewAnn[[]uint8]("List", func([]uint8) tree.Value { return tree.Nil{} })
	reader := annotate.Parse(annotate.Count(func(s annotate.Span) (annotate.Span, uint64, error) {
		next, n, err := annotate.U8(s)
		return next, uint64(n), err
	}, item), listAnn)

	next, _, err := reader(annotate.New([]byte{0x02, 0xaa, 0xbb}))
	require.NoError(t, err)

	tr := next.Annotations()
	list := tr.Roots[0].(tree.Group)
	require.Len(t, list.Children, 2)
	require.Equal(t, "0", list.Children[0].Information().Label)
	require.Equal(t, "1", list.Children[1].Information().Label)
}
