// Package bolt12 registers a decoder for BOLT12 offer strings: a
// checksum-less Bech32 blob with human-readable part "lno" wrapping a TLV
// stream of BigSize-prefixed records.
package bolt12

import (
	"github.com/txray/txray/annotate"
	"github.com/txray/txray/binaryenc"
	"github.com/txray/txray/datatype"
	"github.com/txray/txray/decode"
	"github.com/txray/txray/tree"
)

// offerHRP is the human-readable part BOLT12 offer strings carry.
const offerHRP = "lno"

func init() {
	decode.Register(decode.Decoder{
		Title:  "BOLT12 offer",
		Group:  "ln",
		Symbol: "bolt12-offer",
		Guard: func(b binaryenc.Binary) bool {
			bech, ok := b.(binaryenc.Bech32)
			return ok && bech.HRP == offerHRP
		},
		Parse: decodeOffer,
	})
}

func parseOneRecord(s annotate.Span) (annotate.Span, struct{}, error) {
	s, _, err := datatype.BigSize("Type")(s)
	if err != nil {
		return s, struct{}{}, err
	}
	s, length, err := datatype.BigSize("Length")(s)
	if err != nil {
		return s, struct{}{}, err
	}
	s, _, err = datatype.FixedBytes("Value", int(length))(s)
	if err != nil {
		return s, struct{}{}, err
	}
	return s, struct{}{}, nil
}

var record = annotate.Parse(parseOneRecord, annotate.NewAnn[struct{}]("TLV Record", annotate.Const[struct{}](tree.Nil{})))

// tlvStream reads records until no bytes remain; a TLV stream has no
// top-level record count, unlike the compact-size-prefixed lists used in
// the Bitcoin transaction decoder.
func tlvStream(s annotate.Span) (annotate.Span, []struct{}, error) {
	var out []struct{}
	cur := s
	for len(cur.Remaining()) > 0 {
		next, v, err := record(cur)
		if err != nil {
			return s, nil, err
		}
		out = append(out, v)
		cur = next
	}
	return cur, out, nil
}

var stream = annotate.Parse(tlvStream, annotate.NewAnn[[]struct{}]("TLV Stream", annotate.Const[[]struct{}](tree.Nil{})))

func decodeOffer(s annotate.Span) (annotate.Span, error) {
	s, _, err := stream(s)
	return s, err
}
