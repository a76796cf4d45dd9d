package btc

import (
	"github.com/btcsuite/btcd/txscript"

	"github.com/txray/txray/annotate"
	"github.com/txray/txray/binaryenc"
	"github.com/txray/txray/datatype"
	"github.com/txray/txray/decode"
	"github.com/txray/txray/tree"
)

// minTxSize is a loose sanity floor (version + two zero-length compact
// sizes + locktime) below which no transaction can possibly fit; the real
// acceptance test is that the parser consumes every byte.
const minTxSize = 10

func init() {
	decode.Register(decode.Decoder{
		Title:  "Bitcoin transaction",
		Group:  "btc",
		Symbol: "transaction",
		Guard:  func(b binaryenc.Binary) bool { return len(b.Bytes()) >= minTxSize },
		Parse:  decodeTransaction,
	})
}

func decodeTransaction(s annotate.Span) (annotate.Span, error) {
	s, _, err := datatype.Uint32LE("Version")(s)
	if err != nil {
		return s, err
	}

	segwit := len(s.Remaining()) >= 2 && s.Remaining()[0] == 0x00 && s.Remaining()[1] == 0x01
	if segwit {
		s, _, err = datatype.Uint8("Marker")(s)
		if err != nil {
			return s, err
		}
		s, _, err = datatype.Uint8("Flag")(s)
		if err != nil {
			return s, err
		}
	}

	s, inputCount, err := inputList()(s)
	if err != nil {
		return s, err
	}
	s, _, err = outputList()(s)
	if err != nil {
		return s, err
	}

	if segwit {
		s, _, err = witnessStructure(inputCount)(s)
		if err != nil {
			return s, err
		}
	}

	s, _, err = datatype.Uint32LE("Locktime")(s)
	if err != nil {
		return s, err
	}
	return s, nil
}

func parseOneInput(s annotate.Span) (annotate.Span, struct{}, error) {
	s, _, err := datatype.Hash32("Previous output hash")(s)
	if err != nil {
		return s, struct{}{}, err
	}
	s, _, err = datatype.Uint32LE("Previous output index")(s)
	if err != nil {
		return s, struct{}{}, err
	}
	s, scriptLen, err := datatype.CompactSize("Script length")(s)
	if err != nil {
		return s, struct{}{}, err
	}
	s, _, err = datatype.Script("Script sig", int(scriptLen))(s)
	if err != nil {
		return s, struct{}{}, err
	}
	s, _, err = datatype.Uint32LE("Sequence")(s)
	if err != nil {
		return s, struct{}{}, err
	}
	return s, struct{}{}, nil
}

// inputList returns the count of inputs alongside the reader, since the
// segwit witness structure needs to know how many witness stacks follow.
func inputList() annotate.Reader[int] {
	oneInput := annotate.Parse(
		annotate.With("list", "enumerate", parseOneInput),
		annotate.NewAnn[struct{}]("Input", annotate.Const[struct{}](tree.Nil{})),
	)
	countAndItems := annotate.Count(datatype.CompactSize("Input count"), oneInput)
	listed := annotate.Parse(countAndItems, annotate.NewAnn[[]struct{}]("Input List", annotate.Const[[]struct{}](tree.Nil{})))

	return func(s annotate.Span) (annotate.Span, int, error) {
		s2, items, err := listed(s)
		if err != nil {
			return s, 0, err
		}
		return s2, len(items), nil
	}
}

type outputResult struct {
	script []byte
}

func parseOneOutput(s annotate.Span) (annotate.Span, outputResult, error) {
	s, _, err := datatype.Sat("Value")(s)
	if err != nil {
		return s, outputResult{}, err
	}
	s, scriptLen, err := datatype.CompactSize("Script length")(s)
	if err != nil {
		return s, outputResult{}, err
	}
	s, script, err := datatype.Script("Script pub key", int(scriptLen))(s)
	if err != nil {
		return s, outputResult{}, err
	}
	return s, outputResult{script: script}, nil
}

func outputList() annotate.Reader[[]outputResult] {
	outputAnn := annotate.NewAnn[outputResult]("Output", func(outputResult) tree.Value { return tree.Nil{} }).
		WithTag(func(o outputResult) *tree.Tag {
			label := scriptClassTag(o.script)
			if label == "" {
				return nil
			}
			return &tree.Tag{Label: label}
		})
	oneOutput := annotate.Parse(annotate.With("list", "enumerate", parseOneOutput), outputAnn)
	countAndItems := annotate.Count(datatype.CompactSize("Output count"), oneOutput)
	return annotate.Parse(countAndItems, annotate.NewAnn[[]outputResult]("Output List", annotate.Const[[]outputResult](tree.Nil{})))
}

// scriptClassTag classifies a scriptPubKey via txscript and maps the
// standard classes to the short tag labels renderers show next to an
// output.
func scriptClassTag(script []byte) string {
	class := txscript.GetScriptClass(script)
	switch class {
	case txscript.NullDataTy:
		return "OP_RETURN"
	case txscript.PubKeyHashTy:
		return "P2PKH"
	case txscript.ScriptHashTy:
		return "P2SH"
	case txscript.WitnessV0PubKeyHashTy:
		return "P2WPKH"
	case txscript.WitnessV0ScriptHashTy:
		return "P2WSH"
	case txscript.WitnessV1TaprootTy:
		return "P2TR"
	case txscript.PubKeyTy:
		return "P2PK"
	case txscript.MultiSigTy:
		return "MULTISIG"
	default:
		return ""
	}
}

func parseOneWitnessStack(s annotate.Span) (annotate.Span, struct{}, error) {
	oneItem := annotate.Parse(func(s annotate.Span) (annotate.Span, struct{}, error) {
		s, itemLen, err := datatype.CompactSize("Item length")(s)
		if err != nil {
			return s, struct{}{}, err
		}
		s, _, err = datatype.FixedBytes("Item", int(itemLen))(s)
		if err != nil {
			return s, struct{}{}, err
		}
		return s, struct{}{}, nil
	}, annotate.NewAnn[struct{}]("Witness item", annotate.Const[struct{}](tree.Nil{})))

	s, _, err := annotate.Parse(
		annotate.With("list", "enumerate", annotate.Count(datatype.CompactSize("Item count"), oneItem)),
		annotate.NewAnn[[]struct{}]("Witness stack", annotate.Const[[]struct{}](tree.Nil{})),
	)(s)
	return s, struct{}{}, err
}

func witnessStructure(inputCount int) annotate.Reader[[]struct{}] {
	stacks := func(s annotate.Span) (annotate.Span, []struct{}, error) {
		out := make([]struct{}, 0, inputCount)
		cur := s
		for i := 0; i < inputCount; i++ {
			next, v, err := parseOneWitnessStack(cur)
			if err != nil {
				return s, nil, err
			}
			out = append(out, v)
			cur = next
		}
		return cur, out, nil
	}
	return annotate.Parse(stacks, annotate.NewAnn[[]struct{}]("Witness Structure", annotate.Const[[]struct{}](tree.Nil{})))
}
