// Package btc registers decoders for core Bitcoin wire formats: block
// headers and transactions.
package btc

import (
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/txray/txray/annotate"
	"github.com/txray/txray/binaryenc"
	"github.com/txray/txray/datatype"
	"github.com/txray/txray/decode"
	"github.com/txray/txray/tree"
	"github.com/txray/txray/value"
)

// knownGenesisHashes maps well-known genesis block hashes to the network
// that produced them, so a decoded header recognizable as a genesis block
// can be tagged with its chain.
var knownGenesisHashes = map[chainhash.Hash]string{
	*chaincfg.MainNetParams.GenesisHash:       "mainnet",
	*chaincfg.TestNet3Params.GenesisHash:      "testnet3",
	*chaincfg.SigNetParams.GenesisHash:        "signet",
	*chaincfg.RegressionNetParams.GenesisHash: "regtest",
}

// headerSize is the fixed wire size of a Bitcoin block header: version (4)
// + previous block hash (32) + merkle root (32) + timestamp (4) + bits (4)
// + nonce (4).
const headerSize = 80

func init() {
	decode.Register(decode.Decoder{
		Title:  "Bitcoin block header",
		Group:  "btc",
		Symbol: "block-header",
		Guard:  func(b binaryenc.Binary) bool { return len(b.Bytes()) == headerSize },
		Parse:  decodeBlockHeader,
	})
}

func decodeBlockHeader(s annotate.Span) (annotate.Span, error) {
	raw := s.Remaining()
	if len(raw) < headerSize {
		return s, annotate.ErrShortInput
	}
	headerBytes := raw[:headerSize]

	s, _, err := datatype.Int32LE("Version")(s)
	if err != nil {
		return s, err
	}
	bm := s.Bookmark()

	s, _, err = datatype.Hash32("Previous block hash")(s)
	if err != nil {
		return s, err
	}
	s, _, err = datatype.Hash32("Merkle root")(s)
	if err != nil {
		return s, err
	}
	s, _, err = datatype.Timestamp("Timestamp")(s)
	if err != nil {
		return s, err
	}
	s, bits, err := datatype.Uint32LE("Bits")(s)
	if err != nil {
		return s, err
	}
	s, _, err = datatype.Uint32LE("Nonce")(s)
	if err != nil {
		return s, err
	}

	blockHash := chainhash.DoubleHashH(headerBytes)
	blockHashAnn := annotate.NewAnn[annotate.NoValue]("Block hash", annotate.Const[annotate.NoValue](value.Hash{H: blockHash}))
	if chain, ok := knownGenesisHashes[blockHash]; ok {
		blockHashAnn = blockHashAnn.WithStaticTag(tree.Tag{Label: "genesis:" + chain})
	}
	s.InsertAt(bm, blockHashAnn)

	target := blockchain.CompactToBig(bits)
	s.Insert(annotate.NewAnn[annotate.NoValue]("Target", annotate.Const[annotate.NoValue](value.Num{N: target})))

	work := blockchain.CalcWork(bits)
	s.Insert(annotate.NewAnn[annotate.NoValue]("Work", annotate.Const[annotate.NoValue](value.Num{N: work})))

	return s, nil
}
