// Package value implements the presentation-ready primitive type that every
// annotated leaf or group ultimately carries: Value, a tagged union of
// numbers, bytes, hashes, addresses, scripts and a handful of other
// Bitcoin-flavoured primitives. Value is pure data; it performs no I/O and
// makes no parsing decisions of its own.
package value

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// Value is the sealed tagged union every Information carries. Concrete
// variants are Addr, Num, Size, Bytes, Script, Signature, PublicKey, Text,
// Hash, Timestamp, Sat, Alt and Nil.
type Value interface {
	isValue()

	// Preview renders the value as a short, renderer-agnostic string.
	// It exists for debugging and for callers that want a quick textual
	// summary without writing a dedicated renderer.
	Preview() string
}

// Addr is a Bitcoin address, or the absence of one when decoding could not
// establish an address for the given bytes (e.g. an unrecognized script).
type Addr struct {
	Address btcutil.Address
}

func (Addr) isValue() {}

func (a Addr) Preview() string {
	if a.Address == nil {
		return ""
	}
	return a.Address.EncodeAddress()
}

// Num is any integral value. It carries a *big.Int, so values wider than
// 64 bits (such as a block header's Target and Work) are held exactly.
type Num struct {
	N *big.Int
}

// NewNum builds a Num from any Go integer type.
func NewNum[T ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](n T) Num {
	if n < 0 {
		return Num{N: new(big.Int).SetInt64(int64(n))}
	}
	return Num{N: new(big.Int).SetUint64(uint64(n))}
}

func (Num) isValue() {}

func (n Num) Preview() string { return n.N.String() }

// Size is an unsigned byte count (e.g. a script or witness length).
type Size struct {
	N uint64
}

func (Size) isValue() {}

func (s Size) Preview() string { return fmt.Sprintf("%d", s.N) }

// Bytes is an arbitrary byte sequence with no further domain meaning.
type Bytes struct {
	B []byte
}

func (Bytes) isValue() {}

func (b Bytes) Preview() string { return hex.EncodeToString(b.B) }

// Script is a byte sequence interpreted as a Bitcoin script.
type Script struct {
	B []byte
}

func (Script) isValue() {}

func (s Script) Preview() string {
	disasm, err := txscript.DisasmString(s.B)
	if err != nil {
		return hex.EncodeToString(s.B)
	}
	return disasm
}

// Signature is a parsed ECDSA signature.
type Signature struct {
	Sig *ecdsa.Signature
}

func (Signature) isValue() {}

func (s Signature) Preview() string {
	if s.Sig == nil {
		return ""
	}
	return hex.EncodeToString(s.Sig.Serialize())
}

// PublicKey is a parsed secp256k1 public key.
type PublicKey struct {
	Key *btcec.PublicKey
}

func (PublicKey) isValue() {}

func (p PublicKey) Preview() string {
	if p.Key == nil {
		return ""
	}
	return hex.EncodeToString(p.Key.SerializeCompressed())
}

// Text is formatted text, optionally carrying foreground/background colour
// hints for renderers that care (terminal, HTML, SVG, none implemented
// here, but the hints are part of the data model those renderers consume).
type Text struct {
	Text       string
	Foreground *[3]byte
	Background *[3]byte
}

func (Text) isValue() {}

func (t Text) Preview() string { return t.Text }

// NewText builds a plain, uncoloured Text value.
func NewText(s string) Text { return Text{Text: s} }

// Hash is a 32-byte digest (block hash, txid, merkle root, ...).
type Hash struct {
	H chainhash.Hash
}

func (Hash) isValue() {}

func (h Hash) Preview() string { return h.H.String() }

// Timestamp is any Unix-epoch-derived point in time found in parsed data.
type Timestamp struct {
	T time.Time
}

func (Timestamp) isValue() {}

func (t Timestamp) Preview() string { return t.T.Format(time.RFC3339) }

// Sat is a Bitcoin amount expressed in satoshis.
type Sat struct {
	Amount btcutil.Amount
}

func (Sat) isValue() {}

func (s Sat) Preview() string { return s.Amount.String() }

// Alt holds two equivalent views of the same byte range (e.g. a raw integer
// timestamp alongside its formatted Timestamp rendering). Renderers choose
// which view, or both, to display.
type Alt struct {
	Primary   Value
	Alternate Value
}

func (Alt) isValue() {}

func (a Alt) Preview() string {
	return fmt.Sprintf("%s/%s", a.Primary.Preview(), a.Alternate.Preview())
}

// NewAlt creates an Alt from two distinct values.
func NewAlt(primary, alternate Value) Alt { return Alt{Primary: primary, Alternate: alternate} }

// Nil is the absence of a value.
type Nil struct{}

func (Nil) isValue() {}

func (Nil) Preview() string { return "" }

// ToValue is implemented by any Go type the parsing framework can turn
// into a Value automatically, mirroring the original's blanket ToValue
// trait impls. Datatype parsers that return one of these types can use
// annotate.Auto instead of writing an explicit value closure.
type ToValue interface {
	ToValue() Value
}
