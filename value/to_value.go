package value

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// wrappedInt is the set of Go integer types AsNum accepts and wraps as a
// Num.
type wrappedInt interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// AsNum turns any parsed integer into a ToValue-compatible Num wrapper,
// one generic type instead of a bespoke ToValue implementation per width,
// since Go generics can't attach methods to built-in types directly.
type AsNum[T wrappedInt] struct{ N T }

func (a AsNum[T]) ToValue() Value { return NewNum(a.N) }

// AsBool renders a flag bit as Num(0) or Num(1), matching the original's
// bool -> Num(0|1) mapping used by the flags() combinator.
type AsBool bool

func (b AsBool) ToValue() Value {
	if b {
		return NewNum(1)
	}
	return NewNum(0)
}

// AsBytes wraps a raw byte slice.
type AsBytes []byte

func (b AsBytes) ToValue() Value { return Bytes{B: append([]byte(nil), b...)} }

// AsScript wraps script bytes.
type AsScript []byte

func (s AsScript) ToValue() Value { return Script{B: append([]byte(nil), s...)} }

// AsText wraps a plain string.
type AsText string

func (s AsText) ToValue() Value { return NewText(string(s)) }

// AsHash wraps a double-SHA256 digest.
type AsHash chainhash.Hash

func (h AsHash) ToValue() Value { return Hash{H: chainhash.Hash(h)} }

// AsSignature wraps a parsed ECDSA signature.
type AsSignature struct{ Sig *ecdsa.Signature }

func (s AsSignature) ToValue() Value { return Signature{Sig: s.Sig} }

// AsPublicKey wraps a parsed public key.
type AsPublicKey struct{ Key *btcec.PublicKey }

func (p AsPublicKey) ToValue() Value { return PublicKey{Key: p.Key} }

// AsSat wraps a satoshi amount.
type AsSat struct{ Amount int64 }

func (s AsSat) ToValue() Value { return Sat{Amount: btcutil.Amount(s.Amount)} }
