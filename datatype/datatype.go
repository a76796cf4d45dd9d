// Package datatype implements the named, labeled primitive readers every
// decoder is built from: fixed-width integers, byte sequences, varints
// (both Bitcoin's little-endian CompactSize and Lightning's big-endian
// BigSize), hashes, signatures, public keys, timestamps and satoshi
// amounts. Each reader wraps an annotate primitive in annotate.Parse so it
// always produces a labeled real leaf.
package datatype

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/tlv"

	"github.com/txray/txray/annotate"
	"github.com/txray/txray/tree"
	"github.com/txray/txray/value"
)

func numLeaf[T any](tag, label string, raw annotate.Reader[T], toValue func(T) tree.Value) annotate.Reader[T] {
	return annotate.Parse(annotate.With("datatype", tag, raw), annotate.NewAnn(label, toValue))
}

// Uint8 reads one unsigned byte.
func Uint8(label string) annotate.Reader[uint8] {
	return numLeaf("uint8", label, annotate.U8, func(n uint8) tree.Value { return value.NewNum(n) })
}

// Uint16LE reads a little-endian uint16.
func Uint16LE(label string) annotate.Reader[uint16] {
	return numLeaf("uint16le", label, annotate.U16LE, func(n uint16) tree.Value { return value.NewNum(n) })
}

// Uint16BE reads a big-endian uint16.
func Uint16BE(label string) annotate.Reader[uint16] {
	return numLeaf("uint16be", label, annotate.U16BE, func(n uint16) tree.Value { return value.NewNum(n) })
}

// Uint24LE reads a little-endian, 24-bit unsigned integer.
func Uint24LE(label string) annotate.Reader[uint32] {
	return numLeaf("uint24le", label, annotate.U24LE, func(n uint32) tree.Value { return value.NewNum(n) })
}

// Uint24BE reads a big-endian, 24-bit unsigned integer.
func Uint24BE(label string) annotate.Reader[uint32] {
	return numLeaf("uint24be", label, annotate.U24BE, func(n uint32) tree.Value { return value.NewNum(n) })
}

// Uint32LE reads a little-endian uint32.
func Uint32LE(label string) annotate.Reader[uint32] {
	return numLeaf("uint32le", label, annotate.U32LE, func(n uint32) tree.Value { return value.NewNum(n) })
}

// Uint32BE reads a big-endian uint32.
func Uint32BE(label string) annotate.Reader[uint32] {
	return numLeaf("uint32be", label, annotate.U32BE, func(n uint32) tree.Value { return value.NewNum(n) })
}

// Uint64LE reads a little-endian uint64.
func Uint64LE(label string) annotate.Reader[uint64] {
	return numLeaf("uint64le", label, annotate.U64LE, func(n uint64) tree.Value { return value.NewNum(n) })
}

// Uint64BE reads a big-endian uint64.
func Uint64BE(label string) annotate.Reader[uint64] {
	return numLeaf("uint64be", label, annotate.U64BE, func(n uint64) tree.Value { return value.NewNum(n) })
}

// Int32LE reads a little-endian int32.
func Int32LE(label string) annotate.Reader[int32] {
	return numLeaf("int32le", label, annotate.I32LE, func(n int32) tree.Value { return value.NewNum(n) })
}

// Int32BE reads a big-endian int32.
func Int32BE(label string) annotate.Reader[int32] {
	return numLeaf("int32be", label, annotate.I32BE, func(n int32) tree.Value { return value.NewNum(n) })
}

// Int64LE reads a little-endian int64.
func Int64LE(label string) annotate.Reader[int64] {
	return numLeaf("int64le", label, annotate.I64LE, func(n int64) tree.Value { return value.NewNum(n) })
}

// Int64BE reads a big-endian int64.
func Int64BE(label string) annotate.Reader[int64] {
	return numLeaf("int64be", label, annotate.I64BE, func(n int64) tree.Value { return value.NewNum(n) })
}

// FixedBytes reads exactly n bytes and presents them as opaque Bytes.
func FixedBytes(label string, n int) annotate.Reader[[]byte] {
	return numLeaf("bytes", label, annotate.FixedBytes(n), func(b []byte) tree.Value {
		return value.AsBytes(b).ToValue()
	})
}

// Script reads exactly n bytes and presents them as a Bitcoin script,
// disassembled for preview via txscript (see value.Script.Preview).
func Script(label string, n int) annotate.Reader[[]byte] {
	return numLeaf("script", label, annotate.FixedBytes(n), func(b []byte) tree.Value {
		return value.Script{B: b}
	})
}

// CompactSize reads a Bitcoin wire-format variable-length integer
// (0xfd/0xfe/0xff prefix, little-endian), using wire.ReadVarInt against a
// byte-slice view of the remaining input and then advancing the span by
// however many bytes that call consumed.
func CompactSize(label string) annotate.Reader[uint64] {
	raw := func(s annotate.Span) (annotate.Span, uint64, error) {
		r := bytes.NewReader(s.Remaining())
		v, err := wire.ReadVarInt(r, 0)
		if err != nil {
			return s, 0, annotate.ErrShortInput
		}
		consumed := len(s.Remaining()) - r.Len()
		next, _, ferr := annotate.FixedBytes(consumed)(s)
		if ferr != nil {
			return s, 0, ferr
		}
		return next, v, nil
	}
	return numLeaf("compact-size", label, raw, func(n uint64) tree.Value { return value.NewNum(n) })
}

// BigSize reads a Lightning BOLT wire-format variable-length integer
// (big-endian, same prefix scheme as CompactSize but reversed byte order
// and different canonical-minimality rules), via lnd/tlv.ReadVarInt.
func BigSize(label string) annotate.Reader[uint64] {
	raw := func(s annotate.Span) (annotate.Span, uint64, error) {
		r := bytes.NewReader(s.Remaining())
		var buf [8]byte
		v, err := tlv.ReadVarInt(r, &buf)
		if err != nil {
			return s, 0, annotate.ErrShortInput
		}
		consumed := len(s.Remaining()) - r.Len()
		next, _, ferr := annotate.FixedBytes(consumed)(s)
		if ferr != nil {
			return s, 0, ferr
		}
		return next, v, nil
	}
	return numLeaf("big-size", label, raw, func(n uint64) tree.Value { return value.NewNum(n) })
}

// Hash32 reads 32 raw bytes as a double-SHA256 digest (a txid, block hash,
// or merkle root).
func Hash32(label string) annotate.Reader[chainhash.Hash] {
	raw := func(s annotate.Span) (annotate.Span, chainhash.Hash, error) {
		s2, b, err := annotate.FixedBytes(32)(s)
		if err != nil {
			return s, chainhash.Hash{}, err
		}
		h, err := chainhash.NewHash(b)
		if err != nil {
			return s, chainhash.Hash{}, err
		}
		return s2, *h, nil
	}
	return numLeaf("hash256", label, raw, func(h chainhash.Hash) tree.Value { return value.Hash{H: h} })
}

// PublicKey reads a 33-byte compressed secp256k1 public key.
func PublicKey(label string) annotate.Reader[*btcec.PublicKey] {
	raw := func(s annotate.Span) (annotate.Span, *btcec.PublicKey, error) {
		s2, b, err := annotate.FixedBytes(33)(s)
		if err != nil {
			return s, nil, err
		}
		pk, err := btcec.ParsePubKey(b)
		if err != nil {
			return s, nil, err
		}
		return s2, pk, nil
	}
	return numLeaf("pubkey", label, raw, func(pk *btcec.PublicKey) tree.Value {
		return value.PublicKey{Key: pk}
	})
}

// Signature reads n raw bytes as a DER-encoded ECDSA signature.
func Signature(label string, n int) annotate.Reader[*ecdsa.Signature] {
	raw := func(s annotate.Span) (annotate.Span, *ecdsa.Signature, error) {
		s2, b, err := annotate.FixedBytes(n)(s)
		if err != nil {
			return s, nil, err
		}
		sig, err := ecdsa.ParseDERSignature(b)
		if err != nil {
			return s, nil, err
		}
		return s2, sig, nil
	}
	return numLeaf("signature", label, raw, func(sig *ecdsa.Signature) tree.Value {
		return value.Signature{Sig: sig}
	})
}

// Timestamp reads a little-endian uint32 Unix timestamp.
func Timestamp(label string) annotate.Reader[time.Time] {
	raw := func(s annotate.Span) (annotate.Span, time.Time, error) {
		s2, n, err := annotate.U32LE(s)
		if err != nil {
			return s, time.Time{}, err
		}
		return s2, time.Unix(int64(n), 0).UTC(), nil
	}
	return numLeaf("timestamp", label, raw, func(t time.Time) tree.Value { return value.Timestamp{T: t} })
}

// Sat reads a little-endian int64 amount of satoshis.
func Sat(label string) annotate.Reader[int64] {
	return numLeaf("sat", label, annotate.I64LE, func(n int64) tree.Value {
		return value.Sat{Amount: btcutil.Amount(n)}
	})
}
