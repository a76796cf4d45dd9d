package binaryenc

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// bech32Charset is the Bech32 data-part alphabet (BIP-173). We decode it by
// hand because btcutil/bech32's own Decode/DecodeNoLimit always verify a
// checksum, and this variant must accept a bare HRP+data string with no
// checksum at all.
const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var errNotBech32 = errors.New("binaryenc: not a checksum-less bech32 string")

// StringToHex attempts to decode s as a hexadecimal string.
func StringToHex(s string) (Hex, bool) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hex{}, false
	}
	return Hex{B: b}, true
}

// StringToBase64 attempts to decode s as standard-alphabet Base64. The
// standard library is used here deliberately: Base64 needs no Bitcoin-aware
// checksum or alphabet handling, so there is no ecosystem library in the
// pack that does anything the standard decoder doesn't already do.
func StringToBase64(s string) (Base64, bool) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Base64{}, false
	}
	return Base64{B: b}, true
}

// StringToBase58 attempts to decode s as Base58 with a trailing 4-byte
// double-SHA256 checksum, verifying and stripping the checksum but -
// unlike an address decode - never splitting off a leading version byte.
// base58.CheckDecode cannot be used here since it assumes the first
// decoded byte is a version byte belonging to an address format; this is
// a generic blob decode and has no such byte.
func StringToBase58(s string) (Base58Check, bool) {
	decoded := base58.Decode(s)
	if len(decoded) < 4 {
		return Base58Check{}, false
	}
	payload := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]

	sum := chainhash.DoubleHashB(payload)
	if !bytes.Equal(sum[:4], checksum) {
		return Base58Check{}, false
	}
	return Base58Check{B: payload}, true
}

// StringToBech32 attempts to decode s as a checksum-less Bech32 string: an
// HRP, a separator '1', and a data part drawn from bech32Charset, with no
// checksum suffix to validate.
func StringToBech32(s string) (Bech32, bool) {
	hrp, data, err := decodeBech32NoChecksum(s)
	if err != nil {
		return Bech32{}, false
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Bech32{}, false
	}
	return Bech32{HRP: hrp, B: converted}, true
}

func decodeBech32NoChecksum(s string) (string, []byte, error) {
	if len(s) < 1 || len(s) > 1000 {
		return "", nil, errNotBech32
	}
	lower := strings.ToLower(s)
	if lower != s && strings.ToUpper(s) != s {
		return "", nil, errNotBech32
	}

	sep := strings.LastIndexByte(lower, '1')
	if sep < 1 || sep+1 >= len(lower) {
		return "", nil, errNotBech32
	}
	hrp := lower[:sep]
	data := lower[sep+1:]

	values := make([]byte, len(data))
	for i := 0; i < len(data); i++ {
		idx := strings.IndexByte(bech32Charset, data[i])
		if idx < 0 {
			return "", nil, errNotBech32
		}
		values[i] = byte(idx)
	}
	return hrp, values, nil
}

// BinaryToString attempts to interpret b as a UTF-8 string.
func BinaryToString(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// tryDecodeString runs every string-decoder in the order more-likely to
// less-likely: hex is tried first since it is the most restrictive
// alphabet (a Base16 string is frequently also valid Base64, so Hex must
// win the tie), then Bech32, then Base58, then Base64.
func tryDecodeString(s string) []Binary {
	var out []Binary
	if h, ok := StringToHex(s); ok {
		out = append(out, h)
	}
	if b, ok := StringToBech32(s); ok {
		out = append(out, b)
	}
	if b, ok := StringToBase58(s); ok {
		out = append(out, b)
	}
	if b, ok := StringToBase64(s); ok {
		out = append(out, b)
	}
	return out
}

// InputToBinaries expands user input into every plausible Binary reading
// of it, ranked from most to least likely. A string input is tried against
// every string decoder. Raw bytes are first tried as UTF-8 text (and, if
// that succeeds, run through the same string decoders); the raw bytes
// themselves are always appended last, since if the input really was raw
// binary, every string-decode attempt above will have failed and Raw will
// be the only candidate left.
func InputToBinaries(input Input) []Binary {
	switch v := input.(type) {
	case InputString:
		return tryDecodeString(v.S)
	case InputBinary:
		var out []Binary
		if s, ok := BinaryToString(v.B); ok {
			out = tryDecodeString(s)
		}
		out = append(out, Raw{B: v.B})
		return out
	default:
		return nil
	}
}

// Input is the user-supplied value to decode: either a string given
// directly (e.g. a CLI argument) or a binary blob (e.g. stdin or a file)
// that may itself be the string encoding of some other binary data.
type Input interface{ isInput() }

// InputString is a string provided directly by the caller.
type InputString struct{ S string }

func (InputString) isInput() {}

// InputBinary is a raw byte blob provided by the caller.
type InputBinary struct{ B []byte }

func (InputBinary) isInput() {}
