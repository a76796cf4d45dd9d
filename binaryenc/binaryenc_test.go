package binaryenc_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/txray/txray/binaryenc"
)

const testBech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// bech32EncodeNoChecksum builds a checksum-less bech32 string by hand, the
// inverse of StringToBech32's decode path, so tests don't depend on a
// hand-guessed literal being valid.
func bech32EncodeNoChecksum(hrp string, payload []byte) string {
	values, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		panic(err)
	}
	data := make([]byte, len(values))
	for i, v := range values {
		data[i] = testBech32Charset[v]
	}
	return hrp + "1" + string(data)
}

func TestStringToHex(t *testing.T) {
	h, ok := binaryenc.StringToHex("deadbeef")
	require.True(t, ok)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, h.Bytes())
}

func TestStringToHexRejectsOddLength(t *testing.T) {
	_, ok := binaryenc.StringToHex("abc")
	require.False(t, ok)
}

func TestStringToBase64(t *testing.T) {
	b, ok := binaryenc.StringToBase64("3q2+7w==")
	require.True(t, ok)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b.Bytes())
}

func TestStringToBase58RoundTrip(t *testing.T) {
	// "hello world" with a correct double-SHA256 checksum, base58-encoded.
	payload := []byte("hello world")
	encoded := base58CheckEncode(payload)
	b, ok := binaryenc.StringToBase58(encoded)
	require.True(t, ok)
	require.Equal(t, payload, b.Bytes())
}

func TestStringToBase58RejectsBadChecksum(t *testing.T) {
	encoded := base58CheckEncode([]byte("hello world"))
	// Flip the last character so the payload no longer matches its
	// checksum.
	tampered := []byte(encoded)
	if tampered[len(tampered)-1] == 'z' {
		tampered[len(tampered)-1] = 'a'
	} else {
		tampered[len(tampered)-1] = 'z'
	}
	_, ok := binaryenc.StringToBase58(string(tampered))
	require.False(t, ok)
}

func TestStringToBech32NoChecksum(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	s := bech32EncodeNoChecksum("lno", payload)
	b, ok := binaryenc.StringToBech32(s)
	require.True(t, ok)
	require.Equal(t, "lno", b.HRP)
	require.Equal(t, payload, b.Bytes())
}

func TestStringToBech32RejectsMissingSeparator(t *testing.T) {
	_, ok := binaryenc.StringToBech32("nodigithere")
	require.False(t, ok)
}

func TestStringToBech32RejectsMixedCase(t *testing.T) {
	_, ok := binaryenc.StringToBech32("Lno1qqq")
	require.False(t, ok)
}

func TestBinaryToStringValidUTF8(t *testing.T) {
	s, ok := binaryenc.BinaryToString([]byte("hello"))
	require.True(t, ok)
	require.Equal(t, "hello", s)
}

func TestBinaryToStringRejectsInvalidUTF8(t *testing.T) {
	_, ok := binaryenc.BinaryToString([]byte{0xff, 0xfe, 0xfd})
	require.False(t, ok)
}

func TestInputToBinariesHexWinsOverBase64(t *testing.T) {
	out := binaryenc.InputToBinaries(binaryenc.InputString{S: "deadbeef"})
	require.Len(t, out, 2)
	require.IsType(t, binaryenc.Hex{}, out[0])
	require.IsType(t, binaryenc.Base64{}, out[1])
}

func TestInputToBinariesEmptyStringYieldsEmptyHexAndBase64(t *testing.T) {
	// Zero hex digits is an even count, and "" is valid padded Base64, so
	// both decoders succeed with an empty payload.
	out := binaryenc.InputToBinaries(binaryenc.InputString{S: ""})
	require.Len(t, out, 2)
	require.IsType(t, binaryenc.Hex{}, out[0])
	require.IsType(t, binaryenc.Base64{}, out[1])
	require.Empty(t, out[0].Bytes())
	require.Empty(t, out[1].Bytes())
}

func TestInputToBinariesRawBytesAppendedLast(t *testing.T) {
	raw := []byte{0xff, 0xfe, 0x01, 0x02}
	out := binaryenc.InputToBinaries(binaryenc.InputBinary{B: raw})
	require.NotEmpty(t, out)
	last := out[len(out)-1]
	require.IsType(t, binaryenc.Raw{}, last)
	require.Equal(t, raw, last.Bytes())
}

func TestInputToBinariesValidUTF8BytesAlsoTriedAsString(t *testing.T) {
	out := binaryenc.InputToBinaries(binaryenc.InputBinary{B: []byte("deadbeef")})
	require.GreaterOrEqual(t, len(out), 2)
	require.IsType(t, binaryenc.Hex{}, out[0])
	last := out[len(out)-1]
	require.IsType(t, binaryenc.Raw{}, last)
}

// base58CheckEncode is a small test helper mirroring StringToBase58's
// encoding half, kept local since this package only ever needs to decode.
func base58CheckEncode(payload []byte) string {
	sum := chainhash.DoubleHashB(payload)
	full := append(append([]byte{}, payload...), sum[:4]...)
	return base58.Encode(full)
}
