// Package binaryenc turns user-supplied input (a CLI argument or a raw
// file/stdin blob) into the ordered set of Binary candidates a decoder can
// be tried against.
package binaryenc

// Binary is decoded bytes tagged with the encoding they were recovered
// from. The tag lets a Decoder's guard restrict itself to the encodings
// that make sense for its format (e.g. a Bech32 guard checking the HRP).
type Binary interface {
	isBinary()
	Bytes() []byte
}

// Hex is bytes recovered from a hexadecimal string.
type Hex struct{ B []byte }

func (Hex) isBinary()        {}
func (h Hex) Bytes() []byte  { return h.B }

// Base58Check is bytes recovered from a Base58 string with its trailing
// 4-byte double-SHA256 checksum verified and stripped. Unlike an address
// decoder, no leading version byte is split off: this is a generic blob
// decode, not an address decode.
type Base58Check struct{ B []byte }

func (Base58Check) isBinary()       {}
func (b Base58Check) Bytes() []byte { return b.B }

// Base64 is bytes recovered from a standard-alphabet Base64 string.
type Base64 struct{ B []byte }

func (Base64) isBinary()       {}
func (b Base64) Bytes() []byte { return b.B }

// Bech32 is bytes recovered from a checksum-less Bech32 string, together
// with the human-readable part that preceded the data part.
type Bech32 struct {
	HRP string
	B   []byte
}

func (Bech32) isBinary()       {}
func (b Bech32) Bytes() []byte { return b.B }

// Raw is bytes taken verbatim, with no encoding applied. It is only ever
// produced for Input.Binary, and only ever last in the candidate order.
type Raw struct{ B []byte }

func (Raw) isBinary()       {}
func (r Raw) Bytes() []byte { return r.B }
