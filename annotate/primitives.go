package annotate

import "encoding/binary"

// FixedBytes reads exactly n bytes verbatim. It is the primitive every
// other fixed-width reader in this file is built from.
func FixedBytes(n int) Reader[[]byte] {
	return func(s Span) (Span, []byte, error) {
		if n < 0 || n > len(s.nextFragment) {
			return s, nil, ErrShortInput
		}
		b := make([]byte, n)
		copy(b, s.nextFragment[:n])
		return s.advance(n), b, nil
	}
}

// U8 reads one unsigned byte.
func U8(s Span) (Span, uint8, error) {
	next, b, err := FixedBytes(1)(s)
	if err != nil {
		return s, 0, err
	}
	return next, b[0], nil
}

// U16LE reads a little-endian uint16.
func U16LE(s Span) (Span, uint16, error) {
	next, b, err := FixedBytes(2)(s)
	if err != nil {
		return s, 0, err
	}
	return next, binary.LittleEndian.Uint16(b), nil
}

// U16BE reads a big-endian uint16.
func U16BE(s Span) (Span, uint16, error) {
	next, b, err := FixedBytes(2)(s)
	if err != nil {
		return s, 0, err
	}
	return next, binary.BigEndian.Uint16(b), nil
}

// U24LE reads a little-endian, 24-bit unsigned integer.
func U24LE(s Span) (Span, uint32, error) {
	next, b, err := FixedBytes(3)(s)
	if err != nil {
		return s, 0, err
	}
	return next, uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// U24BE reads a big-endian, 24-bit unsigned integer.
func U24BE(s Span) (Span, uint32, error) {
	next, b, err := FixedBytes(3)(s)
	if err != nil {
		return s, 0, err
	}
	return next, uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16, nil
}

// U32LE reads a little-endian uint32.
func U32LE(s Span) (Span, uint32, error) {
	next, b, err := FixedBytes(4)(s)
	if err != nil {
		return s, 0, err
	}
	return next, binary.LittleEndian.Uint32(b), nil
}

// U32BE reads a big-endian uint32.
func U32BE(s Span) (Span, uint32, error) {
	next, b, err := FixedBytes(4)(s)
	if err != nil {
		return s, 0, err
	}
	return next, binary.BigEndian.Uint32(b), nil
}

// U64LE reads a little-endian uint64.
func U64LE(s Span) (Span, uint64, error) {
	next, b, err := FixedBytes(8)(s)
	if err != nil {
		return s, 0, err
	}
	return next, binary.LittleEndian.Uint64(b), nil
}

// U64BE reads a big-endian uint64.
func U64BE(s Span) (Span, uint64, error) {
	next, b, err := FixedBytes(8)(s)
	if err != nil {
		return s, 0, err
	}
	return next, binary.BigEndian.Uint64(b), nil
}

// I32LE reads a little-endian int32.
func I32LE(s Span) (Span, int32, error) {
	next, n, err := U32LE(s)
	return next, int32(n), err
}

// I32BE reads a big-endian int32.
func I32BE(s Span) (Span, int32, error) {
	next, n, err := U32BE(s)
	return next, int32(n), err
}

// I64LE reads a little-endian int64.
func I64LE(s Span) (Span, int64, error) {
	next, n, err := U64LE(s)
	return next, int64(n), err
}

// I64BE reads a big-endian int64.
func I64BE(s Span) (Span, int64, error) {
	next, n, err := U64BE(s)
	return next, int64(n), err
}
