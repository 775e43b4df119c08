// Package varint implements LEB128-style variable-length integers and the
// zigzag mapping for signed values.
//
// Each encoded byte carries 7 payload bits in its low bits and a continuation
// flag in its most significant bit. Groups are emitted least-significant
// first. Numbers that fit in a given number of encoded bytes:
//
//	1 byte:  0-127
//	2 bytes: 128-16383
//	3 bytes: 16384-2097151
//	4 bytes: 2097152-268435455
//	5 bytes: 268435456-0xFFFFFFFF (the 32-bit maximum)
//
// Three surfaces share the same wire format: byte slices (this file),
// io.Reader / io.Writer streams (stream.go) and the bit cursors of package
// bitbuf.
package varint

import (
	"errors"
	"io"
	"unsafe"
)

const (
	ContinueBit byte = 0x80
	PayloadBits byte = 0x7f

	// MaxLen64 is the maximum encoded size of a 64-bit value.
	MaxLen64 = 10
	// MaxLen32 is the maximum encoded size of a 32-bit value.
	MaxLen32 = 5
)

// ErrMalformedVarint is returned when a continuation chain runs past the
// maximum encoded size of the target integer type. Callers should reject the
// whole message rather than retry.
var ErrMalformedVarint = errors.New("varint: malformed varint")

// Unsigned is the set of integer types a varint can be decoded into.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// MaxEncodedSize returns ceil(bits(T) / 7), the longest encoding of a T.
func MaxEncodedSize[T Unsigned]() int {
	var zero T
	return (int(unsafe.Sizeof(zero))*8 + 6) / 7
}

// ZigZag maps signed integers onto unsigned ones so that values with a
// small magnitude get small encodings:
//
//	          0 -> 0
//	         -1 -> 1
//	          1 -> 2
//	         -2 -> 3
//	 2147483647 -> 4294967294
//	-2147483648 -> 4294967295

func ZigZagEncode64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func ZigZagDecode64(n uint64) int64 {
	return int64(n>>1) ^ -int64(n&1)
}

func ZigZagEncode32(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

func ZigZagDecode32(n uint32) int32 {
	return int32(n>>1) ^ -int32(n&1)
}

// Len returns the number of bytes needed to encode v.
func Len(v uint64) int {
	n := 1
	for v >= uint64(ContinueBit) {
		v >>= 7
		n++
	}
	return n
}

// PutUvarint encodes v into buf and returns the number of bytes written.
// It panics if buf is too small; MaxLen64 bytes always suffice.
func PutUvarint(buf []byte, v uint64) int {
	i := 0
	for v >= uint64(ContinueBit) {
		buf[i] = byte(v) | ContinueBit
		v >>= 7
		i++
	}
	buf[i] = byte(v)
	return i + 1
}

// AppendUvarint appends the encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	var scratch [MaxLen64]byte
	n := PutUvarint(scratch[:], v)
	return append(dst, scratch[:n]...)
}

// AppendVarint appends the zigzag encoding of v to dst.
func AppendVarint(dst []byte, v int64) []byte {
	return AppendUvarint(dst, ZigZagEncode64(v))
}

// Uvarint decodes a value from the start of b and returns it together with
// the number of bytes consumed. A chain longer than MaxLen64 bytes yields
// ErrMalformedVarint; input that ends mid-chain yields io.ErrUnexpectedEOF.
func Uvarint(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	if b[0]&ContinueBit == 0 {
		return uint64(b[0]), 1, nil
	}

	value := uint64(b[0] & PayloadBits)
	for i := 1; i < MaxLen64; i++ {
		if i >= len(b) {
			return 0, 0, io.ErrUnexpectedEOF
		}
		c := b[i]
		value |= uint64(c&PayloadBits) << (7 * i)
		if c&ContinueBit == 0 {
			return value, i + 1, nil
		}
	}
	return 0, 0, ErrMalformedVarint
}

// Varint decodes a zigzag-encoded signed value from the start of b.
func Varint(b []byte) (int64, int, error) {
	v, n, err := Uvarint(b)
	if err != nil {
		return 0, 0, err
	}
	return ZigZagDecode64(v), n, nil
}
