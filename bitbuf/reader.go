package bitbuf

import (
	"encoding/binary"

	"github.com/unkn0wn-root/bitwire/varint"
)

// Reader reads bit fields sequentially from a borrowed byte slice. Bit 0 is
// the least significant bit of byte 0; fields are returned least significant
// bit first.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	data    []byte
	numBits int
	curBit  int
}

// NewReader returns a Reader positioned at bit 0 of buf. buf is not copied.
func NewReader(buf []byte) *Reader {
	return &Reader{data: buf, numBits: len(buf) << 3}
}

// NumBitsLeft returns the number of unread bits. It is 0 once an unchecked
// read has run past the end.
func (r *Reader) NumBitsLeft() int {
	if r.curBit > r.numBits {
		return 0
	}
	return r.numBits - r.curBit
}

func (r *Reader) NumBytesLeft() int { return r.NumBitsLeft() >> 3 }

func (r *Reader) NumBitsRead() int { return r.curBit }

// NumBytesRead counts a partially read byte as read.
func (r *Reader) NumBytesRead() int { return (r.curBit + 7) >> 3 }

// Seek moves the cursor to an absolute bit position.
func (r *Reader) Seek(bit int) error {
	if bit < 0 || bit > r.numBits {
		return ErrOverflow
	}
	r.curBit = bit
	return nil
}

// SeekRelative moves the cursor by delta bits and returns the new position.
func (r *Reader) SeekRelative(delta int) (int, error) {
	if err := r.Seek(r.curBit + delta); err != nil {
		return r.curBit, err
	}
	return r.curBit, nil
}

// ReadField reads an n-bit unsigned field, 0 <= n <= 64.
func (r *Reader) ReadField(n int) (uint64, error) {
	if n < 0 || n > 64 || r.NumBitsLeft() < n {
		return 0, ErrOverflow
	}
	return r.readField(n), nil
}

// ReadBool reads one bit.
func (r *Reader) ReadBool() (bool, error) {
	if r.NumBitsLeft() < 1 {
		return false, ErrOverflow
	}
	return r.readBool(), nil
}

// ReadByte reads 8 bits. With it *Reader satisfies io.ByteReader; it returns
// ErrOverflow, never io.EOF, at the end of the buffer.
func (r *Reader) ReadByte() (byte, error) {
	if r.NumBitsLeft() < 8 {
		return 0, ErrOverflow
	}
	return byte(r.readField(8)), nil
}

// ReadInto reads n bits into dst. Whole bytes land in dst in order; a
// trailing partial byte occupies the low bits of its destination byte.
func (r *Reader) ReadInto(dst []byte, n int) error {
	if n < 0 {
		return ErrOverflow
	}
	if len(dst)<<3 < n {
		return ErrBufferTooSmall
	}
	if r.NumBitsLeft() < n {
		return ErrOverflow
	}
	r.readInto(dst, n)
	return nil
}

// ReadBytes fills dst.
func (r *Reader) ReadBytes(dst []byte) error {
	return r.ReadInto(dst, len(dst)<<3)
}

// IsOverflowed reports whether the cursor went past the end of the buffer.
// Only unchecked reads can cause that, so calling it once after a run of
// them is enough to validate the whole run.
func (r *Reader) IsOverflowed() bool {
	return r.curBit > r.numBits
}

// CheckOverflow returns ErrOverflow if IsOverflowed, nil otherwise.
func (r *Reader) CheckOverflow() error {
	if r.IsOverflowed() {
		return ErrOverflow
	}
	return nil
}

// ReadUvarint64 reads a varint of at most varint.MaxLen64 bytes.
func (r *Reader) ReadUvarint64() (uint64, error) {
	v, _, err := varint.DecodeUvarint64(r)
	return v, err
}

// ReadVarint64 reads a zigzag-encoded varint.
func (r *Reader) ReadVarint64() (int64, error) {
	v, err := r.ReadUvarint64()
	if err != nil {
		return 0, err
	}
	return varint.ZigZagDecode64(v), nil
}

// ReadUvarint32 reads a varint of at most varint.MaxLen32 bytes.
func (r *Reader) ReadUvarint32() (uint32, error) {
	v, _, err := varint.DecodeUvarint32(r)
	return v, err
}

// ReadVarint32 reads a zigzag-encoded 32-bit varint.
func (r *Reader) ReadVarint32() (int32, error) {
	v, err := r.ReadUvarint32()
	if err != nil {
		return 0, err
	}
	return varint.ZigZagDecode32(v), nil
}

func (r *Reader) readField(n int) uint64 {
	if n == 0 {
		return 0
	}
	idx := r.curBit >> 6

	// align the field to bit 0
	ret := loadWord(r.data, idx) >> (r.curBit & 63)
	r.curBit += n

	if (r.curBit-1)>>6 == idx {
		return ret & extraMasks[n]
	}

	// the field spills into the next word; its low bits sit above the ones
	// taken from the first word
	spill := r.curBit & 63
	w2 := loadWord(r.data, idx+1) & extraMasks[spill]
	return ret | w2<<(n-spill)
}

func (r *Reader) readBool() bool {
	bit := loadWord(r.data, r.curBit>>6) >> (r.curBit & 63) & 1
	r.curBit++
	return bit == 1
}

func (r *Reader) readInto(dst []byte, n int) {
	left, i := n, 0

	for left >= 8 && r.curBit&7 == 0 && r.curBit&63 != 0 {
		dst[i] = byte(r.readField(8))
		i++
		left -= 8
	}
	for left >= 64 {
		binary.LittleEndian.PutUint64(dst[i:], r.readField(64))
		i += 8
		left -= 64
	}
	for left >= 8 {
		dst[i] = byte(r.readField(8))
		i++
		left -= 8
	}
	if left > 0 {
		dst[i] = byte(r.readField(left))
	}
}
