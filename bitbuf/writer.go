package bitbuf

import (
	"encoding/binary"

	"github.com/unkn0wn-root/bitwire/varint"
)

// Writer writes bit fields sequentially into a borrowed byte slice, using
// the same bit order as Reader. A write only changes the bits it addresses;
// neighbouring bits in the same bytes are preserved.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	data     []byte
	dataBits int
	curBit   int
}

// NewWriter returns a Writer positioned at bit 0 of buf. buf is not copied.
func NewWriter(buf []byte) *Writer {
	return &Writer{data: buf, dataBits: len(buf) << 3}
}

// NumBitsLeft returns the number of bits that can still be written.
func (w *Writer) NumBitsLeft() int {
	if w.curBit > w.dataBits {
		return 0
	}
	return w.dataBits - w.curBit
}

func (w *Writer) NumBytesLeft() int { return w.NumBitsLeft() >> 3 }

func (w *Writer) NumBitsWritten() int { return w.curBit }

// NumBytesWritten counts a partially written byte as written.
func (w *Writer) NumBytesWritten() int { return (w.curBit + 7) >> 3 }

// Bytes returns the prefix of the buffer up to the cursor.
func (w *Writer) Bytes() []byte {
	return w.data[:min(w.NumBytesWritten(), len(w.data))]
}

func (w *Writer) Seek(bit int) error {
	if bit < 0 || bit > w.dataBits {
		return ErrOverflow
	}
	w.curBit = bit
	return nil
}

// SeekRelative moves the cursor by delta bits and returns the new position.
func (w *Writer) SeekRelative(delta int) (int, error) {
	if err := w.Seek(w.curBit + delta); err != nil {
		return w.curBit, err
	}
	return w.curBit, nil
}

// WriteField writes the low n bits of v, 0 <= n <= 64. Bits of v above n
// are dropped silently; that truncation is part of the contract.
func (w *Writer) WriteField(v uint64, n int) error {
	if n < 0 || n > 64 || w.NumBitsLeft() < n {
		return ErrOverflow
	}
	w.writeField(v, n)
	return nil
}

func (w *Writer) WriteBool(b bool) error {
	if w.NumBitsLeft() < 1 {
		return ErrOverflow
	}
	w.writeBool(b)
	return nil
}

// WriteByte writes 8 bits. With it *Writer satisfies io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	if w.NumBitsLeft() < 8 {
		return ErrOverflow
	}
	w.writeField(uint64(b), 8)
	return nil
}

// WriteFrom writes the first n bits of src, the inverse of Reader.ReadInto.
func (w *Writer) WriteFrom(src []byte, n int) error {
	if n < 0 {
		return ErrOverflow
	}
	if len(src)<<3 < n {
		return ErrBufferTooSmall
	}
	if w.NumBitsLeft() < n {
		return ErrOverflow
	}
	w.writeFrom(src, n)
	return nil
}

// WriteBytes writes all of src.
func (w *Writer) WriteBytes(src []byte) error {
	return w.WriteFrom(src, len(src)<<3)
}

// IsOverflowed reports whether an unchecked write moved the cursor past the
// end of the buffer.
func (w *Writer) IsOverflowed() bool {
	return w.curBit > w.dataBits
}

// CheckOverflow returns ErrOverflow if IsOverflowed, nil otherwise.
func (w *Writer) CheckOverflow() error {
	if w.IsOverflowed() {
		return ErrOverflow
	}
	return nil
}

// WriteUvarint64 writes v as a varint. Nothing is written when the encoding
// does not fit.
func (w *Writer) WriteUvarint64(v uint64) error {
	var buf [varint.MaxLen64]byte
	n := varint.PutUvarint(buf[:], v)
	if w.NumBitsLeft() < n<<3 {
		return ErrOverflow
	}
	for _, b := range buf[:n] {
		w.writeField(uint64(b), 8)
	}
	return nil
}

func (w *Writer) WriteVarint64(v int64) error {
	return w.WriteUvarint64(varint.ZigZagEncode64(v))
}

func (w *Writer) WriteUvarint32(v uint32) error {
	return w.WriteUvarint64(uint64(v))
}

func (w *Writer) WriteVarint32(v int32) error {
	return w.WriteUvarint64(uint64(varint.ZigZagEncode32(v)))
}

func (w *Writer) writeField(v uint64, n int) {
	if n == 0 {
		return
	}
	v &= extraMasks[n]

	idx := w.curBit >> 6
	offset := w.curBit & 63

	w1 := loadWord(w.data, idx)
	w1 &= bitWriteMasks[offset][n]
	w1 |= v << offset
	storeWord(w.data, idx, w1)

	// did it span a word?
	if written := 64 - offset; written < n {
		rest := n - written
		w2 := loadWord(w.data, idx+1)
		w2 &= bitWriteMasks[0][rest]
		w2 |= v >> written
		storeWord(w.data, idx+1, w2)
	}

	w.curBit += n
}

func (w *Writer) writeBool(b bool) {
	var v uint64
	if b {
		v = 1
	}
	w.writeField(v, 1)
}

func (w *Writer) writeFrom(src []byte, n int) {
	left, i := n, 0

	for left >= 8 && w.curBit&7 == 0 && w.curBit&63 != 0 {
		w.writeField(uint64(src[i]), 8)
		i++
		left -= 8
	}
	for left >= 64 {
		w.writeField(binary.LittleEndian.Uint64(src[i:]), 64)
		i += 8
		left -= 64
	}
	for left >= 8 {
		w.writeField(uint64(src[i]), 8)
		i++
		left -= 8
	}
	if left > 0 {
		w.writeField(uint64(src[i]), left)
	}
}
