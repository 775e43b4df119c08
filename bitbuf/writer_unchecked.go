package bitbuf

// Unchecked twins of the Writer operations. Writes past the end of the buffer
// are dropped while the cursor still advances, so IsOverflowed reports the
// overrun afterwards. A width outside 0..64 panics.

func (w *Writer) WriteFieldUnchecked(v uint64, n int) {
	debugAssert(n >= 0 && n <= 64, "field width out of range")
	debugAssert(w.NumBitsLeft() >= n, "write past end of buffer")
	w.writeField(v, n)
}

func (w *Writer) WriteBoolUnchecked(b bool) {
	debugAssert(w.NumBitsLeft() >= 1, "write past end of buffer")
	w.writeBool(b)
}

func (w *Writer) WriteByteUnchecked(b byte) {
	debugAssert(w.NumBitsLeft() >= 8, "write past end of buffer")
	w.writeField(uint64(b), 8)
}

func (w *Writer) WriteFromUnchecked(src []byte, n int) {
	debugAssert(n >= 0 && len(src)<<3 >= n, "source too small")
	debugAssert(w.NumBitsLeft() >= n, "write past end of buffer")
	w.writeFrom(src, n)
}

func (w *Writer) WriteBytesUnchecked(src []byte) {
	w.WriteFromUnchecked(src, len(src)<<3)
}
