package bitbuf

// Unchecked twins of the Reader operations. They run the same algorithm
// without validating widths or remaining bits; the caller must already have
// established the bound, for instance by checking NumBitsLeft once for a
// whole record. Bits past the end of the buffer read as zero and the cursor
// still advances, which IsOverflowed reports afterwards. A width outside
// 0..64 panics. Builds with -tags bitbufdebug assert every precondition.

func (r *Reader) ReadFieldUnchecked(n int) uint64 {
	debugAssert(n >= 0 && n <= 64, "field width out of range")
	debugAssert(r.NumBitsLeft() >= n, "read past end of buffer")
	return r.readField(n)
}

func (r *Reader) ReadBoolUnchecked() bool {
	debugAssert(r.NumBitsLeft() >= 1, "read past end of buffer")
	return r.readBool()
}

func (r *Reader) ReadByteUnchecked() byte {
	debugAssert(r.NumBitsLeft() >= 8, "read past end of buffer")
	return byte(r.readField(8))
}

func (r *Reader) ReadIntoUnchecked(dst []byte, n int) {
	debugAssert(n >= 0 && len(dst)<<3 >= n, "destination too small")
	debugAssert(r.NumBitsLeft() >= n, "read past end of buffer")
	r.readInto(dst, n)
}

func (r *Reader) ReadBytesUnchecked(dst []byte) {
	r.ReadIntoUnchecked(dst, len(dst)<<3)
}
