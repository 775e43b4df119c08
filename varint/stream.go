package varint

import "io"

// WriteUvarint64 writes the encoding of v to w in a single Write call and
// returns the number of bytes written. Errors from w are returned unchanged.
func WriteUvarint64(w io.Writer, v uint64) (int, error) {
	var buf [MaxLen64]byte
	n := PutUvarint(buf[:], v)
	return w.Write(buf[:n])
}

// WriteVarint64 writes the zigzag encoding of v to w.
func WriteVarint64(w io.Writer, v int64) (int, error) {
	return WriteUvarint64(w, ZigZagEncode64(v))
}

// WriteUvarint32 writes the encoding of v to w.
func WriteUvarint32(w io.Writer, v uint32) (int, error) {
	return WriteUvarint64(w, uint64(v))
}

// WriteVarint32 writes the zigzag encoding of v to w.
func WriteVarint32(w io.Writer, v int32) (int, error) {
	return WriteUvarint64(w, uint64(ZigZagEncode32(v)))
}

// ReadUvarint64 reads one value from r and returns it with the number of
// bytes consumed. Bytes are pulled one at a time so nothing past the value is
// read; wrap r in a bufio.Reader if per-byte reads are expensive.
//
// An io.EOF before the first byte is returned as is. An io.EOF in the middle
// of a value is reported as io.ErrUnexpectedEOF. Any other error from r is
// returned unchanged.
func ReadUvarint64(r io.Reader) (uint64, int, error) {
	return readUvarint(byteSource(r), MaxLen64)
}

// ReadVarint64 reads one zigzag-encoded value from r.
func ReadVarint64(r io.Reader) (int64, int, error) {
	v, n, err := ReadUvarint64(r)
	if err != nil {
		return 0, n, err
	}
	return ZigZagDecode64(v), n, nil
}

// ReadUvarint32 reads one value of at most MaxLen32 bytes from r. Payload
// bits above bit 31 are discarded.
func ReadUvarint32(r io.Reader) (uint32, int, error) {
	v, n, err := readUvarint(byteSource(r), MaxLen32)
	return uint32(v), n, err
}

// ReadVarint32 reads one zigzag-encoded 32-bit value from r.
func ReadVarint32(r io.Reader) (int32, int, error) {
	v, n, err := ReadUvarint32(r)
	if err != nil {
		return 0, n, err
	}
	return ZigZagDecode32(v), n, nil
}

// DecodeUvarint64 reads one value through br with the same error rules as
// ReadUvarint64. Bit cursors and bufio readers plug in here directly.
func DecodeUvarint64(br io.ByteReader) (uint64, int, error) {
	return readUvarint(br.ReadByte, MaxLen64)
}

// DecodeUvarint32 is the 32-bit variant of DecodeUvarint64.
func DecodeUvarint32(br io.ByteReader) (uint32, int, error) {
	v, n, err := readUvarint(br.ReadByte, MaxLen32)
	return uint32(v), n, err
}

func readUvarint(next func() (byte, error), maxLen int) (uint64, int, error) {
	// small values are the common case
	b, err := next()
	if err != nil {
		return 0, 0, err
	}
	if b&ContinueBit == 0 {
		return uint64(b), 1, nil
	}

	value := uint64(b & PayloadBits)
	for count := 1; count < maxLen; count++ {
		b, err = next()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, count, err
		}
		value |= uint64(b&PayloadBits) << (7 * count)
		if b&ContinueBit == 0 {
			return value, count + 1, nil
		}
	}
	return 0, maxLen, ErrMalformedVarint
}

func byteSource(r io.Reader) func() (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte
	}
	var buf [1]byte
	return func() (byte, error) {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return buf[0], nil
	}
}
