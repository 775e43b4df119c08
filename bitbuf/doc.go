// Package bitbuf reads and writes arbitrary-width bit fields over a borrowed
// byte slice.
//
// The buffer is treated as a sequence of 64-bit little-endian words. Bit 0 is
// the least significant bit of byte 0 and fields are packed least significant
// bit first, so a field may straddle two words:
//
//	buf := make([]byte, 16)
//	w := bitbuf.NewWriter(buf)
//	_ = w.WriteField(0xFFFFFFFFFFFFFFF, 60)
//	_ = w.WriteField(0xAA, 8) // 4 bits in word 0, 4 bits in word 1
//
//	r := bitbuf.NewReader(buf)
//	_, _ = r.ReadField(60)
//	v, _ := r.ReadField(8) // 0xAA
//
// Every operation comes in two forms. The checked form validates the width
// and the remaining space and returns ErrOverflow without touching the
// cursor. The Unchecked form skips validation for hot loops where the bound
// was established up front; call IsOverflowed once afterwards to find out
// whether any of those calls ran past the end. Building with
// -tags bitbufdebug turns the unchecked preconditions into assertions.
//
// Varints use the format of package varint and are available on both
// cursors; *Reader satisfies io.ByteReader and *Writer io.ByteWriter.
package bitbuf
