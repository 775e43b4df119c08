package bitbuf

import "encoding/binary"

// The buffer is addressed as 64-bit little-endian words decoded explicitly
// from bytes, so alignment and host byte order do not matter. Any buffer
// length is accepted: the last word of a buffer whose length is not a
// multiple of 8 is zero-extended on load and truncated on store. Words wholly
// past the end load as zero and are never stored.

func loadWord(data []byte, idx int) uint64 {
	off := idx << 3
	if off+8 <= len(data) {
		return binary.LittleEndian.Uint64(data[off:])
	}
	var tmp [8]byte
	if off < len(data) {
		copy(tmp[:], data[off:])
	}
	return binary.LittleEndian.Uint64(tmp[:])
}

func storeWord(data []byte, idx int, w uint64) {
	off := idx << 3
	if off+8 <= len(data) {
		binary.LittleEndian.PutUint64(data[off:], w)
		return
	}
	if off >= len(data) {
		return
	}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], w)
	copy(data[off:], tmp[:])
}
