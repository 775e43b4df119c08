package bitbuf

// The tables below are built once at package initialization and only read
// afterwards, so Readers and Writers share them without synchronization.

// bitForBitNum[i] has exactly bit i set.
var bitForBitNum = func() (t [64]uint64) {
	for i := range t {
		t[i] = 1 << i
	}
	return t
}()

// bitWriteMasks[start][n] clears the n bits beginning at start and keeps all
// other bits of a word. Used to merge a field into a partially occupied word.
var bitWriteMasks = func() (t [64][65]uint64) {
	for start := 0; start < 64; start++ {
		for n := 0; n <= 64; n++ {
			// keep everything below start
			mask := bitForBitNum[start] - 1
			// and everything from start+n up; nothing to keep when the field
			// reaches the top of the word
			if end := start + n; end < 64 {
				mask |= ^(bitForBitNum[end] - 1)
			}
			t[start][n] = mask
		}
	}
	return t
}()

// extraMasks[n] has the low n bits set. extraMasks[64] is all ones.
var extraMasks = func() (t [65]uint64) {
	for n := 0; n < 64; n++ {
		t[n] = bitForBitNum[n] - 1
	}
	t[64] = ^uint64(0)
	return t
}()

// BitForBitNum returns a word with only bit (i mod 64) set.
func BitForBitNum(i int) uint64 {
	return bitForBitNum[i&63]
}

// ExtraMask returns a word whose low n bits are set, 0 <= n <= 64.
func ExtraMask(n int) uint64 {
	return extraMasks[n]
}

// WriteMask returns the mask that clears n bits starting at start and
// preserves the rest, 0 <= start < 64 and 0 <= n <= 64.
func WriteMask(start, n int) uint64 {
	return bitWriteMasks[start][n]
}
