package bitbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFieldOverflow(t *testing.T) {
	buf := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	r := NewReader(buf)

	v, err := r.ReadField(64)
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), v)

	_, err = r.ReadField(1)
	require.ErrorIs(t, err, ErrOverflow)
	// a failed read leaves the cursor alone
	require.Equal(t, 64, r.NumBitsRead())
	require.False(t, r.IsOverflowed())
}

func TestReadFieldRejectsBadWidth(t *testing.T) {
	r := NewReader(make([]byte, 16))
	_, err := r.ReadField(65)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = r.ReadField(-1)
	require.ErrorIs(t, err, ErrOverflow)
	require.Zero(t, r.NumBitsRead())
}

func TestReadFieldMultipleReads(t *testing.T) {
	buf := make([]byte, 8)
	buf[0] = 0b1100101
	r := NewReader(buf)

	v, err := r.ReadField(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b101), v)

	v, err = r.ReadField(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b1100), v)
}

func TestReadFieldSpanningWords(t *testing.T) {
	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xff
	}
	buf[8] = 0xaa
	r := NewReader(buf)

	_, err := r.ReadField(60)
	require.NoError(t, err)

	// 4 bits from the top of word 0 and 4 bits from the bottom of word 1
	v, err := r.ReadField(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xaf), v)
}

func TestReadFieldZeroWidth(t *testing.T) {
	r := NewReader([]byte{0xff})
	v, err := r.ReadField(0)
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Zero(t, r.NumBitsRead())

	// valid even at the very end
	require.NoError(t, r.Seek(8))
	_, err = r.ReadField(0)
	require.NoError(t, err)
}

func TestReadInto(t *testing.T) {
	buf := []byte{0b10110011, 0b01011100, 0b11001010, 0b00110101, 0xff, 0xff, 0xff, 0xff}
	r := NewReader(buf)
	out := make([]byte, 4)

	require.NoError(t, r.ReadInto(out[:1], 3))
	assert.Equal(t, byte(0b011), out[0])

	require.NoError(t, r.ReadInto(out[:1], 5))
	assert.Equal(t, byte(0b10110), out[0])

	require.NoError(t, r.ReadInto(out[:1], 8))
	assert.Equal(t, byte(0b01011100), out[0])

	require.NoError(t, r.ReadInto(out[:2], 16))
	assert.Equal(t, byte(0b11001010), out[0])
	assert.Equal(t, byte(0b00110101), out[1])

	// 32 bits remain
	require.ErrorIs(t, r.ReadInto(out, 33), ErrBufferTooSmall)
	require.ErrorIs(t, r.ReadInto(make([]byte, 5), 33), ErrOverflow)
}

func TestReadBytes(t *testing.T) {
	buf := []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x11, 0x22}
	r := NewReader(buf)
	out := make([]byte, 8)

	require.NoError(t, r.ReadBytes(out[:4]))
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc, 0xdd}, out[:4])

	require.NoError(t, r.ReadBytes(out[:2]))
	assert.Equal(t, []byte{0xee, 0xff}, out[:2])

	require.ErrorIs(t, r.ReadBytes(out), ErrOverflow)

	require.NoError(t, r.ReadBytes(out[:2]))
	assert.Equal(t, []byte{0x11, 0x22}, out[:2])

	require.ErrorIs(t, r.ReadBytes(out[:1]), ErrOverflow)
}

func TestReadBytesUnaligned(t *testing.T) {
	// 3 bits of padding followed by 20 bytes, which exercises the byte, word
	// and tail phases of the copy
	src := make([]byte, 20)
	for i := range src {
		src[i] = byte(i*37 + 1)
	}
	buf := make([]byte, 24)
	w := NewWriter(buf)
	require.NoError(t, w.WriteField(0b101, 3))
	require.NoError(t, w.WriteBytes(src))

	r := NewReader(buf)
	pad, err := r.ReadField(3)
	require.NoError(t, err)
	require.Equal(t, uint64(0b101), pad)

	got := make([]byte, len(src))
	require.NoError(t, r.ReadBytes(got))
	assert.Equal(t, src, got)
}

func TestReadBytesByteAligned(t *testing.T) {
	src := make([]byte, 32)
	for i := range src {
		src[i] = byte(255 - i)
	}
	r := NewReader(src)
	_, err := r.ReadField(8)
	require.NoError(t, err)

	got := make([]byte, 31)
	require.NoError(t, r.ReadBytes(got))
	assert.Equal(t, src[1:], got)
	assert.Zero(t, r.NumBitsLeft())
}

func TestReaderPositions(t *testing.T) {
	r := NewReader(make([]byte, 10))
	assert.Equal(t, 80, r.NumBitsLeft())
	assert.Equal(t, 10, r.NumBytesLeft())

	_, err := r.ReadField(13)
	require.NoError(t, err)
	assert.Equal(t, 13, r.NumBitsRead())
	assert.Equal(t, 2, r.NumBytesRead())
	assert.Equal(t, 67, r.NumBitsLeft())
	assert.Equal(t, 8, r.NumBytesLeft())
}

func TestReaderSeek(t *testing.T) {
	r := NewReader([]byte{0x0f, 0xf0})

	require.NoError(t, r.Seek(4))
	v, err := r.ReadField(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x00), v)

	pos, err := r.SeekRelative(-8)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)

	pos, err = r.SeekRelative(-5)
	require.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, 4, pos)

	require.ErrorIs(t, r.Seek(17), ErrOverflow)
	require.ErrorIs(t, r.Seek(-1), ErrOverflow)
	require.NoError(t, r.Seek(16))
	assert.Zero(t, r.NumBitsLeft())
}

func TestReadOddLengthBuffer(t *testing.T) {
	// 11 bytes: the second word only has 3 bytes behind it
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	r := NewReader(buf)
	require.NoError(t, r.Seek(60))

	v, err := r.ReadField(28)
	require.NoError(t, err)
	// high nibble of byte 7 is zero, then bytes 8, 9 and 10
	assert.Equal(t, uint64(0xb0a090), v)

	_, err = r.ReadField(1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestReadUncheckedOverflow(t *testing.T) {
	if debugChecks {
		t.Skip("unchecked overruns trip assertions in debug builds")
	}
	r := NewReader([]byte{0xff, 0xff})

	assert.Equal(t, uint64(0xfff), r.ReadFieldUnchecked(12))
	assert.False(t, r.IsOverflowed())
	require.NoError(t, r.CheckOverflow())

	// the last 4 bits exist; the rest reads as zero
	assert.Equal(t, uint64(0xf), r.ReadFieldUnchecked(8))
	assert.True(t, r.IsOverflowed())
	require.ErrorIs(t, r.CheckOverflow(), ErrOverflow)
	assert.Zero(t, r.NumBitsLeft())

	assert.False(t, r.ReadBoolUnchecked())
	assert.Zero(t, r.ReadByteUnchecked())
}

func TestReadUncheckedMatchesChecked(t *testing.T) {
	buf := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab}
	checked, unchecked := NewReader(buf), NewReader(buf)

	for _, n := range []int{1, 7, 13, 0, 33, 10, 15} {
		want, err := checked.ReadField(n)
		require.NoError(t, err)
		require.Equal(t, want, unchecked.ReadFieldUnchecked(n), "width %d", n)
	}
	require.False(t, unchecked.IsOverflowed())

	b1, err := checked.ReadBool()
	require.NoError(t, err)
	assert.Equal(t, b1, unchecked.ReadBoolUnchecked())

	out := make([]byte, 1)
	unchecked.ReadIntoUnchecked(out, 0)
	assert.Equal(t, checked.NumBitsRead(), unchecked.NumBitsRead())
}

func BenchmarkReadField(b *testing.B) {
	buf := make([]byte, 1<<12)
	for i := range buf {
		buf[i] = byte(i)
	}
	widths := []int{1, 3, 7, 13, 32, 64}
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		r := NewReader(buf)
		for k := 0; r.NumBitsLeft() >= 64; k++ {
			_, _ = r.ReadField(widths[k%len(widths)])
		}
	}
}

func BenchmarkReadFieldUnchecked(b *testing.B) {
	buf := make([]byte, 1<<12)
	widths := []int{1, 3, 7, 13, 32, 64}
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		r := NewReader(buf)
		for k := 0; r.NumBitsLeft() >= 64; k++ {
			r.ReadFieldUnchecked(widths[k%len(widths)])
		}
	}
}
