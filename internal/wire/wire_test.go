package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/unkn0wn-root/bitwire/varint"
)

func mustDecodeSingle(t *testing.T, b []byte) (Header, []byte) {
	t.Helper()
	h, p, err := DecodeSingle(b)
	if err != nil {
		t.Fatalf("DecodeSingle error: %v", err)
	}
	return h, p
}

func mustDecodeBatch(t *testing.T, b []byte) (Header, [][]byte) {
	t.Helper()
	h, ps, err := DecodeBatch(b)
	if err != nil {
		t.Fatalf("DecodeBatch error: %v", err)
	}
	return h, ps
}

func TestHeaderLayout(t *testing.T) {
	enc := EncodeSingle(FlagCompressed, []byte("hi"))
	want := []byte{'B', 'I', 'T', 'W', Version | byte(KindSingle)<<4, byte(FlagCompressed), 2, 'h', 'i'}
	if !bytes.Equal(enc, want) {
		t.Fatalf("layout mismatch:\n got %x\nwant %x", enc, want)
	}

	h, err := ReadHeader(enc)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Version != Version || h.Kind != KindSingle || !h.Flags.Has(FlagCompressed) {
		t.Fatalf("unexpected header %+v", h)
	}
}

func TestSingleRTEmptyAndNonEmpty(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("hello"),
		bytes.Repeat([]byte{0xab}, 300), // two-byte length prefix
	}
	for _, payload := range cases {
		enc := EncodeSingle(0, payload)
		h, p := mustDecodeSingle(t, enc)
		if h.Kind != KindSingle || h.Flags != 0 {
			t.Fatalf("unexpected header %+v", h)
		}
		if !bytes.Equal(p, payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, payload)
		}
	}
}

func TestSingleRejectsTrailingBytes(t *testing.T) {
	enc := EncodeSingle(0, []byte("x"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, err := DecodeSingle(enc); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestSingleCorruptHeadersAndLengths(t *testing.T) {
	enc := EncodeSingle(0, []byte("abc"))

	mutate := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), enc...))
	}
	cases := map[string][]byte{
		"bad magic":     mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		"bad version":   mutate(func(b []byte) []byte { b[4] = b[4]&0xf0 | (Version + 1); return b }),
		"wrong kind":    mutate(func(b []byte) []byte { b[4] = b[4]&0x0f | byte(KindBatch)<<4; return b }),
		"unknown kind":  mutate(func(b []byte) []byte { b[4] = b[4]&0x0f | 7<<4; return b }),
		"unknown flags": mutate(func(b []byte) []byte { b[5] = 0x80; return b }),
		// length at offset 6 announces one byte more than present
		"vlen too large": mutate(func(b []byte) []byte { b[6] = 4; return b }),
		"truncated":      enc[:len(enc)-1],
		"short header":   enc[:HeaderSize-1],
		"no length":      enc[:HeaderSize],
	}
	for name, b := range cases {
		if _, _, err := DecodeSingle(b); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}

func TestSingleMalformedLength(t *testing.T) {
	enc := EncodeSingle(0, nil)[:HeaderSize]
	enc = append(enc, bytes.Repeat([]byte{0x80}, varint.MaxLen64)...)
	enc = append(enc, 0x00)

	_, _, err := DecodeSingle(enc)
	if !errors.Is(err, ErrCorrupt) || !errors.Is(err, varint.ErrMalformedVarint) {
		t.Fatalf("expected ErrCorrupt wrapping ErrMalformedVarint, got %v", err)
	}
}

func TestSingleZeroCopyPayload(t *testing.T) {
	enc := EncodeSingle(0, []byte("Z"))
	_, p := mustDecodeSingle(t, enc)
	if len(p) != 1 {
		t.Fatalf("unexpected payload len")
	}
	// mutate payload slice. should mutate underlying enc bytes (zero-copy)
	p[0] = 'Q'
	_, p2 := mustDecodeSingle(t, enc)
	if p2[0] != 'Q' {
		t.Fatalf("expected zero-copy slice into enc buffer")
	}
}

func TestBatchRoundTrip(t *testing.T) {
	cases := [][][]byte{
		nil, // n=0
		{[]byte("x")},
		{[]byte("x"), nil, {9, 8, 7}},
		{bytes.Repeat([]byte{1}, 200), []byte("dup"), []byte("dup")},
	}
	for _, payloads := range cases {
		enc := EncodeBatch(0, payloads)
		h, got := mustDecodeBatch(t, enc)
		if h.Kind != KindBatch {
			t.Fatalf("unexpected kind %v", h.Kind)
		}
		if len(got) != len(payloads) {
			t.Fatalf("len mismatch: got %d want %d", len(got), len(payloads))
		}
		for i := range payloads {
			if !bytes.Equal(got[i], payloads[i]) {
				t.Fatalf("item %d mismatch: got=%x want=%x", i, got[i], payloads[i])
			}
		}
	}
}

func TestBatchRejectsTrailingBytes(t *testing.T) {
	enc := EncodeBatch(0, [][]byte{[]byte("v")})
	enc = append(enc, 0xBE, 0xEF)
	if _, _, err := DecodeBatch(enc); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestBatchBogusCountNotPreallocated(t *testing.T) {
	// n = MaxUint64 with no items must fail before allocating
	hdr := EncodeBatch(0, nil)[:HeaderSize]
	b := varint.AppendUvarint(append([]byte(nil), hdr...), ^uint64(0))
	if _, _, err := DecodeBatch(b); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on bogus n, got %v", err)
	}

	// n=1 but no item body
	b = varint.AppendUvarint(append([]byte(nil), hdr...), 1)
	if _, _, err := DecodeBatch(b); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on truncated item list, got %v", err)
	}
}

func TestBatchCorruptLengths(t *testing.T) {
	enc := EncodeBatch(0, [][]byte{[]byte("xyz")})

	// header(6) | n(1) | vlen(1) | payload
	badVlen := append([]byte(nil), enc...)
	badVlen[HeaderSize+1] = 4
	if _, _, err := DecodeBatch(badVlen); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on vlen beyond buffer, got %v", err)
	}

	if _, _, err := DecodeSingle(enc); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt decoding a batch as single, got %v", err)
	}
	if _, _, err := DecodeBatch(EncodeSingle(0, []byte("xyz"))); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt decoding a single as batch, got %v", err)
	}
}

func TestBatchZeroCopyPayloadSlices(t *testing.T) {
	enc := EncodeBatch(0, [][]byte{[]byte("X"), []byte("Y")})
	_, got := mustDecodeBatch(t, enc)
	if len(got) != 2 || len(got[0]) != 1 {
		t.Fatalf("unexpected decoded items")
	}

	got[0][0] = 'Q'

	_, got2 := mustDecodeBatch(t, enc)
	if got2[0][0] != 'Q' {
		t.Fatalf("expected zero-copy payload subslices into enc buffer")
	}

	// capacity is clipped, so appending to one payload leaves the next alone
	_ = append(got[0], 'R')
	if got[1][0] != 'Y' {
		t.Fatalf("append clobbered the following item")
	}
}

func FuzzDecodeBatch(f *testing.F) {
	f.Add(EncodeBatch(0, [][]byte{[]byte("a"), nil}))
	f.Add(EncodeSingle(FlagCompressed, []byte("b")))
	f.Fuzz(func(t *testing.T, b []byte) {
		_, ps, err := DecodeBatch(b)
		if err != nil {
			return
		}
		// anything that decodes must survive a re-encode
		h, _ := ReadHeader(b)
		_, again, err := DecodeBatch(EncodeBatch(h.Flags, ps))
		if err != nil {
			t.Fatalf("re-encoded frame rejected: %v", err)
		}
		if len(again) != len(ps) {
			t.Fatalf("item count changed: %d != %d", len(again), len(ps))
		}
		for i := range ps {
			if !bytes.Equal(again[i], ps[i]) {
				t.Fatalf("item %d changed", i)
			}
		}
	})
}
