// Package wire lays out bitwire frames.
//
// Every frame starts with a 6-byte header packed with a bitbuf.Writer:
//
//	magic(32) | version(4) | kind(4) | flags(8)
//
// followed by a kind-specific body built from varints:
//
//	single: uvarint(len) | payload
//	batch:  uvarint(n) | n * (uvarint(len) | payload)
//
// Decoders validate everything and return payloads as sub-slices of the
// input.
package wire

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/bitwire/bitbuf"
	"github.com/unkn0wn-root/bitwire/varint"
)

const (
	// Magic spells "BITW" in the first four bytes of a frame.
	Magic   uint32 = 0x57544942
	Version uint8  = 1

	// HeaderSize is the encoded header length in bytes.
	HeaderSize = 6
)

type Kind uint8

const (
	KindSingle Kind = 1
	KindBatch  Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindBatch:
		return "batch"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type Flags uint8

const (
	// FlagCompressed marks a body whose payloads are zstd-compressed.
	FlagCompressed Flags = 1 << 0

	knownFlags = FlagCompressed
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

type Header struct {
	Version uint8
	Kind    Kind
	Flags   Flags
}

var ErrCorrupt = errors.New("bitwire: corrupt frame")

func writeHeader(w *bitbuf.Writer, kind Kind, flags Flags) {
	w.WriteFieldUnchecked(uint64(Magic), 32)
	w.WriteFieldUnchecked(uint64(Version), 4)
	w.WriteFieldUnchecked(uint64(kind), 4)
	w.WriteFieldUnchecked(uint64(flags), 8)
}

// ReadHeader parses and validates the frame header at the start of b.
func ReadHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrCorrupt
	}
	return readHeader(bitbuf.NewReader(b))
}

func readHeader(r *bitbuf.Reader) (Header, error) {
	// callers checked HeaderSize
	magic := uint32(r.ReadFieldUnchecked(32))
	h := Header{
		Version: uint8(r.ReadFieldUnchecked(4)),
		Kind:    Kind(r.ReadFieldUnchecked(4)),
		Flags:   Flags(r.ReadFieldUnchecked(8)),
	}
	switch {
	case magic != Magic:
		return h, fmt.Errorf("%w: bad magic %#08x", ErrCorrupt, magic)
	case h.Version != Version:
		return h, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.Version)
	case h.Kind != KindSingle && h.Kind != KindBatch:
		return h, fmt.Errorf("%w: unknown %v", ErrCorrupt, h.Kind)
	case h.Flags&^knownFlags != 0:
		return h, fmt.Errorf("%w: unknown flags %#02x", ErrCorrupt, uint8(h.Flags))
	}
	return h, nil
}

// EncodeSingle frames one payload.
func EncodeSingle(flags Flags, payload []byte) []byte {
	buf := make([]byte, HeaderSize+varint.Len(uint64(len(payload)))+len(payload))
	w := bitbuf.NewWriter(buf)
	writeHeader(w, KindSingle, flags)
	putPayload(w, payload)
	mustFit(w)
	return buf
}

// EncodeBatch frames a list of payloads. A nil or empty list is valid.
func EncodeBatch(flags Flags, payloads [][]byte) []byte {
	size := HeaderSize + varint.Len(uint64(len(payloads)))
	for _, p := range payloads {
		size += varint.Len(uint64(len(p))) + len(p)
	}

	buf := make([]byte, size)
	w := bitbuf.NewWriter(buf)
	writeHeader(w, KindBatch, flags)
	if err := w.WriteUvarint64(uint64(len(payloads))); err != nil {
		panic(err)
	}
	for _, p := range payloads {
		putPayload(w, p)
	}
	mustFit(w)
	return buf
}

func putPayload(w *bitbuf.Writer, p []byte) {
	if err := w.WriteUvarint64(uint64(len(p))); err != nil {
		panic(err)
	}
	w.WriteBytesUnchecked(p)
}

func mustFit(w *bitbuf.Writer) {
	if w.IsOverflowed() || w.NumBitsLeft() != 0 {
		panic("bitwire: frame size miscalculated")
	}
}

// DecodeSingle validates a single frame and returns its header and payload.
func DecodeSingle(b []byte) (Header, []byte, error) {
	h, r, err := open(b, KindSingle)
	if err != nil {
		return h, nil, err
	}
	p, err := nextPayload(r, b)
	if err != nil {
		return h, nil, err
	}
	if err := end(r); err != nil {
		return h, nil, err
	}
	return h, p, nil
}

// DecodeBatch validates a batch frame and returns its header and payloads.
// A declared count larger than the body could possibly hold is rejected
// before anything is allocated.
func DecodeBatch(b []byte) (Header, [][]byte, error) {
	h, r, err := open(b, KindBatch)
	if err != nil {
		return h, nil, err
	}
	n, err := readLen(r)
	if err != nil {
		return h, nil, err
	}
	// every item needs at least its length byte
	if n > uint64(r.NumBytesLeft()) {
		return h, nil, fmt.Errorf("%w: count %d exceeds body", ErrCorrupt, n)
	}

	payloads := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		p, err := nextPayload(r, b)
		if err != nil {
			return h, nil, err
		}
		payloads = append(payloads, p)
	}
	if err := end(r); err != nil {
		return h, nil, err
	}
	return h, payloads, nil
}

func open(b []byte, kind Kind) (Header, *bitbuf.Reader, error) {
	if len(b) < HeaderSize {
		return Header{}, nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	r := bitbuf.NewReader(b)
	h, err := readHeader(r)
	if err != nil {
		return h, nil, err
	}
	if h.Kind != kind {
		return h, nil, fmt.Errorf("%w: expected %v frame, got %v", ErrCorrupt, kind, h.Kind)
	}
	return h, r, nil
}

func readLen(r *bitbuf.Reader) (uint64, error) {
	n, err := r.ReadUvarint64()
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, varint.ErrMalformedVarint):
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	default:
		return 0, fmt.Errorf("%w: truncated length", ErrCorrupt)
	}
}

// nextPayload slices the next length-prefixed payload out of b. The cursor
// is always byte aligned here since the header is whole bytes.
func nextPayload(r *bitbuf.Reader, b []byte) ([]byte, error) {
	n, err := readLen(r)
	if err != nil {
		return nil, err
	}
	if n > uint64(r.NumBytesLeft()) { // overflow-safe bound check
		return nil, fmt.Errorf("%w: payload length %d exceeds body", ErrCorrupt, n)
	}
	off := r.NumBytesRead()
	if _, err := r.SeekRelative(int(n) << 3); err != nil {
		return nil, ErrCorrupt
	}
	return b[off : off+int(n) : off+int(n)], nil
}

func end(r *bitbuf.Reader) error {
	if left := r.NumBytesLeft(); left != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, left)
	}
	return nil
}
