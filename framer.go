package bitwire

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/unkn0wn-root/bitwire/codec"
	"github.com/unkn0wn-root/bitwire/internal/wire"
	"github.com/unkn0wn-root/bitwire/varint"
)

// Options configure a Framer. Only Codec is required.
type Options[V any] struct {
	Codec codec.Codec[V]

	Compress   bool   // zstd-compress payloads; decoding handles both forms
	MaxPayload int    // per payload, before compression; 0 => DefaultMaxPayload, capped at MaxInt/2
	Logger     Logger // nil => NopLogger
	Hooks      Hooks  // nil => NopHooks
}

// Framer encodes values of type V into frames and back. It is safe for
// concurrent use.
type Framer[V any] struct {
	codec      codec.Codec[V]
	compress   bool
	maxPayload int
	log        Logger
	hooks      Hooks

	enc *zstd.Encoder
	dec *zstd.Decoder
}

func New[V any](opts Options[V]) (*Framer[V], error) {
	if opts.Codec == nil {
		return nil, fmt.Errorf("bitwire: codec is required")
	}
	if opts.MaxPayload < 0 {
		return nil, fmt.Errorf("bitwire: negative MaxPayload %d", opts.MaxPayload)
	}

	f := &Framer[V]{
		codec:    opts.Codec,
		compress: opts.Compress,
	}
	f.maxPayload = min(coalesce(opts.MaxPayload, DefaultMaxPayload), maxPayloadCap)
	f.log = coalesce[Logger](opts.Logger, NopLogger{})
	f.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	var err error
	// zstd rounds windows up to MinWindowSize; value() enforces the exact limit
	f.dec, err = zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(max(uint64(f.maxPayload), zstd.MinWindowSize)))
	if err != nil {
		return nil, fmt.Errorf("bitwire: zstd decoder: %w", err)
	}
	if f.compress {
		f.enc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.dec.Close()
			return nil, fmt.Errorf("bitwire: zstd encoder: %w", err)
		}
	}
	return f, nil
}

// Close releases the compression state. The Framer must not be used
// afterwards.
func (f *Framer[V]) Close() {
	if f.enc != nil {
		_ = f.enc.Close()
	}
	f.dec.Close()
}

// MaxFrameSize is the largest frame ReadFrame accepts: a maximal payload
// after worst-case zstd expansion plus the header and length prefix.
func (f *Framer[V]) MaxFrameSize() int {
	return wire.HeaderSize + varint.MaxLen64 + f.maxPayload + f.maxPayload>>8 + 64
}

func (f *Framer[V]) Encode(v V) ([]byte, error) {
	p, flags, err := f.payload(v)
	if err != nil {
		return nil, err
	}
	return wire.EncodeSingle(flags, p), nil
}

// EncodeBatch frames vs in order. An empty batch is valid.
func (f *Framer[V]) EncodeBatch(vs []V) ([]byte, error) {
	ps := make([][]byte, 0, len(vs))
	for i, v := range vs {
		p, _, err := f.payload(v)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		ps = append(ps, p)
	}
	var flags wire.Flags
	if f.compress {
		flags = wire.FlagCompressed
	}
	return wire.EncodeBatch(flags, ps), nil
}

func (f *Framer[V]) payload(v V) ([]byte, wire.Flags, error) {
	p, err := f.codec.Encode(v)
	if err != nil {
		return nil, 0, &CodecError{Op: "encode", Err: err}
	}
	if len(p) > f.maxPayload {
		f.hooks.PayloadTooLarge("encode", len(p), f.maxPayload)
		return nil, 0, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(p), f.maxPayload)
	}
	if !f.compress {
		return p, 0, nil
	}
	return f.enc.EncodeAll(p, make([]byte, 0, len(p))), wire.FlagCompressed, nil
}

func (f *Framer[V]) Decode(b []byte) (V, error) {
	var zero V
	h, p, err := wire.DecodeSingle(b)
	if err != nil {
		return zero, f.reject(KindSingle, ReasonCorrupt, len(b), err)
	}
	return f.value(KindSingle, h, p)
}

// DecodeBatch returns the values of a batch frame in order. Any bad item
// rejects the whole frame.
func (f *Framer[V]) DecodeBatch(b []byte) ([]V, error) {
	h, ps, err := wire.DecodeBatch(b)
	if err != nil {
		return nil, f.reject(KindBatch, ReasonCorrupt, len(b), err)
	}
	out := make([]V, 0, len(ps))
	for i, p := range ps {
		v, err := f.value(KindBatch, h, p)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *Framer[V]) value(kind string, h wire.Header, p []byte) (V, error) {
	var zero V
	if h.Flags.Has(wire.FlagCompressed) {
		raw, err := f.dec.DecodeAll(p, nil)
		if err != nil {
			if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
				f.hooks.PayloadTooLarge("decode", -1, f.maxPayload)
				return zero, f.reject(kind, ReasonTooLarge, len(p),
					fmt.Errorf("%w: inflated payload exceeds %d", ErrPayloadTooLarge, f.maxPayload))
			}
			return zero, f.reject(kind, ReasonDecompress, len(p), fmt.Errorf("%w: %w", ErrCorrupt, err))
		}
		p = raw
	}
	if len(p) > f.maxPayload {
		f.hooks.PayloadTooLarge("decode", len(p), f.maxPayload)
		return zero, f.reject(kind, ReasonTooLarge, len(p),
			fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(p), f.maxPayload))
	}
	v, err := f.codec.Decode(p)
	if err != nil {
		return zero, f.reject(kind, ReasonValueDecode, len(p), &CodecError{Op: "decode", Err: err})
	}
	return v, nil
}

func (f *Framer[V]) reject(kind, reason string, size int, err error) error {
	f.log.Warn("frame rejected", Fields{
		"kind":   kind,
		"reason": reason,
		"size":   size,
		"err":    err.Error(),
	})
	f.hooks.FrameRejected(kind, reason, err)
	return err
}

// WriteFrame writes uvarint(len(frame)) followed by the frame of v, so a
// stream of frames can be read back with ReadFrame. It returns the number of
// bytes written.
func (f *Framer[V]) WriteFrame(w io.Writer, v V) (int, error) {
	frame, err := f.Encode(v)
	if err != nil {
		return 0, err
	}
	n, err := varint.WriteUvarint64(w, uint64(len(frame)))
	if err != nil {
		return n, err
	}
	m, err := w.Write(frame)
	return n + m, err
}

// ReadFrame reads one frame written by WriteFrame. A clean end of stream
// before the length prefix returns io.EOF; a stream that ends inside a frame
// returns io.ErrUnexpectedEOF. Length prefixes above MaxFrameSize are
// rejected without reading the body.
func (f *Framer[V]) ReadFrame(r io.Reader) (V, error) {
	var zero V
	n, _, err := varint.ReadUvarint64(r)
	switch {
	case err == io.EOF:
		return zero, io.EOF
	case errors.Is(err, varint.ErrMalformedVarint):
		return zero, f.reject(KindStream, ReasonCorrupt, 0, fmt.Errorf("%w: %w", ErrCorrupt, err))
	case err != nil:
		if errors.Is(err, io.ErrUnexpectedEOF) {
			f.reject(KindStream, ReasonTruncated, 0, err)
		}
		return zero, err
	}

	if limit := f.MaxFrameSize(); n > uint64(limit) {
		f.hooks.PayloadTooLarge("decode", int(min(n, math.MaxInt64)), limit)
		return zero, f.reject(KindStream, ReasonTooLarge, 0,
			fmt.Errorf("%w: frame of %d bytes exceeds %d", ErrPayloadTooLarge, n, limit))
	}

	frame := make([]byte, n)
	if _, err := io.ReadFull(r, frame); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			f.reject(KindStream, ReasonTruncated, len(frame), err)
		}
		return zero, err
	}
	return f.Decode(frame)
}
