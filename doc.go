// Package bitwire frames values for storage or transport on top of a small
// bit-level codec.
//
// Layers, bottom up:
//   - varint: LEB128 integers with zigzag for signed values, over byte
//     slices and io streams.
//   - bitbuf: Reader and Writer for arbitrary-width bit fields over a byte
//     slice, with checked and unchecked variants of every operation.
//   - codec: Codec[V] turns values into payload bytes (varint, JSON, CBOR,
//     msgpack, protobuf).
//   - Framer[V]: wraps payloads in validated frames, optionally zstd
//     compressed, and reads and writes length-delimited frame streams.
//
// Frame layout:
//
//	magic "BITW"(32) | version(4) | kind(4) | flags(8) | body
//	single body: uvarint(len) | payload
//	batch body:  uvarint(n) | n * (uvarint(len) | payload)
//
// Usage:
//
//	f, _ := bitwire.New(bitwire.Options[User]{
//	    Codec:    codec.MustCBOR[User](true),
//	    Compress: true,
//	    Logger:   zaplog.New(zap.NewExample()),
//	})
//	defer f.Close()
//
//	frame, _ := f.Encode(u)
//	u2, _ := f.Decode(frame)
package bitwire
