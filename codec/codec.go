// Package codec turns values into the payload bytes carried by a bitwire
// frame and back.
//
// Scalar codecs (Uvarint, Varint, Bytes, String) need no configuration.
// Structured codecs wrap a serialization library: JSON, CBOR, Msgpack and
// Protobuf. Limit caps the payload size accepted by any other codec.
package codec

import "errors"

// Codec encodes values of type V to bytes and decodes them back.
// Implementations must be safe for concurrent use.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

var (
	// ErrTrailingBytes is returned by scalar codecs when the payload holds
	// more than one value.
	ErrTrailingBytes = errors.New("codec: trailing bytes after value")
	// ErrTooLarge is returned by Limit when a payload exceeds MaxDecode.
	ErrTooLarge = errors.New("codec: payload too large")
)

// Func adapts a pair of functions to Codec.
type Func[V any] struct {
	EncodeFunc func(V) ([]byte, error)
	DecodeFunc func([]byte) (V, error)
}

var _ Codec[int] = Func[int]{}

func (f Func[V]) Encode(v V) ([]byte, error) { return f.EncodeFunc(v) }
func (f Func[V]) Decode(b []byte) (V, error) { return f.DecodeFunc(b) }
