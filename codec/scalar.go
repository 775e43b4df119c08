package codec

import "github.com/unkn0wn-root/bitwire/varint"

// Uvarint encodes a uint64 as a single varint.
type Uvarint struct{}

func (Uvarint) Encode(v uint64) ([]byte, error) { return varint.AppendUvarint(nil, v), nil }

func (Uvarint) Decode(b []byte) (uint64, error) {
	v, n, err := varint.Uvarint(b)
	if err != nil {
		return 0, err
	}
	if n != len(b) {
		return 0, ErrTrailingBytes
	}
	return v, nil
}

// Varint encodes an int64 as a zigzag varint, so small negative numbers stay
// small on the wire.
type Varint struct{}

func (Varint) Encode(v int64) ([]byte, error) { return varint.AppendVarint(nil, v), nil }

func (Varint) Decode(b []byte) (int64, error) {
	v, n, err := varint.Varint(b)
	if err != nil {
		return 0, err
	}
	if n != len(b) {
		return 0, ErrTrailingBytes
	}
	return v, nil
}

// Bytes passes []byte values through unchanged. Decode returns a sub-slice
// of its input; copy it if the input buffer is reused.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String stores a string as its bytes. UTF-8 is not validated.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

var (
	_ Codec[uint64] = Uvarint{}
	_ Codec[int64]  = Varint{}
	_ Codec[[]byte] = Bytes{}
	_ Codec[string] = String{}
)
