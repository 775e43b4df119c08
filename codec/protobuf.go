package codec

import "google.golang.org/protobuf/proto"

// Protobuf encodes protocol buffer messages. Encoding is deterministic so
// equal messages produce equal frames.
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf returns a codec that decodes into messages built by ctor,
// e.g. func() *pb.Point { return new(pb.Point) }.
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
