package bitwire

// Frame kinds and rejection reasons passed to Hooks.
const (
	KindSingle = "single"
	KindBatch  = "batch"
	KindStream = "stream"

	ReasonCorrupt     = "corrupt"
	ReasonDecompress  = "decompress"
	ReasonTooLarge    = "too_large"
	ReasonValueDecode = "value_decode"
	ReasonTruncated   = "truncated"
)

// Hooks receives high-signal events from a Framer. Implementations must be
// cheap and non-blocking; they run on the decode path. Wrap slow sinks with
// hooks/async.
type Hooks interface {
	// A frame was refused on decode. kind is one of the Kind constants,
	// reason one of the Reason constants.
	FrameRejected(kind, reason string, err error)

	// A payload exceeded MaxPayload. op is "encode" or "decode". size is -1
	// when a compressed payload was cut off while inflating.
	PayloadTooLarge(op string, size, limit int)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) FrameRejected(string, string, error) {}
func (NopHooks) PayloadTooLarge(string, int, int)    {}
