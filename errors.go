package bitwire

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/bitwire/internal/wire"
)

var (
	// ErrCorrupt reports a frame that failed structural validation.
	ErrCorrupt = wire.ErrCorrupt
	// ErrPayloadTooLarge reports a payload or frame above the configured
	// limit.
	ErrPayloadTooLarge = errors.New("bitwire: payload too large")
)

// CodecError wraps a failure of the value codec, so callers can tell a bad
// value apart from a bad frame.
type CodecError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("bitwire: codec %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }
