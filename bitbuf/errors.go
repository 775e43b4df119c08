package bitbuf

import (
	"errors"

	"github.com/unkn0wn-root/bitwire/varint"
)

var (
	// ErrOverflow means a read, write or seek would cross the end of the
	// buffer. Parsers should stop and ask for more input.
	ErrOverflow = errors.New("bitbuf: was about to overrun a buffer")
	// ErrBufferTooSmall means a destination slice cannot hold the requested
	// number of bits.
	ErrBufferTooSmall = errors.New("bitbuf: destination buffer too small")
	// ErrMalformedVarint is varint.ErrMalformedVarint, so errors.Is matches
	// across the stream and bit-cursor surfaces.
	ErrMalformedVarint = varint.ErrMalformedVarint
)
