package bitwire

import "math"

// DefaultMaxPayload is the payload limit used when Options.MaxPayload is 0.
const DefaultMaxPayload = 4 << 20

// maxPayloadCap bounds MaxPayload so MaxFrameSize cannot overflow int.
const maxPayloadCap = math.MaxInt / 2

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
