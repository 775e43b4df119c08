// Package sloghook reports bitwire.Hooks events through log/slog.
package sloghook

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/bitwire"
)

type Options struct {
	// Sampling to avoid floods from hostile peers; 0/1 = log all.
	FrameRejectedEvery   uint64
	PayloadTooLargeEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectedCtr atomic.Uint64
	largeCtr    atomic.Uint64
}

var _ bitwire.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) FrameRejected(kind, reason string, err error) {
	if h.l == nil || !sample(h.opts.FrameRejectedEvery, &h.rejectedCtr) {
		return
	}
	h.l.Warn("bitwire.frame_rejected",
		"kind", kind,
		"reason", reason,
		"err", err)
}

func (h *Hooks) PayloadTooLarge(op string, size, limit int) {
	if h.l == nil || !sample(h.opts.PayloadTooLargeEvery, &h.largeCtr) {
		return
	}
	h.l.Info("bitwire.payload_too_large",
		"op", op,
		"size", size,
		"limit", limit)
}
