// Package asynchook moves bitwire.Hooks calls off the decode path. Events
// are queued to a fixed pool of workers and dropped when the queue is full.
//
//	raw := sloghook.New(slog.Default(), sloghook.Options{FrameRejectedEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	f, _ := bitwire.New(bitwire.Options[User]{
//	    Codec: codec.JSON[User]{},
//	    Hooks: hooks, // or raw to stay synchronous
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/bitwire"
)

type Hooks struct {
	inner   bitwire.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against sends on q
	closed  bool
	dropped atomic.Uint64
}

var _ bitwire.Hooks = (*Hooks)(nil)

func New(inner bitwire.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = bitwire.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped is the number of events discarded because the queue was full or
// the hooks were closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) FrameRejected(kind, reason string, err error) {
	h.try(func() { h.inner.FrameRejected(kind, reason, err) })
}

func (h *Hooks) PayloadTooLarge(op string, size, limit int) {
	h.try(func() { h.inner.PayloadTooLarge(op, size, limit) })
}
