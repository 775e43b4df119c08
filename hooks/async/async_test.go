package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/bitwire"
)

type counting struct {
	mu       sync.Mutex
	rejected []string
	large    []int
	block    chan struct{}
}

func (c *counting) FrameRejected(kind, reason string, _ error) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejected = append(c.rejected, kind+"/"+reason)
}

func (c *counting) PayloadTooLarge(_ string, size, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.large = append(c.large, size)
}

func TestDeliversAllBeforeClose(t *testing.T) {
	inner := &counting{}
	h := New(inner, 2, 100)

	for i := 0; i < 50; i++ {
		h.FrameRejected(bitwire.KindSingle, bitwire.ReasonCorrupt, errors.New("x"))
	}
	h.PayloadTooLarge("decode", 10, 5)
	h.Close()

	assert.Len(t, inner.rejected, 50)
	assert.Equal(t, []int{10}, inner.large)
	assert.Zero(t, h.Dropped())
	assert.Equal(t, "single/corrupt", inner.rejected[0])
}

func TestDropsWhenFull(t *testing.T) {
	inner := &counting{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// one event occupies the worker, one fills the queue, the rest drop
	for i := 0; i < 10; i++ {
		h.FrameRejected(bitwire.KindBatch, bitwire.ReasonTooLarge, nil)
	}
	close(inner.block)
	h.Close()

	require.GreaterOrEqual(t, h.Dropped(), uint64(8))
	assert.Equal(t, uint64(10), h.Dropped()+uint64(len(inner.rejected)))
}

func TestSendAfterCloseIsDropped(t *testing.T) {
	h := New(nil, 0, 0)
	h.Close()
	h.Close()

	assert.NotPanics(t, func() { h.PayloadTooLarge("encode", 1, 0) })
	assert.Equal(t, uint64(1), h.Dropped())
}
