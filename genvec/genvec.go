// Package genvec implements a generational arena: a slice of entries
// addressed by Handle values that carry an index and a generation.
//
// Removing an entry puts its slot on a free list. The next insert into that
// slot gets a new generation, so handles to the old occupant stop
// resolving. A slot whose generation counter is exhausted is retired instead
// of wrapping.
//
// Methods with a Try prefix report failure with a boolean. Their
// counterparts without the prefix panic, for callers that treat an invalid
// handle as a programming error.
//
// A GenVec is not safe for concurrent use.
package genvec

import (
	"fmt"
	"iter"
)

type entry[T any] struct {
	generation uint32
	value      T
	occupied   bool
	taken      bool
	reserved   bool // claimed by an InsertWith still running fn
}

// GenVec stores values of type T behind generational handles. The zero value
// is an empty GenVec ready to use.
type GenVec[T any] struct {
	entries     []entry[T]
	freeIndices []uint32
	outstanding map[uint32]struct{}
}

func New[T any]() *GenVec[T] {
	return &GenVec[T]{outstanding: make(map[uint32]struct{})}
}

// WithCapacity returns a GenVec with room for n entries before it grows.
func WithCapacity[T any](n int) *GenVec[T] {
	g := New[T]()
	g.entries = make([]entry[T], 0, n)
	return g
}

func (g *GenVec[T]) entryByHandle(h Handle[T]) *entry[T] {
	if int(h.index) >= len(g.entries) {
		return nil
	}
	e := &g.entries[h.index]
	if e.generation != h.generation {
		return nil
	}
	return e
}

// InsertWith stores the value built by fn and returns its handle. fn receives
// the handle the value is going to get, which does not resolve until
// InsertWith returns. The slot is claimed before fn runs, so fn may insert
// into the same GenVec.
func (g *GenVec[T]) InsertWith(fn func(Handle[T]) T) Handle[T] {
	h, ok := g.claimFree()
	if !ok {
		if len(g.entries) >= int(danglingGeneration) {
			panic("genvec: entries overflowed uint32")
		}
		h = Handle[T]{index: uint32(len(g.entries)), generation: firstGeneration}
		g.entries = append(g.entries, entry[T]{generation: h.generation, reserved: true})
	}

	v := fn(h)
	// fn may have grown entries
	e := &g.entries[h.index]
	e.value = v
	e.occupied = true
	e.reserved = false
	return h
}

// claimFree pops the free list until it finds a slot with generations left,
// bumps its generation and marks it reserved.
func (g *GenVec[T]) claimFree() (Handle[T], bool) {
	for len(g.freeIndices) > 0 {
		last := len(g.freeIndices) - 1
		index := g.freeIndices[last]
		g.freeIndices = g.freeIndices[:last]

		e := &g.entries[index]
		if e.occupied || e.taken || e.reserved {
			panic(fmt.Sprintf("genvec: insert into non-freed entry at index %d", index))
		}
		// the last usable generation sits just below the dangling marker;
		// past that the slot is retired
		if e.generation >= danglingGeneration-1 {
			continue
		}
		e.generation++
		e.reserved = true
		return Handle[T]{index: index, generation: e.generation}, true
	}
	return Handle[T]{}, false
}

func (g *GenVec[T]) Insert(v T) Handle[T] {
	return g.InsertWith(func(Handle[T]) T { return v })
}

func (g *GenVec[T]) TryGet(h Handle[T]) (T, bool) {
	if p, ok := g.TryGetPtr(h); ok {
		return *p, true
	}
	var zero T
	return zero, false
}

func (g *GenVec[T]) Get(h Handle[T]) T {
	v, ok := g.TryGet(h)
	if !ok {
		panic(fmt.Sprintf("genvec: could not get at %v", h))
	}
	return v
}

// TryGetPtr returns a pointer to the stored value for in-place updates. The
// pointer is only valid until the next insert.
func (g *GenVec[T]) TryGetPtr(h Handle[T]) (*T, bool) {
	e := g.entryByHandle(h)
	if e == nil || !e.occupied {
		return nil, false
	}
	return &e.value, true
}

func (g *GenVec[T]) GetPtr(h Handle[T]) *T {
	p, ok := g.TryGetPtr(h)
	if !ok {
		panic(fmt.Sprintf("genvec: could not get at %v", h))
	}
	return p
}

// TryRemove removes the entry behind h and returns its value. It fails for
// stale handles, vacant entries and entries that are currently taken.
func (g *GenVec[T]) TryRemove(h Handle[T]) (T, bool) {
	var zero T
	e := g.entryByHandle(h)
	if e == nil || !e.occupied {
		return zero, false
	}
	v := e.value
	e.value = zero
	e.occupied = false
	g.freeIndices = append(g.freeIndices, h.index)
	return v, true
}

// Remove is TryRemove that panics on a stale handle, a taken entry or a
// double free.
func (g *GenVec[T]) Remove(h Handle[T]) T {
	e := g.entryByHandle(h)
	switch {
	case e == nil:
		panic(fmt.Sprintf("genvec: could not get entry at %v", h))
	case e.taken:
		panic(fmt.Sprintf("genvec: entry at %v is taken; put its ticket back first", h))
	case e.reserved:
		panic(fmt.Sprintf("genvec: entry at %v is still being inserted", h))
	}
	v, ok := g.TryRemove(h)
	if !ok {
		panic(fmt.Sprintf("genvec: double free of entry at %v", h))
	}
	return v
}

// TryTake moves the value behind h out of the GenVec and reserves its entry.
// Until the returned ticket is given to PutBack, no handle resolves to the
// entry and the slot cannot be reused.
func (g *GenVec[T]) TryTake(h Handle[T]) (*Ticket[T], T, bool) {
	var zero T
	e := g.entryByHandle(h)
	if e == nil || !e.occupied {
		return nil, zero, false
	}
	v := e.value
	e.value = zero
	e.occupied = false
	e.taken = true
	if g.outstanding == nil {
		g.outstanding = make(map[uint32]struct{})
	}
	g.outstanding[h.index] = struct{}{}
	return newTicket(g, h.index), v, true
}

func (g *GenVec[T]) Take(h Handle[T]) (*Ticket[T], T) {
	t, v, ok := g.TryTake(h)
	if !ok {
		panic(fmt.Sprintf("genvec: could not take value at %v", h))
	}
	return t, v
}

// PutBack returns v to the entry reserved by t. Handles issued before the
// take resolve again. It panics if t was already used or belongs to another
// GenVec.
func (g *GenVec[T]) PutBack(t *Ticket[T], v T) {
	if t.owner != g {
		panic("genvec: ticket belongs to a different GenVec")
	}
	if t.returned {
		panic(fmt.Sprintf("genvec: ticket for index %d was already put back", t.index))
	}
	e := &g.entries[t.index]
	e.value = v
	e.occupied = true
	e.taken = false
	delete(g.outstanding, t.index)
	t.settle()
}

// Outstanding returns the number of tickets that have not been put back.
func (g *GenVec[T]) Outstanding() int { return len(g.outstanding) }

// Settle panics if any ticket has not been put back. Call it where all takes
// are known to be finished, e.g. at the end of a frame or a test.
func (g *GenVec[T]) Settle() {
	if n := len(g.outstanding); n > 0 {
		panic(fmt.Sprintf("genvec: %d ticket(s) were never put back", n))
	}
}

// All yields the handle and value of every occupied entry in index order.
func (g *GenVec[T]) All() iter.Seq2[Handle[T], T] {
	return func(yield func(Handle[T], T) bool) {
		for i := range g.entries {
			e := &g.entries[i]
			if !e.occupied {
				continue
			}
			if !yield(Handle[T]{index: uint32(i), generation: e.generation}, e.value) {
				return
			}
		}
	}
}

// Values yields the value of every occupied entry in index order.
func (g *GenVec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range g.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of entries, occupied and vacant.
func (g *GenVec[T]) Len() int { return len(g.entries) }

// HandleFromIndex returns the current handle of the entry at index, which
// may not resolve if the entry is vacant. Out of range indices yield the
// dangling handle.
func (g *GenVec[T]) HandleFromIndex(index uint32) Handle[T] {
	if int(index) >= len(g.entries) {
		return Dangling[T]()
	}
	return Handle[T]{index: index, generation: g.entries[index].generation}
}
