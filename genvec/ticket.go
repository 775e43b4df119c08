package genvec

import (
	"fmt"
	"runtime"
)

// Ticket is the receipt for a value taken out of a GenVec. The entry stays
// reserved and every handle to it stops resolving until the ticket is handed
// back through PutBack.
//
// A ticket that is garbage collected before it was put back crashes the
// process: the entry would otherwise stay reserved forever.
type Ticket[T any] struct {
	owner    *GenVec[T]
	index    uint32
	returned bool
}

func newTicket[T any](owner *GenVec[T], index uint32) *Ticket[T] {
	t := &Ticket[T]{owner: owner, index: index}
	runtime.SetFinalizer(t, func(t *Ticket[T]) {
		if !t.returned {
			panic(fmt.Sprintf("genvec: ticket for index %d was dropped without PutBack", t.index))
		}
	})
	return t
}

// Index returns the index of the reserved entry.
func (t *Ticket[T]) Index() uint32 { return t.index }

func (t *Ticket[T]) settle() {
	t.returned = true
	runtime.SetFinalizer(t, nil)
}
