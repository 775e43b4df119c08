package genvec

import (
	"fmt"
	"math"
)

const (
	firstGeneration    uint32 = 1
	danglingGeneration uint32 = math.MaxUint32
)

// Handle is a cheap, comparable reference to an entry of a GenVec[T]. It
// stops resolving once the entry is removed, even after the slot is reused.
// The zero Handle never resolves.
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// Dangling returns a handle that never resolves, for two-phase
// initialization: store Dangling first and replace it once the entry exists.
func Dangling[T any]() Handle[T] {
	return Handle[T]{generation: danglingGeneration}
}

func (h Handle[T]) IsDangling() bool { return h == Dangling[T]() }

func (h Handle[T]) Index() uint32 { return h.index }

func (h Handle[T]) Generation() uint32 { return h.generation }

func (h Handle[T]) String() string {
	if h.IsDangling() {
		return "Handle(dangling)"
	}
	return fmt.Sprintf("Handle(%d@%d)", h.index, h.generation)
}
