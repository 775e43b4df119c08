// Package rangealloc hands out sub-ranges of a fixed integer range using a
// best-fit policy, and merges returned ranges back with their free
// neighbours.
//
// Typical use is carving a large buffer (a GPU heap, a slab of bytes, a run
// of ids) into variable-sized pieces. An allocator is not safe for
// concurrent use.
package rangealloc

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrRangeAlloc is returned when no free range can hold the request, either
// because space ran out or because the request exceeds the managed range.
var ErrRangeAlloc = errors.New("rangealloc: range allocation failed")

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Range is the half-open interval [Start, End).
type Range[T Integer] struct {
	Start T
	End   T
}

func (r Range[T]) Len() T { return r.End - r.Start }

func (r Range[T]) Empty() bool { return r.Start >= r.End }

func (r Range[T]) String() string { return fmt.Sprintf("%v..%v", r.Start, r.End) }

// BestFit is a candidate free range found by FindBestFit. It is only valid
// until the allocator is next modified.
type BestFit[T Integer] struct {
	index int
	Range Range[T]
}

type RangeAlloc[T Integer] struct {
	full Range[T]
	free []Range[T]
}

// New returns an allocator whose whole range is free. It panics if full is
// empty.
func New[T Integer](full Range[T]) *RangeAlloc[T] {
	if full.Empty() {
		panic(fmt.Sprintf("rangealloc: empty range %v", full))
	}
	return &RangeAlloc[T]{full: full, free: []Range[T]{full}}
}

func (a *RangeAlloc[T]) Full() Range[T] { return a.full }

// FreeRanges returns a copy of the free list, ordered by start.
func (a *RangeAlloc[T]) FreeRanges() []Range[T] { return slices.Clone(a.free) }

// FindBestFit returns the smallest free range that can hold n. An exact fit
// ends the search early. It panics if n is zero or negative.
func (a *RangeAlloc[T]) FindBestFit(n T) (BestFit[T], bool) {
	var zero T
	if n <= zero {
		panic(fmt.Sprintf("rangealloc: invalid length %v", n))
	}
	if n > a.full.End {
		return BestFit[T]{}, false
	}

	best := -1
	for i, r := range a.free {
		l := r.Len()
		if l < n {
			continue
		}
		if l == n {
			best = i
			break
		}
		if best < 0 || l < a.free[best].Len() {
			best = i
		}
	}
	if best < 0 {
		return BestFit[T]{}, false
	}
	return BestFit[T]{index: best, Range: a.free[best]}, true
}

// AllocateBestFit carves n off the front of fit, which must come from
// FindBestFit on this allocator with no modification in between.
func (a *RangeAlloc[T]) AllocateBestFit(n T, fit BestFit[T]) Range[T] {
	if n == fit.Range.Len() {
		a.free = slices.Delete(a.free, fit.index, fit.index+1)
		return fit.Range
	}
	a.free[fit.index].Start += n
	return Range[T]{Start: fit.Range.Start, End: fit.Range.Start + n}
}

// Allocate reserves a range of length n.
func (a *RangeAlloc[T]) Allocate(n T) (Range[T], error) {
	fit, ok := a.FindBestFit(n)
	if !ok {
		return Range[T]{}, ErrRangeAlloc
	}
	return a.AllocateBestFit(n, fit), nil
}

// Deallocate returns r to the free list. It panics if r is empty, lies
// outside the managed range or overlaps space that is already free.
func (a *RangeAlloc[T]) Deallocate(r Range[T]) {
	if r.Empty() {
		panic(fmt.Sprintf("rangealloc: empty range %v", r))
	}
	if r.Start < a.full.Start || r.End > a.full.End {
		panic(fmt.Sprintf("rangealloc: range %v outside %v", r, a.full))
	}

	grown := false
	for i := range a.free {
		f := &a.free[i]
		if f.End == r.Start {
			f.End = r.End
			grown = true
			break
		}
		if f.Start == r.End {
			f.Start = r.Start
			grown = true
			break
		}
	}
	if !grown {
		a.free = append(a.free, r)
	}
	a.coalesce()
}

func (a *RangeAlloc[T]) coalesce() {
	slices.SortFunc(a.free, func(x, y Range[T]) int { return cmp.Compare(x.Start, y.Start) })

	for i := 0; i+1 < len(a.free); {
		cur, next := a.free[i], a.free[i+1]
		switch {
		case cur.End > next.Start:
			panic(fmt.Sprintf("rangealloc: free ranges %v and %v overlap", cur, next))
		case cur.End == next.Start:
			a.free[i].End = next.End
			a.free = slices.Delete(a.free, i+1, i+2)
		default:
			i++
		}
	}
}
