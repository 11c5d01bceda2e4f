// Package arena is a handle-indexed doubly linked list for use by the tile queue.
//
// Link slots live in the list's own backing array rather than in the values,
// so a value never carries references to its neighbours.
// Removed slots are recycled through a free list and their generation
// is bumped, which makes any handle to the removed element stale.
package arena

import (
	"fmt"
	"iter"
	"slices"
)

type (
	// A Handle refers to one element of a [List].
	// The zero Handle refers to nothing and is used
	// to represent an absent neighbour or an empty list end.
	Handle struct {
		slot       uint32 // Index into the backing array, plus one.
		generation uint32
	}
	// A List orders values from front to back.
	// The zero value is an empty list ready to use.
	List[Value any] struct {
		slots       []slot[Value]
		free        []uint32
		front, back Handle
		length      int
	}
	slot[Value any] struct {
		prev, next Handle
		value      Value
		generation uint32
		live       bool
	}
)

// IsZero reports whether h refers to nothing.
func (h Handle) IsZero() bool { return h.slot == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "nil"
	}
	return fmt.Sprintf("%d@%d", h.slot-1, h.generation)
}

// Grow ensures room for another n elements
// without reallocating the backing array.
func (l *List[Value]) Grow(n int) {
	if n <= 0 {
		return
	}
	l.slots = slices.Grow(l.slots, n)
}

// Len returns the number of elements in the list.
func (l *List[Value]) Len() int { return l.length }

// Front returns the first element, or the zero Handle if the list is empty.
func (l *List[Value]) Front() Handle { return l.front }

// Back returns the last element, or the zero Handle if the list is empty.
func (l *List[Value]) Back() Handle { return l.back }

// Valid reports whether h refers to an element currently in the list.
func (l *List[Value]) Valid(h Handle) bool {
	if h.IsZero() || int(h.slot) > len(l.slots) {
		return false
	}
	s := &l.slots[h.slot-1]
	return s.live && s.generation == h.generation
}

// Next returns the element after h, towards the back.
// h must be valid.
func (l *List[Value]) Next(h Handle) Handle { return l.at(h).next }

// Prev returns the element before h, towards the front.
// h must be valid.
func (l *List[Value]) Prev(h Handle) Handle { return l.at(h).prev }

// Value returns the value stored at h.
// h must be valid.
func (l *List[Value]) Value(h Handle) Value { return l.at(h).value }

// PushFront inserts value as the new first element and returns its handle.
func (l *List[Value]) PushFront(value Value) Handle {
	h := l.alloc(value)
	l.linkFront(h)
	l.length++
	return h
}

// MoveToFront moves h to the front of the list.
// h must be valid.
func (l *List[Value]) MoveToFront(h Handle) {
	if h == l.front {
		return
	}
	l.detach(h)
	l.linkFront(h)
}

// Remove unlinks h and returns its value.
// h, and any copy of it, is stale afterwards.
func (l *List[Value]) Remove(h Handle) Value {
	l.detach(h)
	var (
		zero  Value
		s     = l.at(h)
		value = s.value
	)
	s.value = zero
	s.live = false
	s.generation++
	l.free = append(l.free, h.slot-1)
	l.length--
	return value
}

// All returns an iterator over the list from front to back.
// The element being visited may be removed during iteration;
// any other modification makes the sequence undefined.
func (l *List[Value]) All() iter.Seq2[Handle, Value] {
	return func(yield func(Handle, Value) bool) {
		for h := l.front; !h.IsZero(); {
			s := &l.slots[h.slot-1]
			next := s.next
			if !yield(h, s.value) {
				return
			}
			h = next
		}
	}
}

func (l *List[Value]) at(h Handle) *slot[Value] {
	if !l.Valid(h) {
		panic(fmt.Sprintf("arena: invalid handle %v", h))
	}
	return &l.slots[h.slot-1]
}

func (l *List[Value]) alloc(value Value) Handle {
	var index uint32
	if last := len(l.free) - 1; last >= 0 {
		index = l.free[last]
		l.free = l.free[:last]
	} else {
		l.slots = append(l.slots, slot[Value]{})
		index = uint32(len(l.slots) - 1)
	}
	s := &l.slots[index]
	s.live = true
	s.value = value
	return Handle{slot: index + 1, generation: s.generation}
}

func (l *List[Value]) linkFront(h Handle) {
	s := l.at(h)
	s.prev = Handle{}
	s.next = l.front
	if l.front.IsZero() {
		l.back = h
	} else {
		l.at(l.front).prev = h
	}
	l.front = h
}

// detach unlinks h from its neighbours and clears its links.
func (l *List[Value]) detach(h Handle) {
	s := l.at(h)
	if s.prev.IsZero() {
		l.front = s.next
	} else {
		l.at(s.prev).next = s.next
	}
	if s.next.IsZero() {
		l.back = s.prev
	} else {
		l.at(s.next).prev = s.prev
	}
	s.prev = Handle{}
	s.next = Handle{}
}
