package arena

import "fmt"

type constError string

// ErrCorrupt is returned from [List.Validate]
// when the list's structure is inconsistent.
const ErrCorrupt = constError("corrupt list")

func (errStr constError) Error() string { return string(errStr) }

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
}

// Validate walks the list and checks that:
// the chain from front to back is consistently linked in both directions,
// the walk ends at back, its length matches [List.Len],
// and every slot is either live and linked or on the free list.
// It executes in time proportional to the size of the backing array.
func (l *List[Value]) Validate() error {
	var (
		count int
		prev  Handle
	)
	for h := l.front; !h.IsZero(); count++ {
		if count >= l.length {
			return corruptf("chain from front is longer than length %d", l.length)
		}
		if !l.Valid(h) {
			return corruptf("stale handle %v linked at position %d", h, count)
		}
		s := &l.slots[h.slot-1]
		if s.prev != prev {
			return corruptf("%v links back to %v but follows %v", h, s.prev, prev)
		}
		prev = h
		h = s.next
	}
	if prev != l.back {
		return corruptf("chain ends at %v but back is %v", prev, l.back)
	}
	if count != l.length {
		return corruptf("reached %d elements but length is %d", count, l.length)
	}
	var live int
	for i := range l.slots {
		if l.slots[i].live {
			live++
		}
	}
	if live != l.length {
		return corruptf("%d live slots but length is %d", live, l.length)
	}
	if free := len(l.free); free+live != len(l.slots) {
		return corruptf("%d free and %d live slots do not cover %d slots",
			free, live, len(l.slots))
	}
	for _, index := range l.free {
		if l.slots[index].live {
			return corruptf("slot %d is both free and live", index)
		}
	}
	return nil
}
