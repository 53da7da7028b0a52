package nfa

import (
	"strconv"
	"strings"
)

// Unset marks a capture slot that was never recorded.
const Unset = -1

// Slots holds capture offsets as [start0, end0, start1, end1, ...].
// Slot 2n is the start of group n and slot 2n+1 its end.
type Slots []int

// NewSlots returns n slots, all Unset.
func NewSlots(n int) Slots {
	s := make(Slots, n)
	for i := range s {
		s[i] = Unset
	}
	return s
}

// Group returns the span of group n, with ok false when the group did not
// participate in the match or n is out of range.
func (s Slots) Group(n int) (start, end int, ok bool) {
	if n < 0 || 2*n+1 >= len(s) {
		return Unset, Unset, false
	}
	start, end = s[2*n], s[2*n+1]
	if start == Unset || end == Unset {
		return Unset, Unset, false
	}
	return start, end, true
}

// Clone returns an independent copy of s. A nil receiver yields an empty,
// non-nil Slots.
func (s Slots) Clone() Slots {
	cp := make(Slots, len(s))
	copy(cp, s)
	return cp
}

// String renders the slots as parenthesized pairs, "?" for unset offsets,
// e.g. "(0,3)(?,?)".
func (s Slots) String() string {
	var b strings.Builder
	for i := 0; i+1 < len(s); i += 2 {
		b.WriteByte('(')
		writeOffset(&b, s[i])
		b.WriteByte(',')
		writeOffset(&b, s[i+1])
		b.WriteByte(')')
	}
	return b.String()
}

func writeOffset(b *strings.Builder, off int) {
	if off == Unset {
		b.WriteByte('?')
		return
	}
	b.WriteString(strconv.Itoa(off))
}

// cowCaptures is a copy-on-write handle to a capture vector.
// Handles produced by clone share one backing array until one of them is
// updated. The zero value stands for a program without capture slots.
type cowCaptures struct {
	shared *sharedCaptures
}

type sharedCaptures struct {
	data []int
	refs int
}

// newCaptures returns an exclusive handle to n unset slots.
func newCaptures(n int) cowCaptures {
	if n == 0 {
		return cowCaptures{}
	}
	return cowCaptures{shared: &sharedCaptures{data: NewSlots(n), refs: 1}}
}

// clone returns another reference to the same data (no copy).
func (c cowCaptures) clone() cowCaptures {
	if c.shared == nil {
		return cowCaptures{}
	}
	c.shared.refs++
	return cowCaptures{shared: c.shared}
}

// update sets one slot, copying the backing array first only if another
// handle still references it. Out-of-range slots are ignored.
func (c cowCaptures) update(slot, value int) cowCaptures {
	if c.shared == nil || slot < 0 || slot >= len(c.shared.data) {
		return c
	}
	if c.shared.refs > 1 {
		c.shared.refs--
		data := make([]int, len(c.shared.data))
		copy(data, c.shared.data)
		data[slot] = value
		return cowCaptures{shared: &sharedCaptures{data: data, refs: 1}}
	}
	c.shared.data[slot] = value
	return c
}

// release drops this handle's reference. The handle must not be used
// afterwards.
func (c cowCaptures) release() {
	if c.shared != nil && c.shared.refs > 0 {
		c.shared.refs--
	}
}

// get returns the backing slots without copying; callers must not mutate.
func (c cowCaptures) get() []int {
	if c.shared == nil {
		return nil
	}
	return c.shared.data
}

// copyData returns an independent copy of the slots.
func (c cowCaptures) copyData() Slots {
	return Slots(c.get()).Clone()
}
