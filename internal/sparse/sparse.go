// Package sparse provides a sparse set for marking program counters visited
// during one step of an NFA simulation.
//
// Insert, Contains and Clear are O(1); Clear does not touch the backing
// arrays, so a set can be reset once per input character regardless of the
// program size.
package sparse

// SparseSet is a set of uint32 values below a fixed capacity.
// The sparse array maps a value to its index in the dense array; the dense
// array holds the members in insertion order.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates an empty set that can hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound on values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Insert adds value and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity, which fits in uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all values.
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of values in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no values.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the members in insertion order.
// The slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
