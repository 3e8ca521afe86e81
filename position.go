package vec

import (
	"iter"
	"slices"
)

// Position refers to a slot of a [Vector] by its offset from the start of the storage.
//
// A position is valid until the next operation that reallocates the storage (growth) or shifts
// items (insert and erase). Validity is not tracked: using a stale position is a bug in the
// caller.
type Position int

// Next returns the position after p.
func (p Position) Next() Position {
	return p + 1
}

// Prev returns the position before p.
func (p Position) Prev() Position {
	return p - 1
}

// Add returns the position n slots after p. A negative n moves toward the start.
func (p Position) Add(n int) Position {
	return p + Position(n)
}

// Sub returns the number of slots from q to p.
func (p Position) Sub(q Position) int {
	return int(p - q)
}

// Begin returns the position of the first item. For a vector without storage, Begin and End are
// the same sentinel position and must not be dereferenced.
func (v *Vector[Item]) Begin() Position {
	return 0
}

// End returns the position one past the last item.
func (v *Vector[Item]) End() Position {
	return Position(v.size)
}

// Ref returns a reference to the item at pos, which must be in [Begin(), End()).
func (v *Vector[Item]) Ref(pos Position) *Item {
	assert(pos >= v.Begin() && pos < v.End(), "position %d out of range [0, %d)", pos, v.size)
	return v.items.At(int(pos))
}

// Values returns a sequence of the live items, first to last.
func (v *Vector[Item]) Values() iter.Seq[Item] {
	return slices.Values(v.Slice())
}

// All returns a sequence of index-item pairs, first to last.
func (v *Vector[Item]) All() iter.Seq2[int, Item] {
	return slices.All(v.Slice())
}

// Backward returns a sequence of index-item pairs, last to first.
func (v *Vector[Item]) Backward() iter.Seq2[int, Item] {
	return slices.Backward(v.Slice())
}
