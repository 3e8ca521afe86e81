// This package contains [Vector], a contiguous growable sequence with manual control over size and
// capacity, and the supporting pieces around it: comparison, encoding, metrics and a SQLite-backed
// snapshot [Store].
package vec

import (
	"errors"
	"fmt"

	"github.com/teenjuna/vec/buffer"
)

var (
	// ErrOutOfRange is returned by [Vector.At] when the index is outside of [0, size).
	ErrOutOfRange = errors.New("index out of range")
)

// Vector is a contiguous growable sequence of items.
//
// Items in [0, Size()) are live. Slots in [Size(), Capacity()) are allocated but hold no live
// item. Whenever more capacity is needed, a new buffer is allocated, the live items are
// transferred into it, and only then it replaces the old one.
//
// Vector is not thread-safe. The zero value is an empty vector ready to use. A Vector must not be
// copied by value: use [Vector.Clone] or [Vector.Assign] to copy its content and [Move] or
// [Vector.MoveFrom] to transfer it.
type Vector[Item any] struct {
	items    buffer.Buffer[Item]
	size     int
	capacity int
	metrics  *Metrics
}

// New returns an empty vector. Nothing is allocated.
func New[Item any]() *Vector[Item] {
	return &Vector[Item]{}
}

// Sized returns a vector of size zero-valued items with the capacity equal to size. Nothing is
// allocated when size is 0.
func Sized[Item any](size int) *Vector[Item] {
	if size < 0 {
		panic("size can't be < 0")
	}
	return &Vector[Item]{
		items:    buffer.New[Item](size),
		size:     size,
		capacity: size,
	}
}

// Filled returns a vector of size copies of value.
func Filled[Item any](size int, value Item) *Vector[Item] {
	v := Sized[Item](size)
	for i := range v.size {
		*v.items.At(i) = value
	}
	return v
}

// Of returns a vector holding a copy of items, in order. The capacity is equal to len(items).
func Of[Item any](items ...Item) *Vector[Item] {
	v := Sized[Item](len(items))
	copy(v.items.Slots(0, v.size), items)
	return v
}

// WithCapacity returns an empty vector with room for capacity items.
func WithCapacity[Item any](capacity int) *Vector[Item] {
	if capacity < 0 {
		panic("capacity can't be < 0")
	}
	return &Vector[Item]{
		items:    buffer.New[Item](capacity),
		capacity: capacity,
	}
}

// Move returns a vector that owns the storage of other. The other vector is left empty with zero
// capacity and can be reused.
func Move[Item any](other *Vector[Item]) *Vector[Item] {
	v := &Vector[Item]{metrics: other.metrics}
	v.MoveFrom(other)
	return v
}

// Instrument makes the vector record its allocations into m. A nil m disables recording.
//
// Vectors created by [Vector.Clone] and [Move] inherit the metrics of their source.
func (v *Vector[Item]) Instrument(m *Metrics) {
	v.metrics = m
}

// Clone returns a deep copy of the vector. The capacity of the copy is equal to its size.
func (v *Vector[Item]) Clone() *Vector[Item] {
	c := v.clone(v.metrics)
	c.metrics = v.metrics
	return c
}

func (v *Vector[Item]) clone(m *Metrics) *Vector[Item] {
	c := Sized[Item](v.size)
	copy(c.items.Slots(0, c.size), v.items.Slots(0, v.size))
	if c.capacity != 0 {
		m.relocated(opClone, c.capacity, c.size)
	}
	return c
}

// Assign replaces the content of the vector with a copy of other's content. The old storage is
// released only after the copy is complete. Assigning a vector to itself does nothing.
func (v *Vector[Item]) Assign(other *Vector[Item]) {
	if v == other {
		return
	}
	c := other.clone(v.metrics)
	v.Swap(c)
	c.items.Release()
}

// MoveFrom replaces the content of the vector with the storage of other, leaving other empty
// with zero capacity. Moving a vector into itself does nothing.
func (v *Vector[Item]) MoveFrom(other *Vector[Item]) {
	if v == other {
		return
	}
	v.items.Release()
	v.items.Swap(&other.items)
	v.size, other.size = other.size, 0
	v.capacity, other.capacity = other.capacity, 0
}

// Swap exchanges the storage, size and capacity of the two vectors in constant time.
func (v *Vector[Item]) Swap(other *Vector[Item]) {
	v.items.Swap(&other.items)
	v.size, other.size = other.size, v.size
	v.capacity, other.capacity = other.capacity, v.capacity
}

// Size returns the number of live items.
func (v *Vector[Item]) Size() int {
	return v.size
}

// Capacity returns the number of allocated slots.
func (v *Vector[Item]) Capacity() int {
	return v.capacity
}

// Empty reports whether the vector has no live items.
func (v *Vector[Item]) Empty() bool {
	return v.size == 0
}

// Clear drops all items. The capacity is kept.
func (v *Vector[Item]) Clear() {
	clear(v.items.Slots(0, v.size))
	v.size = 0
}

// Reserve makes room for at least capacity items. Nothing happens if the vector already has
// enough capacity. Otherwise exactly capacity slots are allocated and the items are transferred.
// Positions are invalidated by the reallocation.
func (v *Vector[Item]) Reserve(capacity int) {
	if capacity <= v.capacity {
		return
	}
	v.relocate(opReserve, capacity, v.size, 0)
}

// Resize changes the number of live items.
//
// Shrinking keeps the items before size and the capacity. Growing makes the new items zero
// values. When size exceeds the capacity, the capacity becomes the larger of size and twice the
// current capacity.
func (v *Vector[Item]) Resize(size int) {
	if size < 0 {
		panic("size can't be < 0")
	}
	switch {
	case size <= v.size:
		clear(v.items.Slots(size, v.size))
	case size <= v.capacity:
		clear(v.items.Slots(v.size, size))
	default:
		v.relocate(opResize, v.grow(size), v.size, 0)
	}
	v.size = size
}

// PushBack appends item to the end of the vector. A full vector doubles its capacity, an
// unallocated one allocates a single slot.
func (v *Vector[Item]) PushBack(item Item) {
	if v.size == v.capacity {
		v.relocate(opPushBack, v.grow(v.size+1), v.size, 0)
	}
	*v.items.At(v.size) = item
	v.size++
}

// PopBack drops the last item. The vector must not be empty.
func (v *Vector[Item]) PopBack() {
	assert(v.size > 0, "pop from empty vector")
	v.size--
	clear(v.items.Slots(v.size, v.size+1))
}

// Insert puts item before pos and returns the position of the inserted item. The position must be
// in [Begin(), End()]. Items from pos onwards are shifted toward the end; a full vector doubles
// its capacity first.
func (v *Vector[Item]) Insert(pos Position, item Item) Position {
	assert(pos >= v.Begin() && pos <= v.End(), "insert position %d out of range [0, %d]", pos, v.size)
	if v.capacity == 0 {
		v.PushBack(item)
		return v.Begin()
	}

	at := int(pos)
	if v.size < v.capacity {
		copy(v.items.Slots(at+1, v.size+1), v.items.Slots(at, v.size))
	} else {
		v.relocate(opInsert, v.grow(v.size+1), at, 1)
	}
	*v.items.At(at) = item
	v.size++

	return pos
}

// Erase drops the item at pos and returns the position of the item that followed it, which is
// End() if the last item was erased. The position must be in [Begin(), End()).
func (v *Vector[Item]) Erase(pos Position) Position {
	assert(pos >= v.Begin() && pos < v.End(), "erase position %d out of range [0, %d)", pos, v.size)
	at := int(pos)
	copy(v.items.Slots(at, v.size-1), v.items.Slots(at+1, v.size))
	v.size--
	clear(v.items.Slots(v.size, v.size+1))
	return pos
}

// Index returns a reference to the item at index i, which must be in [0, Size()). The reference
// is valid until the next reallocation.
func (v *Vector[Item]) Index(i int) *Item {
	assert(i >= 0 && i < v.size, "index %d out of range [0, %d)", i, v.size)
	return v.items.At(i)
}

// At returns a reference to the item at index i. An error wrapping [ErrOutOfRange] is returned if
// i is outside of [0, Size()).
func (v *Vector[Item]) At(i int) (*Item, error) {
	if i < 0 || i >= v.size {
		v.metrics.rangeError()
		return nil, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, v.size)
	}
	return v.items.At(i), nil
}

// Slice returns the live items. The slice aliases the storage of the vector and is valid until
// the next operation that reallocates or shifts items.
func (v *Vector[Item]) Slice() []Item {
	return v.items.Slots(0, v.size)
}

// grow returns the capacity to allocate so that need items fit: twice the current capacity, or
// need itself if doubling is not enough.
func (v *Vector[Item]) grow(need int) int {
	return max(need, v.capacity*2)
}

// relocate allocates a buffer of the given capacity and transfers the live items into it, leaving
// a gap of empty slots at index at. The new buffer replaces the old one once it is populated. The
// size is not changed.
func (v *Vector[Item]) relocate(op operation, capacity, at, gap int) {
	items := buffer.New[Item](capacity)
	copy(items.Slots(0, at), v.items.Slots(0, at))
	copy(items.Slots(at+gap, v.size+gap), v.items.Slots(at, v.size))

	v.items.Swap(&items)
	items.Release()
	v.capacity = capacity

	v.metrics.relocated(op, capacity, v.size)
}
