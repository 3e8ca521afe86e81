// This package contains [Buffer], the owned block of storage a vector allocates from.
package buffer

// Buffer exclusively owns a single block of item slots. The block never changes size once it is
// allocated: growing means allocating a new Buffer and swapping it in.
//
// Buffer is not considered thread-safe. The zero value holds no block. A Buffer must not be
// copied by value, because the copy would share the block; use [Buffer.Swap] to transfer it.
type Buffer[Item any] struct {
	items []Item
}

// New allocates a block of size zero-valued slots. Nothing is allocated when size is 0.
func New[Item any](size int) Buffer[Item] {
	if size < 0 {
		panic("size can't be < 0")
	}
	if size == 0 {
		return Buffer[Item]{}
	}
	return Buffer[Item]{
		items: make([]Item, size),
	}
}

// Len returns the number of slots in the block.
func (b *Buffer[Item]) Len() int {
	return len(b.items)
}

// Empty reports whether the buffer holds no block.
func (b *Buffer[Item]) Empty() bool {
	return b.items == nil
}

// At returns a reference to slot i. The index is not checked against anything but the block
// itself.
func (b *Buffer[Item]) At(i int) *Item {
	return &b.items[i]
}

// Slots returns slots [from, to) of the block. The returned slice aliases the block.
func (b *Buffer[Item]) Slots(from, to int) []Item {
	return b.items[from:to:to]
}

// Swap exchanges the blocks owned by b and other.
func (b *Buffer[Item]) Swap(other *Buffer[Item]) {
	b.items, other.items = other.items, b.items
}

// Release drops the block. The buffer holds no block afterwards.
func (b *Buffer[Item]) Release() {
	b.items = nil
}
