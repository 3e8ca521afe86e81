package vec_test

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/internal/testing/require"
)

type Item struct {
	ID string
	N1 int
	N2 int
}

var Data = func() []Item {
	items := make([]Item, 0)
	for i := range 1000 {
		items = append(items, Item{
			ID: strconv.Itoa(i),
			N1: rand.IntN(1000),
			N2: rand.IntN(1000),
		})
	}
	return items
}()

func TestNew(t *testing.T) {
	v := vec.New[Item]()
	require.Equal(t, v.Size(), 0)
	require.Equal(t, v.Capacity(), 0)
	require.Equal(t, v.Empty(), true)
	require.Equal(t, v.Begin(), v.End())

	var zero vec.Vector[Item]
	require.Equal(t, zero.Size(), 0)
	require.Equal(t, zero.Capacity(), 0)
	zero.PushBack(Data[0])
	require.Equal(t, zero.Slice(), Data[:1])
}

func TestSized(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 100} {
		v := vec.Sized[Item](n)
		require.Equal(t, v.Size(), n)
		require.Equal(t, v.Capacity(), n)
		require.Equal(t, v.Empty(), n == 0)
		for item := range v.Values() {
			require.Equal(t, item, Item{})
		}
	}

	require.PanicWithError(t, "size can't be < 0", func() {
		_ = vec.Sized[Item](-1)
	})
}

func TestFilled(t *testing.T) {
	for _, n := range []int{0, 1, 5, 100} {
		v := vec.Filled(n, Data[1])
		require.Equal(t, v.Size(), n)
		require.Equal(t, v.Capacity(), n)
		for item := range v.Values() {
			require.Equal(t, item, Data[1])
		}
	}
}

func TestOf(t *testing.T) {
	v := vec.Of(Data...)
	require.Equal(t, v.Size(), len(Data))
	require.Equal(t, v.Capacity(), len(Data))
	require.Equal(t, v.Slice(), Data)

	// The vector owns a copy of the input.
	input := []int{1, 2, 3}
	w := vec.Of(input...)
	input[0] = 100
	require.Equal(t, w.Slice(), []int{1, 2, 3})

	empty := vec.Of[int]()
	require.Equal(t, empty.Size(), 0)
	require.Equal(t, empty.Capacity(), 0)
}

func TestWithCapacity(t *testing.T) {
	v := vec.WithCapacity[Item](10)
	require.Equal(t, v.Size(), 0)
	require.Equal(t, v.Capacity(), 10)
	require.Equal(t, v.Empty(), true)

	for i := range 10 {
		v.PushBack(Data[i])
		require.Equal(t, v.Capacity(), 10)
	}
	require.Equal(t, v.Slice(), Data[:10])

	v.PushBack(Data[10])
	require.Equal(t, v.Capacity(), 20)

	require.PanicWithError(t, "capacity can't be < 0", func() {
		_ = vec.WithCapacity[Item](-1)
	})
}

func TestClone(t *testing.T) {
	v := vec.WithCapacity[Item](2000)
	for _, item := range Data {
		v.PushBack(item)
	}

	c := v.Clone()
	require.Equal(t, vec.EqualFunc(c, v, func(a, b Item) bool { return a == b }), true)
	require.Equal(t, c.Slice(), Data)
	require.Equal(t, c.Size(), v.Size())
	// Only the content is copied, not the capacity.
	require.Equal(t, c.Capacity(), c.Size())

	c.Index(0).N1 = -1
	c.PushBack(Item{ID: "new"})
	require.Equal(t, v.Slice(), Data)
	require.Equal(t, v.Size(), len(Data))

	empty := vec.New[Item]().Clone()
	require.Equal(t, empty.Size(), 0)
	require.Equal(t, empty.Capacity(), 0)
}

func TestMove(t *testing.T) {
	v := vec.Of(Data...)
	v.Reserve(2000)

	m := vec.Move(v)
	require.Equal(t, m.Slice(), Data)
	require.Equal(t, m.Capacity(), 2000)
	require.Equal(t, v.Size(), 0)
	require.Equal(t, v.Capacity(), 0)

	// The source is reusable.
	v.PushBack(Data[0])
	require.Equal(t, v.Slice(), Data[:1])
	require.Equal(t, m.Slice(), Data)
}

func TestAssign(t *testing.T) {
	v := vec.Of(1, 2, 3)
	w := vec.WithCapacity[int](100)
	w.PushBack(9)

	w.Assign(v)
	require.Equal(t, w.Slice(), []int{1, 2, 3})
	require.Equal(t, w.Capacity(), 3)

	*w.Index(0) = 100
	require.Equal(t, v.Slice(), []int{1, 2, 3})

	// Assigning to itself keeps everything.
	v.Reserve(10)
	v.Assign(v)
	require.Equal(t, v.Slice(), []int{1, 2, 3})
	require.Equal(t, v.Capacity(), 10)

	// Equal content is still copied into independent storage.
	x := vec.Of(1, 2, 3)
	y := vec.Of(1, 2, 3)
	x.Assign(y)
	*y.Index(0) = 100
	require.Equal(t, x.Slice(), []int{1, 2, 3})
}

func TestMoveFrom(t *testing.T) {
	v := vec.Of(1, 2, 3)
	w := vec.Of(4)

	w.MoveFrom(v)
	require.Equal(t, w.Slice(), []int{1, 2, 3})
	require.Equal(t, w.Capacity(), 3)
	require.Equal(t, v.Size(), 0)
	require.Equal(t, v.Capacity(), 0)

	w.MoveFrom(w)
	require.Equal(t, w.Slice(), []int{1, 2, 3})
	require.Equal(t, w.Capacity(), 3)
}

func TestSwap(t *testing.T) {
	v := vec.Of(1, 2, 3)
	w := vec.WithCapacity[int](10)
	w.PushBack(4)

	v.Swap(w)
	require.Equal(t, v.Slice(), []int{4})
	require.Equal(t, v.Capacity(), 10)
	require.Equal(t, w.Slice(), []int{1, 2, 3})
	require.Equal(t, w.Capacity(), 3)
}

func TestReserve(t *testing.T) {
	v := vec.Of(1, 2, 3)

	v.Reserve(2)
	require.Equal(t, v.Capacity(), 3)

	v.Reserve(3)
	require.Equal(t, v.Capacity(), 3)

	v.Reserve(7)
	require.Equal(t, v.Capacity(), 7)
	require.Equal(t, v.Size(), 3)
	require.Equal(t, v.Slice(), []int{1, 2, 3})

	empty := vec.New[int]()
	empty.Reserve(5)
	require.Equal(t, empty.Capacity(), 5)
	require.Equal(t, empty.Size(), 0)
}

func TestResize(t *testing.T) {
	t.Run("Shrink", func(t *testing.T) {
		v := vec.Of(1, 2, 3, 4, 5)
		v.Resize(2)
		require.Equal(t, v.Slice(), []int{1, 2})
		require.Equal(t, v.Capacity(), 5)

		v.Resize(0)
		require.Equal(t, v.Empty(), true)
		require.Equal(t, v.Capacity(), 5)
	})

	t.Run("Grow within capacity", func(t *testing.T) {
		v := vec.Of(1, 2, 3, 4, 5)
		v.Resize(2)
		v.Resize(4)
		require.Equal(t, v.Slice(), []int{1, 2, 0, 0})
		require.Equal(t, v.Capacity(), 5)
	})

	t.Run("Grow beyond capacity (doubling)", func(t *testing.T) {
		v := vec.Of(1, 2, 3, 4)
		v.Resize(6)
		require.Equal(t, v.Slice(), []int{1, 2, 3, 4, 0, 0})
		require.Equal(t, v.Capacity(), 8)
	})

	t.Run("Grow beyond capacity (exact)", func(t *testing.T) {
		v := vec.Of(1, 2)
		v.Resize(10)
		require.Equal(t, v.Slice(), []int{1, 2, 0, 0, 0, 0, 0, 0, 0, 0})
		require.Equal(t, v.Capacity(), 10)
	})

	t.Run("Grow empty", func(t *testing.T) {
		v := vec.New[Item]()
		v.Resize(3)
		require.Equal(t, v.Slice(), []Item{{}, {}, {}})
		require.Equal(t, v.Capacity(), 3)
	})

	t.Run("Invalid size", func(t *testing.T) {
		require.PanicWithError(t, "size can't be < 0", func() {
			vec.New[int]().Resize(-1)
		})
	})
}

func TestPushBack(t *testing.T) {
	v := vec.New[Item]()

	capacity := 0
	for i, item := range Data {
		v.PushBack(item)
		require.Equal(t, v.Size(), i+1)

		if i+1 > capacity {
			capacity = max(1, capacity*2)
		}
		require.Equal(t, v.Capacity(), capacity)
	}

	require.Equal(t, v.Slice(), Data)
	require.Equal(t, v.Capacity(), 1024)
}

func TestPushBackAfterList(t *testing.T) {
	v := vec.Of(1, 2, 3)
	v.PushBack(4)
	require.Equal(t, v.Size(), 4)
	require.Equal(t, v.Capacity() >= 4, true)
	require.Equal(t, v.Slice(), []int{1, 2, 3, 4})
}

func TestPopBack(t *testing.T) {
	v := vec.Of(1, 2, 3)

	v.PopBack()
	require.Equal(t, v.Slice(), []int{1, 2})
	require.Equal(t, v.Capacity(), 3)

	v.PopBack()
	v.PopBack()
	require.Equal(t, v.Empty(), true)
	require.Equal(t, v.Capacity(), 3)

	v.PushBack(5)
	require.Equal(t, v.Slice(), []int{5})
}

func TestInsert(t *testing.T) {
	t.Run("Into empty vector", func(t *testing.T) {
		v := vec.New[int]()
		pos := v.Insert(v.Begin(), 5)
		require.Equal(t, pos, v.Begin())
		require.Equal(t, v.Size(), 1)
		require.Equal(t, v.Capacity() >= 1, true)
		require.Equal(t, v.Slice(), []int{5})
	})

	t.Run("With room", func(t *testing.T) {
		v := vec.WithCapacity[int](10)
		for _, i := range []int{1, 2, 4, 5} {
			v.PushBack(i)
		}

		pos := v.Insert(v.Begin().Add(2), 3)
		require.Equal(t, *v.Ref(pos), 3)
		require.Equal(t, pos.Sub(v.Begin()), 2)
		require.Equal(t, v.Slice(), []int{1, 2, 3, 4, 5})
		require.Equal(t, v.Capacity(), 10)

		pos = v.Insert(v.Begin(), 0)
		require.Equal(t, pos, v.Begin())
		require.Equal(t, v.Slice(), []int{0, 1, 2, 3, 4, 5})

		pos = v.Insert(v.End(), 6)
		require.Equal(t, pos, v.End().Prev())
		require.Equal(t, v.Slice(), []int{0, 1, 2, 3, 4, 5, 6})
	})

	t.Run("When full", func(t *testing.T) {
		v := vec.Of(1, 2, 4, 5)
		pos := v.Insert(v.Begin().Add(2), 3)
		require.Equal(t, *v.Ref(pos), 3)
		require.Equal(t, v.Slice(), []int{1, 2, 3, 4, 5})
		require.Equal(t, v.Capacity(), 8)

		w := vec.Of(1)
		w.Insert(w.End(), 2)
		require.Equal(t, w.Slice(), []int{1, 2})
		require.Equal(t, w.Capacity(), 2)

		x := vec.Of(2)
		x.Insert(x.Begin(), 1)
		require.Equal(t, x.Slice(), []int{1, 2})
		require.Equal(t, x.Capacity(), 2)
	})

	t.Run("Matches slices.Insert", func(t *testing.T) {
		v := vec.New[Item]()
		var expected []Item
		for _, item := range Data {
			i := rand.IntN(len(expected) + 1)
			v.Insert(v.Begin().Add(i), item)
			expected = slices.Insert(expected, i, item)
		}
		require.Equal(t, v.Slice(), expected)
	})
}

func TestErase(t *testing.T) {
	v := vec.Of(1, 2, 3, 4, 5)

	pos := v.Erase(v.Begin().Add(1))
	require.Equal(t, *v.Ref(pos), 3)
	require.Equal(t, v.Slice(), []int{1, 3, 4, 5})
	require.Equal(t, v.Capacity(), 5)

	pos = v.Erase(v.End().Prev())
	require.Equal(t, pos, v.End())
	require.Equal(t, v.Slice(), []int{1, 3, 4})

	pos = v.Erase(v.Begin())
	require.Equal(t, pos, v.Begin())
	require.Equal(t, v.Slice(), []int{3, 4})

	v.Erase(v.Begin())
	v.Erase(v.Begin())
	require.Equal(t, v.Empty(), true)
	require.Equal(t, v.Capacity(), 5)
}

func TestInsertErase(t *testing.T) {
	v := vec.Of(Data[:100]...)
	for range 1000 {
		pos := v.Begin().Add(rand.IntN(v.Size() + 1))
		v.Erase(v.Insert(pos, Item{ID: "inserted"}))
		require.Equal(t, v.Slice(), Data[:100])
	}

	empty := vec.New[int]()
	empty.Erase(empty.Insert(empty.Begin(), 1))
	require.Equal(t, empty.Size(), 0)
}

func TestIndex(t *testing.T) {
	v := vec.Of(Data...)
	for i := range Data {
		require.Equal(t, *v.Index(i), Data[i])
	}

	v.Index(0).N1 = -1
	require.Equal(t, v.Slice()[0].N1, -1)
}

func TestAt(t *testing.T) {
	v := vec.Sized[int](3)

	item, err := v.At(2)
	require.Nil(t, err)
	require.Equal(t, *item, 0)

	*item = 7
	require.Equal(t, *v.Index(2), 7)

	item, err = v.At(5)
	require.ErrorIs(t, err, vec.ErrOutOfRange)
	require.Equal(t, err.Error(), "index out of range: index 5, size 3")
	require.Nil(t, item)

	_, err = v.At(3)
	require.ErrorIs(t, err, vec.ErrOutOfRange)

	_, err = v.At(-1)
	require.ErrorIs(t, err, vec.ErrOutOfRange)

	// Slots beyond the size are out of range even when allocated.
	w := vec.WithCapacity[int](10)
	_, err = w.At(0)
	require.ErrorIs(t, err, vec.ErrOutOfRange)
}

func TestClear(t *testing.T) {
	v := vec.Of(Data...)
	v.Clear()
	require.Equal(t, v.Size(), 0)
	require.Equal(t, v.Empty(), true)
	require.Equal(t, v.Capacity(), len(Data))

	// Slots become zero values again once they are back in range.
	v.Resize(2)
	require.Equal(t, v.Slice(), []Item{{}, {}})
}

func TestCapacityNeverDecreases(t *testing.T) {
	v := vec.New[int]()
	capacity := 0
	for range 10000 {
		switch rand.IntN(6) {
		case 0:
			v.PushBack(rand.Int())
		case 1:
			v.Insert(v.Begin().Add(rand.IntN(v.Size()+1)), rand.Int())
		case 2:
			if !v.Empty() {
				v.Erase(v.Begin().Add(rand.IntN(v.Size())))
			}
		case 3:
			if !v.Empty() {
				v.PopBack()
			}
		case 4:
			v.Resize(rand.IntN(100))
		case 5:
			v.Reserve(rand.IntN(200))
		}
		require.Equal(t, v.Capacity() >= capacity, true)
		require.Equal(t, v.Size() <= v.Capacity(), true)
		capacity = v.Capacity()
	}
}

func TestIterators(t *testing.T) {
	v := vec.Of(1, 2, 3)

	var values []int
	for item := range v.Values() {
		values = append(values, item)
	}
	require.Equal(t, values, []int{1, 2, 3})

	var indices []int
	for i, item := range v.All() {
		require.Equal(t, item, *v.Index(i))
		indices = append(indices, i)
	}
	require.Equal(t, indices, []int{0, 1, 2})

	var backward []int
	for _, item := range v.Backward() {
		backward = append(backward, item)
	}
	require.Equal(t, backward, []int{3, 2, 1})

	var positions []int
	for pos := v.Begin(); pos != v.End(); pos = pos.Next() {
		positions = append(positions, *v.Ref(pos))
	}
	require.Equal(t, positions, []int{1, 2, 3})
	require.Equal(t, v.End().Sub(v.Begin()), v.Size())
	require.Equal(t, v.End().Add(-1), v.End().Prev())

	empty := vec.New[int]()
	require.Equal(t, empty.Begin(), empty.End())
	for range empty.Values() {
		t.Fatal("empty vector yielded an item")
	}
}
