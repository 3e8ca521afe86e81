package vec

import (
	"cmp"
	"slices"
)

// Equal reports whether x and y have the same size and equal items in the same order. The
// capacities are not compared.
func Equal[Item comparable](x, y *Vector[Item]) bool {
	return slices.Equal(x.Slice(), y.Slice())
}

// EqualFunc is like [Equal] but uses eq to compare items.
func EqualFunc[Item1, Item2 any](x *Vector[Item1], y *Vector[Item2], eq func(Item1, Item2) bool) bool {
	return slices.EqualFunc(x.Slice(), y.Slice(), eq)
}

// Compare compares x and y lexicographically. The first pair of unequal items decides; if one
// vector is a prefix of the other, the shorter one is less. The result is -1, 0 or +1.
func Compare[Item cmp.Ordered](x, y *Vector[Item]) int {
	return slices.Compare(x.Slice(), y.Slice())
}

// CompareFunc is like [Compare] but uses cmp to compare items.
func CompareFunc[Item1, Item2 any](x *Vector[Item1], y *Vector[Item2], cmp func(Item1, Item2) int) int {
	return slices.CompareFunc(x.Slice(), y.Slice(), cmp)
}

// Less reports whether x orders before y.
func Less[Item cmp.Ordered](x, y *Vector[Item]) bool {
	return Compare(x, y) < 0
}
