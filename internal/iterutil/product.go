// Package iterutil provides small iteration helpers shared by the
// evaluator: a k-ary Cartesian product (with repetition) over a slice,
// and an enumerate helper pairing each element with its index.
//
// Ported from original_source/include/percemon/iter/product.hpp's
// odometer-style product_iterator (a k-sized vector of iterators into one
// container, where incrementing position i that reaches the container's
// end resets it to the start and carries the increment to position i-1)
// and percemon/utils.hpp's enumerate, replacing C++'s iterator-category
// machinery with a Go 1.23 range-over-func iterator.
package iterutil

// Product yields every k-tuple of indices into a slice of length n, in
// lexicographic order, including repeated indices (an object id may be
// bound to more than one quantified variable at once). k == 0 yields
// exactly one empty tuple (the vacuous product, even when n == 0),
// matching the Cartesian-product convention that a 0-ary product over any
// set has exactly one element; otherwise n == 0 yields nothing.
func Product(n, k int) func(yield func([]int) bool) {
	return func(yield func([]int) bool) {
		if k == 0 {
			yield(nil)
			return
		}
		if n == 0 {
			return
		}
		idx := make([]int, k)
		for {
			out := make([]int, k)
			copy(out, idx)
			if !yield(out) {
				return
			}
			if !increment(idx, n, k-1) {
				return
			}
		}
	}
}

// increment advances idx at position i (odometer-style): bump idx[i]; if
// it overflows n, reset it to 0 and carry into position i-1. Returns false
// once the product is exhausted (position 0 itself overflowed).
func increment(idx []int, n, i int) bool {
	idx[i]++
	if idx[i] < n {
		return true
	}
	idx[i] = 0
	if i == 0 {
		return false
	}
	return increment(idx, n, i-1)
}

// Enumerate pairs each element of items with its index, mirroring
// percemon/utils.hpp's enumerate helper for range-for loops.
func Enumerate[T any](items []T) func(yield func(int, T) bool) {
	return func(yield func(int, T) bool) {
		for i, v := range items {
			if !yield(i, v) {
				return
			}
		}
	}
}
