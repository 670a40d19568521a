// Package util provides selection and environment helpers shared across components.
package util

import (
	"math/rand/v2"
)

// Selector picks one of n candidates. Implementations must return a value in [0, n)
// for n > 0.
type Selector interface {
	Pick(n int) int
}

// RandomSelector picks uniformly at random using math/rand/v2.
type RandomSelector struct{}

// Pick returns a uniformly random index in [0, n).
func (RandomSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return rand.IntN(n)
}

// FixedSelector always picks the same index, clamped to the candidate range.
// Tests use it to make template selection reproducible.
type FixedSelector int

// Pick returns the fixed index, clamped to [0, n).
func (f FixedSelector) Pick(n int) int {
	i := int(f)
	if i < 0 || n <= 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Choose returns one element of items using sel. It returns the zero value for
// an empty slice.
func Choose[T any](sel Selector, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	if sel == nil {
		sel = RandomSelector{}
	}
	return items[sel.Pick(len(items))]
}
