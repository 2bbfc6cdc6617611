package utils

import (
	"iter"

	"cosmossdk.io/math"
)

// Map lazily projects each element of s through fn.
func Map[S any, T any](s []S, fn func(S) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// Filter lazily yields the elements of s accepted by keep.
func Filter[S any](s []S, keep func(S) bool) iter.Seq[S] {
	return func(yield func(S) bool) {
		for _, v := range s {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// SumAmounts adds up a sequence of amounts, stopping at the first sum that
// no longer fits in 128 bits.
func SumAmounts(amounts iter.Seq[math.Int]) (math.Int, error) {
	total := math.ZeroInt()
	for amount := range amounts {
		var err error
		if total, err = CheckedAdd(total, amount); err != nil {
			return math.Int{}, err
		}
	}
	return total, nil
}
