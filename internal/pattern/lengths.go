package pattern

import (
	"iter"

	"github.com/ian-shakespeare/libtex/pkg/array"
)

func identity(n int) int { return n }

// Lengths enumerates length assignments for a run of adjacent slots.
// Every assignment gives slot i at least mins[i] and the combined total
// never exceeds budget. Assignments come in increasing total; within one
// total they come in the order of Split.
func Lengths(mins []int, budget int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if len(mins) == 0 {
			return
		}
		base := array.Sum(mins, identity)
		for extra := 0; base+extra <= budget; extra++ {
			for lengths := range Split(mins, extra) {
				if !yield(lengths) {
					return
				}
			}
		}
	}
}

// Split enumerates the ways of sharing extra tokens among the slots on
// top of their minimums. The extra length starts on the last slot and
// moves leftward like an odometer, rightmost digit first.
func Split(mins []int, extra int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		k := len(mins)
		if k == 0 || extra < 0 {
			return
		}
		digits := make([]int, k-1)
		for {
			lengths := make([]int, k)
			for i, d := range digits {
				lengths[i] = mins[i] + d
			}
			lengths[k-1] = mins[k-1] + extra - array.Sum(digits, identity)

			if !yield(lengths) {
				return
			}
			if !advance(digits, extra) {
				return
			}
		}
	}
}

func advance(digits []int, limit int) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if array.Sum(digits, identity) <= limit {
			return true
		}
		digits[i] = 0
	}
	return false
}
