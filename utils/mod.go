package utils

import "golang.org/x/exp/constraints"

// ArgMax returns the index of the first largest element, -1 for an empty slice.
func ArgMax[T constraints.Ordered](values []T) int {
	best := -1
	for i, v := range values {
		if best == -1 || v > values[best] {
			best = i
		}
	}
	return best
}

func Clip[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
