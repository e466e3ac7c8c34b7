package iterator

import "iter"

func Collect[T any](it iter.Seq[T]) []T {
	p := []T{}
	for value := range it {
		p = append(p, value)
	}
	return p
}

func Collect2[K, V any](it iter.Seq2[K, V]) ([]K, []V) {
	leftElems := []K{}
	rightElems := []V{}
	for left, right := range it {
		leftElems = append(leftElems, left)
		rightElems = append(rightElems, right)
	}
	return leftElems, rightElems
}

// CollectUntilError gathers values until the sequence ends or yields its
// first non-nil error, which is returned alongside the values before it.
func CollectUntilError[T any](it iter.Seq2[T, error]) ([]T, error) {
	values := []T{}
	for value, err := range it {
		if err != nil {
			return values, err
		}
		values = append(values, value)
	}
	return values, nil
}
