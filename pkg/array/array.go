package array

// Returns the index of the first element that is true on the condition.
// Otherwise, returns -1.
func Index[T any](arr []T, cond func(T) bool) int {
	for i := 0; i < len(arr); i++ {
		if cond(arr[i]) {
			return i
		}
	}
	return -1
}

// Returns true if the array contains the given value.
func Contains[T comparable](arr []T, value T) bool {
	return Index(arr, func(elem T) bool {
		return elem == value
	}) > -1
}

// Returns the number of elements that are true on the condition.
func Count[T any](arr []T, cond func(T) bool) int {
	n := 0
	for _, elem := range arr {
		if cond(elem) {
			n++
		}
	}
	return n
}

// Returns true if arr begins with prefix, element for element.
func HasPrefix[T comparable](arr, prefix []T) bool {
	if len(prefix) > len(arr) {
		return false
	}
	for i := range prefix {
		if arr[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Returns the sum of f over all elements.
func Sum[T any](arr []T, f func(T) int) int {
	total := 0
	for _, elem := range arr {
		total += f(elem)
	}
	return total
}
