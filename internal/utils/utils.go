package utils

// RemoveIndexFromSlice drops the element at removeIdx. Out-of-range
// indexes leave the slice untouched. The returned slice shares the
// input's backing array.
func RemoveIndexFromSlice[T any](s []T, removeIdx int) []T {
	if removeIdx < 0 || removeIdx >= len(s) {
		return s
	}
	return append(s[:removeIdx], s[removeIdx+1:]...)
}
