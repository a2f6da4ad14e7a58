package collections

import "sort"

// SortedKeys returns the keys of a string-keyed map in ascending order.
// Map iteration order is randomized in Go, so every place that needs a
// stable scan over catalog categories or token values goes through this.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
