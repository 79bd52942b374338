// Package xslices provides slice helpers missing from the standard slices
// package, used by the aggregation and report code.
package xslices

import (
	"cmp"
	"slices"
)

// Map executes the given function sequentially for every element on in, and
// returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// Iota returns a slice of incremental int values, starting with start and
// of the given length.
func Iota[T interface{ ~int | ~int64 | ~float64 }](start T, length int) (slice []T) {
	slice = make([]T, length)
	for ii := range slice {
		slice[ii] = start + T(ii)
	}
	return
}

// SortedKeys returns the sorted keys of a map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Last returns the last element of a slice.
func Last[T any](slice []T) T {
	return slice[len(slice)-1]
}

// Keep returns the elements of in for which fn returns true, preserving
// their order.
func Keep[T any](in []T, fn func(e T) bool) (out []T) {
	out = make([]T, 0, len(in))
	for _, e := range in {
		if fn(e) {
			out = append(out, e)
		}
	}
	return
}
