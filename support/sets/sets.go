// Package sets implements a set type as a `map[T]struct{}` with better
// ergonomics. The acceleration calculator uses it to intersect the input
// sizes covered by two benchmark series.
package sets

import (
	"cmp"
	"slices"
)

// Set implements a Set for the key type T.
type Set[T comparable] map[T]struct{}

// Make returns an empty Set of the given type. Size is optional, and if
// given reserves the expected capacity.
func Make[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// MakeWith creates a Set[T] with the given elements inserted.
func MakeWith[T comparable](elements ...T) Set[T] {
	s := Make[T](len(elements))
	s.Insert(elements...)
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}

// Intersect returns the elements present in both s and s2.
func (s Set[T]) Intersect(s2 Set[T]) Set[T] {
	smaller, larger := s, s2
	if len(larger) < len(smaller) {
		smaller, larger = larger, smaller
	}
	result := Make[T]()
	for k := range smaller {
		if larger.Has(k) {
			result.Insert(k)
		}
	}
	return result
}

// Sorted returns the elements of an ordered set as a sorted slice.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	keys := make([]T, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
