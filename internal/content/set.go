package content

import "sort"

// Set is an immutable-by-convention collection of content names.
type Set[T ~string] map[T]struct{}

// NewSet builds a set from the given names.
func NewSet[T ~string](names ...T) Set[T] {
	s := make(Set[T], len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether the set contains name.
func (s Set[T]) Has(name T) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set with all members of s and others.
func (s Set[T]) Union(others ...Set[T]) Set[T] {
	out := make(Set[T], len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	for _, other := range others {
		for n := range other {
			out[n] = struct{}{}
		}
	}
	return out
}

// Minus returns a new set with the members of others removed from s.
func (s Set[T]) Minus(others ...Set[T]) Set[T] {
	out := make(Set[T], len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	for _, other := range others {
		for n := range other {
			delete(out, n)
		}
	}
	return out
}

// ContainsAll reports whether every member of other is in s.
func (s Set[T]) ContainsAll(other Set[T]) bool {
	for n := range other {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order.
func (s Set[T]) Sorted() []T {
	out := make([]T, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
