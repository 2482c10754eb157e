package set

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Set[T comparable] map[T]struct{}

func (s Set[T]) Add(val T) {
	s[val] = struct{}{}
}

func (s Set[T]) Remove(val T) {
	delete(s, val)
}

func (s Set[T]) Values() []T {
	return maps.Keys(s)
}

func (s Set[T]) Has(val T) bool {
	if _, ok := s[val]; ok {
		return true
	}

	return false
}

func (s Set[T]) Len() int {
	return len(s)
}

// Diff returns the elements of s that are not present in ss.
func (s Set[T]) Diff(ss Set[T]) Set[T] {
	newset := make(Set[T])

	for val := range s {
		if !ss.Has(val) {
			newset.Add(val)
		}
	}

	return newset
}

func (s Set[T]) Copy() Set[T] {
	newset := make(Set[T], len(s))
	for val := range s {
		newset.Add(val)
	}

	return newset
}

func (s Set[T]) Equals(ss Set[T]) bool {
	if len(s) != len(ss) {
		return false
	}

	for k := range s {
		if !ss.Has(k) {
			return false
		}
	}

	return true
}

// Sorted returns the elements of the set in ascending order.
func Sorted[T constraints.Ordered](s Set[T]) []T {
	values := s.Values()
	slices.Sort(values)

	return values
}

func FromSlice[T comparable](sl []T) Set[T] {
	set := make(Set[T], len(sl))
	for _, val := range sl {
		set.Add(val)
	}

	return set
}

func New[T comparable](sl ...T) Set[T] {
	return FromSlice(sl)
}
