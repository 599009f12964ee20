// Package util holds small generic helpers shared across the frontend.
package util

import "iter"

// MSet is a mutable set over comparable elements, a shallow wrapper around a
// map. Use hashicorp/go-set when elements are hashed structurally instead.
type MSet[A comparable] struct {
	underlying map[A]struct{}
}

func NewSetOf[A comparable](elems []A) MSet[A] {
	s := MSet[A]{underlying: make(map[A]struct{}, len(elems))}
	s.Add(elems...)
	return s
}

func (s MSet[A]) Add(elems ...A) {
	for _, elem := range elems {
		s.underlying[elem] = struct{}{}
	}
}

func (s MSet[A]) Contains(elem A) bool {
	_, ok := s.underlying[elem]
	return ok
}

func (s MSet[A]) Len() int {
	return len(s.underlying)
}

func (s MSet[A]) All() iter.Seq[A] {
	return func(yield func(A) bool) {
		for elem := range s.underlying {
			if !yield(elem) {
				return
			}
		}
	}
}
