package filter

import (
	"slices"
	"strings"
)

// Member is an element of a FilterSet.
// Key identifies the member by its construction parameters; two members with
// the same key are interchangeable.
type Member[T any] interface {
	Matches(v T) bool
	Key() string
}

// FilterSet is an OR-combination of members: a value is accepted when at least
// one member matches it. An empty set accepts nothing.
//
// The zero value is an empty set ready to use. A FilterSet is not safe for
// concurrent mutation, but concurrent Accept calls are fine once it is built.
type FilterSet[T any] struct {
	members []Member[T]
	keys    map[string]struct{}
}

// NewFilterSet creates a set holding members, dropping duplicates.
func NewFilterSet[T any](members ...Member[T]) *FilterSet[T] {
	s := &FilterSet[T]{}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add inserts m unless a member with the same key is already present.
// It reports whether the set changed.
func (s *FilterSet[T]) Add(m Member[T]) bool {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	k := m.Key()
	if _, ok := s.keys[k]; ok {
		return false
	}
	s.keys[k] = struct{}{}
	s.members = append(s.members, m)
	return true
}

// Accept reports whether any member matches v.
func (s *FilterSet[T]) Accept(v T) bool {
	if s == nil {
		return false
	}
	for _, m := range s.members {
		if m.Matches(v) {
			return true
		}
	}
	return false
}

// Matches lets a set be nested inside another set.
func (s *FilterSet[T]) Matches(v T) bool {
	return s.Accept(v)
}

// Len returns the number of members.
func (s *FilterSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Members returns the members in insertion order.
func (s *FilterSet[T]) Members() []Member[T] {
	if s == nil {
		return nil
	}
	return slices.Clone(s.members)
}

// Key returns the sorted member keys, so equal sets share a key.
func (s *FilterSet[T]) Key() string {
	if s == nil {
		return "{}"
	}
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return "{" + strings.Join(keys, ";") + "}"
}

// Equal reports whether both sets hold the same members, ignoring order.
func (s *FilterSet[T]) Equal(other *FilterSet[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.keysOrEmpty() {
		if _, ok := other.keysOrEmpty()[k]; !ok {
			return false
		}
	}
	return true
}

func (s *FilterSet[T]) keysOrEmpty() map[string]struct{} {
	if s == nil {
		return nil
	}
	return s.keys
}
