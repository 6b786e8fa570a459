// Package fileset provides an ordered, duplicate-free list of paths.
//
// A Set owns copies of its paths and preserves insertion order. It
// satisfies minitar.FileSet.
package fileset

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrDuplicate is returned when a path is added twice.
var ErrDuplicate = errors.New("fileset: duplicate path")

// Set is an ordered collection of distinct paths. The zero value is not
// usable; call New or Of.
type Set struct {
	paths []string
	index mapset.Set[string]
}

// New returns a Set holding paths in order. A repeated path is an error.
func New(paths ...string) (*Set, error) {
	s := newSet(len(paths))
	for _, p := range paths {
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Of collects the distinct paths yielded by seq, keeping the first
// occurrence of each.
func Of(seq iter.Seq[string]) *Set {
	s := newSet(0)
	for p := range seq {
		_ = s.Add(p) //nolint:errcheck // repeats are dropped
	}
	return s
}

func newSet(capacity int) *Set {
	return &Set{
		paths: make([]string, 0, capacity),
		index: mapset.NewThreadUnsafeSetWithSize[string](capacity),
	}
}

// Add appends path. Adding a path already in the set is ErrDuplicate.
func (s *Set) Add(path string) error {
	if !s.index.Add(path) {
		return fmt.Errorf("%w: %s", ErrDuplicate, path)
	}
	s.paths = append(s.paths, path)
	return nil
}

// All yields the paths in insertion order.
func (s *Set) All() iter.Seq[string] {
	return slices.Values(s.paths)
}

// Paths returns a copy of the paths in insertion order.
func (s *Set) Paths() []string {
	return slices.Clone(s.paths)
}

// Len returns the number of paths.
func (s *Set) Len() int {
	return len(s.paths)
}

// Contains reports whether path is in the set.
func (s *Set) Contains(path string) bool {
	return s.index.Contains(path)
}

// IsSubsetOf reports whether every path in s is also in other.
func (s *Set) IsSubsetOf(other *Set) bool {
	return s.index.IsSubset(other.index)
}
