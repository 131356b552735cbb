package engine

import (
	"github.com/lixenwraith/atlascore/core"
)

// Store is a dense container for a specific component type T
// Uses the sparse set pattern: values and owners live in parallel dense slices for cache-friendly
// iteration, a sparse map resolves entity to dense index
// Not safe for concurrent mutation; concurrent Get/ForEach without writers is safe
type Store[T any] struct {
	data     []T
	entities []core.Entity
	index    map[core.Entity]int
}

// NewStore creates a new component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data:     make([]T, 0, 64),
		entities: make([]core.Entity, 0, 64),
		index:    make(map[core.Entity]int),
	}
}

// Add inserts a component for e, overwriting in place when e already has one
// Returned pointer is valid until the next Add or Remove on this store
func (s *Store[T]) Add(e core.Entity, val T) *T {
	if i, ok := s.index[e]; ok {
		s.data[i] = val
		return &s.data[i]
	}
	s.index[e] = len(s.data)
	s.data = append(s.data, val)
	s.entities = append(s.entities, e)
	return &s.data[len(s.data)-1]
}

// Get returns a pointer to the component of e
func (s *Store[T]) Get(e core.Entity) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return &s.data[i], true
}

// Remove deletes the component of e by swapping the last slot into its place, O(1)
// Dense order changes for the moved entity
func (s *Store[T]) Remove(e core.Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.data) - 1
	if i != last {
		moved := s.entities[last]
		s.data[i] = s.data[last]
		s.entities[i] = moved
		s.index[moved] = i
	}
	var zero T
	s.data[last] = zero
	s.data = s.data[:last]
	s.entities = s.entities[:last]
	delete(s.index, e)
}

// Has checks if entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Len returns number of entities with this component
func (s *Store[T]) Len() int {
	return len(s.data)
}

// ForEach visits (entity, component) pairs in dense order
// fn must not add to or remove from this store
func (s *Store[T]) ForEach(fn func(e core.Entity, c *T)) {
	for i := range s.data {
		fn(s.entities[i], &s.data[i])
	}
}

// Data exposes the dense component slice, index-aligned with Entities
func (s *Store[T]) Data() []T {
	return s.data
}

// Entities exposes the dense owner slice, index-aligned with Data
func (s *Store[T]) Entities() []core.Entity {
	return s.entities
}

// IndexOf returns the dense index of e
func (s *Store[T]) IndexOf(e core.Entity) (int, bool) {
	i, ok := s.index[e]
	return i, ok
}

// Clear removes all components from this store
func (s *Store[T]) Clear() {
	clear(s.data)
	s.data = s.data[:0]
	s.entities = s.entities[:0]
	s.index = make(map[core.Entity]int)
}

// All returns a copy of the owning entities in dense order
func (s *Store[T]) All() []core.Entity {
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}
