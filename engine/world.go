package engine

import (
	"reflect"
	"sync"

	"github.com/lixenwraith/atlascore/core"
)

// World contains all entities and their components using typed stores
// Stores are created lazily on first use and keyed by the component's type identity
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	stores map[reflect.Type]AnyStore
	order  []reflect.Type // Registration order of stores, for deterministic teardown

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty ECS world
func NewWorld() *World {
	return &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		stores:       make(map[reflect.Type]AnyStore),
		systems:      make([]System, 0),
	}
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity removes the entity and its entry from every registered store
// IDs are never reused
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.alive[e]; !ok {
		return
	}
	delete(w.alive, e)
	for _, t := range w.order {
		w.stores[t].Remove(e)
	}
}

// IsAlive reports whether e was created and not yet destroyed
func (w *World) IsAlive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Clear removes all entities and components; the ID counter keeps advancing
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alive = make(map[core.Entity]struct{})
	for _, t := range w.order {
		w.stores[t].Clear()
	}
}

// AddSystem appends a system; systems run in registration order
func (w *World) AddSystem(system System) {
	if system == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.systems = append(w.systems, system)
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// Update runs every system once with dt seconds
// Concurrent Update calls are serialized
func (w *World) Update(dt float64) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()

	for _, system := range w.Systems() {
		system.Update(w, dt)
	}
}

// storeFor returns the registered store for t, creating it with mk when absent
func (w *World) storeFor(t reflect.Type, mk func() AnyStore) AnyStore {
	w.mu.RLock()
	s, ok := w.stores[t]
	w.mu.RUnlock()
	if ok || mk == nil {
		return s
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Double-check after acquiring write lock
	if s, ok = w.stores[t]; ok {
		return s
	}
	s = mk()
	w.stores[t] = s
	w.order = append(w.order, t)
	return s
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetStore returns the store for T, creating it on first use
// The pointer stays valid for the lifetime of the world
func GetStore[T any](w *World) *Store[T] {
	return w.storeFor(typeOf[T](), func() AnyStore { return NewStore[T]() }).(*Store[T])
}

// LookupStore returns the store for T without creating it
func LookupStore[T any](w *World) (*Store[T], bool) {
	s := w.storeFor(typeOf[T](), nil)
	if s == nil {
		return nil, false
	}
	return s.(*Store[T]), true
}

// AddComponent inserts or overwrites the T component of e
func AddComponent[T any](w *World, e core.Entity, c T) *T {
	return GetStore[T](w).Add(e, c)
}

// GetComponent returns the T component of e
func GetComponent[T any](w *World, e core.Entity) (*T, bool) {
	s, ok := LookupStore[T](w)
	if !ok {
		return nil, false
	}
	return s.Get(e)
}

// HasComponent checks if e has a T component
func HasComponent[T any](w *World, e core.Entity) bool {
	s, ok := LookupStore[T](w)
	return ok && s.Has(e)
}

// RemoveComponent deletes the T component of e
func RemoveComponent[T any](w *World, e core.Entity) {
	if s, ok := LookupStore[T](w); ok {
		s.Remove(e)
	}
}

// ForEach visits every T component in dense order
func ForEach[T any](w *World, fn func(e core.Entity, c *T)) {
	if s, ok := LookupStore[T](w); ok {
		s.ForEach(fn)
	}
}
