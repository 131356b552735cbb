package engine

import (
	"slices"

	"github.com/lixenwraith/atlascore/core"
)

// QueryBuilder collects include/exclude store filters and resolves them into a sorted entity set
// Include stores are intersected starting from the smallest one
type QueryBuilder struct {
	include  []QueryableStore
	exclude  []AnyStore
	executed bool
	results  []core.Entity
}

// Query starts a new entity query over this world's stores
//
// Example:
//
//	dynamic := world.Query().
//	    With(engine.GetStore[component.TransformComponent](world)).
//	    With(engine.GetStore[component.RigidBodyComponent](world)).
//	    Without(engine.GetStore[component.DistanceJointComponent](world)).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		include: make([]QueryableStore, 0, 4),
	}
}

// With requires entities to own a component in store
// Panics if called after Execute
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.include = append(qb.include, store)
	return qb
}

// Without rejects entities owning a component in store
// Panics if called after Execute
func (qb *QueryBuilder) Without(store AnyStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.exclude = append(qb.exclude, store)
	return qb
}

// Execute returns the matching entities in ascending ID order
// Repeated calls return the cached result
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.include) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	slices.SortStableFunc(qb.include, func(a, b QueryableStore) int {
		return a.Len() - b.Len()
	})

	// All() returns a copy, safe to filter in place
	candidates := qb.include[0].All()
	for _, store := range qb.include[1:] {
		candidates = slices.DeleteFunc(candidates, func(e core.Entity) bool {
			return !store.Has(e)
		})
		if len(candidates) == 0 {
			break
		}
	}
	for _, store := range qb.exclude {
		candidates = slices.DeleteFunc(candidates, store.Has)
	}

	// Dense order depends on removal history; ID order does not
	slices.Sort(candidates)
	qb.results = candidates
	return qb.results
}
