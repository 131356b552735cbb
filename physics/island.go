package physics

import (
	"github.com/lixenwraith/atlascore/core"
)

// Island is a set of contacts whose bodies are transitively connected
// Contacts holds indices into the event slice the island was built from
type Island struct {
	Contacts []int
}

// unionFind is a disjoint set keyed by entity with path splitting and union by rank
type unionFind struct {
	parent map[core.Entity]core.Entity
	rank   map[core.Entity]uint8
}

func newUnionFind(capacity int) *unionFind {
	return &unionFind{
		parent: make(map[core.Entity]core.Entity, capacity),
		rank:   make(map[core.Entity]uint8, capacity),
	}
}

func (u *unionFind) find(e core.Entity) core.Entity {
	p, ok := u.parent[e]
	if !ok {
		u.parent[e] = e
		return e
	}
	for p != e {
		gp := u.parent[p]
		u.parent[e] = gp
		e, p = p, u.parent[p]
	}
	return e
}

func (u *unionFind) union(a, b core.Entity) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// BuildIslands groups contacts into connected components of the contact graph
// Bodies for which anchored returns true do not join islands: two bodies resting on the same static
// ground stay independent, and a contact between two anchored bodies belongs to no island
// Islands are ordered by first appearance in events; a nil anchored treats every body as dynamic
func BuildIslands(events []CollisionEvent, anchored func(core.Entity) bool) []Island {
	if len(events) == 0 {
		return nil
	}
	isAnchored := func(e core.Entity) bool {
		return anchored != nil && anchored(e)
	}

	uf := newUnionFind(len(events) * 2)
	for i := range events {
		a, b := events[i].EntityA, events[i].EntityB
		aAnchored, bAnchored := isAnchored(a), isAnchored(b)
		switch {
		case !aAnchored && !bAnchored:
			uf.union(a, b)
		case !aAnchored:
			uf.find(a)
		case !bAnchored:
			uf.find(b)
		}
	}

	var islands []Island
	slot := make(map[core.Entity]int)
	for i := range events {
		var root core.Entity
		switch a, b := events[i].EntityA, events[i].EntityB; {
		case !isAnchored(a):
			root = uf.find(a)
		case !isAnchored(b):
			root = uf.find(b)
		default:
			continue
		}
		idx, ok := slot[root]
		if !ok {
			idx = len(islands)
			slot[root] = idx
			islands = append(islands, Island{})
		}
		islands[idx].Contacts = append(islands[idx].Contacts, i)
	}
	return islands
}
