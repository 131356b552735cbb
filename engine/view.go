package engine

import (
	"github.com/lixenwraith/atlascore/core"
)

// View2 calls fn for every entity owning both A and B
// Iterates the smaller store and joins against the other; fn must not add or remove A or B
func View2[A, B any](w *World, fn func(e core.Entity, a *A, b *B)) {
	sa, okA := LookupStore[A](w)
	sb, okB := LookupStore[B](w)
	if !okA || !okB {
		return
	}

	if sa.Len() <= sb.Len() {
		sa.ForEach(func(e core.Entity, a *A) {
			if b, ok := sb.Get(e); ok {
				fn(e, a, b)
			}
		})
		return
	}
	sb.ForEach(func(e core.Entity, b *B) {
		if a, ok := sa.Get(e); ok {
			fn(e, a, b)
		}
	})
}

// View3 calls fn for every entity owning A, B and C
func View3[A, B, C any](w *World, fn func(e core.Entity, a *A, b *B, c *C)) {
	sa, okA := LookupStore[A](w)
	sb, okB := LookupStore[B](w)
	sc, okC := LookupStore[C](w)
	if !okA || !okB || !okC {
		return
	}

	// Drive from the smallest store
	var driver []core.Entity
	switch {
	case sa.Len() <= sb.Len() && sa.Len() <= sc.Len():
		driver = sa.Entities()
	case sb.Len() <= sc.Len():
		driver = sb.Entities()
	default:
		driver = sc.Entities()
	}

	for i := 0; i < len(driver); i++ {
		e := driver[i]
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		c, ok := sc.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
