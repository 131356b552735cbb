package engine

import (
	"testing"

	"github.com/lixenwraith/atlascore/core"
)

type testComponent struct {
	X, Y int
}

func TestStore_AddGetRemove(t *testing.T) {
	s := NewStore[testComponent]()

	s.Add(1, testComponent{X: 1})
	if c, ok := s.Get(1); !ok || c.X != 1 {
		t.Fatalf("Expected component X=1, got %v ok=%v", c, ok)
	}

	s.Remove(1)
	if _, ok := s.Get(1); ok {
		t.Error("Expected not-found after Remove")
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d", s.Len())
	}
}

func TestStore_AddOverwritesInPlace(t *testing.T) {
	s := NewStore[testComponent]()
	s.Add(7, testComponent{X: 1})
	s.Add(8, testComponent{X: 2})

	p := s.Add(7, testComponent{X: 99})
	if p.X != 99 {
		t.Errorf("Expected returned pointer to hold 99, got %d", p.X)
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 entries after overwrite, got %d", s.Len())
	}
	if i, _ := s.IndexOf(7); i != 0 {
		t.Errorf("Expected overwrite to keep dense index 0, got %d", i)
	}
}

func TestStore_SwapRemoveKeepsMappingConsistent(t *testing.T) {
	s := NewStore[testComponent]()
	for e := core.Entity(1); e <= 5; e++ {
		s.Add(e, testComponent{X: int(e)})
	}

	// Remove a non-last element, entity 5 is swapped into slot 1
	s.Remove(2)

	if s.Len() != 4 {
		t.Fatalf("Expected 4 entries, got %d", s.Len())
	}
	i, ok := s.IndexOf(5)
	if !ok {
		t.Fatal("Expected entity 5 to remain")
	}
	if s.Entities()[i] != 5 {
		t.Errorf("Expected entity at index %d to be 5, got %d", i, s.Entities()[i])
	}
	if s.Data()[i].X != 5 {
		t.Errorf("Expected data at index %d to belong to entity 5, got X=%d", i, s.Data()[i].X)
	}

	// Every remaining entity maps back to itself
	for idx, e := range s.Entities() {
		j, ok := s.IndexOf(e)
		if !ok || j != idx {
			t.Errorf("Entity %d: index map %d (ok=%v), dense position %d", e, j, ok, idx)
		}
		if s.Data()[idx].X != int(e) {
			t.Errorf("Entity %d paired with wrong data X=%d", e, s.Data()[idx].X)
		}
	}
}

func TestStore_RemoveLastAndMissing(t *testing.T) {
	s := NewStore[testComponent]()
	s.Add(1, testComponent{})
	s.Add(2, testComponent{})

	s.Remove(2)
	s.Remove(42) // Missing, no-op

	if s.Len() != 1 || !s.Has(1) || s.Has(2) {
		t.Errorf("Unexpected store state: len=%d has1=%v has2=%v", s.Len(), s.Has(1), s.Has(2))
	}
}

func TestStore_ForEachDenseOrder(t *testing.T) {
	s := NewStore[testComponent]()
	s.Add(10, testComponent{X: 10})
	s.Add(20, testComponent{X: 20})
	s.Add(30, testComponent{X: 30})
	s.Remove(10)

	var visited []core.Entity
	s.ForEach(func(e core.Entity, c *testComponent) {
		visited = append(visited, e)
		c.Y = 1
	})

	// Swap-remove moved 30 into slot 0
	want := []core.Entity{30, 20}
	if len(visited) != len(want) {
		t.Fatalf("Expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, visited)
		}
	}
	for _, c := range s.Data() {
		if c.Y != 1 {
			t.Error("Expected ForEach to mutate through pointer")
		}
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore[testComponent]()
	s.Add(1, testComponent{})
	s.Add(2, testComponent{})
	s.Clear()

	if s.Len() != 0 || s.Has(1) {
		t.Error("Expected store to be empty after Clear")
	}
	s.Add(3, testComponent{X: 3})
	if c, ok := s.Get(3); !ok || c.X != 3 {
		t.Error("Expected store to be usable after Clear")
	}
}
