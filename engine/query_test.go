package engine

import (
	"testing"
)

// TestQueryBuilder verifies intersection, exclusion and ordering
func TestQueryBuilder(t *testing.T) {
	w := NewWorld()
	tests := GetStore[testComponent](w)
	others := GetStore[otherComponent](w)
	thirds := GetStore[thirdComponent](w)

	e1 := w.CreateEntity()
	tests.Add(e1, testComponent{X: 1})
	others.Add(e1, otherComponent{Name: "A"})

	e2 := w.CreateEntity()
	tests.Add(e2, testComponent{X: 2})

	e3 := w.CreateEntity()
	others.Add(e3, otherComponent{Name: "B"})

	e4 := w.CreateEntity()
	tests.Add(e4, testComponent{X: 4})
	others.Add(e4, otherComponent{Name: "C"})
	thirds.Add(e4, thirdComponent{})

	results := w.Query().With(tests).With(others).Execute()
	if len(results) != 2 || results[0] != e1 || results[1] != e4 {
		t.Errorf("Expected [%d %d], got %v", e1, e4, results)
	}

	excluded := w.Query().With(tests).With(others).Without(thirds).Execute()
	if len(excluded) != 1 || excluded[0] != e1 {
		t.Errorf("Expected [%d], got %v", e1, excluded)
	}

	single := w.Query().With(tests).Execute()
	if len(single) != 3 {
		t.Errorf("Expected 3 results, got %d", len(single))
	}

	if empty := w.Query().Execute(); len(empty) != 0 {
		t.Errorf("Expected 0 results for empty query, got %d", len(empty))
	}
}

// TestQueryBuilder_OrderIndependentOfRemovals checks results are in ID order after swap-removes
func TestQueryBuilder_OrderIndependentOfRemovals(t *testing.T) {
	w := NewWorld()
	tests := GetStore[testComponent](w)
	for i := 0; i < 5; i++ {
		tests.Add(w.CreateEntity(), testComponent{})
	}
	tests.Remove(1)

	results := w.Query().With(tests).Execute()
	for i := 1; i < len(results); i++ {
		if results[i-1] >= results[i] {
			t.Fatalf("Expected ascending IDs, got %v", results)
		}
	}
}

// TestQueryBuilder_Panic verifies panic behavior
func TestQueryBuilder_Panic(t *testing.T) {
	w := NewWorld()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when modifying executed query")
		}
	}()

	q := w.Query()
	q.Execute()
	q.With(GetStore[testComponent](w)) // Should panic
}
