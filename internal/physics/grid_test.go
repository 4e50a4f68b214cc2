package physics

import (
	"sort"
	"testing"
)

func queryIndices(g *SpatialGrid, x, y float64) []int {
	var out []int
	g.QueryAround(x, y, func(idx int) bool {
		out = append(out, idx)
		return false
	})
	sort.Ints(out)
	return out
}

func TestGridFindsNeighbors(t *testing.T) {
	g := NewSpatialGrid(320, 320, 32)

	g.Insert(100, 100, 0) // Same cell as the query point
	g.Insert(130, 100, 1) // Adjacent cell
	g.Insert(100, 130, 2) // Adjacent cell
	g.Insert(250, 250, 3) // Far away

	got := queryIndices(g, 100, 100)
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("query returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("query returned %v, want %v", got, want)
		}
	}
}

func TestGridDoesNotWrapAroundBorders(t *testing.T) {
	g := NewSpatialGrid(320, 320, 32)

	g.Insert(5, 5, 0)     // Top-left corner
	g.Insert(315, 315, 1) // Bottom-right corner

	if got := queryIndices(g, 5, 5); len(got) != 1 || got[0] != 0 {
		t.Errorf("corner query returned %v, want [0] only", got)
	}
	if got := queryIndices(g, 315, 315); len(got) != 1 || got[0] != 1 {
		t.Errorf("opposite corner query returned %v, want [1] only", got)
	}
}

func TestGridClampsOutOfBoundsToBorderCells(t *testing.T) {
	g := NewSpatialGrid(320, 320, 32)

	// Slightly outside the playfield, as spawned enemies are
	g.Insert(-40, 100, 0)
	g.Insert(360, 100, 1)

	if got := queryIndices(g, 1, 100); len(got) != 1 || got[0] != 0 {
		t.Errorf("left border query returned %v, want [0]", got)
	}
	if got := queryIndices(g, 319, 100); len(got) != 1 || got[0] != 1 {
		t.Errorf("right border query returned %v, want [1]", got)
	}
}

func TestGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(320, 320, 32)
	g.Insert(100, 100, 0)
	g.Insert(101, 101, 1)

	var seen int
	g.QueryAround(100, 100, func(idx int) bool {
		seen++
		return true
	})
	if seen != 1 {
		t.Errorf("early stop visited %d items, want 1", seen)
	}
}

func TestGridClearReuses(t *testing.T) {
	g := NewSpatialGrid(320, 320, 32)
	g.Insert(100, 100, 0)
	g.Clear()

	if got := queryIndices(g, 100, 100); len(got) != 0 {
		t.Errorf("query after clear returned %v, want empty", got)
	}

	g.Insert(100, 100, 7)
	if got := queryIndices(g, 100, 100); len(got) != 1 || got[0] != 7 {
		t.Errorf("reuse after clear returned %v, want [7]", got)
	}
}
