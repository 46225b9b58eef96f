package engine

import (
	"testing"

	"railserver/models"
)

func TestDijkstraLineGraph(t *testing.T) {
	edges := []models.RailSegment{
		{{0, 0}, {1, 0}},
		{{1, 0}, {2, 0}},
		{{2, 0}, {3, 0}},
	}
	distances, predecessors := Dijkstra(edges, models.BoardPoint{0, 0}, nil)

	for point, want := range map[models.BoardPoint]int{
		{0, 0}: 0,
		{1, 0}: 1,
		{2, 0}: 2,
		{3, 0}: 3,
	} {
		if got, ok := distances[point]; !ok || got != want {
			t.Errorf("distance to %v: got %d (ok=%v), want %d", point, got, ok, want)
		}
	}
	if pred := predecessors[models.BoardPoint{3, 0}]; pred != (models.BoardPoint{2, 0}) {
		t.Errorf("predecessor of (3,0): got %v, want (2,0)", pred)
	}
}

func TestDijkstraUndirected(t *testing.T) {
	// 辺は片方向で与えても両方向に到達できる
	edges := []models.RailSegment{{{5, 5}, {4, 5}}}
	distances, _ := Dijkstra(edges, models.BoardPoint{4, 5}, nil)
	if got := distances[models.BoardPoint{5, 5}]; got != 1 {
		t.Errorf("distance to (5,5): got %d, want 1", got)
	}
}

func TestDijkstraUnreachable(t *testing.T) {
	edges := []models.RailSegment{
		{{0, 0}, {1, 0}},
		{{5, 0}, {6, 0}}, // 切り離された部分
	}
	distances, _ := Dijkstra(edges, models.BoardPoint{0, 0}, nil)
	if _, ok := distances[models.BoardPoint{5, 0}]; ok {
		t.Error("(5,0) should be unreachable")
	}
	if _, ok := distances[models.BoardPoint{6, 0}]; ok {
		t.Error("(6,0) should be unreachable")
	}
}

func TestDijkstraWeighted(t *testing.T) {
	// 直行はコスト5、迂回は1+1=2
	edges := []models.RailSegment{
		{{0, 0}, {2, 0}},
		{{0, 0}, {1, 0}},
		{{1, 0}, {2, 0}},
	}
	weight := func(rail models.RailSegment) int {
		if rail[0] == (models.BoardPoint{0, 0}) && rail[1] == (models.BoardPoint{2, 0}) {
			return 5
		}
		return 1
	}
	distances, _ := Dijkstra(edges, models.BoardPoint{0, 0}, weight)
	if got := distances[models.BoardPoint{2, 0}]; got != 2 {
		t.Errorf("distance to (2,0): got %d, want 2", got)
	}
}

func TestDijkstraRestartable(t *testing.T) {
	edges := []models.RailSegment{{{0, 0}, {1, 0}}}
	first, _ := Dijkstra(edges, models.BoardPoint{0, 0}, nil)
	second, _ := Dijkstra(edges, models.BoardPoint{0, 0}, nil)
	if len(first) != len(second) {
		t.Fatalf("repeated calls differ: %d vs %d entries", len(first), len(second))
	}
	for point, d := range first {
		if second[point] != d {
			t.Errorf("distance to %v differs between calls: %d vs %d", point, d, second[point])
		}
	}
}
