package openlr

import (
	"testing"
)

func TestShortestPathPicksShorterRoute(t *testing.T) {
	g := newTestGraph()

	path, ok := ShortestPath(DefaultShortestPathConfig(), g, 1, 4)
	if !ok {
		t.Fatal("no path found")
	}

	assertPath(t, path, []EdgeID{1, 2, 3}, 379)
}

func TestShortestPathSameVertex(t *testing.T) {
	g := newTestGraph()

	path, ok := ShortestPath(DefaultShortestPathConfig(), g, 2, 2)
	if !ok {
		t.Fatal("no path found")
	}

	assertPath(t, path, nil, 0)
}

func TestShortestPathMaxLength(t *testing.T) {
	g := newTestGraph()

	config := DefaultShortestPathConfig()
	config.MaxLength = 378
	if _, ok := ShortestPath(config, g, 1, 4); ok {
		t.Error("a 379m path must not fit a 378m bound")
	}

	config.MaxLength = 379
	path, ok := ShortestPath(config, g, 1, 4)
	if !ok {
		t.Fatal("a 379m path fits a 379m bound")
	}
	assertPath(t, path, []EdgeID{1, 2, 3}, 379)
}

func TestShortestPathFrcFilter(t *testing.T) {
	g := newTestGraph()

	// edge 2 is Frc6; forbidding classes below Frc5 forces the long way
	config := DefaultShortestPathConfig()
	config.LowestFrc = Frc5

	path, ok := ShortestPath(config, g, 1, 4)
	if !ok {
		t.Fatal("no path found")
	}
	assertPath(t, path, []EdgeID{1, 4}, 536)
}

func TestShortestPathTurnRestriction(t *testing.T) {
	g := newTestGraph()
	g.restrict(1, 2)

	path, ok := ShortestPath(DefaultShortestPathConfig(), g, 1, 4)
	if !ok {
		t.Fatal("no path found")
	}
	assertPath(t, path, []EdgeID{1, 4}, 536)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := newTestGraph()

	if _, ok := ShortestPath(DefaultShortestPathConfig(), g, 1, 90); ok {
		t.Error("vertex 90 is unreachable")
	}

	// one-way edges cannot be traversed backwards
	if _, ok := ShortestPath(DefaultShortestPathConfig(), g, 4, 1); ok {
		t.Error("vertex 1 has no entering edges")
	}
}

func assertPath(t *testing.T, path Path, edges []EdgeID, length Length) {
	t.Helper()

	if path.Length != length {
		t.Fatalf("length = %v, want %v", path.Length, length)
	}
	if len(path.Edges) != len(edges) {
		t.Fatalf("edges = %v, want %v", path.Edges, edges)
	}
	for i := range edges {
		if path.Edges[i] != edges[i] {
			t.Fatalf("edges = %v, want %v", path.Edges, edges)
		}
	}
}
