package openlr

import (
	"testing"
)

func TestIsOppositeDirection(t *testing.T) {
	g := newTestGraph()

	if IsOppositeDirection(g, 1, 1) {
		t.Error("an edge is not opposite to itself")
	}
	if IsOppositeDirection(g, 1, 2) || IsOppositeDirection(g, 2, 1) {
		t.Error("consecutive edges are not opposite")
	}

	if !IsOppositeDirection(g, 6, 7) || !IsOppositeDirection(g, 7, 6) {
		t.Error("dead-end twins are opposite, symmetrically")
	}
	if !IsOppositeDirection(g, 8, 9) {
		t.Error("parallel twins are opposite")
	}
}

func TestIsNodeValid(t *testing.T) {
	g := newTestGraph()

	tests := []struct {
		vertex VertexID
		degree int
		valid  bool
		reason string
	}{
		{vertex: 1, degree: 1, valid: true, reason: "degree 1"},
		{vertex: 3, degree: 2, valid: false, reason: "degree 2 pass-through"},
		{vertex: 6, degree: 2, valid: true, reason: "degree 2 dead end"},
		{vertex: 2, degree: 3, valid: true, reason: "degree 3"},
		{vertex: 8, degree: 4, valid: false, reason: "degree 4 pairwise"},
		{vertex: 11, degree: 4, valid: true, reason: "degree 4 with distinct neighbors"},
		{vertex: 5, degree: 3, valid: true, reason: "degree 3 at dead-end entry"},
	}

	for _, test := range tests {
		if degree := g.VertexDegree(test.vertex); degree != test.degree {
			t.Errorf("vertex %d: degree = %d, want %d", test.vertex, degree, test.degree)
		}
		if valid := IsNodeValid(g, test.vertex); valid != test.valid {
			t.Errorf("vertex %d (%s): valid = %v, want %v", test.vertex, test.reason, valid, test.valid)
		}
	}
}

func TestIsPathConnected(t *testing.T) {
	g := newTestGraph()

	if !IsPathConnected(g, []EdgeID{1, 2, 3}) {
		t.Error("1-2-3 is connected")
	}
	if !IsPathConnected(g, []EdgeID{1, 4, 5}) {
		t.Error("1-4-5 is connected")
	}
	if IsPathConnected(g, []EdgeID{1, 3}) {
		t.Error("1-3 skips a vertex")
	}
	if IsPathConnected(g, []EdgeID{1, 99}) {
		t.Error("99 is disconnected")
	}

	g.restrict(1, 2)
	if IsPathConnected(g, []EdgeID{1, 2, 3}) {
		t.Error("restricted turn breaks connectivity")
	}
}

func TestIsPathLoop(t *testing.T) {
	g := newTestGraph()

	if IsPathLoop(g, []EdgeID{1, 2, 3}, 0, 0) {
		t.Error("straight path has no loop")
	}

	// the ring comes back to its start vertex
	if !IsPathLoop(g, []EdgeID{40, 41, 42}, 0, 0) {
		t.Error("closed ring is a loop")
	}

	// with a positive offset the start vertex is not part of the location
	if IsPathLoop(g, []EdgeID{40, 41, 42}, 1, 0) {
		t.Error("offset start leaves the ring open")
	}

	// out and back over the dead end
	if !IsPathLoop(g, []EdgeID{6, 7}, 0, 0) {
		t.Error("out-and-back is a loop")
	}
}
