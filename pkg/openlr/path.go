package openlr

// Path is an ordered list of connected edges together with its total length.
type Path struct {
	Length Length
	Edges  []EdgeID
}

// IsPathConnected reports whether all edges of the path are sequentially
// connected in the graph and none of the transitions is turn restricted.
func IsPathConnected(g Graph, path []EdgeID) bool {
	for i := 0; i+1 < len(path); i++ {
		e1, e2 := path[i], path[i+1]

		if g.IsTurnRestricted(e1, e2) {
			return false
		}

		connected := false
		for _, adjacency := range g.ExitingEdges(g.EdgeEndVertex(e1)) {
			if adjacency.Edge == e2 {
				connected = true
				break
			}
		}
		if !connected {
			return false
		}
	}

	return true
}

// IsPathLoop reports whether the path visits a vertex twice when the start
// and end vertices are only counted for zero offsets.
func IsPathLoop(g Graph, path []EdgeID, posOffset, negOffset Length) bool {
	if len(path) == 0 {
		return false
	}

	seen := make(map[VertexID]struct{}, len(path)+1)
	visit := func(v VertexID) bool {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
		return false
	}

	if posOffset.IsZero() && visit(g.EdgeStartVertex(path[0])) {
		return true
	}
	for _, edge := range path[1:] {
		if visit(g.EdgeStartVertex(edge)) {
			return true
		}
	}
	if negOffset.IsZero() && visit(g.EdgeEndVertex(path[len(path)-1])) {
		return true
	}

	return false
}

// IsNodeValid reports whether a vertex is a valid node, that is, a node
// where a route search must decide between alternatives. Paths starting or
// ending at a valid node are not expanded further.
//
// A node is invalid if:
//  1. It has a degree of 2 and is not a dead end: with one incoming and one
//     outgoing line the node can be stepped over during route search. A
//     dead-end node stays valid, otherwise the only way onward is back along
//     the same line.
//  2. It has a degree of 4 and the incoming/outgoing lines are pairwise
//     opposite: the node then connects exactly two other nodes and no
//     deviation is possible (u-turns are not allowed).
func IsNodeValid(g Graph, vertex VertexID) bool {
	switch g.VertexDegree(vertex) {
	case 2:
		edges := vertexEdges(g, vertex)
		return IsOppositeDirection(g, edges[0], edges[1]) // true: dead end
	case 4:
		edges := vertexEdges(g, vertex)

		for i := 1; i < len(edges); i++ {
			if IsOppositeDirection(g, edges[0], edges[i]) {
				// check the remaining pair
				edges[i] = edges[len(edges)-1]
				edges = edges[1 : len(edges)-1]
				return !IsOppositeDirection(g, edges[0], edges[1])
			}
		}

		return true
	default:
		return true
	}
}

// IsOppositeDirection reports whether the first edge is the directed edge
// going into the opposite direction of the second edge, connecting the same
// two vertices.
func IsOppositeDirection(g Graph, e1, e2 EdgeID) bool {
	// n1 < ==== > n2
	return g.EdgeStartVertex(e1) == g.EdgeEndVertex(e2) &&
		g.EdgeEndVertex(e1) == g.EdgeStartVertex(e2)
}

// vertexEdges lists all edges connected to a vertex, entering first, in the
// deterministic adjacency order of the graph.
func vertexEdges(g Graph, vertex VertexID) []EdgeID {
	entering := g.EnteringEdges(vertex)
	exiting := g.ExitingEdges(vertex)

	edges := make([]EdgeID, 0, len(entering)+len(exiting))
	for _, adjacency := range entering {
		edges = append(edges, adjacency.Edge)
	}
	for _, adjacency := range exiting {
		edges = append(edges, adjacency.Edge)
	}
	return edges
}
