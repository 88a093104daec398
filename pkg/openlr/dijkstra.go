package openlr

import (
	"container/heap"
)

// ShortestPathConfig bounds a shortest path search.
type ShortestPathConfig struct {
	// LowestFrc is the least important functional road class the path may
	// use; edges with a less important class are skipped.
	LowestFrc Frc
	// MaxLength abandons partial paths whose length exceeds this bound.
	MaxLength Length
}

// DefaultShortestPathConfig returns an unbounded search over the whole
// network.
func DefaultShortestPathConfig() ShortestPathConfig {
	return ShortestPathConfig{
		LowestFrc: Frc7,
		MaxLength: MaxLength,
	}
}

// ShortestPath computes the shortest path between two vertices with a
// node-based Dijkstra search. Edge lengths are summed in meters; edges with
// a functional road class less important than LowestFrc and transitions that
// are turn restricted are skipped, and partial paths longer than MaxLength
// are abandoned.
//
// Ties between equal-distance frontier elements are broken by vertex
// identifier so the result is reproducible. Returns false if the
// destination is not reachable within the bounds.
func ShortestPath(config ShortestPathConfig, g Graph, origin, destination VertexID) (Path, bool) {
	// current shortest distance from origin to this vertex
	shortestDistances := map[VertexID]Length{origin: 0}

	// previous edge and vertex on the current best known path to this vertex
	type hop struct {
		edge   EdgeID
		vertex VertexID
	}
	previous := make(map[VertexID]hop)

	frontier := &vertexHeap{{vertex: origin}}
	heap.Init(frontier)

	for frontier.Len() > 0 {
		element := heap.Pop(frontier).(vertexElement)

		if element.vertex == destination {
			// Unpacking: the shortest path from destination back to origin.
			var edges []EdgeID
			for next := destination; ; {
				h, ok := previous[next]
				if !ok {
					break
				}
				next = h.vertex
				edges = append(edges, h.edge)
			}
			reverseEdges(edges)

			return Path{Length: element.distance, Edges: edges}, true
		}

		// check if we already know a cheaper way to get here from the origin
		if shortest, ok := shortestDistances[element.vertex]; ok && element.distance > shortest {
			continue
		}

		for _, adjacency := range g.ExitingEdges(element.vertex) {
			if h, ok := previous[element.vertex]; ok && g.IsTurnRestricted(h.edge, adjacency.Edge) {
				continue
			}

			distance := element.distance + g.EdgeLength(adjacency.Edge)
			if distance > config.MaxLength {
				continue
			}

			if g.EdgeFrc(adjacency.Edge) > config.LowestFrc {
				continue
			}

			if shortest, ok := shortestDistances[adjacency.Vertex]; ok && distance >= shortest {
				continue
			}

			// Relax: we have now found a better way that we are going to
			// explore.
			shortestDistances[adjacency.Vertex] = distance
			previous[adjacency.Vertex] = hop{edge: adjacency.Edge, vertex: element.vertex}
			heap.Push(frontier, vertexElement{vertex: adjacency.Vertex, distance: distance})
		}
	}

	return Path{}, false
}

// vertexElement is a frontier entry of the node-based search.
type vertexElement struct {
	distance Length
	vertex   VertexID
}

// vertexHeap is a min-heap of frontier elements ordered by distance, with
// ties broken by vertex identifier.
type vertexHeap []vertexElement

func (h vertexHeap) Len() int { return len(h) }

func (h vertexHeap) Less(i, j int) bool {
	if h[i].distance != h[j].distance {
		return h[i].distance < h[j].distance
	}
	return h[i].vertex < h[j].vertex
}

func (h vertexHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *vertexHeap) Push(x any) { *h = append(*h, x.(vertexElement)) }

func (h *vertexHeap) Pop() any {
	old := *h
	n := len(old)
	element := old[n-1]
	*h = old[:n-1]
	return element
}

func reverseEdges(edges []EdgeID) {
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
}
