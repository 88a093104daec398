package openlr

import (
	"container/heap"
)

// coverageKind is the outcome of covering a location by one shortest path.
type coverageKind uint8

const (
	// coverageLocation means the whole location is the shortest path.
	coverageLocation coverageKind = iota
	// coverageIntermediate means the shortest path diverged; the location
	// must be split at the reported index.
	coverageIntermediate
	// coverageNotFound means no covering route exists within the bounds.
	coverageNotFound
)

// coverage represents a subset, or the totality, of the location that is a
// shortest path. For an intermediate outcome, index is the position in the
// location where a new LRP splits it: the shortest path between the current
// start and that line covers the corresponding part of the location
// completely, and the indicated line acts as the start of the remainder.
type coverage struct {
	kind  coverageKind
	index int
}

// shortestPathLocation runs a shortest-path search that follows the given
// location until the location diverges from the shortest path, in which
// case the location is split at an intermediate edge.
//
// The search is edge-based: it starts at the first line of the location and
// ends at its last line, with distances measured in meters. Lines whose
// cumulative distance exceeds the total location length are abandoned, and
// turn restricted transitions are skipped. Whenever an expanded line
// belongs to the location, the intermediator decides whether the location
// still mirrors the shortest-path frontier or has to be split.
func shortestPathLocation(g Graph, location []EdgeID, maxLrpDistance Length) (coverage, error) {
	if len(location) == 0 {
		return coverage{}, ErrEmptyLocation
	}

	origin := location[0]
	destination := location[len(location)-1]

	if origin == destination && len(location) > 1 {
		// origin and destination are equal but there is a path in between;
		// skip the origin and proceed with the next line of the location
		return coverage{kind: coverageIntermediate, index: 1}, nil
	}

	// indices of eventual loops into origin and destination
	originLoop := -1
	for i := 1; i < len(location); i++ {
		if location[i] == origin {
			originLoop = i - 1
			break
		}
	}

	destinationLoop := -1
	for i := 0; i+1 < len(location); i++ {
		if location[i] == destination {
			destinationLoop = i
			break
		}
	}

	if originLoop == 0 {
		// origin loops onto itself
		return coverage{kind: coverageIntermediate, index: 1}, nil
	}

	var maxLength Length
	for _, edge := range location {
		maxLength += g.EdgeLength(edge)
	}

	originLength := g.EdgeLength(origin)
	shortestDistances := map[EdgeID]Length{origin: originLength}
	previous := make(map[EdgeID]EdgeID)

	frontier := &edgeHeap{{edge: origin, distance: originLength}}
	heap.Init(frontier)

	im := newIntermediator(g, location, maxLrpDistance)

	for frontier.Len() > 0 {
		element := heap.Pop(frontier).(edgeElement)

		// skip stale frontier entries so the intermediator sees every
		// settled edge exactly once
		if shortest, ok := shortestDistances[element.edge]; ok && element.distance > shortest {
			continue
		}

		if index := indexOfEdge(location, element.edge); index >= 0 {
			intermediate, ok, err := im.getIntermediate(element.edge, element.distance, previous)
			if err != nil {
				return coverage{}, err
			}
			if ok {
				return coverage{kind: coverageIntermediate, index: intermediate}, nil
			}

			if IsPathLoop(g, location[:index+1], 0, 0) {
				return coverage{kind: coverageIntermediate, index: index}, nil
			}
		}

		if element.edge == destination {
			if destinationLoop >= 0 {
				// route found until the destination loop ends
				return coverage{kind: coverageIntermediate, index: destinationLoop}, nil
			}
			return coverage{kind: coverageLocation}, nil
		}

		if originLoop >= 0 && im.lastEdgeIndex == originLoop {
			// the loop ending at the origin has been completely followed
			return coverage{kind: coverageIntermediate, index: originLoop + 1}, nil
		}

		for _, adjacency := range g.ExitingEdges(g.EdgeEndVertex(element.edge)) {
			if g.IsTurnRestricted(element.edge, adjacency.Edge) {
				continue
			}

			distance := element.distance + g.EdgeLength(adjacency.Edge)
			if distance > maxLength {
				continue
			}

			if shortest, ok := shortestDistances[adjacency.Edge]; ok && distance >= shortest {
				continue
			}

			// Relax: we have now found a better way that we are going to
			// explore.
			shortestDistances[adjacency.Edge] = distance
			previous[adjacency.Edge] = element.edge
			heap.Push(frontier, edgeElement{edge: adjacency.Edge, distance: distance})
		}
	}

	return coverage{kind: coverageNotFound}, nil
}

// intermediator mirrors the location along the search frontier and splits it
// at intermediate edges whenever it stops following the shortest path.
type intermediator struct {
	g              Graph
	location       []EdgeID
	maxLrpDistance Length
	lastEdge       EdgeID
	lastEdgeIndex  int
}

func newIntermediator(g Graph, location []EdgeID, maxLrpDistance Length) *intermediator {
	return &intermediator{
		g:              g,
		location:       location,
		maxLrpDistance: maxLrpDistance,
		lastEdge:       location[0],
	}
}

// getIntermediate checks whether the location has to be split because it
// diverges from the shortest path at the popped edge, or because the
// distance covered exceeds the maximum LRP distance. The split index always
// points at a line whose start node is valid when one is reachable through
// the predecessor chain.
func (im *intermediator) getIntermediate(hEdge EdgeID, hDistance Length, previous map[EdgeID]EdgeID) (int, bool, error) {
	if hEdge == im.location[0] {
		// the first line is always found because all paths start from the
		// origin
		return 0, false, nil
	}

	if next, ok := im.locationSuccessor(previous, hEdge); ok {
		im.lastEdge = next
		im.lastEdgeIndex++

		if hDistance > im.maxLrpDistance {
			index, ok := im.rfindIntermediateIndex(previous)
			if !ok {
				return 0, false, &IntermediateError{Index: im.lastEdgeIndex}
			}
			return index, true, nil
		}

		return 0, false, nil
	}

	// The location deviates from the shortest path that reaches this
	// element. Find the start of the deviation along the current path; at
	// least the start line is found because all paths go back to the
	// origin.
	commonEdge, ok := findCommonEdge(im.location, previous, hEdge)
	if !ok {
		return 0, false, &IntermediateError{Index: im.lastEdgeIndex}
	}

	if commonEdge != im.lastEdge {
		// the deviation starts earlier in the path
		index, ok := im.rfindIntermediateIndex(previous)
		if !ok {
			return 0, false, &IntermediateError{Index: im.lastEdgeIndex}
		}
		return index, true, nil
	}

	index := im.lastEdgeIndex + 1
	intermediate := im.location[index]

	// The shortest path to the next location edge may bypass the last
	// covered edge; splitting at the next edge is still sound because the
	// covered prefix up to it is a shortest path.
	if _, ok := previous[intermediate]; !ok {
		return 0, false, &IntermediateError{Index: im.lastEdgeIndex}
	}

	return index, true, nil
}

// locationSuccessor returns the next location edge only if the popped edge
// is its direct successor along the shortest path, in which case the next
// location edge belongs to the shortest path.
func (im *intermediator) locationSuccessor(previous map[EdgeID]EdgeID, hEdge EdgeID) (EdgeID, bool) {
	previousEdge, ok := previous[hEdge]
	if !ok {
		return 0, false
	}

	nextIndex := im.lastEdgeIndex + 1
	if nextIndex >= len(im.location) {
		return 0, false
	}

	next := im.location[nextIndex]
	if im.lastEdge == previousEdge && next == hEdge {
		return next, true
	}
	return 0, false
}

// rfindIntermediateIndex traverses the path from the last covered location
// edge back towards the start, looking for a line with a valid start node.
// Coming back to the origin means the path had a cycle and no valid node
// can hold the intermediate; the last covered edge is used as fallback.
func (im *intermediator) rfindIntermediateIndex(previous map[EdgeID]EdgeID) (int, bool) {
	edge := im.lastEdge

	for {
		if edge == im.location[0] {
			return im.lastEdgeIndex, true
		}
		if IsNodeValid(im.g, im.g.EdgeStartVertex(edge)) {
			index := indexOfEdge(im.location, edge)
			return index, index >= 0
		}

		next, ok := previous[edge]
		if !ok {
			return 0, false
		}
		edge = next
	}
}

// findCommonEdge returns the first predecessor of the given edge that is
// part of the location.
func findCommonEdge(location []EdgeID, previous map[EdgeID]EdgeID, edge EdgeID) (EdgeID, bool) {
	for {
		previousEdge, ok := previous[edge]
		if !ok {
			return 0, false
		}
		if containsEdge(location, previousEdge) {
			return previousEdge, true
		}
		edge = previousEdge
	}
}

func indexOfEdge(edges []EdgeID, edge EdgeID) int {
	for i, e := range edges {
		if e == edge {
			return i
		}
	}
	return -1
}

// edgeElement is a frontier entry of the edge-based search.
type edgeElement struct {
	distance Length
	edge     EdgeID
}

// edgeHeap is a min-heap of frontier elements ordered by distance, with
// ties broken by edge identifier.
type edgeHeap []edgeElement

func (h edgeHeap) Len() int { return len(h) }

func (h edgeHeap) Less(i, j int) bool {
	if h[i].distance != h[j].distance {
		return h[i].distance < h[j].distance
	}
	return h[i].edge < h[j].edge
}

func (h edgeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *edgeHeap) Push(x any) { *h = append(*h, x.(edgeElement)) }

func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	element := old[n-1]
	*h = old[:n-1]
	return element
}
