package openlr

import (
	"container/heap"
)

// candidateRoute is the shortest route between two consecutive LRPs,
// together with the candidate pair that produced it.
type candidateRoute struct {
	path       Path
	candidates candidatePair
}

func (r candidateRoute) firstCandidate() candidateLine { return r.candidates.lrp1 }
func (r candidateRoute) lastCandidate() candidateLine  { return r.candidates.lrp2 }

// distanceFromStart is the arc distance from the start vertex of the first
// edge to the first LRP.
func (r candidateRoute) distanceFromStart() Length {
	if projection := r.firstCandidate().projection; projection != nil {
		return *projection
	}
	return 0
}

// distanceToEnd is the arc distance from the last LRP to the end vertex of
// the last edge.
func (r candidateRoute) distanceToEnd(g Graph) Length {
	candidate := r.lastCandidate()
	if candidate.projection == nil {
		return 0
	}

	distance := g.EdgeLength(candidate.edge) - *candidate.projection
	if distance < 0 {
		return 0
	}
	return distance
}

// candidateRoutes is the sequence of shortest routes connecting every
// consecutive LRP pair.
type candidateRoutes []candidateRoute

func (r candidateRoutes) toPath() []EdgeID {
	var edges []EdgeID
	for _, route := range r {
		edges = append(edges, route.path.Edges...)
	}
	return edges
}

// calculateOffsets turns the logical offsets of the line reference into
// meter offsets on the concatenated path, taking the projections of the
// outermost LRPs into account.
func (r candidateRoutes) calculateOffsets(g Graph, offsets Offsets) (pos, neg Length, ok bool) {
	if len(r) == 0 {
		return 0, 0, false
	}

	first := r[0]       // LRP1 -> LRP2
	last := r[len(r)-1] // second to last LRP -> last LRP

	distanceFromStart := first.distanceFromStart()
	distanceToEnd := last.distanceToEnd(g)

	headLength := first.path.Length - distanceFromStart
	tailLength := last.path.Length - distanceToEnd

	if len(r) == 1 {
		// cut the other opposite if start and end are in the same and only
		// route
		headLength -= distanceToEnd
		tailLength -= distanceFromStart
	} else {
		if projection := first.lastCandidate().projection; projection != nil {
			// the second route does not start at the beginning of its
			// line; add this distance to the length of the first route
			headLength += *projection
		}

		if projection := last.firstCandidate().projection; projection != nil {
			// the last route does not start at the beginning of its line;
			// subtract this distance from the length of the last route
			tailLength -= *projection
		}
	}

	pos = offsets.DistanceFromStart(headLength) + distanceFromStart
	neg = offsets.DistanceToEnd(tailLength) + distanceToEnd

	return pos.Round(), neg.Round(), true
}

// resolveRoutes computes a shortest route between each pair of subsequent
// location reference points. The candidate line of the first LRP of a pair
// is the start of the search and the candidate line of the second LRP its
// end. The search only uses edges whose functional road class is within the
// variance of the lowest class announced for the pair, and retries lower
// rated candidate pairs a bounded number of times.
func resolveRoutes(config DecoderConfig, g Graph, lines []candidateLines) (candidateRoutes, error) {
	if routes, ok := resolveSingleLineRoutes(g, lines); ok {
		return routes, nil
	}

	routes := make(candidateRoutes, 0, len(lines)-1)

	for i := 0; i+1 < len(lines); i++ {
		lrp1, lrp2 := lines[i], lines[i+1]
		pairs := resolveTopCandidatePairs(config, lrp1, lrp2)

		lowestFrc := Frc7
		if frc, ok := FrcFromValue(lrp1.lrp.Lfrcnp().Value() + lrp1.lrp.Lfrcnp().Variance()); ok {
			lowestFrc = frc
		}

		route, ok := resolveCandidatePairsPath(config, g, pairs, lowestFrc)
		if !ok {
			return nil, &RouteNotFoundError{From: lrp1.lrp, To: lrp2.lrp}
		}

		// If the previous route ends on a line that is not the start of
		// this new route the previous route would need to be re-computed;
		// fail fast instead.
		if len(routes) > 0 {
			previous := routes[len(routes)-1]
			if previous.lastCandidate().edge != route.firstCandidate().edge {
				return nil, &AlternativeRouteNotFoundError{From: lrp1.lrp, To: lrp2.lrp}
			}
		}

		routes = append(routes, route)
	}

	return routes, nil
}

// resolveSingleLineRoutes short-circuits the search when the best candidate
// of every LRP is the same edge: the location is that single line and no
// shortest path needs to be computed.
func resolveSingleLineRoutes(g Graph, lines []candidateLines) (candidateRoutes, bool) {
	if len(lines) < 2 {
		return nil, false
	}

	best, ok := lines[0].bestCandidate()
	if !ok {
		return nil, false
	}
	for _, candidates := range lines {
		candidate, ok := candidates.bestCandidate()
		if !ok || candidate.edge != best.edge {
			return nil, false
		}
	}

	routes := make(candidateRoutes, 0, len(lines)-1)
	for i := 0; i+1 < len(lines); i++ {
		lrp1, _ := lines[i].bestCandidate()
		lrp2, _ := lines[i+1].bestCandidate()

		var path Path
		if i == 0 {
			path = Path{Length: g.EdgeLength(best.edge), Edges: []EdgeID{best.edge}}
		}

		routes = append(routes, candidateRoute{
			path:       path,
			candidates: candidatePair{lrp1: lrp1, lrp2: lrp2},
		})
	}

	return routes, true
}

// resolveCandidatePairsPath tries the candidate pairs from the highest to
// the lowest rating and returns the first route that satisfies the distance
// bounds of the pair.
func resolveCandidatePairsPath(config DecoderConfig, g Graph, pairs []candidatePair, lowestFrc Frc) (candidateRoute, bool) {
	for _, pair := range pairs {
		lrp1, lrp2 := pair.lrp1, pair.lrp2

		if lrp1.edge == lrp2.edge {
			var path Path
			if lrp2.last {
				path = Path{Length: g.EdgeLength(lrp1.edge), Edges: []EdgeID{lrp1.edge}}
			}
			return candidateRoute{path: path, candidates: pair}, true
		}

		origin := g.EdgeStartVertex(lrp1.edge)
		destination := g.EdgeStartVertex(lrp2.edge)
		if lrp2.last {
			destination = g.EdgeEndVertex(lrp2.edge)
		}

		pathConfig := ShortestPathConfig{
			LowestFrc: lowestFrc,
			MaxLength: maxRouteLength(config, g, lrp1, lrp2),
		}

		path, ok := ShortestPath(pathConfig, g, origin, destination)
		if !ok {
			continue
		}

		if minLength := lrp1.lrp.Dnp() - config.NextPointVariance; path.Length >= minLength {
			return candidateRoute{path: path, candidates: pair}, true
		}
	}

	return candidateRoute{}, false
}

// maxRouteLength bounds the route search between two candidates. The search
// can only stop at real vertices, so the bound grows by the whole edge
// length wherever an LRP was projected onto an edge interior.
func maxRouteLength(config DecoderConfig, g Graph, lrp1, lrp2 candidateLine) Length {
	maxDistance := lrp1.lrp.Dnp() + config.NextPointVariance

	if lrp1.isProjected() {
		maxDistance += g.EdgeLength(lrp1.edge)
	}
	if lrp2.isProjected() {
		maxDistance += g.EdgeLength(lrp2.edge)
	}

	return maxDistance
}

// resolveTopCandidatePairs enumerates the best candidate pairs of two
// consecutive LRPs, ordered by descending product of their ratings. The
// enumeration is bounded by the configured number of retries; pairs tied on
// rating are all kept until the bound overflows.
func resolveTopCandidatePairs(config DecoderConfig, lrp1, lrp2 candidateLines) []candidatePair {
	maxSize := len(lrp1.lines) * len(lrp2.lines)
	size := maxSize
	if k := config.MaxNumberRetries + 1; k < size {
		size = k
	}

	ratings := &ratingHeap{}
	heap.Init(ratings)
	pairsByRating := make(map[float64][]candidatePair, size+1)

	for _, line1 := range lrp1.lines {
		for _, line2 := range lrp2.lines {
			pair := candidatePair{lrp1: line1, lrp2: line2}
			rating := pair.rating()
			heap.Push(ratings, rating)

			if ratings.Len() <= size {
				pairsByRating[rating] = append(pairsByRating[rating], pair)
				continue
			}

			worst := heap.Pop(ratings).(float64)
			if rating <= worst {
				continue
			}

			pairsByRating[rating] = append(pairsByRating[rating], pair)

			if pairs := pairsByRating[worst]; len(pairs) > 1 {
				pairsByRating[worst] = pairs[:len(pairs)-1]
			} else {
				delete(pairsByRating, worst)
			}
		}
	}

	candidates := make([]candidatePair, 0, size)
	popped := make([]float64, 0, ratings.Len())
	for ratings.Len() > 0 {
		popped = append(popped, heap.Pop(ratings).(float64))
	}
	for _, rating := range popped {
		candidates = append(candidates, pairsByRating[rating]...)
		delete(pairsByRating, rating)
	}

	// ascending pop order; the callers want the best pair first
	reversePairs(candidates)
	return candidates
}

// ratingHeap is a min-heap of pair ratings.
type ratingHeap []float64

func (h ratingHeap) Len() int           { return len(h) }
func (h ratingHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h ratingHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *ratingHeap) Push(x any)        { *h = append(*h, x.(float64)) }
func (h *ratingHeap) Pop() any {
	old := *h
	n := len(old)
	rating := old[n-1]
	*h = old[:n-1]
	return rating
}

func reversePairs(pairs []candidatePair) {
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
}
