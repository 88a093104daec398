package openlr

import (
	"sort"
)

// candidateNodes lists the vertices close to one location reference point,
// sorted from closest to farthest.
type candidateNodes struct {
	lrp   Point
	last  bool
	nodes []VertexDistance
}

// candidateLine is a rated hypothesis binding a location reference point to
// an edge of the decoder map. projection is nil when the point attaches to a
// network vertex of the edge, and the arc distance from the edge start when
// the point was projected onto the edge interior.
type candidateLine struct {
	lrp        Point
	last       bool
	edge       EdgeID
	rating     float64
	projection *Length
}

func (c candidateLine) isProjected() bool {
	return c.projection != nil
}

// candidateLines is the rated candidate set of one location reference point,
// sorted from the highest to the lowest rating.
type candidateLines struct {
	lrp   Point
	lines []candidateLine
}

func (c candidateLines) bestCandidate() (candidateLine, bool) {
	if len(c.lines) == 0 {
		return candidateLine{}, false
	}
	return c.lines[0], true
}

// candidatePair combines one candidate line per LRP of a consecutive pair.
type candidatePair struct {
	lrp1 candidateLine
	lrp2 candidateLine
}

func (p candidatePair) rating() float64 {
	return p.lrp1.rating * p.lrp2.rating
}

// findCandidateNodes lists, for each location reference point, the vertices
// within the configured distance of its coordinate. An empty list is
// allowed; candidate search then falls through to edge projection.
func findCandidateNodes(config DecoderConfig, g Graph, points []Point) []candidateNodes {
	nodes := make([]candidateNodes, len(points))
	for i, lrp := range points {
		nodes[i] = candidateNodes{
			lrp:   lrp,
			last:  i == len(points)-1,
			nodes: g.NearestVertices(lrp.Coordinate, config.MaxNodeDistance),
		}
	}
	return nodes
}

// findCandidateLines forms the rated candidate edge set of every location
// reference point. Candidate nodes contribute their adjacent edges: exiting
// edges for a point that references its outgoing road, entering edges for
// the terminal point. When a point has no candidate node at all, its
// coordinate is projected onto the edges nearby instead.
//
// Candidates rated below the quality floor are discarded. Fails with a
// NoCandidatesError when a point ends up with no candidate.
func findCandidateLines(config DecoderConfig, g Graph, nodes []candidateNodes) ([]candidateLines, error) {
	lines := make([]candidateLines, len(nodes))

	for i, candidates := range nodes {
		rated := make(map[EdgeID]candidateLine)

		for _, node := range candidates.nodes {
			adjacent := g.ExitingEdges(node.Vertex)
			if candidates.last {
				adjacent = g.EnteringEdges(node.Vertex)
			}

			for _, adjacency := range adjacent {
				line := rateCandidate(config, g, candidates.lrp, candidates.last,
					adjacency.Edge, node.Distance, nil)
				keepBestCandidate(rated, line)
			}
		}

		if len(rated) == 0 {
			// No candidate node was determined; project the coordinate
			// onto close-by edges instead.
			for _, near := range g.NearestEdges(candidates.lrp.Coordinate, config.MaxNodeDistance) {
				projection := g.DistanceAlongEdge(near.Edge, candidates.lrp.Coordinate)
				line := rateCandidate(config, g, candidates.lrp, candidates.last,
					near.Edge, near.Distance, &projection)
				keepBestCandidate(rated, line)
			}
		}

		sorted := make([]candidateLine, 0, len(rated))
		for _, line := range rated {
			if line.rating >= config.MinCandidateScore {
				sorted = append(sorted, line)
			}
		}
		sort.Slice(sorted, func(a, b int) bool {
			if sorted[a].rating != sorted[b].rating {
				return sorted[a].rating > sorted[b].rating
			}
			return sorted[a].edge < sorted[b].edge
		})

		if len(sorted) == 0 {
			return nil, &NoCandidatesError{Lrp: candidates.lrp}
		}

		lines[i] = candidateLines{lrp: candidates.lrp, lines: sorted}
	}

	return lines, nil
}

// rateCandidate scores how well an edge matches a location reference point:
// functional road class similarity, form of way similarity, agreement of the
// point bearing with the edge bearing at the attachment, and proximity of
// the point to the edge.
func rateCandidate(config DecoderConfig, g Graph, lrp Point, last bool, edge EdgeID, distance Length, projection *Length) candidateLine {
	frcScore := frcRatingScore(lrp.Line.Frc.Rating(g.EdgeFrc(edge)))
	fowScore := fowRatingScore(lrp.Line.Fow.Rating(g.EdgeFow(edge)))

	var bearing Bearing
	if last {
		// The terminal point describes its incoming road; measure
		// backwards from the attachment.
		start := g.EdgeLength(edge)
		if projection != nil {
			start = *projection
		}
		bearing = g.EdgeBearing(edge, start, -config.BearingDistance)
	} else {
		start := Length(0)
		if projection != nil {
			start = *projection
		}
		bearing = g.EdgeBearing(edge, start, config.BearingDistance)
	}
	bearingScore := bearingRatingScore(lrp.Line.Bearing.Rating(bearing))

	proximity := 1.0 - distance.Clamp(0, config.MaxNodeDistance).Meters()/config.MaxNodeDistance.Meters()
	proximityScore := 100.0 * proximity

	weights := config.Weights
	rating := weights.Frc*frcScore +
		weights.Fow*fowScore +
		weights.Bearing*bearingScore +
		weights.Distance*proximityScore

	return candidateLine{
		lrp:        lrp,
		last:       last,
		edge:       edge,
		rating:     rating,
		projection: projection,
	}
}

// keepBestCandidate records a candidate line, keeping the better rated one
// when the same edge was already rated through another node.
func keepBestCandidate(rated map[EdgeID]candidateLine, line candidateLine) {
	if existing, ok := rated[line.edge]; ok && existing.rating >= line.rating {
		return
	}
	rated[line.edge] = line
}
