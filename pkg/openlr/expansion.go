package openlr

// expandLineLocation returns the line expanded by backward and forward paths
// so that the start and the end of the location sit on valid nodes.
//
// The data format rules recommend placing location reference points on valid
// nodes: nodes where a shortest-path calculation needs to decide between
// several ways. Since the start and end of a location become location
// reference points, they are adjusted to valid nodes where necessary, and
// the real start and end of the location are then referenced through the
// offsets. The expansion never exceeds the maximum distance allowed between
// two location reference points.
func expandLineLocation(config EncoderConfig, g Graph, line LineLocation) LineLocation {
	prefix := edgeBackwardExpansion(config, g, line)
	postfix := edgeForwardExpansion(config, g, line)

	path := make([]EdgeID, 0, len(prefix.Edges)+len(line.Path)+len(postfix.Edges))
	path = append(path, prefix.Edges...)
	path = append(path, line.Path...)
	path = append(path, postfix.Edges...)

	return LineLocation{
		Path:      path,
		PosOffset: line.PosOffset + prefix.Length,
		NegOffset: line.NegOffset + postfix.Length,
	}
}

// edgeForwardExpansion returns the expansion path in forward direction,
// from the line end.
func edgeForwardExpansion(config EncoderConfig, g Graph, line LineLocation) Path {
	var expansion Path
	edge := line.Path[len(line.Path)-1]
	offset := line.NegOffset

	for {
		vertex := g.EdgeEndVertex(edge)
		if IsNodeValid(g, vertex) {
			break
		}

		candidates := adjacencyEdges(g.ExitingEdges(vertex))
		next, length, ok := resolveEdgeExpansion(config, g, line, offset, expansion, edge, candidates)
		if !ok {
			break
		}

		if last := len(expansion.Edges); last > 0 && g.IsTurnRestricted(expansion.Edges[last-1], next) {
			return Path{}
		}

		expansion.Edges = append(expansion.Edges, next)
		expansion.Length += length
		offset += length
		edge = next
	}

	if len(expansion.Edges) > 0 &&
		g.IsTurnRestricted(line.Path[len(line.Path)-1], expansion.Edges[0]) {
		return Path{}
	}

	return expansion
}

// edgeBackwardExpansion returns the expansion path in backward direction,
// from the line start.
func edgeBackwardExpansion(config EncoderConfig, g Graph, line LineLocation) Path {
	var expansion Path
	edge := line.Path[0]
	offset := line.PosOffset

	for {
		vertex := g.EdgeStartVertex(edge)
		if IsNodeValid(g, vertex) {
			break
		}

		candidates := adjacencyEdges(g.EnteringEdges(vertex))
		next, length, ok := resolveEdgeExpansion(config, g, line, offset, expansion, edge, candidates)
		if !ok {
			break
		}

		if last := len(expansion.Edges); last > 0 && g.IsTurnRestricted(next, expansion.Edges[last-1]) {
			return Path{}
		}

		expansion.Edges = append(expansion.Edges, next)
		expansion.Length += length
		offset += length
		edge = next
	}

	reverseEdges(expansion.Edges)

	if len(expansion.Edges) > 0 &&
		g.IsTurnRestricted(expansion.Edges[len(expansion.Edges)-1], line.Path[0]) {
		return Path{}
	}

	return expansion
}

// resolveEdgeExpansion selects the next expansion edge for the given line.
// Including the edge must not exceed the maximum LRP distance and must not
// revisit an edge already part of the location or of the expansion.
func resolveEdgeExpansion(config EncoderConfig, g Graph, line LineLocation, offset Length, expansion Path, edge EdgeID, candidates []EdgeID) (EdgeID, Length, bool) {
	candidate, ok := selectEdgeExpansionCandidate(g, edge, candidates)
	if !ok {
		return 0, 0, false
	}

	length := g.EdgeLength(candidate)
	if offset+length > config.MaxLrpDistance ||
		containsEdge(line.Path, candidate) ||
		containsEdge(expansion.Edges, candidate) {
		return 0, 0, false
	}

	return candidate, length, true
}

// selectEdgeExpansionCandidate selects a single expansion edge from a list
// of candidates. With one candidate the step is forced. With two candidates
// the non-opposite one continues the road; if both run opposite, the twin of
// the current edge is recognized by its near-identical length and the other
// candidate continues. More alternatives mean the node decides between real
// ways and no expansion happens.
func selectEdgeExpansionCandidate(g Graph, edge EdgeID, candidates []EdgeID) (EdgeID, bool) {
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}

	switch len(candidates) {
	case 0:
		return 0, false
	case 1:
		return candidates[0], true
	case 2:
		// handled below
	default:
		return 0, false
	}

	e1, e2 := candidates[0], candidates[1]
	e1Opposite := IsOppositeDirection(g, edge, e1)
	e2Opposite := IsOppositeDirection(g, edge, e2)

	switch {
	case e1Opposite && !e2Opposite:
		return e2, true
	case e2Opposite && !e1Opposite:
		return e1, true
	case e1Opposite && e2Opposite:
		length := g.EdgeLength(edge)
		similar := func(e EdgeID) bool {
			delta := (length - g.EdgeLength(e)).Meters()
			if delta < 0 {
				delta = -delta
			}
			return delta <= 1.0
		}

		switch e1Similar, e2Similar := similar(e1), similar(e2); {
		case !e1Similar && e2Similar:
			return e1, true
		case e1Similar && !e2Similar:
			return e2, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}

func adjacencyEdges(adjacencies []Adjacency) []EdgeID {
	edges := make([]EdgeID, len(adjacencies))
	for i, adjacency := range adjacencies {
		edges[i] = adjacency.Edge
	}
	return edges
}

func containsEdge(edges []EdgeID, edge EdgeID) bool {
	for _, e := range edges {
		if e == edge {
			return true
		}
	}
	return false
}
