package openlr

// locRefPoint is a location reference point under construction, together
// with the location edges it covers towards the next point.
type locRefPoint struct {
	point Point
	edges []EdgeID
}

// lrpFromEdges builds the LRP anchored at the start node of the first
// covered edge. The line attributes describe the outgoing road there and
// the path attributes summarize the covered edges: the lowest functional
// road class among them and their total length.
func lrpFromEdges(config EncoderConfig, g Graph, edges []EdgeID) locRefPoint {
	first := edges[0]

	lfrcnp := g.EdgeFrc(first)
	var dnp Length
	for _, edge := range edges {
		if frc := g.EdgeFrc(edge); frc > lfrcnp {
			lfrcnp = frc
		}
		dnp += g.EdgeLength(edge)
	}

	return locRefPoint{
		point: Point{
			Coordinate: g.VertexCoordinate(g.EdgeStartVertex(first)),
			Line: LineAttributes{
				Frc:     g.EdgeFrc(first),
				Fow:     g.EdgeFow(first),
				Bearing: g.EdgeBearing(first, 0, config.BearingDistance),
			},
			Path: &PathAttributes{Lfrcnp: lfrcnp, Dnp: dnp.Round()},
		},
		edges: edges,
	}
}

// lrpFromLastEdge builds the terminal LRP anchored at the end node of the
// last location edge. Its bearing points backwards along that edge and it
// carries no path attributes.
func lrpFromLastEdge(config EncoderConfig, g Graph, edge EdgeID) locRefPoint {
	return locRefPoint{
		point: Point{
			Coordinate: g.VertexCoordinate(g.EdgeEndVertex(edge)),
			Line: LineAttributes{
				Frc:     g.EdgeFrc(edge),
				Fow:     g.EdgeFow(edge),
				Bearing: g.EdgeBearing(edge, g.EdgeLength(edge), -config.BearingDistance),
			},
		},
	}
}

// locRefPoints is the complete LRP sequence of an encoded line, plus the
// meter offsets of the location within the covered path.
type locRefPoints struct {
	lrps      []locRefPoint
	posOffset Length
	negOffset Length
}

// toLine materializes the line location reference. The offsets become
// fractions of the first and last LRP-to-LRP distances.
func (l locRefPoints) toLine() Line {
	points := make([]Point, len(l.lrps))
	for i, lrp := range l.lrps {
		points[i] = lrp.point
	}

	firstDnp := points[0].Dnp()
	lastDnp := points[len(points)-2].Dnp()

	return Line{
		Points: points,
		Offsets: Offsets{
			Pos: OffsetRelative(l.posOffset, firstDnp),
			Neg: OffsetRelative(l.negOffset, lastDnp),
		},
	}
}
