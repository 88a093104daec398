package openlr

// Location is an object in a digital map: the result of decoding and, for
// line locations, the input of encoding. Map-bound locations carry edge
// identifiers of the host graph; map-free locations are plain geometric
// objects. The concrete types are LineLocation, GeoCoordinate, Circle,
// Rectangle, Grid and Polygon.
type Location interface {
	isLocation()
}

func (LineLocation) isLocation()  {}
func (GeoCoordinate) isLocation() {}
func (Circle) isLocation()        {}
func (Rectangle) isLocation()     {}
func (Grid) isLocation()          {}
func (Polygon) isLocation()       {}

// LineLocation is a map-bound location representing a line location
// reference: a connected list of edges trimmed by two offsets.
type LineLocation struct {
	// Path is the complete list of edges that form the line.
	Path []EdgeID
	// PosOffset is the distance from the start of the first edge to the
	// beginning of the location.
	PosOffset Length
	// NegOffset is the distance from the end of the location to the end of
	// the last edge.
	NegOffset Length
}

// PathLength returns the total length of the location edges.
func (l LineLocation) PathLength(g Graph) Length {
	var length Length
	for _, edge := range l.Path {
		length += g.EdgeLength(edge)
	}
	return length
}

// Trim returns a valid line location with the path trimmed by its offsets.
//
// The offsets must fulfill the following constraints:
//   - The sum of the positive and negative offset cannot reach the total
//     length of the location lines.
//   - The positive offset shall be less than the length of the first line;
//     otherwise the first line is removed from the location and the offset
//     reduced by its length, repeatedly until the constraint holds.
//   - The negative offset and the last line, symmetrically.
func (l LineLocation) Trim(g Graph) (LineLocation, error) {
	pathLength := l.PathLength(g)

	path := append([]EdgeID(nil), l.Path...)
	posOffset := l.PosOffset
	negOffset := l.NegOffset

	if posOffset+negOffset >= pathLength {
		return LineLocation{}, &InvalidOffsetsError{Pos: posOffset, Neg: negOffset}
	}

	forward := func(i int) EdgeID { return path[i] }
	backward := func(i int) EdgeID { return path[len(path)-1-i] }

	start, cut := pathCut(g, len(path), forward, posOffset)
	posOffset -= cut

	end, cut := pathCut(g, len(path), backward, negOffset)
	end = len(path) - end
	negOffset -= cut

	if end < len(path) {
		path = path[:end]
	}
	if start < len(path) {
		path = path[start:]
	}

	line := LineLocation{
		Path:      path,
		PosOffset: posOffset,
		NegOffset: negOffset,
	}

	if err := ensureLineIsValid(g, line, MaxBinaryLRPDistance); err != nil {
		return LineLocation{}, err
	}

	return line, nil
}

// ensureLineIsValid returns an error unless the line location is a
// non-empty, connected, traversable path whose offsets stay within the
// location and the binary format ceiling.
func ensureLineIsValid(g Graph, line LineLocation, maxLrpDistance Length) error {
	if len(line.Path) == 0 {
		return ErrEmptyLocation
	}
	if !IsPathConnected(g, line.Path) {
		return ErrNotConnected
	}

	if line.PosOffset > maxLrpDistance ||
		line.NegOffset > maxLrpDistance ||
		line.PosOffset+line.NegOffset >= line.PathLength(g) {
		return &InvalidOffsetsError{Pos: line.PosOffset, Neg: line.NegOffset}
	}

	return nil
}

// pathCut walks the edges accumulating their lengths and returns the index
// of the last edge whose preceding cumulative length still fits inside the
// offset, together with that cumulative length.
func pathCut(g Graph, count int, edge func(int) EdgeID, offset Length) (int, Length) {
	index, cut := 0, Length(0)
	var accumulated Length

	for i := 0; i < count; i++ {
		if accumulated > offset {
			break
		}
		index, cut = i, accumulated
		accumulated += g.EdgeLength(edge(i))
	}

	return index, cut
}
