package openlr

// LocationType identifies the kind of a location reference.
type LocationType uint8

const (
	// LocationTypeLine is a path in the road network.
	LocationTypeLine LocationType = iota
	// LocationTypeGeoCoordinate is a single point anywhere on earth.
	LocationTypeGeoCoordinate
	// LocationTypePointAlongLine is a point on a referenced line.
	LocationTypePointAlongLine
	// LocationTypePoi is a point of interest with an access point on a
	// referenced line.
	LocationTypePoi
	// LocationTypeCircle is an area given by a center and a radius.
	LocationTypeCircle
	// LocationTypeRectangle is an area given by two corner points.
	LocationTypeRectangle
	// LocationTypeGrid is a rectangle multiplied into columns and rows.
	LocationTypeGrid
	// LocationTypePolygon is an area given by a sequence of corners.
	LocationTypePolygon
	// LocationTypeClosedLine is an area bounded by a circuit of road
	// segments.
	LocationTypeClosedLine
)

func (t LocationType) String() string {
	switch t {
	case LocationTypeLine:
		return "Line"
	case LocationTypeGeoCoordinate:
		return "GeoCoordinate"
	case LocationTypePointAlongLine:
		return "PointAlongLine"
	case LocationTypePoi:
		return "Poi"
	case LocationTypeCircle:
		return "Circle"
	case LocationTypeRectangle:
		return "Rectangle"
	case LocationTypeGrid:
		return "Grid"
	case LocationTypePolygon:
		return "Polygon"
	case LocationTypeClosedLine:
		return "ClosedLine"
	default:
		return "Unknown"
	}
}

// LocationReference is the map-independent description of a location,
// produced by encoding and consumed by decoding. The concrete types are
// Line, GeoCoordinate, PointAlongLine, Poi, Circle, Rectangle, Grid,
// Polygon and ClosedLine.
type LocationReference interface {
	// Type returns the location type of this reference.
	Type() LocationType
}

// Line references a path within a map: a sequence of at least two location
// reference points, where the shortest paths between consecutive points
// cover the location, plus optional offsets trimming the covered path down
// to the location itself.
type Line struct {
	Points  []Point
	Offsets Offsets
}

// Type implements LocationReference.
func (Line) Type() LocationType { return LocationTypeLine }

// Equal reports whether two line references are the same within the wire
// resolution.
func (l Line) Equal(other Line) bool {
	if len(l.Points) != len(other.Points) || !l.Offsets.Equal(other.Offsets) {
		return false
	}
	for i := range l.Points {
		if !l.Points[i].Equal(other.Points[i]) {
			return false
		}
	}
	return true
}

// GeoCoordinate references a point location that is not bound to the road
// network.
type GeoCoordinate struct {
	Coordinate
}

// Type implements LocationReference.
func (GeoCoordinate) Type() LocationType { return LocationTypeGeoCoordinate }

// PointAlongLine references a point location defined by a line and an offset
// value. The line is referenced by two location reference points and the
// position on that line by the positive offset. The side of the road and the
// orientation with respect to the line direction may be added.
type PointAlongLine struct {
	Points      [2]Point
	Offset      Offset
	Orientation Orientation
	Side        SideOfRoad
}

// Type implements LocationReference.
func (PointAlongLine) Type() LocationType { return LocationTypePointAlongLine }

// Equal reports whether two point-along-line references are the same within
// the wire resolution.
func (p PointAlongLine) Equal(other PointAlongLine) bool {
	return p.Points[0].Equal(other.Points[0]) &&
		p.Points[1].Equal(other.Points[1]) &&
		p.Offset.Equal(other.Offset) &&
		p.Orientation == other.Orientation &&
		p.Side == other.Side
}

// Poi references a point of interest with an access point along a line. The
// access point is described by the embedded point-along-line and the point
// of interest itself by the coordinate.
type Poi struct {
	Point      PointAlongLine
	Coordinate Coordinate
}

// Type implements LocationReference.
func (Poi) Type() LocationType { return LocationTypePoi }

// Circle references the area within a radius around a center coordinate.
type Circle struct {
	Center Coordinate
	Radius Length
}

// Type implements LocationReference.
func (Circle) Type() LocationType { return LocationTypeCircle }

// Rectangle references the area between a lower left and an upper right
// corner.
type Rectangle struct {
	LowerLeft  Coordinate
	UpperRight Coordinate
}

// Type implements LocationReference.
func (Rectangle) Type() LocationType { return LocationTypeRectangle }

// GridSize is the number of columns and rows a grid multiplies its base
// rectangle into. Both must be at least two.
type GridSize struct {
	Columns uint16
	Rows    uint16
}

// Grid references an area given by a base rectangle, which forms the lower
// left cell, multiplied to the North and to the East.
type Grid struct {
	Rect Rectangle
	Size GridSize
}

// Type implements LocationReference.
func (Grid) Type() LocationType { return LocationTypeGrid }

// Polygon references a non-intersecting area defined by at least three
// corner coordinates.
type Polygon struct {
	Corners []Coordinate
}

// Type implements LocationReference.
func (Polygon) Type() LocationType { return LocationTypePolygon }

// ClosedLine references the area bounded by a circuit in the road network.
// The closing line is described only by its attributes.
type ClosedLine struct {
	Points   []Point
	LastLine LineAttributes
}

// Type implements LocationReference.
func (ClosedLine) Type() LocationType { return LocationTypeClosedLine }
