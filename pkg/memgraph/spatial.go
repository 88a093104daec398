package memgraph

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/beetlebugorg/openlr/pkg/openlr"
)

// pointEpsilon keeps R-tree rectangles non-degenerate for point entries,
// roughly 11 meters at the equator.
const pointEpsilon = 0.0001

// spatialNode wraps a vertex for R-tree storage.
type spatialNode struct {
	vertex     openlr.VertexID
	coordinate openlr.Coordinate
}

// Bounds implements the rtreego.Spatial interface.
func (n *spatialNode) Bounds() rtreego.Rect {
	point := rtreego.Point{n.coordinate.Lon, n.coordinate.Lat}
	rect, _ := rtreego.NewRect(point, []float64{pointEpsilon, pointEpsilon})
	return rect
}

// spatialEdge wraps a directed edge and its geometry for R-tree storage.
type spatialEdge struct {
	edge     openlr.EdgeID
	geometry []openlr.Coordinate
}

// Bounds implements the rtreego.Spatial interface.
func (e *spatialEdge) Bounds() rtreego.Rect {
	minLon, minLat := math.Inf(1), math.Inf(1)
	maxLon, maxLat := math.Inf(-1), math.Inf(-1)
	for _, coordinate := range e.geometry {
		minLon = math.Min(minLon, coordinate.Lon)
		minLat = math.Min(minLat, coordinate.Lat)
		maxLon = math.Max(maxLon, coordinate.Lon)
		maxLat = math.Max(maxLat, coordinate.Lat)
	}

	lengths := []float64{
		math.Max(maxLon-minLon, pointEpsilon),
		math.Max(maxLat-minLat, pointEpsilon),
	}

	rect, _ := rtreego.NewRect(rtreego.Point{minLon, minLat}, lengths)
	return rect
}

// queryRect is the bounding box around a coordinate padded by a meter
// radius.
func queryRect(coordinate openlr.Coordinate, meters float64) rtreego.Rect {
	dLon, dLat := degreePadding(coordinate.Lat, meters)
	point := rtreego.Point{coordinate.Lon - dLon, coordinate.Lat - dLat}
	rect, _ := rtreego.NewRect(point, []float64{2 * dLon, 2 * dLat})
	return rect
}

// NearestVertices implements openlr.Graph. The result is sorted ascending by
// distance, with vertex identifier as tie-break.
func (g *Graph) NearestVertices(coordinate openlr.Coordinate, maxDistance openlr.Length) []openlr.VertexDistance {
	var result []openlr.VertexDistance

	for _, spatial := range g.nodeTree.SearchIntersect(queryRect(coordinate, maxDistance.Meters())) {
		node := spatial.(*spatialNode)
		distance := openlr.Length(haversineMeters(coordinate, node.coordinate))
		if distance <= maxDistance {
			result = append(result, openlr.VertexDistance{Vertex: node.vertex, Distance: distance})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Distance != result[j].Distance {
			return result[i].Distance < result[j].Distance
		}
		return result[i].Vertex < result[j].Vertex
	})

	return result
}

// NearestEdges implements openlr.Graph. The result is sorted ascending by
// distance, with edge identifier as tie-break.
func (g *Graph) NearestEdges(coordinate openlr.Coordinate, maxDistance openlr.Length) []openlr.EdgeDistance {
	var result []openlr.EdgeDistance

	for _, spatial := range g.edgeTree.SearchIntersect(queryRect(coordinate, maxDistance.Meters())) {
		edge := spatial.(*spatialEdge)
		distance := openlr.Length(distanceToGeometry(coordinate, edge.geometry))
		if distance <= maxDistance {
			result = append(result, openlr.EdgeDistance{Edge: edge.edge, Distance: distance})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Distance != result[j].Distance {
			return result[i].Distance < result[j].Distance
		}
		return result[i].Edge < result[j].Edge
	})

	return result
}

// DistanceAlongEdge implements openlr.Graph: the arc length from the edge
// start vertex to the projection of the coordinate onto the edge geometry.
func (g *Graph) DistanceAlongEdge(edge openlr.EdgeID, coordinate openlr.Coordinate) openlr.Length {
	geometry := g.EdgeGeometry(edge)
	if len(geometry) < 2 {
		return 0
	}

	closest := math.Inf(1)
	along := 0.0
	accumulated := 0.0

	for i := 0; i+1 < len(geometry); i++ {
		a, b := geometry[i], geometry[i+1]
		projected := closestOnSegment(coordinate, a, b)

		if distance := haversineMeters(coordinate, projected); distance < closest {
			// closest segment of the whole geometry so far
			closest = distance
			along = accumulated + haversineMeters(a, projected)
		}

		accumulated += haversineMeters(a, b)
	}

	return openlr.Length(along).Clamp(0, g.EdgeLength(edge))
}

// CoordinateAlongEdge implements openlr.Graph: the coordinate at the given
// arc distance from the edge start vertex, clamped within the edge.
func (g *Graph) CoordinateAlongEdge(edge openlr.EdgeID, distance openlr.Length) openlr.Coordinate {
	geometry := g.EdgeGeometry(edge)
	if len(geometry) == 0 {
		return openlr.Coordinate{}
	}

	length := g.EdgeLength(edge)
	ratio := 0.0
	if !length.IsZero() {
		ratio = math.Max(0, math.Min(1, distance.Meters()/length.Meters()))
	}

	total := geometryLength(geometry)
	target := ratio * total

	accumulated := 0.0
	for i := 0; i+1 < len(geometry); i++ {
		segment := haversineMeters(geometry[i], geometry[i+1])
		if accumulated+segment >= target && segment > 0 {
			return interpolate(geometry[i], geometry[i+1], (target-accumulated)/segment)
		}
		accumulated += segment
	}

	return geometry[len(geometry)-1]
}

// EdgeBearing implements openlr.Graph: the bearing of the chord between the
// point at distanceFromStart and the point a segment further, both clamped
// within the edge.
func (g *Graph) EdgeBearing(edge openlr.EdgeID, distanceFromStart, segmentLength openlr.Length) openlr.Bearing {
	length := g.EdgeLength(edge)
	start := distanceFromStart.Clamp(0, length)
	end := (start + segmentLength).Clamp(0, length)

	c1 := g.CoordinateAlongEdge(edge, start)
	c2 := g.CoordinateAlongEdge(edge, end)

	degrees := math.Round(initialBearing(c1, c2))
	return openlr.BearingFromDegrees(uint16(math.Mod(degrees+360, 360)))
}

// distanceToGeometry is the haversine distance from a point to the closest
// point on a polyline.
func distanceToGeometry(point openlr.Coordinate, geometry []openlr.Coordinate) float64 {
	closest := math.Inf(1)
	for i := 0; i+1 < len(geometry); i++ {
		projected := closestOnSegment(point, geometry[i], geometry[i+1])
		closest = math.Min(closest, haversineMeters(point, projected))
	}
	if len(geometry) == 1 {
		closest = haversineMeters(point, geometry[0])
	}
	return closest
}
