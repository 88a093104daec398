package memgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/openlr/pkg/openlr"
)

// 1 degree of longitude on the equator is 111194.93m with the mean earth
// radius used by the haversine helpers.
const degreesPerMeter = 1.0 / 111194.93

func equatorGraph(t *testing.T) *Graph {
	t.Helper()

	graph, err := New(
		[]Node{
			{ID: 1, Lon: 0, Lat: 0},
			{ID: 2, Lon: 136 * degreesPerMeter, Lat: 0},
			{ID: 3, Lon: 187 * degreesPerMeter, Lat: 0},
			{ID: 4, Lon: 379 * degreesPerMeter, Lat: 0},
		},
		[]Line{
			{ID: 1, StartNode: 1, EndNode: 2, Length: 136, Frc: openlr.Frc3,
				Fow: openlr.FowSingleCarriageway, Direction: DirectionForward},
			{ID: 2, StartNode: 2, EndNode: 3, Length: 51, Frc: openlr.Frc4,
				Fow: openlr.FowSingleCarriageway, Direction: DirectionBoth},
			{ID: 3, StartNode: 4, EndNode: 3, Length: 192, Frc: openlr.Frc3,
				Fow: openlr.FowSingleCarriageway, Direction: DirectionBackward},
		},
	)
	require.NoError(t, err)
	return graph
}

func TestTopology(t *testing.T) {
	g := equatorGraph(t)

	assert.Equal(t, openlr.VertexID(1), g.EdgeStartVertex(1))
	assert.Equal(t, openlr.VertexID(2), g.EdgeEndVertex(1))

	// a backward line swaps its endpoints
	assert.Equal(t, openlr.VertexID(3), g.EdgeStartVertex(3))
	assert.Equal(t, openlr.VertexID(4), g.EdgeEndVertex(3))

	// a bidirectional line mirrors into a negative edge
	assert.Equal(t, openlr.VertexID(3), g.EdgeStartVertex(-2))
	assert.Equal(t, openlr.VertexID(2), g.EdgeEndVertex(-2))

	assert.Equal(t, openlr.Length(51), g.EdgeLength(-2))
	assert.Equal(t, openlr.Frc4, g.EdgeFrc(-2))

	// adjacency sorted by edge identifier
	exiting := g.ExitingEdges(2)
	require.Len(t, exiting, 1)
	assert.Equal(t, openlr.EdgeID(2), exiting[0].Edge)

	exitingAt3 := g.ExitingEdges(3)
	require.Len(t, exitingAt3, 2)
	assert.Equal(t, openlr.EdgeID(-2), exitingAt3[0].Edge)
	assert.Equal(t, openlr.EdgeID(3), exitingAt3[1].Edge)

	assert.Equal(t, 1, g.VertexDegree(1))
	assert.Equal(t, 3, g.VertexDegree(2))
	assert.Equal(t, 3, g.VertexDegree(3))
	assert.Equal(t, 1, g.VertexDegree(4))
}

func TestTurnRestrictions(t *testing.T) {
	g := equatorGraph(t)

	assert.False(t, g.IsTurnRestricted(1, 2))
	g.RestrictTurn(1, 2)
	assert.True(t, g.IsTurnRestricted(1, 2))
	assert.False(t, g.IsTurnRestricted(2, 1))
}

func TestNearestVertices(t *testing.T) {
	g := equatorGraph(t)

	// between nodes 2 and 3, slightly closer to node 3
	query := openlr.Coordinate{Lon: 165 * degreesPerMeter, Lat: 0}

	nearest := g.NearestVertices(query, 100)
	require.Len(t, nearest, 2)
	assert.Equal(t, openlr.VertexID(3), nearest[0].Vertex)
	assert.Equal(t, openlr.VertexID(2), nearest[1].Vertex)
	assert.Less(t, nearest[0].Distance, nearest[1].Distance)
	assert.InDelta(t, 22, nearest[0].Distance.Meters(), 1)
	assert.InDelta(t, 29, nearest[1].Distance.Meters(), 1)

	assert.Empty(t, g.NearestVertices(query, 10))
}

func TestNearestEdges(t *testing.T) {
	g := equatorGraph(t)

	// 10m north of the first segment
	query := openlr.Coordinate{Lon: 50 * degreesPerMeter, Lat: 10 * degreesPerMeter}

	nearest := g.NearestEdges(query, 50)
	require.NotEmpty(t, nearest)
	assert.Equal(t, openlr.EdgeID(1), nearest[0].Edge)
	assert.InDelta(t, 10, nearest[0].Distance.Meters(), 1)
}

func TestDistanceAlongEdge(t *testing.T) {
	g := equatorGraph(t)

	// a point 50m along the first edge, slightly off the road
	query := openlr.Coordinate{Lon: 50 * degreesPerMeter, Lat: 5 * degreesPerMeter}

	along := g.DistanceAlongEdge(1, query)
	assert.InDelta(t, 50, along.Meters(), 1)

	// projections clamp into the edge
	before := openlr.Coordinate{Lon: -50 * degreesPerMeter, Lat: 0}
	assert.InDelta(t, 0, g.DistanceAlongEdge(1, before).Meters(), 1)
}

func TestCoordinateAlongEdge(t *testing.T) {
	g := equatorGraph(t)

	start := g.CoordinateAlongEdge(1, 0)
	assert.InDelta(t, 0, start.Lon, 1e-9)

	end := g.CoordinateAlongEdge(1, 136)
	assert.InDelta(t, 136*degreesPerMeter, end.Lon, 1e-7)

	middle := g.CoordinateAlongEdge(1, 68)
	assert.InDelta(t, 68*degreesPerMeter, middle.Lon, 1e-7)
}

func TestEdgeBearing(t *testing.T) {
	g := equatorGraph(t)

	east := g.EdgeBearing(1, 0, 20)
	assert.InDelta(t, 90, float64(east.Degrees()), 1)

	west := g.EdgeBearing(1, 136, -20)
	assert.InDelta(t, 270, float64(west.Degrees()), 1)

	// the mirrored edge of a bidirectional line runs the other way
	forward := g.EdgeBearing(2, 0, 20)
	backward := g.EdgeBearing(-2, 0, 20)
	assert.InDelta(t, 90, float64(forward.Degrees()), 1)
	assert.InDelta(t, 270, float64(backward.Degrees()), 1)
}

func TestEdgeGeometryReversal(t *testing.T) {
	g := equatorGraph(t)

	forward := g.EdgeGeometry(2)
	backward := g.EdgeGeometry(-2)
	require.Len(t, forward, 2)
	require.Len(t, backward, 2)
	assert.Equal(t, forward[0], backward[1])
	assert.Equal(t, forward[1], backward[0])
}

func TestNewRejectsBrokenInput(t *testing.T) {
	_, err := New([]Node{{ID: 1}}, []Line{{ID: 1, StartNode: 1, EndNode: 2}})
	assert.Error(t, err, "unknown end node")

	_, err = New([]Node{{ID: 1}, {ID: 1}}, nil)
	assert.Error(t, err, "duplicate node")

	_, err = New([]Node{{ID: 1}, {ID: 2}}, []Line{{ID: -5, StartNode: 1, EndNode: 2}})
	assert.Error(t, err, "negative line identifier")
}

func TestFromGeoJSON(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature",
			 "geometry": {"type": "Point", "coordinates": [0.0, 0.0]},
			 "properties": {"id": 1}},
			{"type": "Feature",
			 "geometry": {"type": "Point", "coordinates": [0.0012231, 0.0]},
			 "properties": {"id": 2}},
			{"type": "Feature",
			 "geometry": {"type": "LineString",
			              "coordinates": [[0.0, 0.0], [0.0012231, 0.0]]},
			 "properties": {"id": 7, "startId": 1, "endId": 2, "length": 136,
			                "frc": 3, "fow": 3, "direction": 1}}
		]
	}`)

	g, err := FromGeoJSON(data)
	require.NoError(t, err)

	assert.Equal(t, openlr.VertexID(1), g.EdgeStartVertex(7))
	assert.Equal(t, openlr.VertexID(2), g.EdgeEndVertex(7))
	assert.Equal(t, openlr.Length(136), g.EdgeLength(7))
	assert.Equal(t, openlr.Frc3, g.EdgeFrc(7))

	// direction 1 opens the line both ways
	assert.Equal(t, openlr.VertexID(2), g.EdgeStartVertex(-7))
	assert.Equal(t, 2, g.VertexDegree(1))
}

func TestFromGeoJSONRejectsMissingProperties(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature",
			 "geometry": {"type": "Point", "coordinates": [0.0, 0.0]},
			 "properties": {}}
		]
	}`)

	_, err := FromGeoJSON(data)
	assert.Error(t, err)
}
