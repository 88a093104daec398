package openlr

import (
	"sort"
)

// testEdge is one directed edge of the fixture network.
type testEdge struct {
	start  VertexID
	end    VertexID
	length Length
	frc    Frc
	fow    Fow
}

// testGraph is a minimal Graph implementation over a static edge table.
// Geometry-dependent queries return fixed values; the algorithm tests in
// this package exercise topology and lengths only.
type testGraph struct {
	edges      map[EdgeID]testEdge
	restricted map[[2]EdgeID]bool
}

func newTestGraph() *testGraph {
	return &testGraph{
		edges: map[EdgeID]testEdge{
			// 1 -> 2 -> 3 -> 4 with a long parallel 2 -> 4
			1: {start: 1, end: 2, length: 136, frc: Frc2, fow: FowSingleCarriageway},
			2: {start: 2, end: 3, length: 51, frc: Frc6, fow: FowSingleCarriageway},
			3: {start: 3, end: 4, length: 192, frc: Frc2, fow: FowSingleCarriageway},
			4: {start: 2, end: 4, length: 400, frc: Frc2, fow: FowSingleCarriageway},
			5: {start: 4, end: 5, length: 100, frc: Frc2, fow: FowSingleCarriageway},

			// dead end at 6
			6: {start: 5, end: 6, length: 50, frc: Frc2, fow: FowSingleCarriageway},
			7: {start: 6, end: 5, length: 50, frc: Frc2, fow: FowSingleCarriageway},

			// pairwise degree-4 node at 8
			8:  {start: 7, end: 8, length: 60, frc: Frc2, fow: FowSingleCarriageway},
			9:  {start: 8, end: 7, length: 60, frc: Frc2, fow: FowSingleCarriageway},
			10: {start: 8, end: 9, length: 70, frc: Frc2, fow: FowSingleCarriageway},
			11: {start: 9, end: 8, length: 70, frc: Frc2, fow: FowSingleCarriageway},

			// non-pairwise degree-4 node at 11
			12: {start: 10, end: 11, length: 80, frc: Frc2, fow: FowSingleCarriageway},
			13: {start: 11, end: 10, length: 80, frc: Frc2, fow: FowSingleCarriageway},
			14: {start: 11, end: 12, length: 90, frc: Frc2, fow: FowSingleCarriageway},
			16: {start: 14, end: 11, length: 95, frc: Frc2, fow: FowSingleCarriageway},

			// fixtures for offset calculations
			20: {start: 20, end: 21, length: 16, frc: Frc2, fow: FowSingleCarriageway},
			21: {start: 21, end: 22, length: 37, frc: Frc2, fow: FowSingleCarriageway},

			// parallel opposite twins of different length
			30: {start: 30, end: 31, length: 100, frc: Frc2, fow: FowSingleCarriageway},
			31: {start: 31, end: 30, length: 100, frc: Frc2, fow: FowSingleCarriageway},
			32: {start: 31, end: 30, length: 250, frc: Frc2, fow: FowSingleCarriageway},

			// one-way ring
			40: {start: 40, end: 41, length: 10, frc: Frc2, fow: FowSingleCarriageway},
			41: {start: 41, end: 42, length: 10, frc: Frc2, fow: FowSingleCarriageway},
			42: {start: 42, end: 40, length: 10, frc: Frc2, fow: FowSingleCarriageway},

			// loop through 60 with an exit at 61
			50: {start: 60, end: 61, length: 10, frc: Frc2, fow: FowSingleCarriageway},
			51: {start: 61, end: 62, length: 10, frc: Frc2, fow: FowSingleCarriageway},
			52: {start: 62, end: 60, length: 10, frc: Frc2, fow: FowSingleCarriageway},
			53: {start: 61, end: 63, length: 100, frc: Frc2, fow: FowSingleCarriageway},

			// disconnected from everything else
			99: {start: 90, end: 91, length: 10, frc: Frc2, fow: FowSingleCarriageway},
		},
		restricted: map[[2]EdgeID]bool{},
	}
}

func (g *testGraph) restrict(from, to EdgeID) {
	g.restricted[[2]EdgeID{from, to}] = true
}

func (g *testGraph) VertexCoordinate(VertexID) Coordinate { return Coordinate{} }

func (g *testGraph) EdgeStartVertex(edge EdgeID) VertexID { return g.edges[edge].start }

func (g *testGraph) EdgeEndVertex(edge EdgeID) VertexID { return g.edges[edge].end }

func (g *testGraph) EdgeLength(edge EdgeID) Length { return g.edges[edge].length }

func (g *testGraph) EdgeFrc(edge EdgeID) Frc { return g.edges[edge].frc }

func (g *testGraph) EdgeFow(edge EdgeID) Fow { return g.edges[edge].fow }

func (g *testGraph) EdgeGeometry(EdgeID) []Coordinate { return nil }

func (g *testGraph) ExitingEdges(vertex VertexID) []Adjacency {
	var adjacencies []Adjacency
	for id, edge := range g.edges {
		if edge.start == vertex {
			adjacencies = append(adjacencies, Adjacency{Edge: id, Vertex: edge.end})
		}
	}
	sortTestAdjacencies(adjacencies)
	return adjacencies
}

func (g *testGraph) EnteringEdges(vertex VertexID) []Adjacency {
	var adjacencies []Adjacency
	for id, edge := range g.edges {
		if edge.end == vertex {
			adjacencies = append(adjacencies, Adjacency{Edge: id, Vertex: edge.start})
		}
	}
	sortTestAdjacencies(adjacencies)
	return adjacencies
}

func (g *testGraph) NearestVertices(Coordinate, Length) []VertexDistance { return nil }

func (g *testGraph) NearestEdges(Coordinate, Length) []EdgeDistance { return nil }

func (g *testGraph) DistanceAlongEdge(EdgeID, Coordinate) Length { return 0 }

func (g *testGraph) CoordinateAlongEdge(EdgeID, Length) Coordinate { return Coordinate{} }

func (g *testGraph) EdgeBearing(EdgeID, Length, Length) Bearing { return 0 }

func (g *testGraph) IsTurnRestricted(from, to EdgeID) bool {
	return g.restricted[[2]EdgeID{from, to}]
}

func (g *testGraph) VertexDegree(vertex VertexID) int {
	return len(g.EnteringEdges(vertex)) + len(g.ExitingEdges(vertex))
}

func sortTestAdjacencies(adjacencies []Adjacency) {
	sort.Slice(adjacencies, func(i, j int) bool {
		return adjacencies[i].Edge < adjacencies[j].Edge
	})
}
