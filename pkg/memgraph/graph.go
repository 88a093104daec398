// Package memgraph provides an in-memory road-network graph that satisfies
// the openlr.Graph contract: adjacency lists with deterministic ordering,
// haversine edge geometry and an R-tree geospatial index for nearest-vertex
// and nearest-edge queries.
//
// A graph is built from nodes and lines. A line is an undirected road
// segment with a positive identifier; its traversable directions decide
// which directed edges exist. A line open in both directions contributes
// two edges: the line identifier itself for the forward direction and its
// negation for the backward direction.
//
// Example:
//
//	graph, err := memgraph.New(
//	    []memgraph.Node{
//	        {ID: 1, Lon: 13.4542, Lat: 52.5157},
//	        {ID: 2, Lon: 13.4573, Lat: 52.5153},
//	    },
//	    []memgraph.Line{
//	        {ID: 100, StartNode: 1, EndNode: 2, Length: 217,
//	            Frc: openlr.Frc3, Fow: openlr.FowSingleCarriageway,
//	            Direction: memgraph.DirectionForward},
//	    },
//	)
package memgraph

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/beetlebugorg/openlr/pkg/openlr"
)

// Direction describes which ways a line may be traversed.
type Direction int

const (
	// DirectionBoth adds a forward edge and a mirrored backward edge with
	// the negated identifier.
	DirectionBoth Direction = 1
	// DirectionForward adds only the forward edge.
	DirectionForward Direction = 2
	// DirectionBackward swaps the endpoints and reverses the geometry, then
	// adds only that edge.
	DirectionBackward Direction = 3
)

// Node is a vertex of the road network.
type Node struct {
	ID  int64
	Lon float64
	Lat float64
}

// Line is an undirected road segment between two nodes. The identifier must
// be positive; the negated identifier is reserved for the backward edge of
// a line open in both directions.
type Line struct {
	ID        int64
	StartNode int64
	EndNode   int64
	// Length is the segment length in meters. When zero, the haversine
	// length of the geometry is used.
	Length float64
	Frc    openlr.Frc
	Fow    openlr.Fow
	// Direction defaults to DirectionBoth when unset.
	Direction Direction
	// Geometry lists the coordinates from the start to the end node. When
	// empty, a straight segment between the node coordinates is assumed.
	Geometry []openlr.Coordinate
}

// Graph is an in-memory implementation of openlr.Graph.
//
// A Graph is immutable after New (except for RestrictTurn during setup) and
// safe for concurrent readers.
type Graph struct {
	nodes      map[openlr.VertexID]openlr.Coordinate
	lines      map[int64]lineEntry
	exiting    map[openlr.VertexID][]openlr.Adjacency
	entering   map[openlr.VertexID][]openlr.Adjacency
	restricted map[turn]struct{}

	nodeTree *rtreego.Rtree
	edgeTree *rtreego.Rtree
}

type lineEntry struct {
	start    openlr.VertexID
	end      openlr.VertexID
	length   openlr.Length
	frc      openlr.Frc
	fow      openlr.Fow
	geometry []openlr.Coordinate
}

type turn struct {
	from, to openlr.EdgeID
}

// New builds a graph from nodes and lines and indexes it for spatial
// queries.
func New(nodes []Node, lines []Line) (*Graph, error) {
	g := &Graph{
		nodes:      make(map[openlr.VertexID]openlr.Coordinate, len(nodes)),
		lines:      make(map[int64]lineEntry, len(lines)),
		exiting:    make(map[openlr.VertexID][]openlr.Adjacency),
		entering:   make(map[openlr.VertexID][]openlr.Adjacency),
		restricted: make(map[turn]struct{}),
		nodeTree:   rtreego.NewTree(2, 25, 50),
		edgeTree:   rtreego.NewTree(2, 25, 50),
	}

	for _, node := range nodes {
		id := openlr.VertexID(node.ID)
		if _, ok := g.nodes[id]; ok {
			return nil, fmt.Errorf("duplicate node %d", node.ID)
		}
		g.nodes[id] = openlr.Coordinate{Lon: node.Lon, Lat: node.Lat}
	}

	for _, line := range lines {
		if err := g.addLine(line); err != nil {
			return nil, err
		}
	}

	// adjacency lists returned in a deterministic order
	for _, adjacencies := range g.exiting {
		sortAdjacencies(adjacencies)
	}
	for _, adjacencies := range g.entering {
		sortAdjacencies(adjacencies)
	}

	for vertex, coordinate := range g.nodes {
		g.nodeTree.Insert(&spatialNode{vertex: vertex, coordinate: coordinate})
	}
	for id, entry := range g.lines {
		g.edgeTree.Insert(&spatialEdge{edge: openlr.EdgeID(id), geometry: entry.geometry})
		if g.hasEdge(openlr.EdgeID(-id)) {
			g.edgeTree.Insert(&spatialEdge{
				edge:     openlr.EdgeID(-id),
				geometry: reverseGeometry(entry.geometry),
			})
		}
	}

	return g, nil
}

func (g *Graph) addLine(line Line) error {
	if line.ID <= 0 {
		return fmt.Errorf("line identifier %d must be positive", line.ID)
	}
	if _, ok := g.lines[line.ID]; ok {
		return fmt.Errorf("duplicate line %d", line.ID)
	}

	direction := line.Direction
	if direction == 0 {
		direction = DirectionBoth
	}

	start := openlr.VertexID(line.StartNode)
	end := openlr.VertexID(line.EndNode)
	if direction == DirectionBackward {
		start, end = end, start
	}

	startCoord, ok := g.nodes[start]
	if !ok {
		return fmt.Errorf("line %d references unknown node %d", line.ID, start)
	}
	endCoord, ok := g.nodes[end]
	if !ok {
		return fmt.Errorf("line %d references unknown node %d", line.ID, end)
	}

	geometry := line.Geometry
	if direction == DirectionBackward {
		geometry = reverseGeometry(geometry)
	}
	if len(geometry) < 2 {
		geometry = []openlr.Coordinate{startCoord, endCoord}
	}

	length := openlr.Length(line.Length)
	if length.IsZero() {
		length = openlr.Length(geometryLength(geometry))
	}

	g.lines[line.ID] = lineEntry{
		start:    start,
		end:      end,
		length:   length,
		frc:      line.Frc,
		fow:      line.Fow,
		geometry: geometry,
	}

	edge := openlr.EdgeID(line.ID)
	g.exiting[start] = append(g.exiting[start], openlr.Adjacency{Edge: edge, Vertex: end})
	g.entering[end] = append(g.entering[end], openlr.Adjacency{Edge: edge, Vertex: start})

	if direction == DirectionBoth && start != end {
		// the same line in the opposite direction
		reversed := openlr.EdgeID(-line.ID)
		g.exiting[end] = append(g.exiting[end], openlr.Adjacency{Edge: reversed, Vertex: start})
		g.entering[start] = append(g.entering[start], openlr.Adjacency{Edge: reversed, Vertex: end})
	}

	return nil
}

// RestrictTurn forbids the transition from one edge to another. Intended
// for setup, before the graph is shared between concurrent readers.
func (g *Graph) RestrictTurn(from, to openlr.EdgeID) {
	g.restricted[turn{from: from, to: to}] = struct{}{}
}

func (g *Graph) hasEdge(edge openlr.EdgeID) bool {
	if edge >= 0 {
		_, ok := g.lines[int64(edge)]
		return ok
	}

	entry, ok := g.lines[int64(-edge)]
	if !ok {
		return false
	}
	for _, adjacency := range g.exiting[entry.end] {
		if adjacency.Edge == edge {
			return true
		}
	}
	return false
}

func (g *Graph) entry(edge openlr.EdgeID) (lineEntry, bool) {
	id := int64(edge)
	if id < 0 {
		id = -id
	}
	entry, ok := g.lines[id]
	return entry, ok
}

// VertexCoordinate implements openlr.Graph.
func (g *Graph) VertexCoordinate(vertex openlr.VertexID) openlr.Coordinate {
	return g.nodes[vertex]
}

// EdgeStartVertex implements openlr.Graph.
func (g *Graph) EdgeStartVertex(edge openlr.EdgeID) openlr.VertexID {
	entry, ok := g.entry(edge)
	if !ok {
		return 0
	}
	if edge < 0 {
		return entry.end
	}
	return entry.start
}

// EdgeEndVertex implements openlr.Graph.
func (g *Graph) EdgeEndVertex(edge openlr.EdgeID) openlr.VertexID {
	entry, ok := g.entry(edge)
	if !ok {
		return 0
	}
	if edge < 0 {
		return entry.start
	}
	return entry.end
}

// EdgeLength implements openlr.Graph.
func (g *Graph) EdgeLength(edge openlr.EdgeID) openlr.Length {
	entry, _ := g.entry(edge)
	return entry.length
}

// EdgeFrc implements openlr.Graph.
func (g *Graph) EdgeFrc(edge openlr.EdgeID) openlr.Frc {
	entry, ok := g.entry(edge)
	if !ok {
		return openlr.Frc7
	}
	return entry.frc
}

// EdgeFow implements openlr.Graph.
func (g *Graph) EdgeFow(edge openlr.EdgeID) openlr.Fow {
	entry, ok := g.entry(edge)
	if !ok {
		return openlr.FowUndefined
	}
	return entry.fow
}

// EdgeGeometry implements openlr.Graph.
func (g *Graph) EdgeGeometry(edge openlr.EdgeID) []openlr.Coordinate {
	entry, ok := g.entry(edge)
	if !ok {
		return nil
	}
	if edge < 0 {
		return reverseGeometry(entry.geometry)
	}
	return entry.geometry
}

// ExitingEdges implements openlr.Graph.
func (g *Graph) ExitingEdges(vertex openlr.VertexID) []openlr.Adjacency {
	return g.exiting[vertex]
}

// EnteringEdges implements openlr.Graph.
func (g *Graph) EnteringEdges(vertex openlr.VertexID) []openlr.Adjacency {
	return g.entering[vertex]
}

// IsTurnRestricted implements openlr.Graph.
func (g *Graph) IsTurnRestricted(from, to openlr.EdgeID) bool {
	_, ok := g.restricted[turn{from: from, to: to}]
	return ok
}

// VertexDegree implements openlr.Graph.
func (g *Graph) VertexDegree(vertex openlr.VertexID) int {
	return len(g.entering[vertex]) + len(g.exiting[vertex])
}

func sortAdjacencies(adjacencies []openlr.Adjacency) {
	sort.Slice(adjacencies, func(i, j int) bool {
		return adjacencies[i].Edge < adjacencies[j].Edge
	})
}

func reverseGeometry(geometry []openlr.Coordinate) []openlr.Coordinate {
	reversed := make([]openlr.Coordinate, len(geometry))
	for i, coordinate := range geometry {
		reversed[len(geometry)-1-i] = coordinate
	}
	return reversed
}

func geometryLength(geometry []openlr.Coordinate) float64 {
	var length float64
	for i := 0; i+1 < len(geometry); i++ {
		length += haversineMeters(geometry[i], geometry[i+1])
	}
	return length
}
