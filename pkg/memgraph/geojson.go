package memgraph

import (
	"encoding/json"
	"fmt"

	"github.com/beetlebugorg/openlr/pkg/openlr"
)

// FromGeoJSON builds a graph from a GeoJSON feature collection.
//
// Nodes are Point features with an "id" property. Lines are LineString
// features with "id", "startId", "endId", "length", "frc", "fow" and
// "direction" properties, where direction follows the Direction constants:
// 1 opens the line both ways, 2 forward only, 3 backward only.
func FromGeoJSON(data []byte) (*Graph, error) {
	var collection struct {
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"features"`
	}

	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	var nodes []Node
	var lines []Line

	for _, feature := range collection.Features {
		switch feature.Geometry.Type {
		case "Point":
			var position [2]float64
			if err := json.Unmarshal(feature.Geometry.Coordinates, &position); err != nil {
				return nil, fmt.Errorf("parse point coordinates: %w", err)
			}

			id, err := intProperty(feature.Properties, "id")
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, Node{ID: id, Lon: position[0], Lat: position[1]})

		case "LineString":
			var positions [][2]float64
			if err := json.Unmarshal(feature.Geometry.Coordinates, &positions); err != nil {
				return nil, fmt.Errorf("parse linestring coordinates: %w", err)
			}

			line, err := lineFromProperties(feature.Properties)
			if err != nil {
				return nil, err
			}

			line.Geometry = make([]openlr.Coordinate, len(positions))
			for i, position := range positions {
				line.Geometry[i] = openlr.Coordinate{Lon: position[0], Lat: position[1]}
			}

			lines = append(lines, line)
		}
	}

	return New(nodes, lines)
}

func lineFromProperties(properties map[string]json.RawMessage) (Line, error) {
	id, err := intProperty(properties, "id")
	if err != nil {
		return Line{}, err
	}
	startNode, err := intProperty(properties, "startId")
	if err != nil {
		return Line{}, err
	}
	endNode, err := intProperty(properties, "endId")
	if err != nil {
		return Line{}, err
	}
	length, err := intProperty(properties, "length")
	if err != nil {
		return Line{}, err
	}
	frc, err := intProperty(properties, "frc")
	if err != nil {
		return Line{}, err
	}
	fow, err := intProperty(properties, "fow")
	if err != nil {
		return Line{}, err
	}
	direction, err := intProperty(properties, "direction")
	if err != nil {
		return Line{}, err
	}

	frcValue, ok := openlr.FrcFromValue(int(frc))
	if !ok {
		return Line{}, fmt.Errorf("line %d: invalid frc %d", id, frc)
	}
	if fow < 0 || fow > 7 {
		return Line{}, fmt.Errorf("line %d: invalid fow %d", id, fow)
	}

	return Line{
		ID:        id,
		StartNode: startNode,
		EndNode:   endNode,
		Length:    float64(length),
		Frc:       frcValue,
		Fow:       openlr.Fow(fow),
		Direction: Direction(direction),
	}, nil
}

func intProperty(properties map[string]json.RawMessage, key string) (int64, error) {
	raw, ok := properties[key]
	if !ok {
		return 0, fmt.Errorf("missing property %q", key)
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return 0, fmt.Errorf("property %q: %w", key, err)
	}
	value, err := number.Int64()
	if err != nil {
		return 0, fmt.Errorf("property %q: %w", key, err)
	}
	return value, nil
}
