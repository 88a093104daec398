package openlr

import (
	"fmt"
)

// EncoderConfig configures the encoding of a map-bound location into a
// location reference.
type EncoderConfig struct {
	// MaxLrpDistance is the maximum distance allowed between consecutive
	// LRPs. Must not exceed MaxBinaryLRPDistance.
	MaxLrpDistance Length

	// BearingDistance is the length of the edge segment used to compute a
	// line bearing.
	BearingDistance Length
}

// DefaultEncoderConfig returns the encoder defaults.
//
// The smaller the maximum LRP distance the higher the offsets precision.
// A small distance can also hurt the decoding step: multiple LRPs on the
// same line degrade the rating of any route where two LRPs share an edge.
func DefaultEncoderConfig() EncoderConfig {
	return EncoderConfig{
		MaxLrpDistance:  4000,
		BearingDistance: 20,
	}
}

// EncodeBase64 encodes a map-bound location into an OpenLR location
// reference in Base64.
func EncodeBase64(config EncoderConfig, g Graph, location Location) (string, error) {
	reference, err := encodeLocation(config, g, location)
	if err != nil {
		return "", err
	}
	return SerializeBase64(reference)
}

// Encode encodes a map-bound location into a binary OpenLR location
// reference.
//
// A line location runs the full pipeline:
//
//  1. Check the validity of the location and its offsets.
//  2. Adjust the start and end of the location to valid network nodes.
//  3. Determine coverage of the location by a shortest path.
//  4. If the path does not cover the location completely, place a new
//     intermediate location reference point where the covered part ends and
//     restart the calculation from there.
//  5. Concatenate the calculated shortest paths and form the ordered list
//     of location reference points.
//  6. Check the validity of the location reference path.
//  7. Create the physical representation.
//
// Map-free locations (geo-coordinate, circle, rectangle, grid, polygon)
// serialize directly.
func Encode(config EncoderConfig, g Graph, location Location) ([]byte, error) {
	reference, err := encodeLocation(config, g, location)
	if err != nil {
		return nil, err
	}
	return Serialize(reference)
}

func encodeLocation(config EncoderConfig, g Graph, location Location) (LocationReference, error) {
	switch l := location.(type) {
	case LineLocation:
		return encodeLine(config, g, l)
	case GeoCoordinate:
		return l, nil
	case Circle:
		return l, nil
	case Rectangle:
		return l, nil
	case Grid:
		return l, nil
	case Polygon:
		return l, nil
	default:
		return nil, fmt.Errorf("unknown location %T", location)
	}
}

func encodeLine(config EncoderConfig, g Graph, line LineLocation) (Line, error) {
	// Step 1 - check the validity of the location and its offsets.
	if err := ensureLineIsValid(g, line, MaxBinaryLRPDistance); err != nil {
		return Line{}, err
	}
	line, err := line.Trim(g)
	if err != nil {
		return Line{}, err
	}

	// Step 2 - adjust the start and end of the location to valid nodes.
	line = expandLineLocation(config, g, line)

	// Steps 3 to 6 - cover the location by shortest paths and materialize
	// the location reference points.
	lrps, err := resolveLRPs(config, g, line)
	if err != nil {
		return Line{}, err
	}

	return lrps.toLine(), nil
}

// resolveLRPs resolves all the LRPs necessary to reference the given line.
// Shortest paths are computed until the whole location is covered by their
// concatenation; every divergence inserts an intermediate LRP and restarts
// the calculation from there.
func resolveLRPs(config EncoderConfig, g Graph, line LineLocation) (locRefPoints, error) {
	if len(line.Path) == 0 {
		return locRefPoints{}, ErrEmptyLocation
	}

	location := append([]EdgeID(nil), line.Path...)
	lastLrp := lrpFromLastEdge(config, g, location[len(location)-1])

	var lrps []locRefPoint

	for len(location) > 0 {
		covered, err := shortestPathLocation(g, location, config.MaxLrpDistance)
		if err != nil {
			return locRefPoints{}, err
		}

		done := false
		switch covered.kind {
		case coverageLocation:
			lrps = append(lrps, lrpFromEdges(config, g, location))
			done = true
		case coverageIntermediate:
			if covered.index <= 0 || covered.index >= len(location) {
				return locRefPoints{}, &IntermediateError{Index: covered.index}
			}
			lrps = append(lrps, lrpFromEdges(config, g, location[:covered.index]))
			location = location[covered.index:]
		case coverageNotFound:
			return locRefPoints{}, ErrRouteNotFound
		}
		if done {
			break
		}
	}

	lrps = append(lrps, lastLrp)

	// Every LRP span must fit the binary format; the encoding fails
	// instead of subdividing an over-long span.
	for _, lrp := range lrps {
		if lrp.point.Dnp() > config.MaxLrpDistance {
			return locRefPoints{}, ErrMaxDistanceExceeded
		}
	}

	return locRefPoints{
		lrps:      lrps,
		posOffset: line.PosOffset,
		negOffset: line.NegOffset,
	}, nil
}
