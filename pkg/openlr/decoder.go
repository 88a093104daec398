package openlr

// RatingWeights weight the four components of a candidate line rating: the
// functional road class similarity, the form of way similarity, the bearing
// agreement and the proximity of the LRP coordinate to the edge.
type RatingWeights struct {
	Frc      float64
	Fow      float64
	Bearing  float64
	Distance float64
}

// DecoderConfig configures the decoding of a location reference against a
// host map.
type DecoderConfig struct {
	// MaxNodeDistance is the search radius around an LRP coordinate for
	// candidate nodes, and the projection radius for candidate edges when
	// no node is found.
	MaxNodeDistance Length

	// MaxNumberRetries bounds how many lower rated candidate pairs are
	// tried per LRP pair before the decoding fails.
	MaxNumberRetries int

	// NextPointVariance relaxes the announced distance to the next point
	// in both directions when accepting a route.
	NextPointVariance Length

	// BearingDistance is the length of the edge segment used to compute
	// the bearing at a candidate attachment.
	BearingDistance Length

	// MinCandidateScore is the quality floor below which candidate lines
	// are discarded.
	MinCandidateScore float64

	// Weights balance the candidate rating components.
	Weights RatingWeights
}

// DefaultDecoderConfig returns the decoder defaults.
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		MaxNodeDistance:   100,
		MaxNumberRetries:  3,
		NextPointVariance: 20,
		BearingDistance:   20,
		MinCandidateScore: 100,
		Weights: RatingWeights{
			Frc:      3,
			Fow:      3,
			Bearing:  3,
			Distance: 3,
		},
	}
}

// DecodeBase64 decodes an OpenLR location reference encoded in Base64
// against the host map.
func DecodeBase64(config DecoderConfig, g Graph, data string) (Location, error) {
	reference, err := DeserializeBase64(data)
	if err != nil {
		return nil, err
	}
	return decodeReference(config, g, reference)
}

// Decode decodes a binary OpenLR location reference against the host map.
//
// A line reference runs the full map-matching pipeline:
//
//  1. Decode the physical data and check its validity.
//  2. For each location reference point find candidate nodes.
//  3. For each location reference point find candidate lines.
//  4. Rate the candidate lines.
//  5. Determine shortest paths between subsequent location reference points.
//  6. Check the validity of the calculated shortest paths.
//  7. Concatenate the shortest paths and trim the path by the offsets.
//
// References that are not bound to the road network (geo-coordinate,
// circle, rectangle, grid, polygon) short-circuit the pipeline and decode
// directly into their geometric object.
func Decode(config DecoderConfig, g Graph, data []byte) (Location, error) {
	// Step 1 - decode physical data and check its validity.
	reference, err := Deserialize(data)
	if err != nil {
		return nil, err
	}
	return decodeReference(config, g, reference)
}

func decodeReference(config DecoderConfig, g Graph, reference LocationReference) (Location, error) {
	switch l := reference.(type) {
	case Line:
		return decodeLine(config, g, l)
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
		return nil, &UnsupportedLocationTypeError{LocationType: reference.Type()}
	}
}

func decodeLine(config DecoderConfig, g Graph, line Line) (LineLocation, error) {
	// Step 2 - for each location reference point find candidate nodes.
	nodes := findCandidateNodes(config, g, line.Points)

	// Steps 3 and 4 - find and rate candidate lines.
	lines, err := findCandidateLines(config, g, nodes)
	if err != nil {
		return LineLocation{}, err
	}

	// Steps 5 and 6 - determine and validate the shortest paths between
	// all subsequent location reference points.
	routes, err := resolveRoutes(config, g, lines)
	if err != nil {
		return LineLocation{}, err
	}

	// Step 7 - concatenate and trim the path according to the offsets.
	posOffset, negOffset, _ := routes.calculateOffsets(g, line.Offsets)

	location := LineLocation{
		Path:      routes.toPath(),
		PosOffset: posOffset,
		NegOffset: negOffset,
	}

	return location.Trim(g)
}
