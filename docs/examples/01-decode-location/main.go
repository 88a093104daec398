package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/openlr/pkg/memgraph"
	"github.com/beetlebugorg/openlr/pkg/openlr"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <network.geojson> <base64-code>", os.Args[0])
	}

	// Load the road network
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	graph, err := memgraph.FromGeoJSON(data)
	if err != nil {
		log.Fatal(err)
	}

	// Decode the location reference against the network
	location, err := openlr.DecodeBase64(openlr.DefaultDecoderConfig(), graph, os.Args[2])
	if err != nil {
		log.Fatal(err)
	}

	switch l := location.(type) {
	case openlr.LineLocation:
		fmt.Printf("Line location over %d edges\n", len(l.Path))
		for _, edge := range l.Path {
			fmt.Printf("  edge %d (%s, %s)\n", edge, graph.EdgeLength(edge), graph.EdgeFrc(edge))
		}
		fmt.Printf("Positive offset: %s\n", l.PosOffset)
		fmt.Printf("Negative offset: %s\n", l.NegOffset)
	case openlr.GeoCoordinate:
		fmt.Printf("Geo coordinate: %.5f, %.5f\n", l.Lon, l.Lat)
	case openlr.Circle:
		fmt.Printf("Circle of %s around %.5f, %.5f\n", l.Radius, l.Center.Lon, l.Center.Lat)
	default:
		fmt.Printf("Location: %#v\n", location)
	}
}
