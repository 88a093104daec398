package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/beetlebugorg/openlr/pkg/memgraph"
	"github.com/beetlebugorg/openlr/pkg/openlr"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <network.geojson> <edge-id>...", os.Args[0])
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	graph, err := memgraph.FromGeoJSON(data)
	if err != nil {
		log.Fatal(err)
	}

	// Collect the path to encode
	var path []openlr.EdgeID
	for _, arg := range os.Args[2:] {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			log.Fatalf("edge id %q: %v", arg, err)
		}
		path = append(path, openlr.EdgeID(id))
	}

	code, err := openlr.EncodeBase64(openlr.DefaultEncoderConfig(), graph, openlr.LineLocation{
		Path: path,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(code)
}
