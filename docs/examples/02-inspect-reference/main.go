package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/openlr/pkg/openlr"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <base64-code>", os.Args[0])
	}

	reference, err := openlr.DeserializeBase64(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Location type: %s\n", reference.Type())

	switch r := reference.(type) {
	case openlr.Line:
		printPoints(r.Points)
		fmt.Printf("Offsets: pos=%.4f neg=%.4f\n", r.Offsets.Pos.Range(), r.Offsets.Neg.Range())
	case openlr.ClosedLine:
		printPoints(r.Points)
		fmt.Printf("Closing line: %s %s bearing %d°\n",
			r.LastLine.Frc, r.LastLine.Fow, r.LastLine.Bearing.Degrees())
	case openlr.PointAlongLine:
		printPoints(r.Points[:])
		fmt.Printf("Offset: %.4f, orientation %d, side %d\n", r.Offset.Range(), r.Orientation, r.Side)
	case openlr.GeoCoordinate:
		fmt.Printf("Coordinate: %.5f, %.5f\n", r.Lon, r.Lat)
	case openlr.Circle:
		fmt.Printf("Center %.5f, %.5f radius %s\n", r.Center.Lon, r.Center.Lat, r.Radius)
	default:
		fmt.Printf("%#v\n", reference)
	}
}

func printPoints(points []openlr.Point) {
	for i, point := range points {
		fmt.Printf("LRP %d: (%.5f, %.5f) %s %s bearing %d°",
			i+1, point.Coordinate.Lon, point.Coordinate.Lat,
			point.Line.Frc, point.Line.Fow, point.Line.Bearing.Degrees())

		if !point.IsLast() {
			fmt.Printf(" -> %s on %s or better", point.Dnp(), point.Lfrcnp())
		}
		fmt.Println()
	}
}
