package memgraph

import (
	"math"

	"github.com/beetlebugorg/openlr/pkg/openlr"
)

// earthRadius is the mean earth radius in meters used by all haversine
// computations.
const earthRadius = 6371000.0

// haversineMeters returns the great-circle distance between two coordinates.
func haversineMeters(a, b openlr.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// initialBearing returns the initial great-circle bearing from a to b in
// degrees within [0, 360).
func initialBearing(a, b openlr.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	degrees := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(degrees+360, 360)
}

// interpolate returns the coordinate at the given fraction between a and b.
// Segments in a road geometry are short, so linear interpolation of the
// degree values is sufficient.
func interpolate(a, b openlr.Coordinate, fraction float64) openlr.Coordinate {
	return openlr.Coordinate{
		Lon: a.Lon + (b.Lon-a.Lon)*fraction,
		Lat: a.Lat + (b.Lat-a.Lat)*fraction,
	}
}

// closestOnSegment projects a point onto the segment between a and b using a
// local equirectangular approximation, returning the closest coordinate on
// the segment.
func closestOnSegment(point, a, b openlr.Coordinate) openlr.Coordinate {
	scale := math.Cos(point.Lat * math.Pi / 180)

	ax, ay := a.Lon*scale, a.Lat
	bx, by := b.Lon*scale, b.Lat
	px, py := point.Lon*scale, point.Lat

	dx, dy := bx-ax, by-ay
	lengthSquared := dx*dx + dy*dy
	if lengthSquared == 0 {
		return a
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lengthSquared
	t = math.Max(0, math.Min(1, t))

	return interpolate(a, b, t)
}

// degreePadding converts a meter radius into the longitude and latitude
// padding of a bounding box around the given latitude.
func degreePadding(lat, meters float64) (dLon, dLat float64) {
	dLat = meters / (earthRadius * math.Pi / 180)
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	dLon = dLat / cos
	return dLon, dLat
}
