package openlr

import (
	"encoding/base64"
	"fmt"

	"github.com/beetlebugorg/openlr/internal/binary"
)

// DeserializeBase64 deserializes an OpenLR location reference encoded in
// standard Base64.
func DeserializeBase64(data string) (LocationReference, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}
	return Deserialize(decoded)
}

// Deserialize deserializes the binary representation of an OpenLR location
// reference, physical format version 3.
func Deserialize(data []byte) (LocationReference, error) {
	r := &payloadReader{data: data}

	locationType, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	switch locationType {
	case LocationTypeLine:
		return r.readLine()
	case LocationTypeGeoCoordinate:
		coordinate, err := r.readCoordinate()
		if err != nil {
			return nil, err
		}
		return GeoCoordinate{Coordinate: coordinate}, nil
	case LocationTypePointAlongLine:
		return r.readPointAlongLine()
	case LocationTypePoi:
		return r.readPoi()
	case LocationTypeCircle:
		return r.readCircle()
	case LocationTypeRectangle:
		return r.readRectangle()
	case LocationTypeGrid:
		return r.readGrid()
	case LocationTypePolygon:
		return r.readPolygon()
	default:
		return r.readClosedLine()
	}
}

// payloadReader walks an OpenLR binary payload from front to back.
type payloadReader struct {
	data []byte
	pos  int
}

func (r *payloadReader) len() int {
	return len(r.data)
}

// take consumes the next n bytes or fails with a short read.
func (r *payloadReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, ErrShortRead
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *payloadReader) readHeader() (LocationType, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	header := b[0]

	version := header & 0b111
	if version != 3 {
		return 0, &UnsupportedVersionError{Version: version}
	}

	switch locationType := (header >> 3) & 0b1111; {
	case locationType == 0:
		return LocationTypeCircle, nil
	case locationType == 1:
		return LocationTypeLine, nil
	case locationType == 2:
		return LocationTypePolygon, nil
	case locationType == 4:
		return LocationTypeGeoCoordinate, nil
	case locationType == 5 && r.len() > 17:
		return LocationTypePoi, nil
	case locationType == 5:
		return LocationTypePointAlongLine, nil
	case locationType == 8 && r.len() > 13:
		return LocationTypeGrid, nil
	case locationType == 8:
		return LocationTypeRectangle, nil
	case locationType == 11:
		return LocationTypeClosedLine, nil
	default:
		return 0, &InvalidHeaderError{Header: header}
	}
}

func (r *payloadReader) readLine() (Line, error) {
	relativePoints := (r.len() - 9) / 7
	line := Line{Points: make([]Point, 0, 1+relativePoints)}

	coordinate, err := r.readCoordinate()
	if err != nil {
		return Line{}, err
	}
	attributes, err := r.readAttributes()
	if err != nil {
		return Line{}, err
	}

	for i := 0; i < relativePoints; i++ {
		dnp, err := r.readDnp()
		if err != nil {
			return Line{}, err
		}
		lfrcnp, err := attributes.lfrcnp()
		if err != nil {
			return Line{}, err
		}

		line.Points = append(line.Points, Point{
			Coordinate: coordinate,
			Line:       attributes.line,
			Path:       &PathAttributes{Lfrcnp: lfrcnp, Dnp: dnp},
		})

		coordinate, err = r.readRelativeCoordinate(coordinate)
		if err != nil {
			return Line{}, err
		}
		attributes, err = r.readAttributes()
		if err != nil {
			return Line{}, err
		}
	}

	line.Points = append(line.Points, Point{
		Coordinate: coordinate,
		Line:       attributes.line,
	})

	if attributes.posOffsetFlag() {
		if line.Offsets.Pos, err = r.readOffset(); err != nil {
			return Line{}, err
		}
	}
	if attributes.negOffsetFlag() {
		if line.Offsets.Neg, err = r.readOffset(); err != nil {
			return Line{}, err
		}
	}

	return line, nil
}

func (r *payloadReader) readClosedLine() (ClosedLine, error) {
	relativePoints := (r.len() - 12) / 7
	line := ClosedLine{Points: make([]Point, 0, 1+relativePoints)}

	coordinate, err := r.readCoordinate()
	if err != nil {
		return ClosedLine{}, err
	}

	readPoint := func(coordinate Coordinate) error {
		attributes, err := r.readAttributes()
		if err != nil {
			return err
		}
		dnp, err := r.readDnp()
		if err != nil {
			return err
		}
		lfrcnp, err := attributes.lfrcnp()
		if err != nil {
			return err
		}

		line.Points = append(line.Points, Point{
			Coordinate: coordinate,
			Line:       attributes.line,
			Path:       &PathAttributes{Lfrcnp: lfrcnp, Dnp: dnp},
		})
		return nil
	}

	if err := readPoint(coordinate); err != nil {
		return ClosedLine{}, err
	}

	for i := 0; i < relativePoints; i++ {
		coordinate, err = r.readRelativeCoordinate(coordinate)
		if err != nil {
			return ClosedLine{}, err
		}
		if err := readPoint(coordinate); err != nil {
			return ClosedLine{}, err
		}
	}

	attributes, err := r.readAttributes()
	if err != nil {
		return ClosedLine{}, err
	}
	line.LastLine = attributes.line

	return line, nil
}

func (r *payloadReader) readPointAlongLine() (PointAlongLine, error) {
	coordinate, err := r.readCoordinate()
	if err != nil {
		return PointAlongLine{}, err
	}
	attributes, err := r.readAttributes()
	if err != nil {
		return PointAlongLine{}, err
	}
	dnp, err := r.readDnp()
	if err != nil {
		return PointAlongLine{}, err
	}
	orientation, err := attributes.orientation()
	if err != nil {
		return PointAlongLine{}, err
	}
	lfrcnp, err := attributes.lfrcnp()
	if err != nil {
		return PointAlongLine{}, err
	}

	first := Point{
		Coordinate: coordinate,
		Line:       attributes.line,
		Path:       &PathAttributes{Lfrcnp: lfrcnp, Dnp: dnp},
	}

	coordinate, err = r.readRelativeCoordinate(coordinate)
	if err != nil {
		return PointAlongLine{}, err
	}
	attributes, err = r.readAttributes()
	if err != nil {
		return PointAlongLine{}, err
	}
	side, err := attributes.side()
	if err != nil {
		return PointAlongLine{}, err
	}

	last := Point{
		Coordinate: coordinate,
		Line:       attributes.line,
	}

	var offset Offset
	if attributes.posOffsetFlag() {
		if offset, err = r.readOffset(); err != nil {
			return PointAlongLine{}, err
		}
	}

	return PointAlongLine{
		Points:      [2]Point{first, last},
		Offset:      offset,
		Orientation: orientation,
		Side:        side,
	}, nil
}

func (r *payloadReader) readPoi() (Poi, error) {
	point, err := r.readPointAlongLine()
	if err != nil {
		return Poi{}, err
	}
	coordinate, err := r.readRelativeCoordinate(point.Points[0].Coordinate)
	if err != nil {
		return Poi{}, err
	}
	return Poi{Point: point, Coordinate: coordinate}, nil
}

func (r *payloadReader) readCircle() (Circle, error) {
	center, err := r.readCoordinate()
	if err != nil {
		return Circle{}, err
	}
	radius, err := r.readRadius()
	if err != nil {
		return Circle{}, err
	}
	return Circle{Center: center, Radius: radius}, nil
}

func (r *payloadReader) readRectangle() (Rectangle, error) {
	lowerLeft, err := r.readCoordinate()
	if err != nil {
		return Rectangle{}, err
	}

	// A large rectangle carries the second corner in absolute format.
	var upperRight Coordinate
	if r.len() > 11 {
		upperRight, err = r.readCoordinate()
	} else {
		upperRight, err = r.readRelativeCoordinate(lowerLeft)
	}
	if err != nil {
		return Rectangle{}, err
	}

	return Rectangle{LowerLeft: lowerLeft, UpperRight: upperRight}, nil
}

func (r *payloadReader) readGrid() (Grid, error) {
	lowerLeft, err := r.readCoordinate()
	if err != nil {
		return Grid{}, err
	}

	var upperRight Coordinate
	if r.len() > 15 {
		upperRight, err = r.readCoordinate()
	} else {
		upperRight, err = r.readRelativeCoordinate(lowerLeft)
	}
	if err != nil {
		return Grid{}, err
	}

	size, err := r.readGridSize()
	if err != nil {
		return Grid{}, err
	}

	return Grid{
		Rect: Rectangle{LowerLeft: lowerLeft, UpperRight: upperRight},
		Size: size,
	}, nil
}

func (r *payloadReader) readPolygon() (Polygon, error) {
	relativeCorners := (r.len() - 7) / 4
	polygon := Polygon{Corners: make([]Coordinate, 0, 1+relativeCorners)}

	coordinate, err := r.readCoordinate()
	if err != nil {
		return Polygon{}, err
	}
	polygon.Corners = append(polygon.Corners, coordinate)

	for i := 0; i < relativeCorners; i++ {
		coordinate, err = r.readRelativeCoordinate(coordinate)
		if err != nil {
			return Polygon{}, err
		}
		polygon.Corners = append(polygon.Corners, coordinate)
	}

	return polygon, nil
}

func (r *payloadReader) readCoordinate() (Coordinate, error) {
	readDegrees := func() (float64, error) {
		b, err := r.take(3)
		if err != nil {
			return 0, err
		}
		return binary.DegreesFromBytes([3]byte{b[0], b[1], b[2]}), nil
	}

	lon, err := readDegrees()
	if err != nil {
		return Coordinate{}, err
	}
	lat, err := readDegrees()
	if err != nil {
		return Coordinate{}, err
	}
	return NewCoordinate(lon, lat)
}

func (r *payloadReader) readRelativeCoordinate(previous Coordinate) (Coordinate, error) {
	readDegrees := func(previous float64) (float64, error) {
		b, err := r.take(2)
		if err != nil {
			return 0, err
		}
		return binary.RelativeDegreesFromBytes([2]byte{b[0], b[1]}, previous), nil
	}

	lon, err := readDegrees(previous.Lon)
	if err != nil {
		return Coordinate{}, err
	}
	lat, err := readDegrees(previous.Lat)
	if err != nil {
		return Coordinate{}, err
	}
	return NewCoordinate(lon, lat)
}

func (r *payloadReader) readAttributes() (encodedAttributes, error) {
	b, err := r.take(2)
	if err != nil {
		return encodedAttributes{}, err
	}

	fow, err := fowFromByte(b[0] & 0b111)
	if err != nil {
		return encodedAttributes{}, err
	}
	frc, err := frcFromByte((b[0] >> 3) & 0b111)
	if err != nil {
		return encodedAttributes{}, err
	}

	return encodedAttributes{
		line: LineAttributes{
			Frc:     frc,
			Fow:     fow,
			Bearing: bearingFromByte(b[1] & 0b11111),
		},
		lfrcnpOrFlags:     (b[1] >> 5) & 0b111,
		orientationOrSide: (b[0] >> 6) & 0b11,
	}, nil
}

func (r *payloadReader) readDnp() (Length, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return dnpFromByte(b[0]), nil
}

func (r *payloadReader) readOffset() (Offset, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return offsetFromByte(b[0]), nil
}

func (r *payloadReader) readRadius() (Length, error) {
	remaining := r.len() - r.pos
	if remaining > 4 {
		remaining = 4
	}
	b, err := r.take(remaining)
	if err != nil || len(b) == 0 {
		return 0, ErrShortRead
	}
	return radiusFromBytes(b), nil
}

func (r *payloadReader) readGridSize() (GridSize, error) {
	b, err := r.take(4)
	if err != nil {
		return GridSize{}, err
	}
	return gridSizeFromBytes([4]byte{b[0], b[1], b[2], b[3]}), nil
}
