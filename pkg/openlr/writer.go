package openlr

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/beetlebugorg/openlr/internal/binary"
)

// SerializeBase64 serializes an OpenLR location reference into standard
// Base64.
func SerializeBase64(location LocationReference) (string, error) {
	data, err := Serialize(location)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Serialize serializes an OpenLR location reference into its binary
// representation, physical format version 3.
func Serialize(location LocationReference) ([]byte, error) {
	w := &payloadWriter{}
	w.writeHeader(location.Type())

	var err error
	switch l := location.(type) {
	case Line:
		err = w.writeLine(l)
	case GeoCoordinate:
		err = w.writeCoordinate(l.Coordinate)
	case PointAlongLine:
		err = w.writePointAlongLine(l)
	case Poi:
		err = w.writePoi(l)
	case Circle:
		err = w.writeCircle(l)
	case Rectangle:
		err = w.writeRectangle(l)
	case Grid:
		err = w.writeGrid(l)
	case Polygon:
		err = w.writePolygon(l)
	case ClosedLine:
		err = w.writeClosedLine(l)
	default:
		err = fmt.Errorf("unknown location reference %T", location)
	}
	if err != nil {
		return nil, err
	}

	return w.buf.Bytes(), nil
}

// payloadWriter builds an OpenLR binary payload from front to back.
type payloadWriter struct {
	buf bytes.Buffer
}

func (w *payloadWriter) writeHeader(locationType LocationType) {
	const version = 3

	var typeBits byte
	switch locationType {
	case LocationTypeCircle:
		typeBits = 0
	case LocationTypeLine:
		typeBits = 1
	case LocationTypePolygon:
		typeBits = 2
	case LocationTypeGeoCoordinate:
		typeBits = 4
	case LocationTypePoi, LocationTypePointAlongLine:
		typeBits = 5
	case LocationTypeGrid, LocationTypeRectangle:
		typeBits = 8
	case LocationTypeClosedLine:
		typeBits = 11
	}

	w.buf.WriteByte(version + typeBits<<3)
}

func (w *payloadWriter) writeLine(line Line) error {
	if len(line.Points) < 2 {
		return ErrInvalidLine
	}

	first := line.Points[0]
	coordinate := first.Coordinate
	if err := w.writeCoordinate(coordinate); err != nil {
		return err
	}
	if err := w.writeIntermediateAttributes(first); err != nil {
		return err
	}

	for _, point := range line.Points[1 : len(line.Points)-1] {
		var err error
		coordinate, err = w.writeRelativeCoordinate(point.Coordinate, coordinate)
		if err != nil {
			return err
		}
		if err := w.writeIntermediateAttributes(point); err != nil {
			return err
		}
	}

	last := line.Points[len(line.Points)-1]
	if _, err := w.writeRelativeCoordinate(last.Coordinate, coordinate); err != nil {
		return err
	}

	attributes := attributesFrom(last.Line).withOffsets(line.Offsets)
	if err := w.writeAttributes(attributes); err != nil {
		return err
	}

	if attributes.posOffsetFlag() {
		if err := w.writeOffset(line.Offsets.Pos); err != nil {
			return err
		}
	}
	if attributes.negOffsetFlag() {
		if err := w.writeOffset(line.Offsets.Neg); err != nil {
			return err
		}
	}

	return nil
}

func (w *payloadWriter) writeClosedLine(line ClosedLine) error {
	if len(line.Points) < 2 {
		return ErrInvalidLine
	}

	coordinate := line.Points[0].Coordinate
	if err := w.writeCoordinate(coordinate); err != nil {
		return err
	}
	if err := w.writeIntermediateAttributes(line.Points[0]); err != nil {
		return err
	}

	for _, point := range line.Points[1:] {
		var err error
		coordinate, err = w.writeRelativeCoordinate(point.Coordinate, coordinate)
		if err != nil {
			return err
		}
		if err := w.writeIntermediateAttributes(point); err != nil {
			return err
		}
	}

	return w.writeAttributes(attributesFrom(line.LastLine))
}

func (w *payloadWriter) writePointAlongLine(point PointAlongLine) error {
	first, last := point.Points[0], point.Points[1]

	if err := w.writeCoordinate(first.Coordinate); err != nil {
		return err
	}

	path := pathOrDefault(first)
	attributes := attributesFrom(first.Line).
		withLfrcnp(path.Lfrcnp).
		withOrientation(point.Orientation)
	if err := w.writeAttributes(attributes); err != nil {
		return err
	}
	w.writeDnp(path.Dnp)

	if _, err := w.writeRelativeCoordinate(last.Coordinate, first.Coordinate); err != nil {
		return err
	}

	attributes = attributesFrom(last.Line).
		withOffsets(PositiveOffsets(point.Offset)).
		withSide(point.Side)
	if err := w.writeAttributes(attributes); err != nil {
		return err
	}

	if attributes.posOffsetFlag() {
		if err := w.writeOffset(point.Offset); err != nil {
			return err
		}
	}

	return nil
}

func (w *payloadWriter) writePoi(poi Poi) error {
	if err := w.writePointAlongLine(poi.Point); err != nil {
		return err
	}
	_, err := w.writeRelativeCoordinate(poi.Coordinate, poi.Point.Points[0].Coordinate)
	return err
}

func (w *payloadWriter) writeCircle(circle Circle) error {
	if err := w.writeCoordinate(circle.Center); err != nil {
		return err
	}
	radius := radiusToBytes(circle.Radius)
	w.buf.Write(radius[:])
	return nil
}

func (w *payloadWriter) writeRectangle(rectangle Rectangle) error {
	if rectangle.LowerLeft.Equal(rectangle.UpperRight) {
		return ErrInvalidRectangle
	}

	if err := w.writeCoordinate(rectangle.LowerLeft); err != nil {
		return err
	}
	return w.writeCoordinate(rectangle.UpperRight)
}

func (w *payloadWriter) writeGrid(grid Grid) error {
	if err := w.writeRectangle(grid.Rect); err != nil {
		return err
	}
	size, err := gridSizeToBytes(grid.Size)
	if err != nil {
		return err
	}
	w.buf.Write(size[:])
	return nil
}

func (w *payloadWriter) writePolygon(polygon Polygon) error {
	if len(polygon.Corners) < 3 {
		return ErrInvalidPolygon
	}

	coordinate := polygon.Corners[0]
	if err := w.writeCoordinate(coordinate); err != nil {
		return err
	}

	for _, corner := range polygon.Corners[1:] {
		var err error
		coordinate, err = w.writeRelativeCoordinate(corner, coordinate)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeIntermediateAttributes writes the attribute pair and the DNP byte of
// a non-terminal point.
func (w *payloadWriter) writeIntermediateAttributes(point Point) error {
	path := pathOrDefault(point)
	attributes := attributesFrom(point.Line).withLfrcnp(path.Lfrcnp)
	if err := w.writeAttributes(attributes); err != nil {
		return err
	}
	w.writeDnp(path.Dnp)
	return nil
}

func (w *payloadWriter) writeCoordinate(coordinate Coordinate) error {
	lon := binary.DegreesToBytes(coordinate.Lon)
	lat := binary.DegreesToBytes(coordinate.Lat)
	w.buf.Write(lon[:])
	w.buf.Write(lat[:])
	return nil
}

func (w *payloadWriter) writeRelativeCoordinate(coordinate, previous Coordinate) (Coordinate, error) {
	lon := binary.RelativeDegreesToBytes(coordinate.Lon, previous.Lon)
	lat := binary.RelativeDegreesToBytes(coordinate.Lat, previous.Lat)
	w.buf.Write(lon[:])
	w.buf.Write(lat[:])
	return coordinate, nil
}

func (w *payloadWriter) writeAttributes(attributes encodedAttributes) error {
	bearing, err := bearingToByte(attributes.line.Bearing)
	if err != nil {
		return err
	}

	first := uint8(attributes.line.Fow) |
		uint8(attributes.line.Frc)<<3 |
		attributes.orientationOrSide<<6
	second := bearing | attributes.lfrcnpOrFlags<<5

	w.buf.WriteByte(first)
	w.buf.WriteByte(second)
	return nil
}

func (w *payloadWriter) writeDnp(dnp Length) {
	w.buf.WriteByte(dnpToByte(dnp))
}

func (w *payloadWriter) writeOffset(offset Offset) error {
	bucket, err := offsetToByte(offset)
	if err != nil {
		return err
	}
	w.buf.WriteByte(bucket)
	return nil
}

// pathOrDefault returns the point's path attributes, or zero attributes on a
// terminal point written in a non-terminal slot.
func pathOrDefault(point Point) PathAttributes {
	if point.Path == nil {
		return PathAttributes{}
	}
	return *point.Path
}
