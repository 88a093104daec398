package openlr

import (
	"github.com/beetlebugorg/openlr/internal/binary"
)

// encodedAttributes is the unpacked form of the two attribute bytes that
// accompany every LRP on the wire. The three spare bits of the second byte
// carry the LFRCNP on intermediate points and the offset flags on the
// terminal point; the two spare bits of the first byte carry the
// orientation or the side of road on point locations.
type encodedAttributes struct {
	line              LineAttributes
	lfrcnpOrFlags     uint8
	orientationOrSide uint8
}

func attributesFrom(line LineAttributes) encodedAttributes {
	return encodedAttributes{line: line}
}

func (a encodedAttributes) withLfrcnp(lfrcnp Frc) encodedAttributes {
	a.lfrcnpOrFlags = uint8(lfrcnp)
	return a
}

func (a encodedAttributes) withOffsets(offsets Offsets) encodedAttributes {
	var flags uint8
	if offsets.Pos.Range() > 0 {
		flags |= 0b10
	}
	if offsets.Neg.Range() > 0 {
		flags |= 0b01
	}
	a.lfrcnpOrFlags = flags
	return a
}

func (a encodedAttributes) withOrientation(orientation Orientation) encodedAttributes {
	a.orientationOrSide = uint8(orientation)
	return a
}

func (a encodedAttributes) withSide(side SideOfRoad) encodedAttributes {
	a.orientationOrSide = uint8(side)
	return a
}

func (a encodedAttributes) lfrcnp() (Frc, error) {
	return frcFromByte(a.lfrcnpOrFlags)
}

func (a encodedAttributes) posOffsetFlag() bool {
	return a.lfrcnpOrFlags&0b10 != 0
}

func (a encodedAttributes) negOffsetFlag() bool {
	return a.lfrcnpOrFlags&0b01 != 0
}

func (a encodedAttributes) orientation() (Orientation, error) {
	return orientationFromByte(a.orientationOrSide)
}

func (a encodedAttributes) side() (SideOfRoad, error) {
	return sideOfRoadFromByte(a.orientationOrSide)
}

func frcFromByte(b uint8) (Frc, error) {
	if b > 7 {
		return Frc7, &InvalidFrcError{Value: b}
	}
	return Frc(b), nil
}

func fowFromByte(b uint8) (Fow, error) {
	if b > 7 {
		return FowOther, &InvalidFowError{Value: b}
	}
	return Fow(b), nil
}

func orientationFromByte(b uint8) (Orientation, error) {
	if b > 3 {
		return OrientationUnknown, &InvalidOrientationError{Value: b}
	}
	return Orientation(b), nil
}

func sideOfRoadFromByte(b uint8) (SideOfRoad, error) {
	if b > 3 {
		return SideOnRoadOrUnknown, &InvalidSideOfRoadError{Value: b}
	}
	return SideOfRoad(b), nil
}

func bearingFromByte(b uint8) Bearing {
	return BearingFromDegrees(binary.BearingFromByte(b))
}

func bearingToByte(b Bearing) (byte, error) {
	sector, ok := binary.BearingToByte(b.Degrees())
	if !ok {
		return 0, &InvalidBearingError{Degrees: b.Degrees()}
	}
	return sector, nil
}

func offsetFromByte(b uint8) Offset {
	return OffsetFromRange(binary.OffsetFromByte(b))
}

func offsetToByte(o Offset) (byte, error) {
	bucket, ok := binary.OffsetToByte(o.Range())
	if !ok {
		return 0, &InvalidOffsetError{Range: o.Range()}
	}
	return bucket, nil
}

func dnpFromByte(b uint8) Length {
	return Length(binary.DNPFromByte(b))
}

func dnpToByte(dnp Length) byte {
	return binary.DNPToByte(dnp.Meters())
}

func radiusFromBytes(b []byte) Length {
	return Length(binary.RadiusFromBytes(b))
}

func radiusToBytes(radius Length) [4]byte {
	return binary.RadiusToBytes(uint32(radius.Meters()))
}

func gridSizeFromBytes(b [4]byte) GridSize {
	columns, rows := binary.GridSizeFromBytes(b)
	return GridSize{Columns: columns, Rows: rows}
}

func gridSizeToBytes(size GridSize) ([4]byte, error) {
	if size.Columns < 2 || size.Rows < 2 {
		return [4]byte{}, ErrInvalidGridSize
	}
	return binary.GridSizeToBytes(size.Columns, size.Rows), nil
}
