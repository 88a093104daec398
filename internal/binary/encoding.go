// Package binary implements the numeric quantization rules of the OpenLR
// physical data format, version 3.
//
// The physical format packs geographic values into small fixed-width fields:
// absolute coordinates into 24 bits, coordinate deltas into 16 bits, bearings
// into 5-bit sectors, distances and offsets into 256 buckets. This package
// holds the pure conversions between engineering units (decimal degrees,
// meters, fractional ranges) and their wire representation. It knows nothing
// about byte layouts or location types; that is the caller's concern.
package binary

import (
	"encoding/binary"
	"math"
)

const (
	// CoordinateResolution is the bit width of an absolute coordinate field.
	CoordinateResolution = 24

	// decaMicroDegrees scales a coordinate delta to the 16-bit relative
	// representation (five decimal places).
	decaMicroDegrees = 100000.0

	// DistancePerInterval is the width in meters of one DNP bucket.
	// 256 buckets cover the maximum LRP distance of 15000m.
	DistancePerInterval = 58.6

	// BearingSector is the angular width in degrees of one bearing sector.
	// 32 sectors cover the full circle.
	BearingSector = 11.25

	// OffsetBuckets is the number of buckets an offset range is split into.
	OffsetBuckets = 256.0
)

// DegreesFromBytes returns decimal degrees from the big-endian 24-bit signed
// absolute coordinate representation.
func DegreesFromBytes(b [3]byte) float64 {
	sign := byte(0)
	if b[0]&0x80 != 0 {
		sign = 0xFF
	}
	raw := float64(int32(binary.BigEndian.Uint32([]byte{sign, b[0], b[1], b[2]})))
	return (raw - signum(raw)*0.5) * 360.0 / float64(int32(1)<<CoordinateResolution)
}

// DegreesToBytes returns the big-endian 24-bit signed representation of the
// given decimal degrees.
func DegreesToBytes(degrees float64) [3]byte {
	scaled := signum(degrees)*0.5 + degrees*float64(int32(1)<<CoordinateResolution)/360.0
	// keep the rounded value inside the signed 24-bit range so that -180 and
	// +180 do not wrap around to the opposite sign
	limit := float64(int32(1) << (CoordinateResolution - 1))
	raw := math.Max(-limit, math.Min(math.Round(scaled), limit-1))
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(int32(raw)))
	return [3]byte{buf[1], buf[2], buf[3]}
}

// RelativeDegreesFromBytes returns decimal degrees from the big-endian 16-bit
// signed delta representation, applied to the previous coordinate.
func RelativeDegreesFromBytes(b [2]byte, previous float64) float64 {
	delta := float64(int16(binary.BigEndian.Uint16(b[:])))
	return previous + delta/decaMicroDegrees
}

// RelativeDegreesToBytes returns the big-endian 16-bit signed delta between
// the given and the previous coordinate.
func RelativeDegreesToBytes(degrees, previous float64) [2]byte {
	delta := int16(math.Round(decaMicroDegrees * (degrees - previous)))
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(delta))
	return buf
}

// DNPFromByte returns the distance to the next LRP in meters, decoded as the
// center of the addressed bucket.
func DNPFromByte(b byte) float64 {
	return math.Round((float64(b) + 0.5) * DistancePerInterval)
}

// DNPToByte returns the bucket index for a distance to the next LRP,
// clamped into the representable range.
func DNPToByte(meters float64) byte {
	bucket := math.Round(meters/DistancePerInterval - 0.5)
	return byte(clamp(bucket, 0, 255))
}

// BearingFromByte returns whole degrees decoded as the center of the
// addressed bearing sector.
func BearingFromByte(b byte) uint16 {
	return uint16(math.Round(float64(b)*BearingSector + BearingSector/2.0))
}

// BearingToByte returns the sector index for a bearing in [0, 360).
// ok is false when the bearing is out of range.
func BearingToByte(degrees uint16) (sector byte, ok bool) {
	if degrees >= 360 {
		return 0, false
	}
	bucket := math.Round((float64(degrees) - BearingSector/2.0) / BearingSector)
	return byte(clamp(bucket, 0, 31)), true
}

// OffsetFromByte returns the offset range decoded as the center of the
// addressed bucket.
func OffsetFromByte(b byte) float64 {
	return (float64(b) + 0.5) / OffsetBuckets
}

// OffsetToByte returns the bucket index for an offset range in [0, 1).
// The zero range maps to bucket 0. ok is false when the range is out of
// bounds.
func OffsetToByte(rng float64) (bucket byte, ok bool) {
	if rng < 0.0 || rng >= 1.0 {
		return 0, false
	}
	if rng == 0.0 {
		return 0, true
	}
	return byte(clamp(math.Round(rng*OffsetBuckets-0.5), 0, 255)), true
}

// RadiusFromBytes returns a radius in meters from a big-endian slice of up to
// four bytes.
func RadiusFromBytes(b []byte) uint32 {
	var buf [4]byte
	copy(buf[4-len(b):], b)
	return binary.BigEndian.Uint32(buf[:])
}

// RadiusToBytes returns the big-endian four-byte representation of a radius.
func RadiusToBytes(meters uint32) [4]byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], meters)
	return buf
}

// GridSizeFromBytes unpacks the column and row counts of a grid.
func GridSizeFromBytes(b [4]byte) (columns, rows uint16) {
	columns = binary.BigEndian.Uint16(b[0:2])
	rows = binary.BigEndian.Uint16(b[2:4])
	return columns, rows
}

// GridSizeToBytes packs the column and row counts of a grid.
func GridSizeToBytes(columns, rows uint16) [4]byte {
	var buf [4]byte
	binary.BigEndian.PutUint16(buf[0:2], columns)
	binary.BigEndian.PutUint16(buf[2:4], rows)
	return buf
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1.0
	case v < 0:
		return -1.0
	default:
		return 0.0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
