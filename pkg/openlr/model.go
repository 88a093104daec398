package openlr

import (
	"fmt"
	"math"
)

// Frc is the Functional Road Class of a line, a road classification based on
// the importance of the road. The lower the value the more important the
// road.
type Frc uint8

const (
	// Frc0 is a main road of the highest importance.
	Frc0 Frc = iota
	// Frc1 is a first class road.
	Frc1
	// Frc2 is a second class road.
	Frc2
	// Frc3 is a third class road.
	Frc3
	// Frc4 is a fourth class road.
	Frc4
	// Frc5 is a fifth class road.
	Frc5
	// Frc6 is a sixth class road.
	Frc6
	// Frc7 is any other road, of the lowest importance.
	Frc7
)

// Value returns the class number; lower values mean higher importance.
func (f Frc) Value() int {
	return int(f)
}

// FrcFromValue returns the class for a numeric value, or false if the value
// is outside the 0..7 domain.
func FrcFromValue(value int) (Frc, bool) {
	if value < 0 || value > 7 {
		return Frc7, false
	}
	return Frc(value), true
}

// Variance estimates how much an FRC may differ from another class and still
// be considered equal during decoding. The higher the variance the more two
// classes can differ.
func (f Frc) Variance() int {
	if f <= Frc3 {
		return 2
	}
	return 3
}

// IsWithinVariance reports whether this class is at least as important as the
// other class relaxed by its variance.
func (f Frc) IsWithinVariance(other Frc) bool {
	return f.Value() <= other.Value()+other.Variance()
}

// Rating categorizes the similarity of two FRCs.
func (f Frc) Rating(other Frc) Rating {
	delta := f.Value() - other.Value()
	if delta < 0 {
		delta = -delta
	}

	switch {
	case delta <= 0:
		return RatingExcellent
	case delta <= 1:
		return RatingGood
	case delta <= 2:
		return RatingAverage
	default:
		return RatingPoor
	}
}

func (f Frc) String() string {
	return fmt.Sprintf("FRC%d", uint8(f))
}

// Fow is the Form of Way, describing the physical road type of a line.
type Fow uint8

const (
	// FowUndefined means the physical road type is unknown.
	FowUndefined Fow = iota
	// FowMotorway is a road for motorized vehicles only, with two or more
	// physically separated carriageways and no single level-crossings.
	FowMotorway
	// FowMultipleCarriageway is a road with physically separated
	// carriageways that is not a motorway.
	FowMultipleCarriageway
	// FowSingleCarriageway is any road without separate carriageways.
	FowSingleCarriageway
	// FowRoundabout is a ring road on which traffic travels in one
	// direction only.
	FowRoundabout
	// FowTrafficSquare is an open area (partly) enclosed by roads, used
	// for non-traffic purposes, which is not a roundabout.
	FowTrafficSquare
	// FowSlipRoad is a road designed to enter or leave a line.
	FowSlipRoad
	// FowOther is a known physical road type that fits no other category.
	FowOther
)

// Rating categorizes the similarity of two FOWs. The relation is symmetric.
func (f Fow) Rating(other Fow) Rating {
	if f == FowUndefined || other == FowUndefined {
		return RatingAverage
	}
	if f == other {
		return RatingExcellent
	}

	pair := func(a, b Fow) bool {
		return (f == a && other == b) || (f == b && other == a)
	}

	switch {
	case pair(FowMotorway, FowMultipleCarriageway):
		return RatingGood
	case pair(FowSingleCarriageway, FowMultipleCarriageway):
		return RatingGood
	case pair(FowSingleCarriageway, FowRoundabout),
		pair(FowSingleCarriageway, FowTrafficSquare),
		pair(FowRoundabout, FowMultipleCarriageway),
		pair(FowRoundabout, FowTrafficSquare):
		return RatingAverage
	default:
		return RatingPoor
	}
}

func (f Fow) String() string {
	switch f {
	case FowUndefined:
		return "Undefined"
	case FowMotorway:
		return "Motorway"
	case FowMultipleCarriageway:
		return "MultipleCarriageway"
	case FowSingleCarriageway:
		return "SingleCarriageway"
	case FowRoundabout:
		return "Roundabout"
	case FowTrafficSquare:
		return "TrafficSquare"
	case FowSlipRoad:
		return "SlipRoad"
	default:
		return "Other"
	}
}

// Rating is a similarity category used when scoring candidate lines.
type Rating uint8

const (
	// RatingExcellent means the attributes match.
	RatingExcellent Rating = iota
	// RatingGood means the attributes are close.
	RatingGood
	// RatingAverage means the attributes differ noticeably.
	RatingAverage
	// RatingPoor means the attributes do not match.
	RatingPoor
)

// frcRatingScore maps an FRC similarity category to its numeric score.
func frcRatingScore(r Rating) float64 {
	switch r {
	case RatingExcellent:
		return 100.0
	case RatingGood:
		return 75.0
	case RatingAverage:
		return 50.0
	default:
		return 0.0
	}
}

// fowRatingScore maps a FOW similarity category to its numeric score.
func fowRatingScore(r Rating) float64 {
	switch r {
	case RatingExcellent:
		return 100.0
	case RatingGood, RatingAverage:
		return 50.0
	default:
		return 25.0
	}
}

// bearingRatingScore maps a bearing similarity category to its numeric score.
func bearingRatingScore(r Rating) float64 {
	switch r {
	case RatingExcellent:
		return 100.0
	case RatingGood:
		return 50.0
	case RatingAverage:
		return 25.0
	default:
		return 0.0
	}
}

// SideOfRoad describes the relationship between a point of interest and a
// referenced line.
type SideOfRoad uint8

const (
	// SideOnRoadOrUnknown means the point is directly on (or above) the
	// road, or the determination of a side is not applicable.
	SideOnRoadOrUnknown SideOfRoad = iota
	// SideRight means the point is on the right side of the road.
	SideRight
	// SideLeft means the point is on the left side of the road.
	SideLeft
	// SideBoth means the point is on both sides of the road.
	SideBoth
)

// Orientation describes the relationship between a point of interest and the
// direction of a referenced line.
type Orientation uint8

const (
	// OrientationUnknown means the point has no sense of orientation, or
	// the determination of an orientation is not applicable.
	OrientationUnknown Orientation = iota
	// OrientationForward points from the first LRP towards the second.
	OrientationForward
	// OrientationBackward points from the second LRP towards the first.
	OrientationBackward
	// OrientationBoth points in both directions.
	OrientationBoth
)

// Length is a distance in meters.
type Length float64

const (
	// MaxLength is the largest representable length.
	MaxLength = Length(math.MaxFloat64)

	// MaxBinaryLRPDistance is the binary format version 3 ceiling on the
	// distance between two consecutive LRPs.
	MaxBinaryLRPDistance = Length(15000)
)

// Meters returns the length as a plain float64 of meters.
func (l Length) Meters() float64 {
	return float64(l)
}

// IsZero reports whether the length is exactly zero.
func (l Length) IsZero() bool {
	return l == 0
}

// Round returns the length rounded to whole meters.
func (l Length) Round() Length {
	return Length(math.Round(float64(l)))
}

// Clamp returns the length limited to the [min, max] interval.
func (l Length) Clamp(min, max Length) Length {
	if l < min {
		return min
	}
	if l > max {
		return max
	}
	return l
}

func (l Length) String() string {
	return fmt.Sprintf("%.1fm", float64(l))
}

// Bearing is the angle between true North and the road, in whole degrees
// within [0, 360).
type Bearing uint16

// BearingFromDegrees returns a bearing normalized into [0, 360).
func BearingFromDegrees(degrees uint16) Bearing {
	return Bearing(degrees % 360)
}

// Degrees returns the bearing in whole degrees.
func (b Bearing) Degrees() uint16 {
	return uint16(b)
}

// Difference returns the shortest arc between two bearings.
func (b Bearing) Difference(other Bearing) Bearing {
	delta := int(b) - int(other)
	if delta < 0 {
		delta = -delta
	}
	if delta > 180 {
		delta = 360 - delta
	}
	return BearingFromDegrees(uint16(delta))
}

// Rating categorizes the agreement of two bearings by their shortest arc.
func (b Bearing) Rating(other Bearing) Rating {
	switch difference := b.Difference(other).Degrees(); {
	case difference <= 6:
		return RatingExcellent
	case difference <= 12:
		return RatingGood
	case difference <= 18:
		return RatingAverage
	default:
		return RatingPoor
	}
}

// Coordinate is a pair of WGS84 longitude and latitude values in decimal
// degrees, specifying a geometric point in a digital map.
type Coordinate struct {
	Lon float64
	Lat float64
}

// CoordinateEpsilon is half the step of the 24-bit absolute coordinate
// representation (one step is 360/2^24 degrees).
const CoordinateEpsilon = 180.0 / (1 << 24)

// NewCoordinate builds a coordinate, rejecting values outside the WGS84
// domain.
func NewCoordinate(lon, lat float64) (Coordinate, error) {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return Coordinate{}, &InvalidCoordinateError{Lon: lon, Lat: lat}
	}
	return Coordinate{Lon: lon, Lat: lat}, nil
}

// Equal reports whether two coordinates are the same within the wire
// resolution.
func (c Coordinate) Equal(other Coordinate) bool {
	return math.Abs(c.Lon-other.Lon) <= CoordinateEpsilon &&
		math.Abs(c.Lat-other.Lat) <= CoordinateEpsilon
}

// LineAttributes are part of a location reference point and describe the
// outgoing road near that point: functional road class, form of way and
// bearing.
type LineAttributes struct {
	Frc     Frc
	Fow     Fow
	Bearing Bearing
}

// PathAttributes are part of every location reference point except the last
// one: the lowest functional road class to the next point and the distance
// to the next point.
type PathAttributes struct {
	// Lfrcnp is the lowest functional road class on the path to the next
	// point.
	Lfrcnp Frc
	// Dnp is the distance to the next point.
	Dnp Length
}

// Point is a location reference point (LRP). The basis of a location
// reference is a sequence of LRPs: each one binds a coordinate to line
// attributes of the road network, and all but the last also carry path
// attributes towards their successor.
type Point struct {
	Coordinate Coordinate
	Line       LineAttributes
	// Path is nil on the last point of a location reference.
	Path *PathAttributes
}

// IsLast reports whether this point is the last point of a location
// reference and therefore has no path attributes.
func (p Point) IsLast() bool {
	return p.Path == nil
}

// Lfrcnp returns the lowest FRC to the next point, or Frc7 on the last
// point.
func (p Point) Lfrcnp() Frc {
	if p.Path == nil {
		return Frc7
	}
	return p.Path.Lfrcnp
}

// Dnp returns the distance to the next point, or zero on the last point.
func (p Point) Dnp() Length {
	if p.Path == nil {
		return 0
	}
	return p.Path.Dnp
}

// Equal reports whether two points are the same within the wire resolution
// of their coordinates.
func (p Point) Equal(other Point) bool {
	if !p.Coordinate.Equal(other.Coordinate) || p.Line != other.Line {
		return false
	}
	if (p.Path == nil) != (other.Path == nil) {
		return false
	}
	return p.Path == nil || *p.Path == *other.Path
}

// Offset locates the start or end of a location more precisely than the
// bounding network nodes. The value is the fraction, in [0, 1], of a
// reference length.
type Offset float64

// OffsetEpsilon is half the step of the 8-bit offset representation (one
// step is 1/256).
const OffsetEpsilon = 0.5 / 256.0

// OffsetFromRange builds an offset from a fraction in [0, 1].
func OffsetFromRange(rng float64) Offset {
	return Offset(rng)
}

// OffsetFromBucket builds an offset decoded as the center of the addressed
// bucket.
func OffsetFromBucket(bucket uint8) Offset {
	return Offset((float64(bucket) + 0.5) / 256.0)
}

// OffsetRelative computes the relative offset of an absolute offset length
// against the length of the reference sub-path.
func OffsetRelative(offset, dnp Length) Offset {
	if offset.IsZero() || dnp.IsZero() {
		return 0
	}

	bucket := math.Floor(256.0 * offset.Meters() / dnp.Meters())
	if offset == dnp {
		bucket = 255
	}
	return OffsetFromBucket(uint8(bucket))
}

// Range returns the offset as a fraction of the reference length.
func (o Offset) Range() float64 {
	return float64(o)
}

// Equal reports whether two offsets are the same within the wire resolution.
func (o Offset) Equal(other Offset) bool {
	return math.Abs(float64(o)-float64(other)) <= OffsetEpsilon
}

// Offsets carries the positive offset (distance between the start of the
// location reference path and the start of the location) and the negative
// offset (distance between the end of the location and the end of the
// location reference path). A zero offset means the location is bound
// exactly to the network node.
type Offsets struct {
	Pos Offset
	Neg Offset
}

// PositiveOffsets builds offsets with only the positive part set.
func PositiveOffsets(offset Offset) Offsets {
	return Offsets{Pos: offset}
}

// DistanceFromStart returns the positive offset applied to a reference
// length, rounded to whole meters.
func (o Offsets) DistanceFromStart(length Length) Length {
	return Length(o.Pos.Range() * length.Meters()).Round()
}

// DistanceToEnd returns the negative offset applied to a reference length,
// rounded to whole meters.
func (o Offsets) DistanceToEnd(length Length) Length {
	return Length(o.Neg.Range() * length.Meters()).Round()
}

// Equal reports whether both offsets are the same within the wire
// resolution.
func (o Offsets) Equal(other Offsets) bool {
	return o.Pos.Equal(other.Pos) && o.Neg.Equal(other.Neg)
}
