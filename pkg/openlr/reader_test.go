package openlr

import (
	"errors"
	"testing"
)

func mustDeserialize(t *testing.T, code string) LocationReference {
	t.Helper()

	location, err := DeserializeBase64(code)
	if err != nil {
		t.Fatalf("DeserializeBase64(%q): %v", code, err)
	}
	return location
}

func TestDeserializeRejectsVersion1(t *testing.T) {
	_, err := DeserializeBase64("CQcm6yX4vTPGFwM7AskzCw==")

	var unsupported *UnsupportedVersionError
	if !errors.As(err, &unsupported) || unsupported.Version != 1 {
		t.Fatalf("err = %v, want unsupported version 1", err)
	}
}

func TestDeserializeRejectsVersion2(t *testing.T) {
	_, err := DeserializeBase64("CgRbWyNG9BpsCQCb/jsbtAT/6/+jK1kC")

	var unsupported *UnsupportedVersionError
	if !errors.As(err, &unsupported) || unsupported.Version != 2 {
		t.Fatalf("err = %v, want unsupported version 2", err)
	}
}

func TestDeserializeRejectsInvalidHeader(t *testing.T) {
	_, err := DeserializeBase64("ewGkNSK5Wg==")

	var invalid *InvalidHeaderError
	if !errors.As(err, &invalid) || invalid.Header != 0b01111011 {
		t.Fatalf("err = %v, want invalid header 0b01111011", err)
	}
}

func TestDeserializeRejectsBadBase64(t *testing.T) {
	if _, err := DeserializeBase64("not/base64!"); !errors.Is(err, ErrInvalidBase64) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidBase64)
	}
}

func TestDeserializeRejectsShortPayload(t *testing.T) {
	if _, err := Deserialize(nil); !errors.Is(err, ErrShortRead) {
		t.Fatalf("empty payload err = %v, want %v", err, ErrShortRead)
	}

	// a line header with a truncated body
	if _, err := Deserialize([]byte{0x0B, 0x04, 0x5B}); !errors.Is(err, ErrShortRead) {
		t.Fatalf("truncated payload err = %v, want %v", err, ErrShortRead)
	}
}

func TestDeserializeLineWithPositiveOffset(t *testing.T) {
	location := mustDeserialize(t, "CwRbWyNG9RpsCQCb/jsbtAT/6/+jK1lE")

	want := Line{
		Points: []Point{
			{
				Coordinate: Coordinate{Lon: 6.1268198, Lat: 49.6085178},
				Line: LineAttributes{
					Frc:     Frc3,
					Fow:     FowMultipleCarriageway,
					Bearing: BearingFromDegrees(141),
				},
				Path: &PathAttributes{Lfrcnp: Frc3, Dnp: 557},
			},
			{
				Coordinate: Coordinate{Lon: 6.1283698, Lat: 49.6039878},
				Line: LineAttributes{
					Frc:     Frc3,
					Fow:     FowSingleCarriageway,
					Bearing: BearingFromDegrees(231),
				},
				Path: &PathAttributes{Lfrcnp: Frc5, Dnp: 264},
			},
			{
				Coordinate: Coordinate{Lon: 6.1281598, Lat: 49.6030578},
				Line: LineAttributes{
					Frc:     Frc5,
					Fow:     FowSingleCarriageway,
					Bearing: BearingFromDegrees(287),
				},
			},
		},
		Offsets: Offsets{Pos: OffsetFromRange(0.26757812)},
	}

	line, ok := location.(Line)
	if !ok {
		t.Fatalf("location = %T, want Line", location)
	}
	if !line.Equal(want) {
		t.Errorf("line = %+v, want %+v", line, want)
	}
}

func TestDeserializeLineWithNegativeOffset(t *testing.T) {
	location := mustDeserialize(t, "CwB67CGukRxiCACyAbwaMXU=")

	want := Line{
		Points: []Point{
			{
				Coordinate: Coordinate{Lon: 0.6752192, Lat: 47.3651611},
				Line: LineAttributes{
					Frc:     Frc3,
					Fow:     FowRoundabout,
					Bearing: BearingFromDegrees(28),
				},
				Path: &PathAttributes{Lfrcnp: Frc3, Dnp: 498},
			},
			{
				Coordinate: Coordinate{Lon: 0.6769992, Lat: 47.3696011},
				Line: LineAttributes{
					Frc:     Frc3,
					Fow:     FowMultipleCarriageway,
					Bearing: BearingFromDegrees(197),
				},
			},
		},
		Offsets: Offsets{Neg: OffsetFromRange(0.45898438)},
	}

	line, ok := location.(Line)
	if !ok {
		t.Fatalf("location = %T, want Line", location)
	}
	if !line.Equal(want) {
		t.Errorf("line = %+v, want %+v", line, want)
	}
}

func TestDeserializeDegenerateLine(t *testing.T) {
	location := mustDeserialize(t, "CwcX6CItqAs6AQAAAAALGg==")

	line, ok := location.(Line)
	if !ok {
		t.Fatalf("location = %T, want Line", location)
	}

	if len(line.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(line.Points))
	}
	if !line.Points[0].Coordinate.Equal(line.Points[1].Coordinate) {
		t.Error("both points sit on the same coordinate")
	}
	if line.Points[0].Dnp() != 88 {
		t.Errorf("dnp = %v, want 88", line.Points[0].Dnp())
	}
}

func TestDeserializeGeoCoordinate(t *testing.T) {
	location := mustDeserialize(t, "I+djotZ9eA==")

	coordinate, ok := location.(GeoCoordinate)
	if !ok {
		t.Fatalf("location = %T, want GeoCoordinate", location)
	}
	if !coordinate.Coordinate.Equal(Coordinate{Lon: -34.6089398, Lat: -58.3732688}) {
		t.Errorf("coordinate = %+v", coordinate)
	}
}

func TestDeserializePointAlongLine(t *testing.T) {
	location := mustDeserialize(t, "K/6P+SKSuBJGGAUn/1gSUyM=")

	point, ok := location.(PointAlongLine)
	if !ok {
		t.Fatalf("location = %T, want PointAlongLine", location)
	}

	want := PointAlongLine{
		Points: [2]Point{
			{
				Coordinate: Coordinate{Lon: -2.0216238, Lat: 48.6184394},
				Line: LineAttributes{
					Frc:     Frc2,
					Fow:     FowMultipleCarriageway,
					Bearing: BearingFromDegrees(73),
				},
				Path: &PathAttributes{Lfrcnp: Frc2, Dnp: 1436},
			},
			{
				Coordinate: Coordinate{Lon: -2.0084338, Lat: 48.6167594},
				Line: LineAttributes{
					Frc:     Frc2,
					Fow:     FowMultipleCarriageway,
					Bearing: BearingFromDegrees(219),
				},
			},
		},
		Offset:      OffsetFromRange(0.13867188),
		Orientation: OrientationUnknown,
		Side:        SideOnRoadOrUnknown,
	}

	if !point.Equal(want) {
		t.Errorf("point = %+v, want %+v", point, want)
	}
}

func TestDeserializePoi(t *testing.T) {
	location := mustDeserialize(t, "KwOg5iUNnCOTAv+D/5QjQ1j/gP/r")

	poi, ok := location.(Poi)
	if !ok {
		t.Fatalf("location = %T, want Poi", location)
	}

	if !poi.Point.Points[0].Coordinate.Equal(Coordinate{Lon: 5.1025807, Lat: 52.1059978}) {
		t.Errorf("access point = %+v", poi.Point.Points[0].Coordinate)
	}
	if !poi.Coordinate.Equal(Coordinate{Lon: 5.1013007, Lat: 52.1057878}) {
		t.Errorf("poi = %+v", poi.Coordinate)
	}
	if !poi.Point.Offset.Equal(OffsetFromRange(0.34570312)) {
		t.Errorf("offset = %v", poi.Point.Offset)
	}
}

func TestDeserializeCircle(t *testing.T) {
	location := mustDeserialize(t, "AwOgxCUNmwEs")

	circle, ok := location.(Circle)
	if !ok {
		t.Fatalf("location = %T, want Circle", location)
	}
	if !circle.Center.Equal(Coordinate{Lon: 5.1018512, Lat: 52.1059763}) {
		t.Errorf("center = %+v", circle.Center)
	}
	if circle.Radius != 300 {
		t.Errorf("radius = %v, want 300", circle.Radius)
	}

	location = mustDeserialize(t, "A/2lJCfIiAfQ")
	circle = location.(Circle)
	if circle.Radius != 2000 {
		t.Errorf("radius = %v, want 2000", circle.Radius)
	}
}

func TestDeserializeRectangle(t *testing.T) {
	// large rectangle with two absolute corners
	location := mustDeserialize(t, "Qxl5HRKFDR33oB/agA==")

	rectangle, ok := location.(Rectangle)
	if !ok {
		t.Fatalf("location = %T, want Rectangle", location)
	}
	if !rectangle.LowerLeft.Equal(Coordinate{Lon: 35.8215343, Lat: 26.0433590}) {
		t.Errorf("lower left = %+v", rectangle.LowerLeft)
	}
	if !rectangle.UpperRight.Equal(Coordinate{Lon: 42.1414840, Lat: 44.7939956}) {
		t.Errorf("upper right = %+v", rectangle.UpperRight)
	}

	// standard rectangle with a relative second corner
	location = mustDeserialize(t, "QwOgcSUNGgGIAX8=")
	rectangle = location.(Rectangle)
	if !rectangle.LowerLeft.Equal(Coordinate{Lon: 5.1000702, Lat: 52.1032083}) {
		t.Errorf("lower left = %+v", rectangle.LowerLeft)
	}
	if !rectangle.UpperRight.Equal(Coordinate{Lon: 5.1039902, Lat: 52.1070383}) {
		t.Errorf("upper right = %+v", rectangle.UpperRight)
	}
}

func TestDeserializeGrid(t *testing.T) {
	// large grid with two absolute corners
	location := mustDeserialize(t, "Q/xfwiMc5QsGuyx13wILASg=")

	grid, ok := location.(Grid)
	if !ok {
		t.Fatalf("location = %T, want Grid", location)
	}
	if grid.Size != (GridSize{Columns: 523, Rows: 296}) {
		t.Errorf("size = %+v", grid.Size)
	}
	if !grid.Rect.LowerLeft.Equal(Coordinate{Lon: -5.0989758, Lat: 49.3774616}) {
		t.Errorf("lower left = %+v", grid.Rect.LowerLeft)
	}

	// standard grid with a relative second corner
	location = mustDeserialize(t, "QwOgNiUM5wFVANsAAwAC")
	grid = location.(Grid)
	if grid.Size != (GridSize{Columns: 3, Rows: 2}) {
		t.Errorf("size = %+v", grid.Size)
	}
	if !grid.Rect.UpperRight.Equal(Coordinate{Lon: 5.1022142, Lat: 52.1043039}) {
		t.Errorf("upper right = %+v", grid.Rect.UpperRight)
	}
}

func TestDeserializePolygon(t *testing.T) {
	location := mustDeserialize(t, "EwOgUCUNEwJFAH//yAEv/vIAxw==")

	polygon, ok := location.(Polygon)
	if !ok {
		t.Fatalf("location = %T, want Polygon", location)
	}

	want := []Coordinate{
		{Lon: 5.0993621, Lat: 52.1030580},
		{Lon: 5.1051721, Lat: 52.1043280},
		{Lon: 5.1046171, Lat: 52.1073541},
		{Lon: 5.1019192, Lat: 52.1093396},
	}

	if len(polygon.Corners) != len(want) {
		t.Fatalf("corners = %d, want %d", len(polygon.Corners), len(want))
	}
	for i := range want {
		if !polygon.Corners[i].Equal(want[i]) {
			t.Errorf("corner %d = %+v, want %+v", i, polygon.Corners[i], want[i])
		}
	}
}

func TestDeserializeClosedLine(t *testing.T) {
	location := mustDeserialize(t, "WwRboCNGfhJrBAAJ/zkb9AgTFQ==")

	line, ok := location.(ClosedLine)
	if !ok {
		t.Fatalf("location = %T, want ClosedLine", location)
	}

	if len(line.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(line.Points))
	}
	if !line.Points[0].Coordinate.Equal(Coordinate{Lon: 6.1283004, Lat: 49.6059644}) {
		t.Errorf("first point = %+v", line.Points[0].Coordinate)
	}
	if line.Points[0].Dnp() != 264 || line.Points[1].Dnp() != 498 {
		t.Errorf("dnps = %v, %v", line.Points[0].Dnp(), line.Points[1].Dnp())
	}
	if line.Points[1].Lfrcnp() != Frc7 {
		t.Errorf("second lfrcnp = %v, want FRC7", line.Points[1].Lfrcnp())
	}

	want := LineAttributes{
		Frc:     Frc2,
		Fow:     FowSingleCarriageway,
		Bearing: BearingFromDegrees(242),
	}
	if line.LastLine != want {
		t.Errorf("last line = %+v, want %+v", line.LastLine, want)
	}
}
