package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/annap-test/Berlin-App/internal/loader"
)

// squareAt builds a MultiPolygon square of side degrees around (lon, lat).
func squareAt(lon, lat, side float64) *geom.MultiPolygon {
	h := side / 2
	mp := geom.NewMultiPolygon(geom.XY)
	poly := geom.NewPolygon(geom.XY)
	poly.MustSetCoords([][]geom.Coord{{
		{lon - h, lat - h}, {lon + h, lat - h}, {lon + h, lat + h}, {lon - h, lat + h}, {lon - h, lat - h},
	}})
	_ = mp.Push(poly)
	return mp
}

func TestContains(t *testing.T) {
	sq := squareAt(13.4, 52.5, 0.1)

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"center", Point{Lon: 13.4, Lat: 52.5}, true},
		{"inside near edge", Point{Lon: 13.449, Lat: 52.5}, true},
		{"outside east", Point{Lon: 13.46, Lat: 52.5}, false},
		{"outside north", Point{Lon: 13.4, Lat: 52.56}, false},
		{"far away", Point{Lon: 0, Lat: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Contains(sq, tt.p))
		})
	}
}

func TestContains_RespectsHoles(t *testing.T) {
	mp := geom.NewMultiPolygon(geom.XY)
	poly := geom.NewPolygon(geom.XY)
	poly.MustSetCoords([][]geom.Coord{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	})
	require.NoError(t, mp.Push(poly))

	assert.True(t, Contains(mp, Point{Lon: 2, Lat: 2}))
	assert.False(t, Contains(mp, Point{Lon: 5, Lat: 5}), "point in the hole is outside")
	assert.False(t, Contains(mp, Point{Lon: 11, Lat: 5}))
}

func TestContains_NilPolygon(t *testing.T) {
	assert.False(t, Contains(nil, Point{Lon: 1, Lat: 1}))
}

func TestAssignPoints_FirstRegionWins(t *testing.T) {
	regions := []Region{
		{Index: 0, Geom: squareAt(13.0, 52.0, 0.5)},
		{Index: 1, Geom: squareAt(14.0, 52.0, 0.5)},
	}
	points := []Point{
		{Lon: 13.0, Lat: 52.0},
		{Lon: 14.0, Lat: 52.0},
		{Lon: 20.0, Lat: 52.0}, // outside both, silently dropped
		{Lon: 14.1, Lat: 52.1},
	}

	got := AssignPoints(regions, points)
	assert.Equal(t, []Assignment{
		{PointIndex: 0, RegionIndex: 0},
		{PointIndex: 1, RegionIndex: 1},
		{PointIndex: 3, RegionIndex: 1},
	}, got)

	counts := CountByRegion(got)
	assert.Equal(t, map[int]int{0: 1, 1: 2}, counts)
}

func TestAreaKm2_UnitSquareNearBerlin(t *testing.T) {
	// Roughly 1 km on a side at Berlin's latitude: 1/111.32 deg of latitude
	// and the same arc of longitude widened by 1/cos(52.5 deg).
	const dLat = 1.0 / 111.32
	dLon := dLat / 0.60876 // cos(52.5 deg)

	mp := geom.NewMultiPolygon(geom.XY)
	poly := geom.NewPolygon(geom.XY)
	poly.MustSetCoords([][]geom.Coord{{
		{13.4, 52.5}, {13.4 + dLon, 52.5}, {13.4 + dLon, 52.5 + dLat}, {13.4, 52.5 + dLat}, {13.4, 52.5},
	}})
	require.NoError(t, mp.Push(poly))

	area := AreaKm2(mp)
	assert.InDelta(t, 1.0, area, 0.05, "1 km square should measure ~1 km2, got %v", area)
}

func TestAreaKm2_SubtractsHoles(t *testing.T) {
	const dLat = 1.0 / 111.32
	dLon := dLat / 0.60876

	full := geom.NewMultiPolygon(geom.XY)
	poly := geom.NewPolygon(geom.XY)
	poly.MustSetCoords([][]geom.Coord{
		{{13.4, 52.5}, {13.4 + 2*dLon, 52.5}, {13.4 + 2*dLon, 52.5 + 2*dLat}, {13.4, 52.5 + 2*dLat}, {13.4, 52.5}},
		{{13.4 + 0.5*dLon, 52.5 + 0.5*dLat}, {13.4 + 1.5*dLon, 52.5 + 0.5*dLat}, {13.4 + 1.5*dLon, 52.5 + 1.5*dLat}, {13.4 + 0.5*dLon, 52.5 + 1.5*dLat}, {13.4 + 0.5*dLon, 52.5 + 0.5*dLat}},
	})
	require.NoError(t, full.Push(poly))

	// 2x2 outer minus 1x1 hole leaves ~3 km2.
	assert.InDelta(t, 3.0, AreaKm2(full), 0.15)
}

func TestEffectiveAreaKm2(t *testing.T) {
	assert.Equal(t, 0.20, EffectiveAreaKm2(0.05, 0.20))
	assert.Equal(t, 1.5, EffectiveAreaKm2(1.5, 0.20))
	assert.Equal(t, 0.20, EffectiveAreaKm2(0.20, 0.20))
}

func TestPointsFromTable_CoordinateAliases(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{"lat lon", []string{"lat", "lon"}},
		{"latitude longitude", []string{"latitude", "longitude"}},
		{"upper case Y X", []string{"Y", "X"}},
		{"lng variant", []string{"Lat", "lng"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := &loader.Table{
				Name:    "stops",
				Columns: tt.columns,
				Rows:    [][]string{{"52.5", "13.4"}},
			}
			pts, err := PointsFromTable(tbl)
			require.NoError(t, err)
			require.Len(t, pts, 1)
			assert.Equal(t, Point{Lon: 13.4, Lat: 52.5}, pts[0])
		})
	}
}

func TestPointsFromTable_WKTGeometry(t *testing.T) {
	tbl := &loader.Table{
		Name:    "stops",
		Columns: []string{"name", "geometry"},
		Rows: [][]string{
			{"a", "POINT (13.4 52.5)"},
			{"b", "not wkt"},
		},
	}
	pts, err := PointsFromTable(tbl)
	require.NoError(t, err)
	require.Len(t, pts, 1, "malformed geometry rows are dropped")
	assert.InDelta(t, 13.4, pts[0].Lon, 1e-9)
	assert.InDelta(t, 52.5, pts[0].Lat, 1e-9)
}

func TestPointsFromTable_MissingCoordinates(t *testing.T) {
	tbl := &loader.Table{
		Name:    "stops",
		Columns: []string{"name", "address"},
		Rows:    [][]string{{"a", "b"}},
	}
	_, err := PointsFromTable(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lat")
	assert.Contains(t, err.Error(), "lon")
}

func TestPointsFromTable_DropsUnparsableRows(t *testing.T) {
	tbl := &loader.Table{
		Name:    "stops",
		Columns: []string{"lat", "lon"},
		Rows: [][]string{
			{"52.5", "13.4"},
			{"", "13.4"},
			{"abc", "13.4"},
		},
	}
	pts, err := PointsFromTable(tbl)
	require.NoError(t, err)
	assert.Len(t, pts, 1)
}
