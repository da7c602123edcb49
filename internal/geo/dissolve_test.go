package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/annap-test/Berlin-App/internal/model"
)

func TestDissolveByDistrict(t *testing.T) {
	neighborhoods := []model.Neighborhood{
		{DistrictID: "02", District: "Friedrichshain-Kreuzberg", Canon: "a", Geom: squareAt(13.4, 52.5, 0.01), AreaKm2: 1.2},
		{DistrictID: "01", District: "Mitte", Canon: "b", Geom: squareAt(13.3, 52.5, 0.01), AreaKm2: 0.8},
		{DistrictID: "02", District: "Friedrichshain-Kreuzberg", Canon: "c", Geom: squareAt(13.5, 52.5, 0.01), AreaKm2: 2.0},
	}

	districts := DissolveByDistrict(neighborhoods, 0.20)
	require.Len(t, districts, 2)

	// Sorted by district_id.
	assert.Equal(t, "01", districts[0].DistrictID)
	assert.Equal(t, "Mitte", districts[0].District)
	assert.InDelta(t, 0.8, districts[0].AreaKm2, 1e-9)
	assert.Equal(t, 1, districts[0].Geom.NumPolygons())

	assert.Equal(t, "02", districts[1].DistrictID)
	assert.InDelta(t, 3.2, districts[1].AreaKm2, 1e-9)
	assert.Equal(t, 2, districts[1].Geom.NumPolygons(), "member polygons collected, not averaged")
	assert.InDelta(t, 3.2, districts[1].AreaEffKm2, 1e-9)
}

func TestDissolveByDistrict_AppliesFloorToSum(t *testing.T) {
	neighborhoods := []model.Neighborhood{
		{DistrictID: "01", District: "Mitte", AreaKm2: 0.05},
		{DistrictID: "01", District: "Mitte", AreaKm2: 0.05},
	}
	districts := DissolveByDistrict(neighborhoods, 0.20)
	require.Len(t, districts, 1)
	assert.InDelta(t, 0.10, districts[0].AreaKm2, 1e-9)
	assert.InDelta(t, 0.20, districts[0].AreaEffKm2, 1e-9)
}

func TestDissolveByDistrict_FlattensThreeDimensionalMembers(t *testing.T) {
	mp := geom.NewMultiPolygon(geom.XYZ)
	poly := geom.NewPolygon(geom.XYZ)
	poly.MustSetCoords([][]geom.Coord{{
		{13.4, 52.5, 34.0}, {13.41, 52.5, 34.0}, {13.41, 52.51, 34.0}, {13.4, 52.51, 34.0}, {13.4, 52.5, 34.0},
	}})
	require.NoError(t, mp.Push(poly))
	neighborhoods := []model.Neighborhood{
		{DistrictID: "01", District: "Mitte", Canon: "a", Geom: mp, AreaKm2: 0.5},
	}

	districts := DissolveByDistrict(neighborhoods, 0.20)
	require.Len(t, districts, 1)
	require.Equal(t, 1, districts[0].Geom.NumPolygons(), "3D member geometry must not be dropped")
	assert.Equal(t, geom.XY, districts[0].Geom.Layout())
	assert.Equal(t, []float64{13.4, 52.5}, districts[0].Geom.Polygon(0).LinearRing(0).FlatCoords()[:2])
	assert.InDelta(t, 0.5, districts[0].AreaKm2, 1e-9)
}

func TestDissolveByDistrict_DoesNotMutateMembers(t *testing.T) {
	n := model.Neighborhood{DistrictID: "01", District: "Mitte", Geom: squareAt(13.4, 52.5, 0.01), AreaKm2: 1.0}
	before := n.Geom.NumPolygons()
	_ = DissolveByDistrict([]model.Neighborhood{n}, 0.20)
	assert.Equal(t, before, n.Geom.NumPolygons())
}
