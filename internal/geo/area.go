package geo

import (
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0088

// AreaKm2 computes the true area of a multipolygon in square kilometers on
// the sphere: outer ring areas minus hole areas. Input coordinates are WGS84
// longitude/latitude.
func AreaKm2(mp *geom.MultiPolygon) float64 {
	if mp == nil {
		return 0
	}
	var total float64
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			a := ringAreaKm2(poly.LinearRing(j))
			if j == 0 {
				total += a
			} else {
				total -= a
			}
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// EffectiveAreaKm2 floors an area at the configured minimum so densities of
// tiny polygons do not blow up.
func EffectiveAreaKm2(areaKm2, floorKm2 float64) float64 {
	if areaKm2 < floorKm2 {
		return floorKm2
	}
	return areaKm2
}

func ringAreaKm2(ring *geom.LinearRing) float64 {
	flat := ring.FlatCoords()
	stride := ring.Stride()
	n := len(flat) / stride
	if n < 3 {
		return 0
	}

	pts := make([]s2.Point, 0, n)
	for i := 0; i < n; i++ {
		lon, lat := flat[i*stride], flat[i*stride+1]
		// Skip the duplicated closing vertex; s2 loops are implicitly closed.
		if i == n-1 && lon == flat[0] && lat == flat[1] {
			break
		}
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))
	}
	if len(pts) < 3 {
		return 0
	}

	loop := s2.LoopFromPoints(pts)
	// Normalize picks the interpretation bounding the smaller area, so ring
	// orientation does not matter.
	loop.Normalize()
	return loop.Area() * EarthRadiusKm * EarthRadiusKm
}
