package geo

import (
	"github.com/twpayne/go-geom"
)

// Assignment pairs a point with the polygon that contains it.
type Assignment struct {
	PointIndex  int
	RegionIndex int
}

// Region is a polygon with a caller-supplied index used to key results.
type Region struct {
	Index int
	Geom  *geom.MultiPolygon
}

// AssignPoints returns the (point, region) pairs where the point falls
// within the region, evaluated planar on longitude/latitude. Polygons are
// assumed non-overlapping: each point is paired with the first containing
// region in input order, and behavior under overlapping polygons is
// unspecified. Points outside every region are excluded, not errors.
func AssignPoints(regions []Region, points []Point) []Assignment {
	var out []Assignment
	for pi, p := range points {
		for _, r := range regions {
			if Contains(r.Geom, p) {
				out = append(out, Assignment{PointIndex: pi, RegionIndex: r.Index})
				break
			}
		}
	}
	return out
}

// CountByRegion tallies assigned points per region index.
func CountByRegion(assignments []Assignment) map[int]int {
	counts := make(map[int]int)
	for _, a := range assignments {
		counts[a.RegionIndex]++
	}
	return counts
}

// Contains reports whether the point lies within the multipolygon, using
// even-odd ray casting per polygon so holes are respected. Boundary points
// are not guaranteed either way.
func Contains(mp *geom.MultiPolygon, p Point) bool {
	if mp == nil {
		return false
	}
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		crossings := 0
		for j := 0; j < poly.NumLinearRings(); j++ {
			crossings += ringCrossings(poly.LinearRing(j), p)
		}
		if crossings%2 == 1 {
			return true
		}
	}
	return false
}

// ringCrossings counts how many ring edges a rightward ray from p crosses.
func ringCrossings(ring *geom.LinearRing, p Point) int {
	flat := ring.FlatCoords()
	stride := ring.Stride()
	n := len(flat) / stride
	if n < 3 {
		return 0
	}

	count := 0
	for i := 0; i < n; i++ {
		x1, y1 := flat[i*stride], flat[i*stride+1]
		next := (i + 1) % n
		x2, y2 := flat[next*stride], flat[next*stride+1]

		if (y1 > p.Lat) == (y2 > p.Lat) {
			continue
		}
		xCross := x1 + (p.Lat-y1)/(y2-y1)*(x2-x1)
		if xCross > p.Lon {
			count++
		}
	}
	return count
}
