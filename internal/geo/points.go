// Package geo provides the spatial core: coordinate-column inference,
// point-in-polygon assignment, spherical area computation, and district
// dissolves. Everything operates on WGS84 longitude/latitude.
package geo

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/loader"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lon float64
	Lat float64
}

// Recognized coordinate column aliases, matched case-insensitively.
var (
	latAliases = []string{"lat", "latitude", "y"}
	lonAliases = []string{"lon", "lng", "long", "longitude", "x"}
)

// PointsFromTable extracts point locations from a tabular input. Coordinates
// come from explicit lat/lon columns under the recognized aliases, or from a
// WKT point geometry column when no coordinate pair resolves. Rows whose
// cells do not parse are dropped, not fatal. Returns a configuration error
// naming the expected alias sets when neither source can be located.
func PointsFromTable(tbl *loader.Table) ([]Point, error) {
	latIdx := findColumn(tbl, latAliases)
	lonIdx := findColumn(tbl, lonAliases)

	if latIdx >= 0 && lonIdx >= 0 {
		return pointsFromCoords(tbl, latIdx, lonIdx), nil
	}

	for _, name := range []string{"geometry", "geom", "wkt"} {
		if idx := tbl.Col(name); idx >= 0 {
			return pointsFromGeometry(tbl, idx), nil
		}
	}

	return nil, eris.Errorf(
		"geo: cannot locate coordinates in table %s: expected columns %s and %s, or a geometry column",
		tbl.Name, strings.Join(latAliases, "/"), strings.Join(lonAliases, "/"))
}

func findColumn(tbl *loader.Table, aliases []string) int {
	for _, a := range aliases {
		if idx := tbl.Col(a); idx >= 0 {
			return idx
		}
	}
	return -1
}

func pointsFromCoords(tbl *loader.Table, latIdx, lonIdx int) []Point {
	pts := make([]Point, 0, len(tbl.Rows))
	var dropped int
	for i := range tbl.Rows {
		lat, okLat := tbl.Float(i, latIdx)
		lon, okLon := tbl.Float(i, lonIdx)
		if !okLat || !okLon {
			dropped++
			continue
		}
		pts = append(pts, Point{Lon: lon, Lat: lat})
	}
	if dropped > 0 {
		zap.L().Debug("geo: dropped rows without parsable coordinates",
			zap.String("table", tbl.Name), zap.Int("dropped", dropped))
	}
	return pts
}

func pointsFromGeometry(tbl *loader.Table, idx int) []Point {
	pts := make([]Point, 0, len(tbl.Rows))
	var dropped int
	for i := range tbl.Rows {
		g, err := wkt.Unmarshal(tbl.Value(i, idx))
		if err != nil {
			dropped++
			continue
		}
		pt, ok := g.(*geom.Point)
		if !ok {
			dropped++
			continue
		}
		pts = append(pts, Point{Lon: pt.X(), Lat: pt.Y()})
	}
	if dropped > 0 {
		zap.L().Debug("geo: dropped rows without point geometry",
			zap.String("table", tbl.Name), zap.Int("dropped", dropped))
	}
	return pts
}
