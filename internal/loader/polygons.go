package loader

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/model"
)

// geometryColumns are the recognized geometry column names for CSV polygon
// inputs, holding hex-encoded WKB or WKT.
var geometryColumns = []string{"geometry", "wkb", "wkt", "geom"}

// LoadPolygons reads a polygon layer into neighborhoods. GeoJSON, shapefile,
// and CSV-with-geometry-column inputs are supported. Canonical keys and
// areas are attached later by the pipeline.
func LoadPolygons(path string) ([]model.Neighborhood, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return loadGeoJSON(path)
	case ".shp":
		return loadShapefile(path)
	case ".csv":
		return loadGeometryCSV(path)
	default:
		return nil, eris.Errorf("loader: unsupported polygon format %q (expected .geojson, .json, .shp, or .csv)", filepath.Ext(path))
	}
}

func loadGeoJSON(path string) ([]model.Neighborhood, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read %s", path)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "loader: parse geojson %s", path)
	}

	var out []model.Neighborhood
	var skipped int
	for _, feat := range fc.Features {
		mp := ToMultiPolygon(feat.Geometry)
		if mp == nil {
			skipped++
			continue
		}
		out = append(out, model.Neighborhood{
			DistrictID:     propString(feat.Properties, "district_id"),
			District:       propString(feat.Properties, "district"),
			NeighborhoodID: propString(feat.Properties, "neighborhood_id"),
			Name:           propString(feat.Properties, "neighborhood"),
			Geom:           mp,
		})
	}
	if skipped > 0 {
		zap.L().Debug("loader: skipped non-polygon features",
			zap.String("path", path), zap.Int("skipped", skipped))
	}
	return out, nil
}

func loadShapefile(path string) ([]model.Neighborhood, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}
	attr := func(name string) string {
		idx, ok := fieldIdx[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
	}

	var out []model.Neighborhood
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp := shpPolygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}
		out = append(out, model.Neighborhood{
			DistrictID:     attr("district_id"),
			District:       attr("district"),
			NeighborhoodID: attr("neighborhood_id"),
			Name:           attr("neighborhood"),
			Geom:           mp,
		})
	}
	if skipped > 0 {
		zap.L().Debug("loader: skipped shapefile records",
			zap.String("path", path), zap.Int("skipped", skipped))
	}
	return out, nil
}

func loadGeometryCSV(path string) ([]model.Neighborhood, error) {
	tbl, err := ReadCSVTable(path, CSVOptions{})
	if err != nil {
		return nil, err
	}

	geomIdx := -1
	for _, name := range geometryColumns {
		if idx := tbl.Col(name); idx >= 0 {
			geomIdx = idx
			break
		}
	}
	if geomIdx < 0 {
		return nil, eris.Errorf("loader: csv polygons %s must include a geometry column (one of %s)",
			path, strings.Join(geometryColumns, ", "))
	}

	distIdx := tbl.Col("district_id")
	distNameIdx := tbl.Col("district")
	idIdx := tbl.Col("neighborhood_id")
	nameIdx := tbl.Col("neighborhood")

	var out []model.Neighborhood
	for i := range tbl.Rows {
		g, err := parseGeometry(tbl.Value(i, geomIdx))
		if err != nil {
			return nil, eris.Wrapf(err, "loader: parse geometry in %s row %d", path, i+1)
		}
		mp := ToMultiPolygon(g)
		if mp == nil {
			continue
		}
		out = append(out, model.Neighborhood{
			DistrictID:     tbl.Value(i, distIdx),
			District:       tbl.Value(i, distNameIdx),
			NeighborhoodID: tbl.Value(i, idIdx),
			Name:           tbl.Value(i, nameIdx),
			Geom:           mp,
		})
	}
	return out, nil
}

// parseGeometry decodes a geometry cell, trying hex WKB first and falling
// back to WKT.
func parseGeometry(s string) (geom.T, error) {
	if s == "" {
		return nil, eris.New("loader: empty geometry cell")
	}
	if raw, err := hex.DecodeString(s); err == nil {
		if g, err := wkb.Unmarshal(raw); err == nil {
			return g, nil
		}
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, eris.Wrap(err, "loader: geometry is neither hex WKB nor WKT")
	}
	return g, nil
}

// ToMultiPolygon normalizes a geometry to a multipolygon. Returns nil for
// non-areal geometries.
func ToMultiPolygon(g geom.T) *geom.MultiPolygon {
	switch t := g.(type) {
	case *geom.MultiPolygon:
		return t
	case *geom.Polygon:
		mp := geom.NewMultiPolygon(t.Layout())
		if t.SRID() != 0 {
			mp.SetSRID(t.SRID())
		}
		if err := mp.Push(t); err != nil {
			return nil
		}
		return mp
	default:
		return nil
	}
}

// shpPolygonToMultiPolygon converts a shapefile polygon to a go-geom
// multipolygon. Shapefile parts are treated as independent outer rings,
// which is sufficient for hole-free administrative boundaries.
func shpPolygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("loader: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("loader: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

func propString(props map[string]interface{}, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(strings.Trim(strconvQuote(t), `"`))
	}
}

func strconvQuote(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
