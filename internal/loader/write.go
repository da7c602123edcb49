package loader

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/annap-test/Berlin-App/internal/model"
)

// WriteCSV marshals a slice of row structs to a CSV file, creating parent
// directories as needed. Nil pointer cells serialize as blanks.
func WriteCSV(path string, rows interface{}) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrapf(err, "loader: marshal csv %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "loader: mkdir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "loader: write %s", path)
	}
	return nil
}

// ReadRows unmarshals a CSV file written by WriteCSV back into a slice of
// row structs. Blank cells come back as nil pointers.
func ReadRows(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "loader: read %s", path)
	}
	if err := csvutil.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "loader: unmarshal csv %s", path)
	}
	return nil
}

// WriteNeighborhoodsGeoJSON writes the polygon base layer, with canonical
// keys and areas attached, as a GeoJSON FeatureCollection.
func WriteNeighborhoodsGeoJSON(path string, neighborhoods []model.Neighborhood) error {
	fc := geojson.FeatureCollection{}
	for i := range neighborhoods {
		n := &neighborhoods[i]
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: n.Geom,
			Properties: map[string]interface{}{
				"district_id":        n.DistrictID,
				"district":           n.District,
				"neighborhood_id":    n.NeighborhoodID,
				"neighborhood":       n.Name,
				"neighborhood_canon": n.Canon,
				"area_km2":           n.AreaKm2,
				"area_eff_km2":       n.AreaEffKm2,
			},
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return eris.Wrapf(err, "loader: marshal geojson %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "loader: mkdir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "loader: write %s", path)
	}
	return nil
}
