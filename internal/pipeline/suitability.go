package pipeline

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/annap-test/Berlin-App/internal/config"
	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/score"
)

// WeightProfile is a user weight configuration: feature identifiers mapped
// to importances in [0,100].
type WeightProfile struct {
	Level   string             `yaml:"level"`
	Weights map[string]float64 `yaml:"weights"`
}

// LoadWeightProfile reads a YAML weight profile.
func LoadWeightProfile(path string) (*WeightProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: read weight profile %s", path)
	}
	var wp WeightProfile
	if err := yaml.Unmarshal(data, &wp); err != nil {
		return nil, eris.Wrapf(err, "pipeline: parse weight profile %s", path)
	}
	return &wp, nil
}

// Suitability computes the composite score per table row: for each selected
// feature, the (polarity-adjusted) metric column is percentile-rescaled to
// 0-100, multiplied by weight/100, and summed. Rows missing a feature's
// value contribute 0 for that feature. Zero selected features yields zero
// everywhere. The sum is deliberately not renormalized by total selected
// weight: more weight on a feature means proportionally more influence, at
// the cost of comparability across weight configurations.
func Suitability(tbl *loader.Table, weights map[string]float64, scoring config.ScoringConfig) ([]float64, error) {
	fs := AvailableFeatures(tbl.Columns)

	composite := make([]float64, len(tbl.Rows))
	ids := make([]string, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		w := weights[id]
		if _, known := featureByID(id); !known {
			return nil, eris.Errorf("pipeline: unknown feature %q (known: %s)",
				id, strings.Join(catalogIDs(), ", "))
		}
		if w < 0 || w > 100 {
			return nil, eris.Errorf("pipeline: weight for %q must be in [0,100], got %v", id, w)
		}
		if w == 0 {
			continue
		}

		col, ok := fs[id]
		if !ok {
			return nil, eris.Errorf("pipeline: feature %q not available in table %s (available: %s)",
				id, tbl.Name, strings.Join(fs.IDs(), ", "))
		}

		feature, _ := featureByID(id)
		values := columnFloats(tbl, tbl.Col(col))
		if feature.Invert {
			for i, v := range values {
				values[i] = -v
			}
		}

		scores := score.PercentileScore(values, scoring.PercentileLo, scoring.PercentileHi)
		for i, s := range scores {
			if math.IsNaN(s) {
				continue
			}
			composite[i] += s * w / 100
		}
	}
	return composite, nil
}

func columnFloats(tbl *loader.Table, idx int) []float64 {
	out := make([]float64, len(tbl.Rows))
	for i := range tbl.Rows {
		v, ok := tbl.Float(i, idx)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

// WriteSuitabilityCSV writes the input table with a suitability column
// appended. NaN scores serialize as blank cells.
func WriteSuitabilityCSV(path string, tbl *loader.Table, scores []float64) error {
	if len(scores) != len(tbl.Rows) {
		return eris.Errorf("pipeline: %d scores for %d rows", len(scores), len(tbl.Rows))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "pipeline: mkdir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "pipeline: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append(append([]string{}, tbl.Columns...), "suitability")); err != nil {
		return eris.Wrapf(err, "pipeline: write %s", path)
	}
	for i, row := range tbl.Rows {
		cell := ""
		if !math.IsNaN(scores[i]) {
			cell = strconv.FormatFloat(scores[i], 'f', -1, 64)
		}
		if err := w.Write(append(append([]string{}, row...), cell)); err != nil {
			return eris.Wrapf(err, "pipeline: write %s", path)
		}
	}
	w.Flush()
	return eris.Wrapf(w.Error(), "pipeline: flush %s", path)
}

func catalogIDs() []string {
	ids := make([]string, len(Catalog))
	for i, f := range Catalog {
		ids[i] = f.ID
	}
	return ids
}
