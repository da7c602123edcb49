package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// readableRenames maps canonical column names to user-facing headers.
var readableRenames = map[string]string{
	"district_id":     "District ID",
	"district":        "District",
	"neighborhood_id": "Neighborhood ID",
	"neighborhood":    "Neighborhood",
	"area_km2":        "Area (km²)",

	"ubahn_stations":       "U-Bahn stations",
	"bus_tram_stops":       "Bus/Tram stops",
	"total_stops":          "Transit stops total",
	"connectivity_density": "Transit density (/km²)",
	"mobility_score":       "Mobility score (0–100)",
	"mobility_label":       "Mobility label",

	"green_area_km2":    "Green area (km²)",
	"green_share":       "Green share (0–1)",
	"green_share_label": "Green label",

	"n_playgrounds":             "Playgrounds",
	"playgrounds_per_km2":       "Playgrounds density (/km²)",
	"playgrounds_density_label": "Playgrounds label",

	"n_venues":        "Venues",
	"venues_per_km2":  "Venues density (/km²)",
	"n_cuisine_types": "Cuisine types (national)",
	"V_score":         "V score (0–100)",
	"C_score":         "C score (0–100)",
	"VV_index":        "Vibrancy index (0–100)",
	"vibrancy_label":  "Vibrancy label",
}

// ReadableHeader renames canonical columns to their user-facing names,
// leaving unknown columns untouched.
func ReadableHeader(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		if renamed, ok := readableRenames[strings.TrimSpace(c)]; ok {
			out[i] = renamed
		} else {
			out[i] = c
		}
	}
	return out
}

// WriteReadableCSV writes rows with user-friendly column headers. Data cells
// are unchanged; only the header line is renamed.
func WriteReadableCSV(path string, rows interface{}) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrapf(err, "pipeline: marshal readable csv %s", path)
	}

	head, tail, found := bytes.Cut(data, []byte("\n"))
	if found {
		cols := strings.Split(strings.TrimRight(string(head), "\r"), ",")
		head = []byte(strings.Join(quoteReadable(ReadableHeader(cols)), ","))
		data = append(append(head, '\n'), tail...)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "pipeline: mkdir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write %s", path)
	}
	return nil
}

func quoteReadable(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		if strings.ContainsAny(c, ",\"") {
			out[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
		} else {
			out[i] = c
		}
	}
	return out
}
