// Package loader owns the file boundary: reading tabular inputs (CSV, XLSX),
// polygon layers (GeoJSON, shapefile, CSV with WKT/WKB geometry), and writing
// the pipeline's CSV and GeoJSON outputs. The core packages consume abstract
// tables and records and never touch files.
package loader

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Table is a raw tabular input: a header and string-valued rows. Column
// lookups are case-insensitive.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Col returns the index of the named column, matched case-insensitively,
// or -1 if absent.
func (t *Table) Col(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return i
		}
	}
	return -1
}

// Require verifies the named columns are present and returns a schema error
// naming every missing column. Theme builders call this before computing.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if t.Col(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("loader: table %s missing required columns: %s",
			t.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Value returns the cell at row i, column idx, or "" when the row is short.
func (t *Table) Value(i, idx int) string {
	if idx < 0 || idx >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][idx])
}

// Float parses the cell at row i, column idx. Returns ok=false for blank or
// unparsable cells; malformed numerics degrade to missing, they do not abort.
func (t *Table) Float(i, idx int) (float64, bool) {
	s := t.Value(i, idx)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Signature identifies a loaded file's content for caching: path plus
// modification signature.
type Signature struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// FileSignature stats the file and returns its content signature.
func FileSignature(path string) (Signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Signature{}, eris.Wrapf(err, "loader: stat %s", path)
	}
	return Signature{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}
