package loader

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
)

// CSVOptions configures the CSV table reader.
type CSVOptions struct {
	Delimiter rune   // 0 = sniff ';' vs ',' from the header line
	Encoding  string // "", "utf-8", or "latin1" (ISO 8859-1, common in German open data)
}

// ReadCSVTable reads a CSV file into a Table. The first row is the header.
func ReadCSVTable(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	switch strings.ToLower(opts.Encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1":
		r = charmap.ISO8859_1.NewDecoder().Reader(f)
	default:
		return nil, eris.Errorf("loader: unsupported encoding %q (expected utf-8 or latin1)", opts.Encoding)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{Name: filepath.Base(path)}, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read header of %s", path)
	}

	// Sniff semicolon-delimited files: a single header cell containing ';'
	// means the default comma split did not apply.
	if opts.Delimiter == 0 && len(header) == 1 && strings.Contains(header[0], ";") {
		o := opts
		o.Delimiter = ';'
		return ReadCSVTable(path, o)
	}

	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	tbl := &Table{Name: filepath.Base(path), Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "loader: read row of %s", path)
		}
		tbl.Rows = append(tbl.Rows, record)
	}
	return tbl, nil
}
