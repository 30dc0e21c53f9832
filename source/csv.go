// Package source reads the movies and credits CSV exports into memory.
package source

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Required columns. Other columns are optional and read with defaults.
var (
	MovieColumns  = []string{"id", "title", "release_date"}
	CreditColumns = []string{"movie_id", "cast", "crew"}
)

// ErrMissingColumn is returned when a file lacks a required header.
var ErrMissingColumn = errors.New("missing required column")

// Row is one data row addressed by header name.
type Row struct {
	header map[string]int
	fields []string
}

// Lookup returns the value of col and whether the file has that column.
// A short (ragged) row yields "" for trailing columns.
func (r Row) Lookup(col string) (string, bool) {
	i, ok := r.header[col]
	if !ok {
		return "", false
	}
	if i >= len(r.fields) {
		return "", true
	}
	return r.fields[i], true
}

// Get returns the value of col, or "" when absent.
func (r Row) Get(col string) string {
	v, _ := r.Lookup(col)
	return v
}

// GetOr returns the value of col, or def when the file has no such column.
func (r Row) GetOr(col, def string) string {
	if v, ok := r.Lookup(col); ok {
		return v
	}
	return def
}

// NewRow builds a Row from parallel header and field slices.
func NewRow(header, fields []string) Row {
	return Row{header: index(header), fields: fields}
}

// RowFromMap builds a single Row from column values.
func RowFromMap(values map[string]string) Row {
	header := make([]string, 0, len(values))
	fields := make([]string, 0, len(values))
	for k, v := range values {
		header = append(header, k)
		fields = append(fields, v)
	}
	return NewRow(header, fields)
}

// ReadMovies returns every movie row in file order.
func ReadMovies(path string) ([]Row, error) {
	return readFile(path, MovieColumns)
}

// ReadCredits returns credit rows indexed by movie_id. A later row for the
// same movie replaces an earlier one.
func ReadCredits(path string) (map[string]Row, error) {
	rows, err := readFile(path, CreditColumns)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Row, len(rows))
	for _, r := range rows {
		byID[r.Get("movie_id")] = r
	}
	return byID, nil
}

func readFile(path string, required []string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	defer f.Close()

	rows, err := Read(f, required)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return rows, nil
}

// Read parses CSV with a header row from r and checks required columns.
func Read(r io.Reader, required []string) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty file: no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	idx := index(header)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "%q", col)
		}
	}

	var rows []Row
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading row %d", len(rows)+1)
		}
		rows = append(rows, Row{header: idx, fields: fields})
	}
	return rows, nil
}

func index(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}
