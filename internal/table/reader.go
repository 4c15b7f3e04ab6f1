package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Reader streams rows from a tab- or comma-separated table with a header
// row. The delimiter is chosen by extension: .csv is comma, everything
// else is tab.
type Reader struct {
	path   string
	file   *os.File
	csv    *csv.Reader
	header []string
	index  map[string]int
	line   int
}

// Open opens a delimited table and reads its header row.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}

	r := &Reader{path: path, file: file}
	r.csv = csv.NewReader(file)
	r.csv.Comma = '\t'
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		r.csv.Comma = ','
	}
	r.csv.FieldsPerRecord = -1
	r.csv.LazyQuotes = true

	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) readHeader() error {
	record, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return &ParseError{Path: r.path, Line: 0, Message: "no header line found"}
		}
		return fmt.Errorf("read header: %w", err)
	}
	r.line++

	// Tolerate a UTF-8 BOM on the first header cell.
	if len(record) > 0 {
		record[0] = strings.TrimPrefix(record[0], "\ufeff")
	}

	r.header = record
	r.index = make(map[string]int, len(record))
	for i, col := range record {
		r.index[strings.TrimSpace(col)] = i
	}
	return nil
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	return r.header
}

// HasColumn reports whether the header contains the named column.
func (r *Reader) HasColumn(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Require verifies that every named column is present. A missing column
// is a fatal schema error naming the column and listing what is available.
func (r *Reader) Require(cols ...string) error {
	for _, col := range cols {
		if !r.HasColumn(col) {
			return &ParseError{
				Path: r.path,
				Line: 1,
				Message: fmt.Sprintf("required column %q not found; available: %s",
					col, strings.Join(r.header, ", ")),
			}
		}
	}
	return nil
}

// Next returns the next data row, or nil at end of input.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return Row{}, nil
		}
		return Row{}, &ParseError{Path: r.path, Line: r.line + 1, Message: err.Error()}
	}
	r.line++
	return Row{fields: record, index: r.index}, nil
}

// Line returns the line number of the most recently read row.
func (r *Reader) Line() int {
	return r.line
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Row is a single data row indexed by the table header.
type Row struct {
	fields []string
	index  map[string]int
}

// Valid reports whether the row holds data (false at end of input).
func (row Row) Valid() bool {
	return row.fields != nil
}

// Get returns the trimmed value of the named column, or "" when the
// column is absent or the row is short.
func (row Row) Get(col string) string {
	i, ok := row.index[col]
	if !ok || i >= len(row.fields) {
		return ""
	}
	return strings.TrimSpace(row.fields[i])
}

// Int64 parses the named column as an integer, accepting float notation
// ("900.0"). Absent or unparsable values are 0.
func (row Row) Int64(col string) int64 {
	f, err := strconv.ParseFloat(row.Get(col), 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

// Float parses the named column as a float. Absent or unparsable values
// are 0.
func (row Row) Float(col string) float64 {
	f, err := strconv.ParseFloat(row.Get(col), 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseError reports a table schema or parse failure with file context.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", filepath.Base(e.Path), e.Line, e.Message)
}
