// Package dataset provides the data plumbing around the estimators: CSV
// parsing, the Iris and toy datasets, synthetic generators and a seeded
// train/test split. Estimators never import it.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// Table is a parsed CSV document.
type Table struct {
	Header []string
	Rows   [][]string
}

type csvConfig struct {
	delimiter rune
	hasHeader bool
	trim      bool
}

// CSVOption configures ParseCSV.
type CSVOption func(*csvConfig)

// WithDelimiter sets the field separator (default ',').
func WithDelimiter(d rune) CSVOption {
	return func(c *csvConfig) { c.delimiter = d }
}

// WithHeader sets whether the first record is a header (default true).
func WithHeader(hasHeader bool) CSVOption {
	return func(c *csvConfig) { c.hasHeader = hasHeader }
}

// WithTrim sets whether surrounding whitespace is stripped from every field
// (default true).
func WithTrim(trim bool) CSVOption {
	return func(c *csvConfig) { c.trim = trim }
}

// ParseCSV reads delimited text. Quoted fields may contain the delimiter and
// "" for a literal quote. Blank lines are skipped and rows may differ in
// length.
//
// A quote inside an unquoted field is kept literally and does not start a
// quoted section: a"b,c" yields the two fields a"b and c".
func ParseCSV(r io.Reader, opts ...CSVOption) (*Table, error) {
	cfg := csvConfig{delimiter: ',', hasHeader: true, trim: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = cfg.trim

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset: parse csv")
	}

	if cfg.trim {
		for _, rec := range records {
			for i := range rec {
				rec[i] = strings.TrimSpace(rec[i])
			}
		}
	}

	table := &Table{Rows: records}
	if cfg.hasHeader && len(records) > 0 {
		table.Header = records[0]
		table.Rows = records[1:]
	}
	if table.Rows == nil {
		table.Rows = [][]string{}
	}
	return table, nil
}

// ReadCSVFile opens path and parses it with ParseCSV.
func ReadCSVFile(path string, opts ...CSVOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()
	return ParseCSV(f, opts...)
}

// ToFloatRows converts every field to float64. The first unparsable field is
// reported with its row and column.
func ToFloatRows(rows [][]string) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: row %d column %d", i, j)
			}
			out[i][j] = f
		}
	}
	return out, nil
}
