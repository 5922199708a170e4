package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/table"
)

// csvProgress is reported once the whole file has been read.
const csvProgress = 50

var (
	timestampColumnHints = []string{"time", "date"}
	valueColumnHints     = []string{"value", "measure"}
)

// CSVParser reads a headed CSV file with one timestamp column and one value
// column and aggregates the values per timestamp.
//
// Every error it returns is a content error: the caller is expected to fall
// back to sample data rather than surface it.
type CSVParser struct {
	opts options
}

// NewCSVParser creates a simple_csv parser.
func NewCSVParser(opts ...Option) *CSVParser {
	return &CSVParser{opts: buildOptions(opts)}
}

// Format returns detector.FormatSimpleCSV.
func (p *CSVParser) Format() detector.Format {
	return detector.FormatSimpleCSV
}

// Columns locates the timestamp and value columns in a header row.
// A column claimed as the timestamp is not considered for the value role.
func Columns(header []string) (tsCol, valCol int, err error) {
	tsCol, valCol = -1, -1
	for i, name := range header {
		lower := strings.ToLower(strings.TrimSpace(name))
		switch {
		case tsCol < 0 && containsAny(lower, timestampColumnHints):
			tsCol = i
		case valCol < 0 && containsAny(lower, valueColumnHints) && !containsAny(lower, timestampColumnHints):
			valCol = i
		}
	}

	if tsCol < 0 || valCol < 0 {
		return -1, -1, ErrMissingColumns
	}
	return tsCol, valCol, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Parse reads the file and returns one aggregated row per distinct timestamp.
func (p *CSVParser) Parse(ctx context.Context, path string, progress ProgressFunc) (*Parsed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	progress.Report(csvProgress)

	r := csv.NewReader(strings.NewReader(content))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	tsCol, valCol, err := Columns(header)
	if err != nil {
		return nil, err
	}

	var points []table.Point
	rows := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", rows+1, err)
		}
		rows++

		ts, err := ParseTimestamp(record[tsCol])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", rows, err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[valCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: parsing value %q: %w", rows, record[valCol], err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("csv row %d: %w: %q", rows, ErrNonFinite, record[valCol])
		}

		points = append(points, table.Point{
			Timestamp: ts,
			Parameter: header[valCol],
			Value:     value,
		})
	}

	parsed := &Parsed{Table: table.Aggregate(points), LinesRead: rows, Records: len(points)}
	if len(points) == 0 {
		return parsed, ErrNoRecords
	}
	return parsed, nil
}
