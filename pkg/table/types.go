// Package table provides the time-indexed min/max/avg result table and the
// aggregation that reduces raw observations into it.
package table

import "time"

// Column names of a result table, in display order.
const (
	ColumnMin = "min"
	ColumnMax = "max"
	ColumnAvg = "avg"
)

// Point is a single raw observation read from a log line.
type Point struct {
	// Timestamp is when the observation was recorded.
	Timestamp time.Time

	// Parameter is the measured quantity (e.g. pump_pressure), if the format names one.
	Parameter string

	// Value is the observed reading.
	Value float64
}

// Row is one reduced line of the result table.
type Row struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Min       float64   `json:"min" yaml:"min"`
	Max       float64   `json:"max" yaml:"max"`
	Avg       float64   `json:"avg" yaml:"avg"`
}

// Table is an ordered sequence of rows keyed by timestamp.
// Timestamps are not required to be unique or sorted.
type Table struct {
	Rows []Row `json:"rows" yaml:"rows"`
}

// New creates a table holding the given rows.
func New(rows []Row) *Table {
	return &Table{Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Columns returns the numeric column names.
func (t *Table) Columns() []string {
	return []string{ColumnMin, ColumnMax, ColumnAvg}
}

// Append adds a row to the end of the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}
