// Package parser reads water-system log files and converts their lines into
// min/max/avg result tables.
package parser

import (
	"errors"
	"fmt"

	"github.com/gobioeng/halog/pkg/table"
)

// DefaultProgressInterval is how many lines pass between progress reports.
const DefaultProgressInterval = 1000

// ProgressFunc receives a completion percentage in [0,100].
// It must not block.
type ProgressFunc func(percent int)

// Report calls f if it is non-nil.
func (f ProgressFunc) Report(percent int) {
	if f != nil {
		f(percent)
	}
}

var (
	// ErrNoRecords is returned when no line or row produced a record.
	ErrNoRecords = errors.New("no records parsed")

	// ErrMissingColumns is returned when a CSV header lacks a timestamp or value column.
	ErrMissingColumns = errors.New("timestamp or value column not found")

	// ErrNonFinite is returned for NaN or infinite readings.
	ErrNonFinite = errors.New("value is not a finite number")
)

// ReadError reports a failure to read the file itself, as opposed to a
// problem with its content.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Parsed is the output of a successful parse.
type Parsed struct {
	// Table holds the result rows.
	Table *table.Table

	// LinesRead is the number of lines (or CSV data rows) examined.
	LinesRead int

	// Records is the number of observations accepted before aggregation.
	Records int
}

// Option configures a parser.
type Option func(*options)

type options struct {
	progressInterval int
}

// WithProgressInterval sets the number of lines between progress reports.
func WithProgressInterval(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.progressInterval = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{progressInterval: DefaultProgressInterval}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// lineProgress maps line i of total into the 10-90 range.
func lineProgress(i, total int) int {
	if total <= 0 {
		return 10
	}
	return 10 + 80*i/total
}
