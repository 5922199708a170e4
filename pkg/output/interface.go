package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Formatter renders processing results in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, yaml, csv, chart).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose includes every row in text output.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool

	// Width and Height size the chart, in terminal cells.
	Width  int
	Height int
}

// Formats lists the names accepted by NewFormatter.
func Formats() []string {
	return []string{"text", "json", "yaml", "csv", "chart"}
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch strings.ToLower(name) {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "yaml", "yml":
		return NewYAMLFormatter(opts), nil
	case "csv":
		return NewCSVFormatter(opts), nil
	case "chart":
		return NewChartFormatter(opts), nil
	default:
		return nil, fmt.Errorf("invalid output format %q (must be one of: %s)", name, strings.Join(Formats(), ", "))
	}
}
