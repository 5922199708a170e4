package output

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// CSVFormatter exports the result table as timestamp,min,max,avg rows.
// Rows keep the table's order.
type CSVFormatter struct {
	opts FormatOptions
}

// NewCSVFormatter creates a new CSV formatter with the given options.
func NewCSVFormatter(opts FormatOptions) *CSVFormatter {
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format writes the header and one line per row.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"timestamp"}, report.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{
			row.Timestamp.Format(time.RFC3339),
			formatFloat(row.Min),
			formatFloat(row.Max),
			formatFloat(row.Avg),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
