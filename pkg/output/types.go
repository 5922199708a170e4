// Package output provides formatting and output generation for processing results.
package output

import (
	"time"

	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/processor"
	"github.com/gobioeng/halog/pkg/table"
)

// Source values for Metadata.Source.
const (
	SourceParsed = "parsed"
	SourceSample = "sample"
)

// Report is the complete processing output.
type Report struct {
	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata" yaml:"metadata"`

	// Summary provides aggregate statistics over the table.
	Summary table.Summary `json:"summary" yaml:"summary"`

	// Columns lists the numeric columns of each row.
	Columns []string `json:"columns" yaml:"columns"`

	// Rows is the result table in its original order.
	Rows []table.Row `json:"rows" yaml:"rows"`
}

// Metadata provides context about a processing run.
type Metadata struct {
	RunID          string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	File           string          `json:"file,omitempty" yaml:"file,omitempty"`
	ConfigFile     string          `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	Format         detector.Format `json:"format" yaml:"format"`
	Source         string          `json:"source" yaml:"source"`
	FallbackReason string          `json:"fallback_reason,omitempty" yaml:"fallback_reason,omitempty"`
	LinesRead      int             `json:"lines_read" yaml:"lines_read"`
	Records        int             `json:"records" yaml:"records"`
	GeneratedAt    time.Time       `json:"generated_at" yaml:"generated_at"`
	Duration       time.Duration   `json:"duration_ns" yaml:"duration"`
}

// NewReport creates a Report from a processing result.
func NewReport(res *processor.Result, configFile string) *Report {
	source := SourceParsed
	if res.Fallback {
		source = SourceSample
	}

	return &Report{
		Metadata: Metadata{
			RunID:          res.RunID,
			File:           res.Path,
			ConfigFile:     configFile,
			Format:         res.Format,
			Source:         source,
			FallbackReason: res.FallbackReason,
			LinesRead:      res.LinesRead,
			Records:        res.Records,
			GeneratedAt:    time.Now().UTC(),
			Duration:       res.Duration,
		},
		Summary: res.Table.Summary(),
		Columns: res.Table.Columns(),
		Rows:    res.Table.Rows,
	}
}

// NewTableReport creates a Report for a table that did not come from a file,
// such as generated sample data.
func NewTableReport(tbl *table.Table, source string) *Report {
	return &Report{
		Metadata: Metadata{
			Format:      detector.FormatUnknown,
			Source:      source,
			Records:     tbl.Len(),
			GeneratedAt: time.Now().UTC(),
		},
		Summary: tbl.Summary(),
		Columns: tbl.Columns(),
		Rows:    tbl.Rows,
	}
}

// IsSample reports whether the rows are synthetic.
func (r *Report) IsSample() bool {
	return r.Metadata.Source == SourceSample
}
