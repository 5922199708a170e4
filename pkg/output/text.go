package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const textTimeLayout = "2006-01-02 15:04:05"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "HALog: %s, %s, %d records (%s)\n",
		displayName(report),
		report.Metadata.Format,
		report.Summary.Records,
		sourceLabel(report))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)
	warn := r.NewStyle().Foreground(lipgloss.Color("3"))

	// Header
	fmt.Fprintln(w, heading.Render("=== HALog Processing Report ==="))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "File:          %s\n", displayName(report))
	fmt.Fprintf(w, "Format:        %s\n", report.Metadata.Format)
	if report.IsSample() {
		fmt.Fprintf(w, "Source:        %s\n", warn.Render(sourceLabel(report)))
	} else {
		fmt.Fprintf(w, "Source:        %s\n", sourceLabel(report))
	}
	fmt.Fprintln(w)

	// Summary
	s := report.Summary
	fmt.Fprintf(w, "Records:       %d\n", s.Records)
	fmt.Fprintf(w, "Columns:       %s\n", strings.Join(report.Columns, ", "))
	if s.Records > 0 {
		fmt.Fprintf(w, "Date range:    %s to %s\n", s.Start.Format(textTimeLayout), s.End.Format(textTimeLayout))
		fmt.Fprintf(w, "Average range: %.2f - %.2f\n", s.AvgLow, s.AvgHigh)
		fmt.Fprintf(w, "Min value:     %.2f\n", s.MinValue)
		fmt.Fprintf(w, "Max value:     %.2f\n", s.MaxValue)
	}

	if f.opts.Verbose {
		fmt.Fprintln(w)
		if report.Metadata.RunID != "" {
			fmt.Fprintf(w, "Run ID:        %s\n", report.Metadata.RunID)
		}
		fmt.Fprintf(w, "Lines read:    %d\n", report.Metadata.LinesRead)
		fmt.Fprintf(w, "Duration:      %s\n", report.Metadata.Duration.Round(1e6))
		fmt.Fprintln(w)
		f.formatRows(report, heading, w)
	}

	return nil
}

func (f *TextFormatter) formatRows(report *Report, heading lipgloss.Style, w io.Writer) {
	fmt.Fprintln(w, heading.Render(fmt.Sprintf("%-19s  %10s  %10s  %10s", "timestamp", "min", "max", "avg")))
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%-19s  %10.2f  %10.2f  %10.2f\n",
			row.Timestamp.Format(textTimeLayout), row.Min, row.Max, row.Avg)
	}
}

func displayName(report *Report) string {
	if report.Metadata.File == "" {
		return "(generated)"
	}
	return report.Metadata.File
}

func sourceLabel(report *Report) string {
	if !report.IsSample() {
		return SourceParsed
	}
	if report.Metadata.FallbackReason != "" {
		return fmt.Sprintf("sample data (%s)", report.Metadata.FallbackReason)
	}
	return "sample data"
}
