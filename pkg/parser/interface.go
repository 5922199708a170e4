package parser

import (
	"context"

	"github.com/gobioeng/halog/pkg/detector"
)

// Parser turns a log file of one known format into a result table.
//
// Implementations return ErrNoRecords when nothing usable was found and a
// *ReadError when the file itself could not be read. Any other error is a
// content problem; callers decide whether to degrade or surface it.
type Parser interface {
	// Format returns the format this parser handles.
	Format() detector.Format

	// Parse reads and converts the whole file.
	Parse(ctx context.Context, path string, progress ProgressFunc) (*Parsed, error)
}

// ForFormat returns the parser for a detected format, or nil for FormatUnknown.
func ForFormat(f detector.Format, opts ...Option) Parser {
	switch f {
	case detector.FormatTimestampStats:
		return NewTimestampStatsParser(opts...)
	case detector.FormatSimpleCSV:
		return NewCSVParser(opts...)
	case detector.FormatDetailedLog:
		return NewDetailedLogParser(opts...)
	default:
		return nil
	}
}
