package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/table"
)

// detailedLinePattern captures timestamp, parameter and numeric value from
//
//	[2025-01-01 00:00:00] pump_pressure: 45.2
//
// The parameter may itself contain colons; the first colon followed by a
// number ends it, so trailing annotations such as "(min: 40.0)" are ignored.
const detailedLinePattern = `^\[([^\]]+)\]\s*([^\]]+?):\s*([0-9.]+)`

// DetailedLogParser reads bracketed-timestamp lines carrying one reading each.
// All readings sharing a timestamp are pooled and reduced to min/max/avg,
// regardless of parameter.
type DetailedLogParser struct {
	pattern *regexp.Regexp
	opts    options
}

// NewDetailedLogParser creates a detailed_log parser.
func NewDetailedLogParser(opts ...Option) *DetailedLogParser {
	return &DetailedLogParser{
		pattern: regexp.MustCompile(detailedLinePattern),
		opts:    buildOptions(opts),
	}
}

// Format returns detector.FormatDetailedLog.
func (p *DetailedLogParser) Format() detector.Format {
	return detector.FormatDetailedLog
}

// ParseLine parses a single line. ok is false when the line does not match
// or when either the timestamp or the value fails to parse.
func (p *DetailedLogParser) ParseLine(line string) (table.Point, bool) {
	m := p.pattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return table.Point{}, false
	}

	ts, err := ParseTimestamp(m[1])
	if err != nil {
		return table.Point{}, false
	}

	value, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return table.Point{}, false
	}

	return table.Point{
		Timestamp: ts,
		Parameter: strings.TrimSpace(m[2]),
		Value:     value,
	}, true
}

// Parse reads the file, collects every readable point and aggregates them.
func (p *DetailedLogParser) Parse(ctx context.Context, path string, progress ProgressFunc) (*Parsed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := ReadLines(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	var points []table.Point
	for i, line := range lines {
		if i%p.opts.progressInterval == 0 {
			progress.Report(lineProgress(i, len(lines)))
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		pt, ok := p.ParseLine(line)
		if !ok {
			continue
		}
		points = append(points, pt)
	}

	parsed := &Parsed{Table: table.Aggregate(points), LinesRead: len(lines), Records: len(points)}
	if len(points) == 0 {
		return parsed, ErrNoRecords
	}
	return parsed, nil
}
