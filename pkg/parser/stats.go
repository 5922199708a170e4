package parser

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/table"
)

const statsLayout = "2006-01-02 15:04:05"

// StatsRecord is one parsed timestamp_stats line.
type StatsRecord struct {
	Timestamp time.Time
	Parameter string
	Count     int
	Min       float64
	Max       float64
	Avg       float64
}

// TimestampStatsParser reads lines that already carry reduced statistics:
//
//	2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15
//
// Each matching line becomes its own row; lines for different parameters
// at the same timestamp are kept as separate rows.
type TimestampStatsParser struct {
	pattern *regexp.Regexp
	opts    options
}

// NewTimestampStatsParser creates a timestamp_stats parser.
func NewTimestampStatsParser(opts ...Option) *TimestampStatsParser {
	return &TimestampStatsParser{
		pattern: regexp.MustCompile(detector.TimestampStatsPattern),
		opts:    buildOptions(opts),
	}
}

// Format returns detector.FormatTimestampStats.
func (p *TimestampStatsParser) Format() detector.Format {
	return detector.FormatTimestampStats
}

// ParseLine parses a single line. ok is false for blank or non-matching
// lines, including lines whose date is not a real calendar date.
func (p *TimestampStatsParser) ParseLine(line string) (StatsRecord, bool) {
	m := p.pattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return StatsRecord{}, false
	}

	ts, err := time.Parse(statsLayout, strings.Join(strings.Fields(m[1]), " "))
	if err != nil {
		return StatsRecord{}, false
	}

	// Counts too large for an int saturate rather than drop the line.
	count, err := strconv.Atoi(m[3])
	if errors.Is(err, strconv.ErrRange) {
		count = math.MaxInt
	} else if err != nil {
		return StatsRecord{}, false
	}

	var vals [3]float64
	for i, s := range m[4:7] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return StatsRecord{}, false
		}
		vals[i] = v
	}

	return StatsRecord{
		Timestamp: ts,
		Parameter: m[2],
		Count:     count,
		Min:       vals[0],
		Max:       vals[1],
		Avg:       vals[2],
	}, true
}

// Parse reads the file and returns one row per matching line.
func (p *TimestampStatsParser) Parse(ctx context.Context, path string, progress ProgressFunc) (*Parsed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := ReadLines(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	tbl := table.New(nil)
	for i, line := range lines {
		if i%p.opts.progressInterval == 0 {
			progress.Report(lineProgress(i, len(lines)))
		}

		rec, ok := p.ParseLine(line)
		if !ok {
			continue
		}

		tbl.Append(table.Row{
			Timestamp: rec.Timestamp,
			Min:       rec.Min,
			Max:       rec.Max,
			Avg:       rec.Avg,
		})
	}

	parsed := &Parsed{Table: tbl, LinesRead: len(lines), Records: tbl.Len()}
	if tbl.Empty() {
		return parsed, ErrNoRecords
	}
	return parsed, nil
}
