package detector

import (
	"regexp"
	"strings"
)

// Format identifies one of the known log file shapes.
type Format string

const (
	// FormatTimestampStats lines carry pre-reduced statistics:
	// YYYY-MM-DD HH:MM:SS parameter count min max avg
	FormatTimestampStats Format = "timestamp_stats"

	// FormatSimpleCSV is a comma-separated table with a header row.
	FormatSimpleCSV Format = "simple_csv"

	// FormatDetailedLog lines look like [timestamp] parameter: value
	FormatDetailedLog Format = "detailed_log"

	// FormatUnknown means no rule matched the sampled lines.
	FormatUnknown Format = "unknown"
)

// String returns the format tag.
func (f Format) String() string {
	return string(f)
}

// TimestampStatsPattern matches a timestamp_stats line. Capture groups:
// timestamp, parameter, count, min, max, avg.
const TimestampStatsPattern = `^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})\s+(\w+)\s+(\d+)\s+(\d+\.\d+)\s+(\d+\.\d+)\s+(\d+\.\d+)`

// DetailedLogPattern is the loose bracket-then-colon shape used for sniffing.
const DetailedLogPattern = `^\[.*\].*:`

// Rule classifies a single sampled line.
type Rule struct {
	Format     Format
	PatternStr string // Human-readable shape for reports
	Examples   []string
	Match      func(line string) bool
}

// DefaultRules returns the classification rules in priority order.
// The first rule matching any sampled line decides the format, so the
// order here is significant: a line can satisfy more than one rule.
func DefaultRules() []*Rule {
	statsRe := regexp.MustCompile(TimestampStatsPattern)
	detailedRe := regexp.MustCompile(DetailedLogPattern)

	return []*Rule{
		{
			Format:     FormatTimestampStats,
			PatternStr: TimestampStatsPattern,
			Examples:   []string{"2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15"},
			Match:      statsRe.MatchString,
		},
		{
			Format:     FormatSimpleCSV,
			PatternStr: "at least 3 comma-separated fields",
			Examples:   []string{"timestamp,parameter,value"},
			Match:      isCSVLine,
		},
		{
			Format:     FormatDetailedLog,
			PatternStr: DetailedLogPattern,
			Examples:   []string{"[2025-01-01 00:00:00] pump_pressure: 45.2"},
			Match:      detailedRe.MatchString,
		},
	}
}

func isCSVLine(line string) bool {
	return strings.Contains(line, ",") && len(strings.Split(line, ",")) >= 3
}
